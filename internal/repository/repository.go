package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/iso6709/internal/models"
)

// MaxNormalizationAttempts is the number of failed attempts after which a record is no longer fetched.
const MaxNormalizationAttempts = 5

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	EnsureSchema(ctx context.Context) error
	FetchPending(ctx context.Context, limit int) ([]models.Record, error)
	SaveNormalized(ctx context.Context, recordID int, normalized models.Normalized) error
	IncrementFailureCount(ctx context.Context, recordID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
