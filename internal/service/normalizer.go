package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/UnknownOlympus/iso6709/internal/metrics"
	"github.com/UnknownOlympus/iso6709/internal/models"
	"github.com/UnknownOlympus/iso6709/internal/repository"
)

// Normalizer periodically parses stored raw point locations and writes back
// their decimal coordinates together with the canonical Long representation.
type Normalizer struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Storage of raw and normalized point locations
	converter    *Converter           // Instrumented parser and formatter
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval between batches
	batchSize    int                  // Maximum number of records fetched per batch
}

// NewNormalizer creates a new instance of Normalizer.
func NewNormalizer(
	log *slog.Logger,
	repo repository.Interface,
	converter *Converter,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	batchSize int,
) *Normalizer {
	return &Normalizer{
		log:          log,
		repo:         repo,
		converter:    converter,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Run polls for pending records until the context is cancelled.
func (n *Normalizer) Run(ctx context.Context) {
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	n.log.InfoContext(ctx, "Normalizer started...", "interval", n.pollInterval.String())

	for {
		select {
		case <-ctx.Done():
			n.log.InfoContext(ctx, "Normalizer stopped.")
			return
		case <-ticker.C:
			n.log.InfoContext(ctx, "Polling for point locations to normalize...")
			n.processBatch(ctx)
		}
	}
}

// processBatch fetches one batch of pending records and feeds it to a pool of
// workers, returning once every record has been handled.
func (n *Normalizer) processBatch(ctx context.Context) {
	records, err := n.repo.FetchPending(ctx, n.batchSize)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to fetch pending point locations", "error", err)
		return
	}
	if len(records) == 0 {
		n.log.InfoContext(ctx, "No point locations to normalize.")
		return
	}

	n.log.InfoContext(ctx, "Found point locations to normalize. Starting worker pool.",
		"jobs", len(records), "num_workers", n.numWorkers)

	jobs := make(chan models.Record, len(records))
	var wgr sync.WaitGroup

	for i := 1; i <= n.numWorkers; i++ {
		wgr.Add(1)
		go n.worker(ctx, i, &wgr, jobs)
	}

	for _, record := range records {
		jobs <- record
	}
	close(jobs)

	wgr.Wait()
	n.log.InfoContext(ctx, "Normalization batch finished")
}

func (n *Normalizer) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Record) {
	defer wg.Done()
	for record := range jobs {
		n.metrics.ActiveWorkers.Inc()
		n.handle(ctx, idx, record)
		n.metrics.ActiveWorkers.Dec()
	}
}

func (n *Normalizer) handle(ctx context.Context, idx int, record models.Record) {
	n.log.DebugContext(ctx, "Normalizing point location", "worker", idx, "record", record.ID)

	normalized, err := n.normalize(ctx, record.Raw)
	if err != nil {
		n.log.WarnContext(ctx, "Failed to normalize point location",
			"worker", idx, "record", record.ID, "error", err)
		n.metrics.RecordsProcessed.WithLabelValues(statusFailure).Inc()

		if err = n.repo.IncrementFailureCount(ctx, record.ID, err.Error()); err != nil {
			n.log.ErrorContext(ctx, "Could not update failure count for record",
				"worker", idx, "record", record.ID, "error", err)
		}
		return
	}

	n.metrics.RecordsProcessed.WithLabelValues(statusSuccess).Inc()

	if err = n.repo.SaveNormalized(ctx, record.ID, normalized); err != nil {
		n.log.ErrorContext(ctx, "Failed to save normalized point location",
			"worker", idx, "record", record.ID, "error", err)
		return
	}

	n.log.DebugContext(ctx, "Worker successfully normalized the record", "worker", idx, "record", record.ID)
}

func (n *Normalizer) normalize(ctx context.Context, raw string) (models.Normalized, error) {
	point, err := n.converter.ParsePointLocation(ctx, raw)
	if err != nil {
		return models.Normalized{}, err
	}

	canonical, err := n.converter.FormatPointLocation(ctx, point, formatter.Long)
	if err != nil {
		return models.Normalized{}, err
	}

	return models.Normalized{
		Latitude:  point.Latitude().Degrees(),
		Longitude: point.Longitude().Degrees(),
		Altitude:  point.Altitude(),
		CRS:       point.CRS(),
		Canonical: canonical,
	}, nil
}
