// Package cli implements the interactive read loop: every line read from the
// input is parsed as an ISO 6709 point location and echoed back in the
// configured formats.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/UnknownOlympus/iso6709/internal/service"
)

const (
	banner = "Enter a point location in ISO 6709 format, for example +401213-0750015/\n" +
		"An empty line exits.\n"
	prompt = "> "
)

// DefaultFormats are printed when no format is configured.
var DefaultFormats = []formatter.FormatType{formatter.HumanLong, formatter.Long}

// Reader reads point locations line by line and writes their representations.
type Reader struct {
	log       *slog.Logger
	converter *service.Converter
	formats   []formatter.FormatType
	in        io.Reader
	out       io.Writer
}

// NewReader creates a Reader. An empty format list falls back to DefaultFormats.
func NewReader(
	log *slog.Logger,
	converter *service.Converter,
	formats []formatter.FormatType,
	in io.Reader,
	out io.Writer,
) *Reader {
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	return &Reader{log: log, converter: converter, formats: formats, in: in, out: out}
}

// Run prompts for input until a blank line, the end of the input or the
// cancellation of the context. Parse errors are reported and the loop goes on.
func (r *Reader) Run(ctx context.Context) error {
	if _, err := io.WriteString(r.out, banner); err != nil {
		return fmt.Errorf("failed to write banner: %w", err)
	}

	scanner := bufio.NewScanner(r.in)
	for {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := io.WriteString(r.out, prompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			r.log.DebugContext(ctx, "End of input reached")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}

		if err := r.convert(ctx, line); err != nil {
			return err
		}
	}
}

func (r *Reader) convert(ctx context.Context, line string) error {
	point, err := r.converter.ParsePointLocation(ctx, line)
	if err != nil {
		_, werr := fmt.Fprintln(r.out, err.Error())
		return werr
	}

	for _, formatType := range r.formats {
		formatted, ferr := r.converter.FormatPointLocation(ctx, point, formatType)
		if ferr != nil {
			formatted = ferr.Error()
		}
		if _, werr := fmt.Fprintf(r.out, "%-12s %s\n", formatType.String(), formatted); werr != nil {
			return werr
		}
	}

	return nil
}

// OpenInput opens the file at path, or returns standard input when path is empty.
func OpenInput(path string) (io.ReadCloser, error) {
	if strings.TrimSpace(path) == "" {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input file %q does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return file, nil
}
