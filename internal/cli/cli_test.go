package cli_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/iso6709/internal/cli"
	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/UnknownOlympus/iso6709/internal/metrics"
	"github.com/UnknownOlympus/iso6709/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(in io.Reader, out io.Writer, formats ...formatter.FormatType) *cli.Reader {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	converter := service.NewConverter(logger, metrics.NewMetrics(prometheus.NewRegistry()))

	return cli.NewReader(logger, converter, formats, in, out)
}

func TestReader_Run(t *testing.T) {
	t.Parallel()

	t.Run("default formats", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer

		err := newReader(strings.NewReader("+401213.1-0750015.1/\n\n+40-075/\n"), &out).Run(t.Context())

		require.NoError(t, err)
		assert.Contains(t, out.String(), "+401213-0750015/")
		assert.Contains(t, out.String(), "human_long   40°12'13\"N 75°00'15\"W\n")
		assert.Contains(t, out.String(), "long         +401213-0750015/\n")
		assert.NotContains(t, out.String(), "+400000-0750000/", "a blank line ends the loop")
	})

	t.Run("configured formats", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer

		err := newReader(strings.NewReader("+40-075+350/"), &out, formatter.Decimal, formatter.HumanShort).
			Run(t.Context())

		require.NoError(t, err)
		assert.Contains(t, out.String(), "decimal      +40.00000-075.00000+350.00000/\n")
		assert.Contains(t, out.String(), "human_short  40°N 75°W +350.00000\n")
	})

	t.Run("parse error keeps reading", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer

		err := newReader(strings.NewReader("+40-075\n+40-075/\n"), &out).Run(t.Context())

		require.NoError(t, err)
		assert.Contains(t, out.String(), "point location value must be terminated with /")
		assert.Contains(t, out.String(), "+400000-0750000/")
		assert.Equal(t, 3, strings.Count(out.String(), "> "))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := newReader(strings.NewReader("+40-075/\n"), &out).Run(ctx)

		require.NoError(t, err)
		assert.NotContains(t, out.String(), "+400000-0750000/")
	})
}

func TestOpenInput(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", "+401213-0750015/\n")

	input, err := cli.OpenInput(file.Name())
	require.NoError(t, err)
	defer input.Close()

	var out bytes.Buffer
	require.NoError(t, newReader(input, &out).Run(t.Context()))
	assert.Contains(t, out.String(), "long         +401213-0750015/\n")
}

func TestOpenInput_Missing(t *testing.T) {
	dir := filet.TmpDir(t, "")
	defer filet.CleanUp(t)

	_, err := cli.OpenInput(dir + "/missing.txt")

	require.ErrorContains(t, err, "does not exist")
}

func TestOpenInput_Stdin(t *testing.T) {
	input, err := cli.OpenInput("  ")

	require.NoError(t, err)
	assert.NotNil(t, input)
}
