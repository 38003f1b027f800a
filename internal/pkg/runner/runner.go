// Package runner wires the epitope loader, the scan pipeline and the reporters
// into a single match run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/feargalr/Daedalus/internal/pkg/ahocorasick"
	"github.com/feargalr/Daedalus/internal/pkg/constants"
	"github.com/feargalr/Daedalus/internal/pkg/epitope"
	"github.com/feargalr/Daedalus/internal/pkg/fasta"
	"github.com/feargalr/Daedalus/internal/pkg/logger"
	"github.com/feargalr/Daedalus/internal/pkg/metrics"
	"github.com/feargalr/Daedalus/internal/pkg/output"
	"github.com/feargalr/Daedalus/internal/pkg/report"
	"github.com/feargalr/Daedalus/internal/pkg/scan"
	"github.com/feargalr/Daedalus/internal/pkg/sequence"
	"github.com/feargalr/Daedalus/internal/pkg/version"
)

// ErrMissingInput is returned when a required path is not set.
var ErrMissingInput = errors.New("missing required input")

// Options configures a match run.
type Options struct {
	EpitopesPath string
	ProteinsPath string
	OutputPath   string

	Length        sequence.LengthRange
	KeepAmbiguous bool

	// Workers is the number of scan workers; zero means one per CPU.
	Workers int

	// Dense compiles the automaton into a full transition table before scanning.
	Dense bool

	// WriteBuffer is the report buffer size in bytes; zero means the default.
	WriteBuffer int

	// MetricsPath, if set, receives a Prometheus textfile after the run.
	MetricsPath string

	// SummaryPath, if set, receives a JSON or YAML run summary.
	SummaryPath string

	// SummaryWriter, if set, receives the human-readable summary.
	SummaryWriter io.Writer

	// StyledSummary renders the human-readable summary for a terminal.
	StyledSummary bool
}

// Validate checks that the options describe a runnable job.
func (o Options) Validate() error {
	switch {
	case o.EpitopesPath == "":
		return fmt.Errorf("%w: --epitopes", ErrMissingInput)
	case o.ProteinsPath == "":
		return fmt.Errorf("%w: --proteins", ErrMissingInput)
	case o.OutputPath == "":
		return fmt.Errorf("%w: --out", ErrMissingInput)
	case o.Workers < 0:
		return &sequence.ValidationError{Field: "workers", Message: "must be >= 0"}
	case o.SummaryPath == constants.StdoutPath && o.OutputPath == constants.StdoutPath:
		return &sequence.ValidationError{Field: "summary", Message: "cannot share stdout with --out -"}
	}
	return o.Length.Validate()
}

// Run loads the epitopes, scans every protein and writes the report.
func Run(ctx context.Context, opts Options) (output.Summary, error) {
	summary := output.Summary{
		RunID:     uuid.NewString(),
		Version:   version.GetShortVersion(),
		StartedAt: time.Now().UTC(),
		Epitopes:  opts.EpitopesPath,
		Proteins:  opts.ProteinsPath,
		Output:    opts.OutputPath,
		MinLen:    opts.Length.Min,
		MaxLen:    opts.Length.Max,
		Dense:     opts.Dense,
	}
	if err := opts.Validate(); err != nil {
		return summary, err
	}

	log := logger.With("run_id", summary.RunID)
	log.Info("Starting match run",
		"epitopes", opts.EpitopesPath,
		"proteins", opts.ProteinsPath,
		"out", opts.OutputPath,
		"length_range", opts.Length.String(),
		"dense", opts.Dense)

	recorder := metrics.NewRecorder()
	recorder.SetRunInfo(summary.RunID, summary.Version)

	ac, loadStats, err := epitope.Load(ctx, opts.EpitopesPath, epitope.Options{
		Length:        opts.Length,
		KeepAmbiguous: opts.KeepAmbiguous,
	})
	if err != nil {
		return summary, err
	}
	summary.Load = loadStats
	recorder.RecordEpitopes(loadStats)
	if loadStats.Unique == 0 {
		log.Warn("No epitopes survived filtering; the report will contain only a header")
	}

	var scanner ahocorasick.Scanner = ac
	if opts.Dense {
		scanner = ac.Dense()
	}

	proteins, err := fasta.Open(opts.ProteinsPath)
	if err != nil {
		return summary, err
	}
	defer proteins.Close()

	writer, err := report.Create(opts.OutputPath, opts.WriteBuffer)
	if err != nil {
		return summary, err
	}

	scanStats, scanErr := scan.Run(ctx, scan.Config{
		Workers:  opts.Workers,
		Observer: recorder,
	}, scanner, proteins.All(), writer)
	summary.Scan = scanStats

	if err := writer.Close(); err != nil && scanErr == nil {
		scanErr = fmt.Errorf("close report: %w", err)
	}
	summary.Elapsed = time.Since(summary.StartedAt)

	if scanErr != nil {
		log.Error("Match run failed",
			"error", scanErr,
			"proteins", scanStats.Proteins,
			"hits", scanStats.Hits)
		return summary, scanErr
	}

	log.Info("Match run complete",
		"proteins", scanStats.Proteins,
		"hits", scanStats.Hits,
		"wrote", opts.OutputPath,
		"elapsed", summary.Elapsed)

	return summary, writeArtifacts(opts, recorder, summary)
}

func writeArtifacts(opts Options, recorder *metrics.Recorder, summary output.Summary) error {
	if opts.MetricsPath != "" {
		if err := recorder.WriteTextfile(opts.MetricsPath); err != nil {
			return err
		}
	}
	if opts.SummaryPath != "" {
		if err := output.WriteSummary(opts.SummaryPath, summary); err != nil {
			return err
		}
	}
	w := opts.SummaryWriter
	if w == nil {
		w = os.Stderr
	}
	return output.RenderSummary(w, summary, opts.StyledSummary)
}
