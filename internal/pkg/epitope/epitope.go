// Package epitope loads peptide FASTA files into a matching automaton.
package epitope

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/feargalr/Daedalus/internal/pkg/ahocorasick"
	"github.com/feargalr/Daedalus/internal/pkg/fasta"
	"github.com/feargalr/Daedalus/internal/pkg/logger"
	"github.com/feargalr/Daedalus/internal/pkg/sequence"
)

// Options controls how epitope records are normalized and filtered.
type Options struct {
	// Length drops peptides outside the range after cleaning. Zero bounds are open.
	Length sequence.LengthRange

	// KeepAmbiguous keeps the letters X, U, O, B, J and Z while cleaning.
	KeepAmbiguous bool
}

// DefaultOptions returns options matching the command-line defaults.
func DefaultOptions() Options {
	return Options{KeepAmbiguous: true}
}

// Stats summarizes an epitope load.
type Stats struct {
	// Total is the number of records read.
	Total int `json:"total" yaml:"total"`

	// Kept is the number of records that survived cleaning and length filtering.
	Kept int `json:"kept" yaml:"kept"`

	// Unique is the number of distinct peptides among kept records.
	Unique int `json:"unique_peptides" yaml:"unique_peptides"`

	// States is the number of automaton states.
	States int `json:"automaton_states" yaml:"automaton_states"`

	// Duration is the time spent reading and building.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// RecordSource yields FASTA records. *fasta.Reader satisfies it.
type RecordSource interface {
	Next() (fasta.Record, error)
}

// Load reads the epitope FASTA at path and builds an automaton from it.
func Load(ctx context.Context, path string, opts Options) (*ahocorasick.Automaton, Stats, error) {
	f, err := fasta.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()

	ac, stats, err := LoadReader(ctx, f.Reader, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("load epitopes %s: %w", path, err)
	}
	return ac, stats, nil
}

// LoadReader builds an automaton from the records of src.
// Records whose cleaned peptide is empty or outside opts.Length are skipped.
func LoadReader(ctx context.Context, src RecordSource, opts Options) (*ahocorasick.Automaton, Stats, error) {
	start := time.Now()
	alphabet := sequence.PeptideAlphabet(opts.KeepAmbiguous)
	store := ahocorasick.NewStore()

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, stats, err
		}
		stats.Total++

		pep := sequence.Clean(rec.Sequence, alphabet)
		if pep == "" || !opts.Length.Contains(len(pep)) {
			logger.Debug("Skipping epitope", "name", rec.Name, "length", len(pep))
			continue
		}
		if err := store.Insert(pep, rec.Name); err != nil {
			return nil, stats, err
		}
		stats.Kept++
	}

	ac, err := ahocorasick.Build(store.Finalize())
	if err != nil {
		return nil, stats, fmt.Errorf("build automaton: %w", err)
	}

	stats.Unique = store.Len()
	stats.States = ac.StateCount()
	stats.Duration = time.Since(start)

	logger.Info("Epitopes loaded",
		"total", stats.Total,
		"kept", stats.Kept,
		"unique_peptides", stats.Unique,
		"automaton_states", stats.States,
		"length_range", opts.Length.String(),
		"build_duration", stats.Duration)

	return ac, stats, nil
}
