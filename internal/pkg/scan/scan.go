// Package scan runs protein records through a shared automaton on a pool of
// workers and hands the matches to a sink in input order.
package scan

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"sync"
	"time"

	"github.com/feargalr/Daedalus/internal/pkg/ahocorasick"
	"github.com/feargalr/Daedalus/internal/pkg/constants"
	"github.com/feargalr/Daedalus/internal/pkg/fasta"
	"github.com/feargalr/Daedalus/internal/pkg/logger"
	"github.com/feargalr/Daedalus/internal/pkg/sequence"
)

// Sink receives the matches of each protein, in input order.
// *report.TSVWriter satisfies it.
type Sink interface {
	WriteAll(protein string, matches []ahocorasick.Match) error
}

// Observer is notified once per scanned protein.
type Observer interface {
	ObserveProtein(length, hits int, elapsed time.Duration)
}

// Config controls a scan run.
type Config struct {
	// Workers is the number of concurrent scanners. Zero means runtime.NumCPU().
	Workers int

	// Normalize is applied to every protein sequence before scanning.
	// Nil means sequence.CleanProtein.
	Normalize func(string) string

	// Observer, if set, receives per-protein statistics.
	Observer Observer
}

// Stats summarizes a scan run.
type Stats struct {
	Proteins int           `json:"proteins" yaml:"proteins"`
	Residues int64         `json:"residues" yaml:"residues"`
	Hits     int           `json:"hits" yaml:"hits"`
	Workers  int           `json:"workers" yaml:"workers"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

type job struct {
	index  int
	record fasta.Record
}

type result struct {
	index   int
	name    string
	length  int
	matches []ahocorasick.Match
}

// Run scans every record against scanner and writes the matches to sink.
//
// The scanner is shared read-only by all workers. Results are re-sequenced so
// the sink sees proteins in the order records yielded them, whatever the
// worker count. At most a fixed window of proteins is in flight at once.
//
// Run stops at the first reader or sink error, or when ctx is cancelled, and
// returns the statistics gathered so far together with that error.
func Run(ctx context.Context, cfg Config, scanner ahocorasick.Scanner, records iter.Seq2[fasta.Record, error], sink Sink) (Stats, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	normalize := cfg.Normalize
	if normalize == nil {
		normalize = sequence.CleanProtein
	}

	start := time.Now()
	stats := Stats{Workers: workers}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := workers * constants.ScanQueuePerWorker
	jobs := make(chan job, queue)
	results := make(chan result, queue)
	window := make(chan struct{}, 2*queue)
	readErr := make(chan error, constants.ErrorChannelBuffer)

	// Producer
	go func() {
		defer close(jobs)
		index := 0
		for rec, err := range records {
			if err != nil {
				readErr <- fmt.Errorf("read proteins: %w", err)
				cancel()
				return
			}
			select {
			case window <- struct{}{}:
			case <-runCtx.Done():
				return
			}
			select {
			case jobs <- job{index: index, record: rec}:
			case <-runCtx.Done():
				return
			}
			index++
		}
	}()

	// Workers
	var wg sync.WaitGroup
	for workerID := 0; workerID < workers; workerID++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				began := time.Now()
				seq := normalize(j.record.Sequence)
				res := result{
					index:   j.index,
					name:    j.record.Name,
					length:  len(seq),
					matches: scanner.FindAll([]byte(seq)),
				}
				if cfg.Observer != nil {
					cfg.Observer.ObserveProtein(res.length, len(res.matches), time.Since(began))
				}
				select {
				case results <- res:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Writer: emit results in input order.
	var sinkErr error
	pending := make(map[int]result)
	next := 0
	for res := range results {
		if sinkErr != nil {
			continue
		}
		pending[res.index] = res
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			if err := sink.WriteAll(ready.name, ready.matches); err != nil {
				sinkErr = fmt.Errorf("write matches for %s: %w", ready.name, err)
				cancel()
				break
			}
			stats.Proteins++
			stats.Residues += int64(ready.length)
			stats.Hits += len(ready.matches)
			<-window
		}
	}
	stats.Duration = time.Since(start)

	select {
	case err := <-readErr:
		return stats, err
	default:
	}
	if sinkErr != nil {
		return stats, sinkErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	logger.Debug("Scan finished",
		"proteins", stats.Proteins,
		"hits", stats.Hits,
		"workers", workers,
		"duration", stats.Duration)
	return stats, nil
}
