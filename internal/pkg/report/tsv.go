// Package report writes match results in the tabular format consumed downstream.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/feargalr/Daedalus/internal/pkg/ahocorasick"
	"github.com/feargalr/Daedalus/internal/pkg/constants"
)

// TSVWriter writes one line per match:
//
//	protein<TAB>start<TAB>end<TAB>peptide<TAB>epitope_ids
//
// Positions are 1-based and inclusive; identifiers are comma-joined in insertion order.
type TSVWriter struct {
	w      *bufio.Writer
	closer io.Closer
	rows   int
	line   []byte
}

// NewTSVWriter writes the header to w and returns a writer for match rows.
// bufSize <= 0 selects the default buffer size.
func NewTSVWriter(w io.Writer, bufSize int) (*TSVWriter, error) {
	if bufSize <= 0 {
		bufSize = constants.DefaultWriteBuffer
	}
	tw := &TSVWriter{w: bufio.NewWriterSize(w, bufSize)}
	if c, ok := w.(io.Closer); ok && w != io.Writer(os.Stdout) {
		tw.closer = c
	}
	if _, err := tw.w.WriteString(constants.ReportHeader + "\n"); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return tw, nil
}

// Create opens path for writing ("-" means stdout) and writes the header.
func Create(path string, bufSize int) (*TSVWriter, error) {
	if path == constants.StdoutPath {
		return NewTSVWriter(os.Stdout, bufSize)
	}
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("create report %s: %w", path, err)
	}
	tw, err := NewTSVWriter(f, bufSize)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return tw, nil
}

// Write writes the row for a single match in protein.
func (tw *TSVWriter) Write(protein string, m ahocorasick.Match) error {
	line := tw.line[:0]
	line = append(line, protein...)
	line = append(line, '\t')
	line = strconv.AppendInt(line, int64(m.Start1()), 10)
	line = append(line, '\t')
	line = strconv.AppendInt(line, int64(m.End1()), 10)
	line = append(line, '\t')
	line = append(line, m.Pattern...)
	line = append(line, '\t')
	line = append(line, strings.Join(m.IDs, constants.IDSeparator)...)
	line = append(line, '\n')
	tw.line = line

	if _, err := tw.w.Write(line); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	tw.rows++
	return nil
}

// WriteAll writes rows for every match of one protein.
func (tw *TSVWriter) WriteAll(protein string, matches []ahocorasick.Match) error {
	for _, m := range matches {
		if err := tw.Write(protein, m); err != nil {
			return err
		}
	}
	return nil
}

// Rows returns the number of match rows written, header excluded.
func (tw *TSVWriter) Rows() int {
	return tw.rows
}

// Flush writes buffered rows to the underlying writer.
func (tw *TSVWriter) Flush() error {
	return tw.w.Flush()
}

// Close flushes and closes the underlying file, if the writer owns one.
func (tw *TSVWriter) Close() error {
	err := tw.Flush()
	if tw.closer != nil {
		if cerr := tw.closer.Close(); err == nil {
			err = cerr
		}
		tw.closer = nil
	}
	return err
}
