// Package fasta reads FASTA formatted sequence files as a stream of records.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// ErrMalformed is returned when the input does not look like FASTA.
var ErrMalformed = errors.New("fasta: malformed input")

// UnknownName is used for records whose header carries no name.
const UnknownName = "UNKNOWN"

// Record is a single FASTA record.
type Record struct {
	// Name is the first whitespace-delimited token of the header.
	Name string

	// Description is the full header line without the leading '>'.
	Description string

	// Sequence is the concatenation of the record's sequence lines.
	Sequence string
}

// Reader reads FASTA records one at a time.
type Reader struct {
	r       *bufio.Reader
	pending string // header line of the next record
	started bool
	done    bool
	line    int
	seq     strings.Builder
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 64*1024)}
}

// readLine returns the next line without its terminator.
func (fr *Reader) readLine() (string, error) {
	line, err := fr.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			err = nil
		} else {
			return "", err
		}
	}
	fr.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (fr *Reader) Next() (Record, error) {
	if fr.done {
		return Record{}, io.EOF
	}

	if !fr.started {
		fr.started = true
		for {
			line, err := fr.readLine()
			if err == io.EOF {
				fr.done = true
				return Record{}, io.EOF
			}
			if err != nil {
				return Record{}, fmt.Errorf("fasta: read line %d: %w", fr.line+1, err)
			}
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, ";") {
				continue
			}
			if !strings.HasPrefix(trimmed, ">") {
				return Record{}, fmt.Errorf("%w: line %d: expected '>' header", ErrMalformed, fr.line)
			}
			fr.pending = trimmed
			break
		}
	}

	header := fr.pending
	fr.seq.Reset()
	for {
		line, err := fr.readLine()
		if err == io.EOF {
			fr.done = true
			break
		}
		if err != nil {
			return Record{}, fmt.Errorf("fasta: read line %d: %w", fr.line+1, err)
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ">") {
			fr.pending = trimmed
			break
		}
		if strings.HasPrefix(trimmed, ";") {
			continue
		}
		fr.seq.WriteString(trimmed)
	}

	return newRecord(header, fr.seq.String()), nil
}

func newRecord(header, seq string) Record {
	desc := strings.TrimSpace(strings.TrimPrefix(header, ">"))
	name := desc
	if i := strings.IndexAny(desc, " \t"); i >= 0 {
		name = desc[:i]
	}
	if name == "" {
		name = UnknownName
	}
	return Record{Name: name, Description: desc, Sequence: seq}
}

// All returns the remaining records as a sequence. Iteration stops after the
// first error, which is yielded with a zero Record.
func (fr *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := fr.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// ReadAll reads every remaining record.
func (fr *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for rec, err := range fr.All() {
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// File is a Reader over a file on disk.
type File struct {
	*Reader
	closers []io.Closer
	path    string
}

var gzipMagic = []byte{0x1f, 0x8b}

// Open opens a FASTA file. Gzip-compressed files are detected by their magic
// bytes and decompressed transparently.
func Open(path string) (*File, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("fasta: open %s: %w", path, err)
	}

	br := bufio.NewReaderSize(f, 64*1024)
	file := &File{closers: []io.Closer{f}, path: path}

	magic, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("fasta: open gzip %s: %w", path, err)
		}
		file.closers = append([]io.Closer{gz}, file.closers...)
		file.Reader = NewReader(gz)
		return file, nil
	}

	file.Reader = NewReader(br)
	return file, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Close closes the underlying file and decompressor.
func (f *File) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
