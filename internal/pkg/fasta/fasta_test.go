package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `>sp|P01012|OVAL_CHICK Ovalbumin OS=Gallus gallus
MGSIGAASMEFCFDVFKELKVHHANENIFYCPIAIMSALAMVYLGAKDSTRTQINKVVRF
DKLPGFGDSIEAQCGTSVNVHSSLRDILNQITKPNDVYSFSLASRLYAEERYPILPEYLQ
>E1 SIINFEKL epitope
SIINFEKL
`

func TestReader_Next(t *testing.T) {
	r := NewReader(strings.NewReader(sample))

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "sp|P01012|OVAL_CHICK", rec.Name)
	assert.Equal(t, "sp|P01012|OVAL_CHICK Ovalbumin OS=Gallus gallus", rec.Description)
	assert.Equal(t, 120, len(rec.Sequence))
	assert.True(t, strings.HasPrefix(rec.Sequence, "MGSIGAASMEF"))
	assert.True(t, strings.HasSuffix(rec.Sequence, "RYPILPEYLQ"))

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "E1", rec.Name)
	assert.Equal(t, "SIINFEKL", rec.Sequence)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only blank lines",
			input: "\n\n  \n",
			want:  nil,
		},
		{
			name:  "crlf line endings",
			input: ">a\r\nAC\r\nDE\r\n>b\r\nFG\r\n",
			want: []Record{
				{Name: "a", Description: "a", Sequence: "ACDE"},
				{Name: "b", Description: "b", Sequence: "FG"},
			},
		},
		{
			name:  "no trailing newline",
			input: ">a\nACD",
			want:  []Record{{Name: "a", Description: "a", Sequence: "ACD"}},
		},
		{
			name:  "empty sequence",
			input: ">a\n>b\nK\n",
			want: []Record{
				{Name: "a", Description: "a", Sequence: ""},
				{Name: "b", Description: "b", Sequence: "K"},
			},
		},
		{
			name:  "empty header",
			input: ">\nKL\n",
			want:  []Record{{Name: UnknownName, Description: "", Sequence: "KL"}},
		},
		{
			name:  "comments and blank lines",
			input: "; file comment\n\n>a desc\n; inline\nAC \n\n  DE\n",
			want:  []Record{{Name: "a", Description: "a desc", Sequence: "ACDE"}},
		},
		{
			name:  "tab separated header",
			input: ">a\tdesc\nK\n",
			want:  []Record{{Name: "a", Description: "a\tdesc", Sequence: "K"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(strings.NewReader(tt.input)).ReadAll()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReader_Malformed(t *testing.T) {
	_, err := NewReader(strings.NewReader("ACDE\n>a\nK\n")).ReadAll()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReader_LongLine(t *testing.T) {
	long := strings.Repeat("ACDEFGHIKL", 20000)
	got, err := NewReader(strings.NewReader(">big\n" + long + "\n")).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, long, got[0].Sequence)
}

func TestReader_AllStopsEarly(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nK\n>b\nL\n>c\nM\n"))

	var names []string
	for rec, err := range r.All() {
		require.NoError(t, err)
		names = append(names, rec.Name)
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, names)

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "c", rec.Name)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "epitopes.fasta")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o600))

	compressed := filepath.Join(dir, "epitopes.fasta.gz")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{plain, compressed} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			file, err := Open(path)
			require.NoError(t, err)
			defer file.Close()

			records, err := file.ReadAll()
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "E1", records[1].Name)
			assert.Equal(t, path, file.Path())
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.fasta"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
