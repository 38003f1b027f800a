package ahocorasick

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// naiveScan is a brute-force reference: every end offset, every pattern, longest first.
type naiveScan struct {
	entries []Entry
}

func newNaiveScan(entries []Entry) *naiveScan {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Pattern) > len(sorted[j].Pattern)
	})
	return &naiveScan{entries: sorted}
}

func (n *naiveScan) FindAll(text []byte) []Match {
	var results []Match
	for end := range text {
		for _, e := range n.entries {
			start := end - len(e.Pattern) + 1
			if start < 0 || string(text[start:end+1]) != e.Pattern {
				continue
			}
			results = append(results, Match{End: end, Length: len(e.Pattern), Pattern: e.Pattern, IDs: e.IDs})
		}
	}
	return results
}

// generateEntries creates n random peptides of length minLen..maxLen over alphabet.
func generateEntries(rng *rand.Rand, n, minLen, maxLen int, alphabet string) []Entry {
	s := NewStore()
	for i := 0; i < n; i++ {
		length := minLen + rng.Intn(maxLen-minLen+1)
		var sb strings.Builder
		for j := 0; j < length; j++ {
			sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		_ = s.Insert(sb.String(), fmt.Sprintf("E%d", i))
	}
	return s.Finalize()
}

// generateText creates a random sequence of the given length over alphabet.
func generateText(rng *rand.Rand, length int, alphabet string) []byte {
	text := make([]byte, length)
	for i := range text {
		text[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return text
}

func stripIndex(results []Match) []Match {
	if len(results) == 0 {
		return nil
	}
	out := make([]Match, len(results))
	for i, r := range results {
		r.PatternIndex = 0
		out[i] = r
	}
	return out
}

func TestAutomaton_AgreesWithNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		// A tiny alphabet forces shared prefixes, nested suffixes and overlaps.
		entries := generateEntries(rng, 1+rng.Intn(12), 1, 5, "ACD")
		ac, err := Build(entries)
		require.NoError(t, err)
		dense := ac.Dense()
		naive := newNaiveScan(entries)

		for i := 0; i < 5; i++ {
			text := generateText(rng, rng.Intn(60), "ACDE")
			want := naive.FindAll(text)

			got := ac.FindAll(text)
			require.Equal(t, want, stripIndex(got), "round %d text %q", round, text)
			require.Equal(t, got, dense.FindAll(text), "dense round %d text %q", round, text)

			for _, m := range got {
				assert.Equal(t, m.Pattern, string(text[m.Start():m.End+1]))
			}
		}
	}
}

func TestAutomaton_Reusable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	entries := generateEntries(rng, 50, 2, 6, "ACDEF")

	texts := make([][]byte, 20)
	for i := range texts {
		texts[i] = generateText(rng, 200, "ACDEF")
	}

	shared, err := Build(entries)
	require.NoError(t, err)

	for _, text := range texts {
		fresh, err := Build(entries)
		require.NoError(t, err)
		assert.Equal(t, fresh.FindAll(text), shared.FindAll(text))
	}
}

// BenchmarkAutomaton_Build measures automaton build time at various pattern counts.
func BenchmarkAutomaton_Build(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		entries := generateEntries(rand.New(rand.NewSource(1)), size, 8, 15, aminoAcids)

		b.Run(fmt.Sprintf("patterns=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Build(entries)
			}
		})
	}
}

// BenchmarkScan compares sparse, dense and naive scanning at various pattern counts.
func BenchmarkScan(b *testing.B) {
	patternCounts := []int{10, 100, 1000, 10000}
	rng := rand.New(rand.NewSource(1))
	protein := generateText(rng, 1000, aminoAcids)

	for _, count := range patternCounts {
		entries := generateEntries(rng, count, 8, 15, aminoAcids)

		ac, err := Build(entries)
		if err != nil {
			b.Fatal(err)
		}
		dense := ac.Dense()
		naive := newNaiveScan(entries)

		b.Run(fmt.Sprintf("Sparse/patterns=%d", count), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = ac.FindAll(protein)
			}
		})

		b.Run(fmt.Sprintf("Dense/patterns=%d", count), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = dense.FindAll(protein)
			}
		})

		b.Run(fmt.Sprintf("Naive/patterns=%d", count), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = naive.FindAll(protein)
			}
		})
	}
}

// BenchmarkScan_Parallel measures concurrent scans over a shared automaton.
func BenchmarkScan_Parallel(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	ac, err := Build(generateEntries(rng, 5000, 8, 15, aminoAcids))
	if err != nil {
		b.Fatal(err)
	}
	protein := generateText(rng, 1000, aminoAcids)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for range ac.Scan(protein) {
			}
		}
	})
}
