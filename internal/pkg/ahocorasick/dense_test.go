package ahocorasick

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseAutomaton_Build(t *testing.T) {
	ac := buildFrom(t,
		Entry{Pattern: "HELLO", IDs: []string{"1"}},
		Entry{Pattern: "WORLD", IDs: []string{"2"}},
		Entry{Pattern: "HE", IDs: []string{"3"}},
	)

	d := ac.Dense()
	assert.Equal(t, 3, d.PatternCount())
	assert.Equal(t, ac.StateCount(), d.StateCount())
	// H E L O W R D plus the catch-all class.
	assert.Equal(t, 8, d.stride)
}

func TestDenseAutomaton_MatchesSparse(t *testing.T) {
	ac := buildFrom(t,
		Entry{Pattern: "SIINFEKL", IDs: []string{"E1"}},
		Entry{Pattern: "INFEKL", IDs: []string{"E2"}},
		Entry{Pattern: "AA", IDs: []string{"E3"}},
		Entry{Pattern: "KLA", IDs: []string{"E4", "E5"}},
	)
	d := ac.Dense()

	inputs := []string{
		"",
		"XSIINFEKLY",
		"AAAA",
		"SIINFEKLAAKLAA",
		"siinfekl",
		"\x00\xffSIINF\x00EKL",
	}
	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			assert.Equal(t, ac.FindAllString(input), d.FindAll([]byte(input)))
		})
	}
}

func TestDenseAutomaton_EmptyPatterns(t *testing.T) {
	d := buildFrom(t).Dense()

	assert.Equal(t, 0, d.PatternCount())
	assert.Empty(t, d.FindAll([]byte("ACDEFG")))
}

func TestDenseAutomaton_FullByteAlphabet(t *testing.T) {
	b := NewBuilder()
	for c := 0; c < 256; c++ {
		require.NoError(t, b.Add(string([]byte{byte(c), byte(c)}), fmt.Sprint(c)))
	}
	ac, err := b.Build()
	require.NoError(t, err)

	d := ac.Dense()
	assert.Equal(t, 257, d.stride)

	results := d.FindAll([]byte{0xff, 0xff, 0x00, 0x00})
	assert.Equal(t, extractEnds(ac.FindAll([]byte{0xff, 0xff, 0x00, 0x00})), extractEnds(results))
	assert.Equal(t, []int{1, 3}, extractEnds(results))
}

func TestScanner_Interface(t *testing.T) {
	ac := buildFrom(t, Entry{Pattern: "KL", IDs: []string{"E1"}})

	for name, s := range map[string]Scanner{"sparse": ac, "dense": ac.Dense()} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 1, s.PatternCount())
			assert.Len(t, s.FindAll([]byte("KLKL")), 2)
		})
	}
}
