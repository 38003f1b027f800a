package ahocorasick

import (
	"iter"
	"slices"
)

// state represents a node in the Aho-Corasick automaton.
type state struct {
	// transitions maps input bytes to child states.
	// A map keeps sparse tries small; see DenseAutomaton for the table form.
	transitions map[byte]int32

	// failure is the state to fall back to when no transition exists:
	// the longest proper suffix of this state's prefix that is also a prefix.
	failure int32

	// depth is the length of the prefix this state represents.
	depth int32

	// output holds the indices of every pattern ending at this state,
	// including those inherited through failure links.
	output []int32
}

func newState(depth int32) state {
	return state{
		transitions: make(map[byte]int32),
		depth:       depth,
	}
}

// Automaton is an immutable Aho-Corasick automaton built by a Builder.
// It is safe for concurrent use by any number of goroutines.
type Automaton struct {
	// states is the automaton's state table. State 0 is the root.
	states []state

	// order lists non-root states in breadth-first order.
	order []int32

	// patterns stores the unique pattern texts, indexed by pattern index.
	patterns []string

	// ids stores the identifiers for each pattern.
	ids [][]string
}

// Build is a convenience wrapper that builds an automaton from entries.
func Build(entries []Entry) (*Automaton, error) {
	b := NewBuilder()
	if err := b.AddEntries(entries); err != nil {
		return nil, err
	}
	return b.Build()
}

// next returns the state reached from current on input char.
func (ac *Automaton) next(current int32, char byte) int32 {
	for current != 0 {
		if next, exists := ac.states[current].transitions[char]; exists {
			return next
		}
		current = ac.states[current].failure
	}
	if next, exists := ac.states[0].transitions[char]; exists {
		return next
	}
	return 0
}

// Scan returns a lazy sequence of every match in text, overlapping matches included.
// Bytes never seen in a pattern simply return the automaton to the root.
func (ac *Automaton) Scan(text []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		if ac == nil || len(ac.patterns) == 0 {
			return
		}

		currentState := int32(0)
		for i, b := range text {
			currentState = ac.next(currentState, b)
			for _, patternIdx := range ac.states[currentState].output {
				if !yield(ac.match(patternIdx, i)) {
					return
				}
			}
		}
	}
}

// FindAll collects every match in text.
func (ac *Automaton) FindAll(text []byte) []Match {
	return collect(ac.Scan(text))
}

// FindAllString is FindAll for string input.
func (ac *Automaton) FindAllString(text string) []Match {
	return collect(ac.Scan([]byte(text)))
}

func (ac *Automaton) match(patternIdx int32, end int) Match {
	return Match{
		End:          end,
		Length:       len(ac.patterns[patternIdx]),
		PatternIndex: int(patternIdx),
		Pattern:      ac.patterns[patternIdx],
		IDs:          ac.ids[patternIdx],
	}
}

// PatternCount returns the number of unique patterns in the automaton.
func (ac *Automaton) PatternCount() int {
	return len(ac.patterns)
}

// StateCount returns the number of states, root included.
func (ac *Automaton) StateCount() int {
	return len(ac.states)
}

// Pattern returns the pattern text and a copy of its identifiers at index idx.
func (ac *Automaton) Pattern(idx int) (string, []string) {
	if idx < 0 || idx >= len(ac.patterns) {
		return "", nil
	}
	return ac.patterns[idx], slices.Clone(ac.ids[idx])
}

// Entries returns the automaton's patterns as entries, in pattern index order.
// The identifier slices are copies.
func (ac *Automaton) Entries() []Entry {
	entries := make([]Entry, len(ac.patterns))
	for i, p := range ac.patterns {
		entries[i] = Entry{Pattern: p, IDs: slices.Clone(ac.ids[i])}
	}
	return entries
}
