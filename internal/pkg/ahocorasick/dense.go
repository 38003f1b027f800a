package ahocorasick

import "iter"

// DenseAutomaton is an Aho-Corasick automaton compiled into a full transition table.
// Every (state, symbol) pair resolves in one lookup, so scanning never walks a failure chain.
//
// Bytes are first mapped to equivalence classes: one class per distinct byte occurring in
// any pattern plus class 0 for everything else. For an amino-acid alphabet that keeps each
// row at roughly 27 int32s instead of 256.
type DenseAutomaton struct {
	// classes maps an input byte to its column in the transition table.
	classes [256]uint16

	// stride is the number of columns per state.
	stride int

	// table holds stride entries per state; table[s*stride+c] is the next state.
	table []int32

	// output is shared with the source automaton.
	output [][]int32

	patterns []string
	ids      [][]string
}

// Dense compiles the automaton into a DenseAutomaton.
// The result is independent of ac's lifetime but shares its read-only pattern data.
func (ac *Automaton) Dense() *DenseAutomaton {
	d := &DenseAutomaton{
		patterns: ac.patterns,
		ids:      ac.ids,
		output:   make([][]int32, len(ac.states)),
	}

	var seen [256]bool
	for _, s := range ac.states {
		for char := range s.transitions {
			seen[char] = true
		}
	}
	d.stride = 1
	for c := 0; c < 256; c++ {
		if seen[c] {
			d.classes[c] = uint16(d.stride) // #nosec G115
			d.stride++
		}
	}

	d.table = make([]int32, len(ac.states)*d.stride)
	for i, s := range ac.states {
		d.output[i] = s.output
	}

	// Root row: missing transitions loop back to root (zero value).
	for char, next := range ac.states[0].transitions {
		d.table[int(d.classes[char])] = next
	}

	// BFS order guarantees the failure state's row is complete before it is copied.
	for _, s := range ac.order {
		row := int(s) * d.stride
		failRow := int(ac.states[s].failure) * d.stride
		copy(d.table[row:row+d.stride], d.table[failRow:failRow+d.stride])
		for char, next := range ac.states[s].transitions {
			d.table[row+int(d.classes[char])] = next
		}
	}

	return d
}

// Scan returns a lazy sequence of every match in text.
// The sequence is identical to the one produced by the source Automaton.
func (d *DenseAutomaton) Scan(text []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		if d == nil || len(d.patterns) == 0 {
			return
		}

		currentState := int32(0)
		for i, b := range text {
			currentState = d.table[int(currentState)*d.stride+int(d.classes[b])]
			for _, patternIdx := range d.output[currentState] {
				m := Match{
					End:          i,
					Length:       len(d.patterns[patternIdx]),
					PatternIndex: int(patternIdx),
					Pattern:      d.patterns[patternIdx],
					IDs:          d.ids[patternIdx],
				}
				if !yield(m) {
					return
				}
			}
		}
	}
}

// FindAll collects every match in text.
func (d *DenseAutomaton) FindAll(text []byte) []Match {
	return collect(d.Scan(text))
}

// PatternCount returns the number of unique patterns in the automaton.
func (d *DenseAutomaton) PatternCount() int {
	return len(d.patterns)
}

// StateCount returns the number of states, root included.
func (d *DenseAutomaton) StateCount() int {
	return len(d.output)
}
