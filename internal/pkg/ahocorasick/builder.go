package ahocorasick

import "errors"

// ErrAutomatonFinalized is returned when a Builder is used after Build.
var ErrAutomatonFinalized = errors.New("ahocorasick: automaton already built")

// Builder constructs Aho-Corasick automata from patterns.
// Patterns are inserted into the trie as they are added; Build computes the
// failure links and seals the automaton.
type Builder struct {
	ac        *Automaton
	index     map[string]int
	finalized bool
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		ac:    &Automaton{states: []state{newState(0)}},
		index: make(map[string]int),
	}
}

// Add inserts pattern with its identifiers. Adding the same pattern again
// appends the identifiers to the existing output. Empty patterns are skipped.
func (b *Builder) Add(pattern string, ids ...string) error {
	if b.finalized {
		return ErrAutomatonFinalized
	}
	if pattern == "" {
		return nil
	}

	if patternIdx, exists := b.index[pattern]; exists {
		b.ac.ids[patternIdx] = append(b.ac.ids[patternIdx], ids...)
		return nil
	}

	patternIdx := len(b.ac.patterns)
	b.index[pattern] = patternIdx
	b.ac.patterns = append(b.ac.patterns, pattern)
	b.ac.ids = append(b.ac.ids, append([]string(nil), ids...))

	b.insert(pattern, int32(patternIdx)) // #nosec G115
	return nil
}

// AddEntries adds every entry of a finalized Store.
func (b *Builder) AddEntries(entries []Entry) error {
	for _, e := range entries {
		if err := b.Add(e.Pattern, e.IDs...); err != nil {
			return err
		}
	}
	return nil
}

// insert walks the trie for pattern, creating states as needed, and marks the
// terminal state as an output of patternIdx.
func (b *Builder) insert(pattern string, patternIdx int32) {
	ac := b.ac
	currentState := int32(0)

	for i := 0; i < len(pattern); i++ {
		char := pattern[i]
		if nextState, exists := ac.states[currentState].transitions[char]; exists {
			currentState = nextState
			continue
		}

		newStateIdx := int32(len(ac.states)) // #nosec G115
		ac.states = append(ac.states, newState(ac.states[currentState].depth+1))
		ac.states[currentState].transitions[char] = newStateIdx
		currentState = newStateIdx
	}

	ac.states[currentState].output = append(ac.states[currentState].output, patternIdx)
}

// Build computes failure links and returns the finished automaton.
// The Builder cannot be used afterwards.
//
// Time complexity: O(m) where m is the total length of all patterns.
// Space complexity: O(m) for the automaton states.
func (b *Builder) Build() (*Automaton, error) {
	if b.finalized {
		return nil, ErrAutomatonFinalized
	}
	b.finalized = true

	b.computeFailureLinks()

	ac := b.ac
	b.ac = nil
	b.index = nil
	return ac, nil
}

// computeFailureLinks uses BFS to compute failure links for all states.
// The failure link for a state S points to the longest proper suffix of the
// path to S that is also a prefix of some pattern.
//
// Outputs are merged along the way: a state's output becomes its own pattern
// followed by the output of its failure state, which BFS has already finished
// because failure states are always shallower.
func (b *Builder) computeFailureLinks() {
	ac := b.ac
	queue := make([]int32, 0, len(ac.states))

	// States at depth 1 fail to root.
	for _, nextState := range ac.states[0].transitions {
		ac.states[nextState].failure = 0
		queue = append(queue, nextState)
	}

	for head := 0; head < len(queue); head++ {
		currentState := queue[head]

		for char, nextState := range ac.states[currentState].transitions {
			queue = append(queue, nextState)

			failState := ac.states[currentState].failure
			for failState != 0 {
				if _, exists := ac.states[failState].transitions[char]; exists {
					break
				}
				failState = ac.states[failState].failure
			}

			if target, exists := ac.states[failState].transitions[char]; exists && target != nextState {
				ac.states[nextState].failure = target
			} else {
				ac.states[nextState].failure = 0
			}

			inherited := ac.states[ac.states[nextState].failure].output
			if len(inherited) == 0 {
				continue
			}
			own := ac.states[nextState].output
			if len(own) == 0 {
				// Read-only from here on, so the slice can be shared.
				ac.states[nextState].output = inherited
				continue
			}
			merged := make([]int32, 0, len(own)+len(inherited))
			merged = append(merged, own...)
			ac.states[nextState].output = append(merged, inherited...)
		}
	}

	ac.order = queue
}
