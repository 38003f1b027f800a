// Package sequence normalizes raw peptide and protein sequences before matching.
// The matching engine treats every byte it is given as a symbol, so all
// alphabet and length decisions are made here.
package sequence

import (
	"fmt"
	"strings"
)

// Standard is the set of the 20 standard amino-acid letters.
const Standard = "ACDEFGHIKLMNPQRSTVWY"

// Ambiguous holds ambiguous or rare letters found in some databases:
// X (any), U (selenocysteine), O (pyrrolysine), B (D/N), J (I/L), Z (E/Q).
const Ambiguous = "XUOBJZ"

// Alphabet is a set of allowed residue bytes.
type Alphabet [256]bool

// NewAlphabet creates an alphabet from the given residue letters.
func NewAlphabet(letters ...string) *Alphabet {
	var a Alphabet
	for _, set := range letters {
		for i := 0; i < len(set); i++ {
			a[set[i]] = true
		}
	}
	return &a
}

// Contains reports whether b is in the alphabet.
func (a *Alphabet) Contains(b byte) bool {
	return a[b]
}

var (
	standardAlphabet = NewAlphabet(Standard)
	extendedAlphabet = NewAlphabet(Standard, Ambiguous)
)

// PeptideAlphabet returns the alphabet used for cleaning peptides.
func PeptideAlphabet(keepAmbiguous bool) *Alphabet {
	if keepAmbiguous {
		return extendedAlphabet
	}
	return standardAlphabet
}

// Clean upper-cases s and drops every byte outside alphabet.
// Whitespace, digits, gaps and stop symbols are removed along the way.
func Clean(s string, alphabet *Alphabet) string {
	s = strings.TrimSpace(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if alphabet.Contains(c) {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// CleanPeptide normalizes an epitope sequence.
func CleanPeptide(s string, keepAmbiguous bool) string {
	return Clean(s, PeptideAlphabet(keepAmbiguous))
}

// CleanProtein normalizes a protein sequence. Proteins are only upper-cased:
// unexpected symbols are kept and simply never match.
func CleanProtein(s string) string {
	return strings.ToUpper(s)
}

// LengthRange is an inclusive length filter. A zero bound means no bound on that side.
type LengthRange struct {
	Min int
	Max int
}

// Contains reports whether n lies within the range.
func (r LengthRange) Contains(n int) bool {
	if r.Min > 0 && n < r.Min {
		return false
	}
	if r.Max > 0 && n > r.Max {
		return false
	}
	return true
}

// IsUnbounded reports whether the range filters nothing.
func (r LengthRange) IsUnbounded() bool {
	return r.Min <= 0 && r.Max <= 0
}

// String renders the range for logs.
func (r LengthRange) String() string {
	bound := func(v int) string {
		if v <= 0 {
			return "*"
		}
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("[%s,%s]", bound(r.Min), bound(r.Max))
}

// ValidationError represents an invalid normalization setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that the bounds are non-negative and ordered.
func (r LengthRange) Validate() error {
	if r.Min < 0 {
		return &ValidationError{Field: "min-len", Message: "must be >= 0"}
	}
	if r.Max < 0 {
		return &ValidationError{Field: "max-len", Message: "must be >= 0"}
	}
	if r.Max > 0 && r.Min > r.Max {
		return &ValidationError{Field: "min-len", Message: fmt.Sprintf("%d exceeds max-len %d", r.Min, r.Max)}
	}
	return nil
}
