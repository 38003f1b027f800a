package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPeptide(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		keepAmbiguous bool
		want          string
	}{
		{"already clean", "SIINFEKL", true, "SIINFEKL"},
		{"lowercase", "siinfekl", true, "SIINFEKL"},
		{"surrounding whitespace", "  SIINFEKL\n", true, "SIINFEKL"},
		{"inner whitespace and digits", "SII NFE 12KL", true, "SIINFEKL"},
		{"gaps and stops", "SII-NF*EKL.", true, "SIINFEKL"},
		{"ambiguous kept", "AXUOBJZ", true, "AXUOBJZ"},
		{"ambiguous dropped", "AXUOBJZ", false, "A"},
		{"nothing left", "1234 --", true, ""},
		{"empty", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPeptide(tt.input, tt.keepAmbiguous))
		})
	}
}

func TestCleanProtein(t *testing.T) {
	assert.Equal(t, "MKV*X-Q", CleanProtein("mkv*x-q"))
}

func TestAlphabet(t *testing.T) {
	a := NewAlphabet("AC", "G")
	assert.True(t, a.Contains('A'))
	assert.True(t, a.Contains('G'))
	assert.False(t, a.Contains('T'))
	assert.False(t, a.Contains('a'))
}

func TestLengthRange_Contains(t *testing.T) {
	tests := []struct {
		name string
		r    LengthRange
		n    int
		want bool
	}{
		{"zero bounds accept short", LengthRange{}, 1, true},
		{"zero bounds accept long", LengthRange{}, 10000, true},
		{"below min", LengthRange{Min: 8}, 7, false},
		{"at min", LengthRange{Min: 8}, 8, true},
		{"min only has no upper bound", LengthRange{Min: 8}, 500, true},
		{"at max", LengthRange{Max: 11}, 11, true},
		{"above max", LengthRange{Max: 11}, 12, false},
		{"max only has no lower bound", LengthRange{Max: 11}, 1, true},
		{"inside both", LengthRange{Min: 8, Max: 11}, 9, true},
		{"outside both", LengthRange{Min: 8, Max: 11}, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.n))
		})
	}
}

func TestLengthRange_Validate(t *testing.T) {
	assert.NoError(t, LengthRange{}.Validate())
	assert.NoError(t, LengthRange{Min: 8, Max: 8}.Validate())
	assert.NoError(t, LengthRange{Min: 20}.Validate())

	var verr *ValidationError
	err := LengthRange{Min: 12, Max: 8}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "min-len", verr.Field)

	err = LengthRange{Max: -1}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "max-len", verr.Field)
}

func TestLengthRange_String(t *testing.T) {
	assert.Equal(t, "[*,*]", LengthRange{}.String())
	assert.Equal(t, "[8,*]", LengthRange{Min: 8}.String())
	assert.Equal(t, "[8,11]", LengthRange{Min: 8, Max: 11}.String())
	assert.True(t, LengthRange{}.IsUnbounded())
	assert.False(t, LengthRange{Max: 3}.IsUnbounded())
}
