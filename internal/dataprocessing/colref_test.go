package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stocktally/internal/errors"
)

func TestColumnNameToIndex(t *testing.T) {
	tests := []struct {
		name    string
		letter  string
		want    int
		wantErr bool
	}{
		{name: "first column", letter: "A", want: 1},
		{name: "last single letter", letter: "Z", want: 26},
		{name: "first double letter", letter: "AA", want: 27},
		{name: "lowercase accepted", letter: "ab", want: 28},
		{name: "triple letter", letter: "ZZZ", want: 18278},
		{name: "surrounding whitespace trimmed", letter: " C ", want: 3},
		{name: "empty", letter: "", wantErr: true},
		{name: "whitespace only", letter: "   ", wantErr: true},
		{name: "digit", letter: "A1", wantErr: true},
		{name: "punctuation", letter: "A-B", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColumnNameToIndex(tt.letter)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidAddress))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnIndexToName(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    string
		wantErr bool
	}{
		{name: "first column", index: 1, want: "A"},
		{name: "last single letter", index: 26, want: "Z"},
		{name: "first double letter", index: 27, want: "AA"},
		{name: "boundary 702", index: 702, want: "ZZ"},
		{name: "boundary 703", index: 703, want: "AAA"},
		{name: "zero rejected", index: 0, wantErr: true},
		{name: "negative rejected", index: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColumnIndexToName(tt.index)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidAddress))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The two conversions must be mutual inverses across the whole range the
// project config accepts.
func TestColumnRefRoundTrip(t *testing.T) {
	for index := 1; index <= 18278; index++ {
		name, err := ColumnIndexToName(index)
		require.NoError(t, err)

		back, err := ColumnNameToIndex(name)
		require.NoError(t, err)
		require.Equal(t, index, back, "round trip failed for %q", name)
	}
}
