package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	cause := stderrors.New("underlying fault")

	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewPersistenceError("write failed", cause),
			want: "[STORAGE] write failed: underlying fault",
		},
		{
			name: "without cause",
			err:  NewValidationError("bad filter"),
			want: "[VALIDATION] bad filter",
		},
		{
			name: "not found",
			err:  NewNotFoundError("project file"),
			want: "[NOT_FOUND] project file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewSourceError("Vendor A", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeSource, appErr.Type)
}

func TestIsType(t *testing.T) {
	err := NewConfigError("missing filters", nil)

	assert.True(t, IsType(err, ErrTypeConfig))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeConfig))

	// Detection works through further wrapping.
	wrapped := fmt.Errorf("loading project: %w", err)
	assert.True(t, IsType(wrapped, ErrTypeConfig))
}

func TestSourceName(t *testing.T) {
	err := NewSourceError("Vendor B", stderrors.New("bad zip"))
	assert.Equal(t, "Vendor B", SourceName(err))

	wrapped := fmt.Errorf("run: %w", err)
	assert.Equal(t, "Vendor B", SourceName(wrapped))

	assert.Empty(t, SourceName(NewValidationError("no source attached")))
	assert.Empty(t, SourceName(stderrors.New("plain")))
}

func TestWithContext(t *testing.T) {
	err := NewValidationError("bad value").WithContext("field", "vendor")
	assert.Equal(t, "vendor", err.Context["field"])
}
