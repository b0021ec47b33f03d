package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError(CodeInvalidMargins, "Margins cannot be negative")

	assert.Equal(t, "INVALID_MARGINS", err.Code)
	assert.Equal(t, "Margins cannot be negative", err.Error())

	var target *DomainError
	wrapped := fmt.Errorf("render config: %w", err)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, CodeInvalidMargins, target.Code)
}

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same code different message", NotFoundf("Catalog %q not found", "colors"), ErrNotFound, true},
		{"wrapped", fmt.Errorf("lookup: %w", NotFoundf("gone")), ErrNotFound, true},
		{"different code", ErrInvalidInput, ErrNotFound, false},
		{"plain error", errors.New("NOT_FOUND"), ErrNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("Catalog %q not found", "colors")
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, `Catalog "colors" not found`, err.Message)
}
