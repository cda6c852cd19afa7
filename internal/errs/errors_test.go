package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Invalid("format", "oneof"), http.StatusUnprocessableEntity},
		{"unsupported format", fmt.Errorf("xml: %w", ErrUnsupportedFormat), http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("project 7: %w", ErrNotFound), http.StatusNotFound},
		{"not ready", ErrNotReady, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"io", fmt.Errorf("write: %w", ErrIO), http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestStatusCodeSeveralSentinels(t *testing.T) {
	err := fmt.Errorf("export 3: %w: %w", ErrIO, ErrForbidden)

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusForbidden, StatusCode(err))
	}
}

func TestFields(t *testing.T) {
	err := fmt.Errorf("request: %w", Invalid("languages", "empty"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{"languages": "empty"}, Fields(err))
	assert.Nil(t, Fields(ErrNotFound))
}
