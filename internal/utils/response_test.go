package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"translation-backend/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFromErr(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
		fields  map[string]string
	}{
		{"validation", errs.Invalid("format", "oneof"), 422, "Validation failed", map[string]string{"format": "oneof"}},
		{"not found", fmt.Errorf("export 3: %w", errs.ErrNotFound), 404, "export 3: resource not found", nil},
		{"forbidden", errs.ErrForbidden, 403, errs.ErrForbidden.Error(), nil},
		{"unknown", errors.New("pq: connection reset"), 500, "Internal server error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return ErrorFromErr(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body StandardResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.fields, body.Errors)
		})
	}
}
