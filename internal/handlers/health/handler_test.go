package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/internal/handlers/health"

	"github.com/stretchr/testify/assert"
)

func TestHandler_Check(t *testing.T) {
	tests := []struct {
		name     string
		probes   map[string]health.Probe
		wantCode int
	}{
		{
			name: "all dependencies up",
			probes: map[string]health.Probe{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			wantCode: http.StatusOK,
		},
		{
			name: "redis down",
			probes: map[string]health.Probe{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.NewWithProbes(tt.probes)
			rec := httptest.NewRecorder()

			handler.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
