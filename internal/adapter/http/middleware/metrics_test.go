package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/task/42/wip", "/api/v1/task/{id}/wip"},
		{"/api/v1/client/abc-123/profitability", "/api/v1/client/{id}/profitability"},
		{"/api/v1/firm/main/aging", "/api/v1/firm/{id}/aging"},
		{"/api/v1/cache/invalidate", "/api/v1/cache/invalidate"},
		{"/api/v1/cache/health", "/api/v1/cache/health"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
