// Copyright (c) 2026 Plume. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plumeblog/plume/internal/platform/middleware"
)

// fakeConfig is a scripted [middleware.AppConfig].
type fakeConfig struct {
	development  bool
	extraOrigins []string
}

func (f *fakeConfig) IsDevelopment() bool { return f.development }

func (f *fakeConfig) AllowedOrigins() []string { return f.extraOrigins }

/*
TestCORS verifies the production allow-list: the first-party domain suffix
plus the configured extra origins, everything else unacknowledged.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *fakeConfig
		origin    string
		isAllowed bool
	}{
		{"dev_allows_any_origin", &fakeConfig{development: true}, "http://localhost:3000", true},
		{"prod_allows_first_party", &fakeConfig{}, "https://www.plume.app", true},
		{"prod_blocks_unknown_origin", &fakeConfig{}, "https://evil.example.com", false},
		{
			"prod_allows_configured_extra_origin",
			&fakeConfig{extraOrigins: []string{"https://staging.plume.dev"}},
			"https://staging.plume.dev",
			true,
		},
		{
			"extra_origin_is_exact_match_only",
			&fakeConfig{extraOrigins: []string{"https://staging.plume.dev"}},
			"https://staging.plume.dev.evil.com",
			false,
		},
	}

	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.cfg)(next)

			request := httptest.NewRequest("GET", "/posts", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			allowOrigin := recorder.Header().Get("Access-Control-Allow-Origin")
			if tt.isAllowed {
				assert.Equal(t, tt.origin, allowOrigin)
			} else {
				assert.Empty(t, allowOrigin)
			}
		})
	}
}
