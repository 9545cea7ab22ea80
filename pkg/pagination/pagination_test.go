// Copyright (c) 2026 Plume. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/pkg/pagination"
)

/*
TestFromRequest verifies query parsing, defaults, and strict rejection of
invalid values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults_when_absent", "", 1, 10, false},
		{"explicit_values", "?page=3&limit=25", 3, 25, false},
		{"page_only", "?page=2", 2, 10, false},
		{"non_numeric_page", "?page=abc", 0, 0, true},
		{"zero_page", "?page=0", 0, 0, true},
		{"negative_limit", "?limit=-5", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/posts"+tt.query, nil)

			params, err := pagination.FromRequest(request)

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeInvalidQueryParam, ae.Code)
				assert.Equal(t, "Page and limit must be positive integers", ae.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())
}

/*
TestNewMeta verifies the page-count math and navigation flags.
*/
func TestNewMeta(t *testing.T) {
	t.Run("middle_page", func(t *testing.T) {
		meta := pagination.NewMeta(2, 10, 25)

		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("last_partial_page", func(t *testing.T) {
		meta := pagination.NewMeta(3, 10, 25)

		assert.Equal(t, 25, meta.TotalItems)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("empty_result", func(t *testing.T) {
		meta := pagination.NewMeta(1, 10, 0)

		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})
}
