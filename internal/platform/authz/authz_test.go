// Copyright (c) 2026 Plume. All rights reserved.

package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/internal/platform/sec"
)

var (
	owner    = authz.Identity{UserID: 1, Role: sec.RoleUser}
	stranger = authz.Identity{UserID: 2, Role: sec.RoleUser}
	admin    = authz.Identity{UserID: 3, Role: sec.RoleAdmin}
)

const ownerID int64 = 1

/*
TestOwnershipRules exercises the full owner/admin/other decision table for
resource-scoped actions.
*/
func TestOwnershipRules(t *testing.T) {
	tests := []struct {
		name         string
		rule         func(authz.Identity, int64) error
		allowedAdmin bool
	}{
		{"update_post", authz.CanUpdatePost, false},
		{"delete_post", authz.CanDeletePost, true},
		{"update_comment", authz.CanUpdateComment, false},
		{"delete_comment", authz.CanDeleteComment, true},
		{"remove_favorite", authz.CanRemoveFavorite, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.rule(owner, ownerID), "owner must be allowed")
			assert.Error(t, tt.rule(stranger, ownerID), "non-owner must be denied")

			adminErr := tt.rule(admin, ownerID)
			if tt.allowedAdmin {
				assert.NoError(t, adminErr, "admin must be allowed")
			} else {
				assert.Error(t, adminErr, "admin must not override ownership")
			}
		})
	}
}

/*
TestAdminOnlyRules covers actions gated purely on the admin role.
*/
func TestAdminOnlyRules(t *testing.T) {
	tests := []struct {
		name string
		rule func(authz.Identity) error
	}{
		{"manage_categories", authz.CanManageCategories},
		{"list_post_favorites", authz.CanListPostFavorites},
		{"promote", authz.CanPromote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.rule(admin))
			assert.Error(t, tt.rule(owner))
		})
	}
}

/*
TestDenialShape verifies denials carry the FORBIDDEN application code so the
HTTP layer maps them to 403.
*/
func TestDenialShape(t *testing.T) {
	err := authz.CanUpdatePost(stranger, ownerID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeForbidden, ae.Code)
	assert.Equal(t, 403, ae.HTTPStatus)
}
