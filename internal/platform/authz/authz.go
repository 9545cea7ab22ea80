// Copyright (c) 2026 Plume. All rights reserved.

/*
Package authz centralizes resource authorization decisions.

Every rule is a pure function over the acting identity and the owner of the
targeted resource. Services call these after the target row has been
resolved, so a denied actor learns that the resource exists but not more.

# Decision Table

	Action            | Owner | Admin (non-owner) | Other
	------------------+-------+-------------------+------
	Update post       |  yes  |        no         |  no
	Delete post       |  yes  |        yes        |  no
	Update comment    |  yes  |        no         |  no
	Delete comment    |  yes  |        yes        |  no
	Remove favorite   |  yes  |        no         |  no

Updates stay owner-only even for admins. Moderation means removing
content, not editing someone else's words.
*/
package authz

import (
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/sec"
)

// Identity is the acting principal for an authorization decision.
type Identity struct {
	UserID int64
	Role   sec.Role
}

// IdentityFromClaims builds an Identity from verified token claims.
func IdentityFromClaims(claims *sec.Claims) Identity {
	return Identity{UserID: claims.UserID, Role: claims.Role}
}

// errForbidden is the uniform denial for all rules below.
var errForbidden = apperr.Forbidden("You are not allowed to perform this action")

// CanManageCategories allows category create, update and delete for admins only.
func CanManageCategories(actor Identity) error {
	if !actor.Role.IsAdmin() {
		return errForbidden
	}
	return nil
}

// CanUpdatePost allows post edits for the author only. Admins do not get
// edit rights over other users' posts.
func CanUpdatePost(actor Identity, ownerID int64) error {
	if actor.UserID != ownerID {
		return errForbidden
	}
	return nil
}

// CanDeletePost allows post removal for the author or an admin.
func CanDeletePost(actor Identity, ownerID int64) error {
	if actor.UserID == ownerID || actor.Role.IsAdmin() {
		return nil
	}
	return errForbidden
}

// CanUpdateComment allows comment edits for the author only.
func CanUpdateComment(actor Identity, ownerID int64) error {
	if actor.UserID != ownerID {
		return errForbidden
	}
	return nil
}

// CanDeleteComment allows comment removal for the author or an admin.
func CanDeleteComment(actor Identity, ownerID int64) error {
	if actor.UserID == ownerID || actor.Role.IsAdmin() {
		return nil
	}
	return errForbidden
}

// CanRemoveFavorite allows unfavoriting only for the user who owns the
// favorite. Admins cannot curate other users' reading lists.
func CanRemoveFavorite(actor Identity, ownerID int64) error {
	if actor.UserID != ownerID {
		return errForbidden
	}
	return nil
}

// CanListPostFavorites allows listing which users favorited a post.
// Aggregated user activity is admin-only.
func CanListPostFavorites(actor Identity) error {
	if !actor.Role.IsAdmin() {
		return errForbidden
	}
	return nil
}

// CanPromote allows granting the admin role for admins only.
func CanPromote(actor Identity) error {
	if !actor.Role.IsAdmin() {
		return errForbidden
	}
	return nil
}
