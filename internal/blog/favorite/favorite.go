// Copyright (c) 2026 Plume. All rights reserved.

/*
Package favorite handles per-user bookmarks of posts.

# Architecture

  - Entities: Favorite.
  - Domain: Owns the favorites table. The (user, post) pair is unique; a
    user favorites a post at most once.
  - Security: A favorite is visible and removable only by its owner; the
    per-post audience listing is admin-only.
*/
package favorite

import (
	"context"
)

// # Domain Entities

// Favorite links a user to a bookmarked post.
type Favorite struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	PostID int64 `json:"post_id"`
}

// # Repository Contracts

// Repository defines the persistence contract for favorites.
type Repository interface {
	/*
		ListByUser returns all favorites owned by the given user.
	*/
	ListByUser(context context.Context, userID int64) ([]Favorite, error)

	/*
		ListUserIDsByPost returns the ids of every user who favorited the
		given post.
	*/
	ListUserIDsByPost(context context.Context, postID int64) ([]int64, error)

	/*
		FindByID retrieves one favorite.

		Returns:
		  - *Favorite: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*Favorite, error)

	/*
		Create inserts a new favorite and hydrates its id.

		Returns:
		  - error: apperr.Duplicate when the (user, post) pair exists
	*/
	Create(context context.Context, favorite *Favorite) error

	/*
		Delete removes a favorite row.
	*/
	Delete(context context.Context, id int64) error
}
