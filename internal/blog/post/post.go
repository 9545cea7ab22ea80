// Copyright (c) 2026 Plume. All rights reserved.

/*
Package post handles authored articles, their listing, search and lifecycle.

# Architecture

  - Entities: Post.
  - Domain: Owns the posts table. Deleting a post drags its comments and
    favorites with it in one transaction.
  - Caching: Single-post reads go through a short-TTL Redis cache that is
    never invalidated on writes; staleness is bounded by the TTL.
*/
package post

import (
	"context"
	"time"

	"github.com/plumeblog/plume/pkg/pagination"
)

// # Domain Entities

// Post represents a published article. UserID and CreatedAt are set at
// creation and never change afterwards.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     int64     `json:"user_id"`
	CategoryID int64     `json:"category_id"`
}

// SearchFilter carries the conjunctive search criteria. Zero values mean
// the criterion is absent.
type SearchFilter struct {
	Title    string // case-insensitive substring on title
	Content  string // case-insensitive substring on content
	Category string // case-insensitive substring on the category name
	UserID   int64  // exact author match when > 0
}

// Empty reports whether no criterion is set.
func (f SearchFilter) Empty() bool {
	return f.Title == "" && f.Content == "" && f.Category == "" && f.UserID == 0
}

// # Repository Contracts

// Repository defines the persistence contract for posts.
type Repository interface {
	/*
		List returns one page of posts ordered by creation time descending,
		together with the unpaginated total.
	*/
	List(context context.Context, params pagination.Params) ([]Post, int64, error)

	/*
		FindByID retrieves one post.

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*Post, error)

	/*
		ListByCategoryName returns every post whose category name contains
		the given fragment, case-insensitively. Not paginated.
	*/
	ListByCategoryName(context context.Context, fragment string) ([]Post, error)

	/*
		Search returns one page of posts matching all set criteria, together
		with the unpaginated total. Result order is whatever the store
		produces.
	*/
	Search(context context.Context, filter SearchFilter, params pagination.Params) ([]Post, int64, error)

	/*
		Create inserts a new post and hydrates ID and CreatedAt.
	*/
	Create(context context.Context, post *Post) error

	/*
		Update persists title, content and category of an existing post.
	*/
	Update(context context.Context, post *Post) error

	/*
		DeleteCascade removes the post with its comments and favorites in a
		single transaction.
	*/
	DeleteCascade(context context.Context, id int64) error
}

// Cache is the read-through store for single posts.
type Cache interface {
	/*
		Get returns the cached post, or (nil, nil) on a miss.
	*/
	Get(context context.Context, id int64) (*Post, error)

	/*
		Set stores a post under its id with the configured TTL.
	*/
	Set(context context.Context, post *Post) error
}
