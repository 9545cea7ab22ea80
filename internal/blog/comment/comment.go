// Copyright (c) 2026 Plume. All rights reserved.

/*
Package comment handles reader commentary attached to posts.

# Architecture

  - Entities: Comment.
  - Domain: Owns the comments table. A comment always references an
    existing post; the post is resolved before any write.
  - Security: Edits are author-only, removal is author-or-admin.
*/
package comment

import (
	"context"
	"time"
)

// MaxContentLen bounds comment content, mirroring the column limit.
const MaxContentLen = 300

// # Domain Entities

// Comment represents one remark on a post.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
}

// # Repository Contracts

// Repository defines the persistence contract for comments.
type Repository interface {
	/*
		ListByUser returns all comments authored by the given user.
	*/
	ListByUser(context context.Context, userID int64) ([]Comment, error)

	/*
		ListByPost returns all comments attached to the given post.
	*/
	ListByPost(context context.Context, postID int64) ([]Comment, error)

	/*
		FindByID retrieves one comment.

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*Comment, error)

	/*
		Create inserts a new comment and hydrates ID and CreatedAt.
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update persists the content of an existing comment.
	*/
	Update(context context.Context, comment *Comment) error

	/*
		Delete removes a comment row.
	*/
	Delete(context context.Context, id int64) error
}
