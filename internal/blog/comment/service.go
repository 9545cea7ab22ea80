// Copyright (c) 2026 Plume. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plumeblog/plume/internal/blog/post"
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
)

// # Service Layer

// Service orchestrates business logic for comments.
type Service struct {
	repository Repository
	posts      post.Repository
	logger     *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repository Repository, posts post.Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, posts: posts, logger: logger}
}

// errCommentNotFound is the uniform 404 for this module.
func errCommentNotFound() error {
	return apperr.NotFound("Comment ID does not exist")
}

// resolvePost maps a missing post onto its dedicated 404.
func (service *Service) resolvePost(context context.Context, postID int64) error {
	if _, err := service.posts.FindByID(context, postID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Post ID does not exist")
		}
		return err
	}
	return nil
}

// # Read Operations

/*
ListMine returns every comment authored by the acting user.
*/
func (service *Service) ListMine(context context.Context, userID int64) ([]Comment, error) {
	comments, err := service.repository.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_mine_failed: %w", err)
	}
	return comments, nil
}

/*
ListByPost returns every comment on the given post. Public operation.

Description: The post is resolved first, so an unknown post reports 404
rather than an empty list.

Returns:
  - []Comment: All comments on the post, possibly empty
  - error: apperr.NotFound (post)
*/
func (service *Service) ListByPost(context context.Context, postID int64) ([]Comment, error) {
	if err := service.resolvePost(context, postID); err != nil {
		return nil, err
	}

	comments, err := service.repository.ListByPost(context, postID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_by_post_failed: %w", err)
	}
	return comments, nil
}

// # Write Operations

/*
Create attaches a new comment to a post, authored by the actor.

Returns:
  - *Comment: The created entity
  - error: apperr.NotFound (post) or storage failures
*/
func (service *Service) Create(context context.Context, actor authz.Identity, postID int64, content string) (*Comment, error) {

	// 1. Resolve the referenced post
	if err := service.resolvePost(context, postID); err != nil {
		return nil, err
	}

	// 2. Insert
	comment := &Comment{
		Content: content,
		UserID:  actor.UserID,
		PostID:  postID,
	}
	if err := service.repository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", postID),
	)

	return comment, nil
}

/*
Update rewrites the content of a comment. Author-only, no admin override.

Returns:
  - *Comment: The updated entity
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Update(context context.Context, actor authz.Identity, id int64, content string) (*Comment, error) {

	// 1. Resolve the target
	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errCommentNotFound()
		}
		return nil, err
	}

	// 2. Authorize
	if err := authz.CanUpdateComment(actor, comment.UserID); err != nil {
		return nil, err
	}

	// 3. Mutate
	comment.Content = content
	if err := service.repository.Update(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", id))

	return comment, nil
}

/*
Delete removes a comment. Author or admin.

Returns:
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Delete(context context.Context, actor authz.Identity, id int64) error {

	// 1. Resolve the target
	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return errCommentNotFound()
		}
		return err
	}

	// 2. Authorize
	if err := authz.CanDeleteComment(actor, comment.UserID); err != nil {
		return err
	}

	// 3. Mutate
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	service.logger.Info("comment_deleted",
		slog.Int64("comment_id", id),
		slog.Int64("actor_id", actor.UserID),
	)

	return nil
}
