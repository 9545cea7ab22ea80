// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plumeblog/plume/internal/blog/category"
	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for posts.
type Service struct {
	repository Repository
	categories category.Repository
	cache      Cache
	logger     *slog.Logger
}

// NewService constructs a new post [Service]. cache may be nil, which
// disables read-through caching entirely.
func NewService(repository Repository, categories category.Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// errPostNotFound is the uniform 404 for this module.
func errPostNotFound() error {
	return apperr.NotFound("Post ID does not exist")
}

// resolveCategory maps a missing category onto its dedicated 404.
func (service *Service) resolveCategory(context context.Context, id int64) error {
	if _, err := service.categories.FindByID(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Category ID does not exist")
		}
		return err
	}
	return nil
}

// # Read Operations

/*
List returns one page of posts, newest first. Public operation.

Returns:
  - []Post: The page
  - pagination.Meta: Derived page metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Post, pagination.Meta, error) {
	posts, total, err := service.repository.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_failed: %w", err)
	}

	return posts, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

/*
Get retrieves one post, consulting the read-through cache first.

Description: A cache miss falls through to Postgres and repopulates the
entry. Cache failures are logged and treated as misses; the database stays
authoritative.

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound
*/
func (service *Service) Get(context context.Context, id int64) (*Post, error) {

	// 1. Cache lookup
	if service.cache != nil {
		cached, err := service.cache.Get(context, id)
		if err != nil {
			service.logger.Warn("post_cache_get_failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	// 2. Authoritative read
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errPostNotFound()
		}
		return nil, err
	}

	// 3. Repopulate; the entry lives until its TTL expires
	if service.cache != nil {
		if err := service.cache.Set(context, post); err != nil {
			service.logger.Warn("post_cache_set_failed", slog.Any("error", err))
		}
	}

	return post, nil
}

/*
ListByCategory returns every post whose category name contains the fragment.

Description: The filter is mandatory and an empty result set reports 404,
not an empty list.

Returns:
  - []Post: Matching posts
  - error: apperr.MissingQueryParam, apperr.NotFound
*/
func (service *Service) ListByCategory(context context.Context, fragment string) ([]Post, error) {
	if fragment == "" {
		return nil, apperr.MissingQueryParam("Category query parameter is required")
	}

	posts, err := service.repository.ListByCategoryName(context, fragment)
	if err != nil {
		return nil, fmt.Errorf("post_service_list_by_category_failed: %w", err)
	}

	if len(posts) == 0 {
		return nil, apperr.NotFound("No posts found for this category")
	}

	return posts, nil
}

/*
Search returns one page of posts matching all set criteria. Public operation.

Returns:
  - []Post: The page, in store order
  - pagination.Meta: Derived page metadata
  - error: Retrieval failures
*/
func (service *Service) Search(context context.Context, filter SearchFilter, params pagination.Params) ([]Post, pagination.Meta, error) {
	posts, total, err := service.repository.Search(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_search_failed: %w", err)
	}

	return posts, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

// # Write Operations

// CreateInput carries the validated fields for a new post.
type CreateInput struct {
	Title      string
	Content    string
	CategoryID int64
}

/*
Create publishes a new post authored by the actor.

Description: The category is resolved before the insert so an unknown
category id reports 404 rather than a constraint error.

Returns:
  - *Post: The created entity
  - error: apperr.NotFound (category) or storage failures
*/
func (service *Service) Create(context context.Context, actor authz.Identity, input CreateInput) (*Post, error) {

	// 1. Resolve the referenced category
	if err := service.resolveCategory(context, input.CategoryID); err != nil {
		return nil, err
	}

	// 2. Insert
	post := &Post{
		Title:      input.Title,
		Content:    input.Content,
		UserID:     actor.UserID,
		CategoryID: input.CategoryID,
	}
	if err := service.repository.Create(context, post); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	service.logger.Info("post_created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", actor.UserID),
	)

	return post, nil
}

// UpdateInput carries the optional replacement fields for a post. Nil
// pointers leave the field untouched.
type UpdateInput struct {
	Title      *string
	Content    *string
	CategoryID *int64
}

/*
Update applies a partial edit to a post. Author-only, no admin override.

Description: Stage order is resolve then authorize then re-resolve any new
category then mutate. UserID and CreatedAt are immutable.

Returns:
  - *Post: The updated entity
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Update(context context.Context, actor authz.Identity, id int64, input UpdateInput) (*Post, error) {

	// 1. Resolve the target
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errPostNotFound()
		}
		return nil, err
	}

	// 2. Authorize
	if err := authz.CanUpdatePost(actor, post.UserID); err != nil {
		return nil, err
	}

	// 3. A new category must exist before it is referenced
	if input.CategoryID != nil {
		if err := service.resolveCategory(context, *input.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	// 4. Mutate
	if err := service.repository.Update(context, post); err != nil {
		return nil, fmt.Errorf("post_service_update_failed: %w", err)
	}

	service.logger.Info("post_updated", slog.Int64("post_id", id))

	return post, nil
}

/*
Delete removes a post together with its comments and favorites. Author or
admin.

Returns:
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Delete(context context.Context, actor authz.Identity, id int64) error {

	// 1. Resolve the target
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return errPostNotFound()
		}
		return err
	}

	// 2. Authorize
	if err := authz.CanDeletePost(actor, post.UserID); err != nil {
		return err
	}

	// 3. Mutate; dependents go in the same transaction
	if err := service.repository.DeleteCascade(context, id); err != nil {
		return fmt.Errorf("post_service_delete_failed: %w", err)
	}

	service.logger.Info("post_deleted",
		slog.Int64("post_id", id),
		slog.Int64("actor_id", actor.UserID),
	)

	return nil
}
