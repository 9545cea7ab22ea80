// Copyright (c) 2026 Plume. All rights reserved.

package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
)

// # Service Layer

// Service orchestrates business logic for the category taxonomy.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// errCategoryNotFound is the uniform 404 for this module.
func errCategoryNotFound() error {
	return apperr.NotFound("Category ID does not exist")
}

// # Read Operations

/*
List returns every category. Public operation.
*/
func (service *Service) List(context context.Context) ([]Category, error) {
	categories, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("category_service_list_failed: %w", err)
	}
	return categories, nil
}

/*
Get retrieves one category by id. Public operation.

Returns:
  - *Category: Hydrated entity
  - error: apperr.NotFound
*/
func (service *Service) Get(context context.Context, id int64) (*Category, error) {
	category, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errCategoryNotFound()
		}
		return nil, err
	}
	return category, nil
}

// # Write Operations

/*
Create adds a new category. Admin-only.

Parameters:
  - context: context.Context
  - actor: authz.Identity
  - name: string (already validated)

Returns:
  - *Category: The created entity
  - error: apperr.Forbidden, apperr.Duplicate
*/
func (service *Service) Create(context context.Context, actor authz.Identity, name string) (*Category, error) {

	// 1. Authorize; create has no target to resolve first
	if err := authz.CanManageCategories(actor); err != nil {
		return nil, err
	}

	// 2. Insert; a duplicate name surfaces as a 409
	category := &Category{Name: name, Posts: []int64{}}
	if err := service.repository.Create(context, category); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Duplicate("Category already exists")
		}
		return nil, err
	}

	service.logger.Info("category_created",
		slog.Int64("category_id", category.ID),
		slog.Int64("actor_id", actor.UserID),
	)

	return category, nil
}

/*
Update renames a category. Admin-only.

Description: Stage order is resolve then authorize, so a missing id reports
404 even to a non-admin actor.

Returns:
  - *Category: The renamed entity
  - error: apperr.NotFound, apperr.Forbidden, apperr.Duplicate
*/
func (service *Service) Update(context context.Context, actor authz.Identity, id int64, name string) (*Category, error) {

	// 1. Resolve the target
	category, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errCategoryNotFound()
		}
		return nil, err
	}

	// 2. Authorize
	if err := authz.CanManageCategories(actor); err != nil {
		return nil, err
	}

	// 3. Mutate
	category.Name = name
	if err := service.repository.Update(context, category); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Duplicate("Category name already exists")
		}
		return nil, err
	}

	service.logger.Info("category_updated",
		slog.Int64("category_id", id),
		slog.Int64("actor_id", actor.UserID),
	)

	return category, nil
}

/*
Delete removes a category. Admin-only, refused while posts reference it.

Returns:
  - error: apperr.NotFound, apperr.Forbidden, apperr.StateConflict
*/
func (service *Service) Delete(context context.Context, actor authz.Identity, id int64) error {

	// 1. Resolve the target
	if _, err := service.repository.FindByID(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return errCategoryNotFound()
		}
		return err
	}

	// 2. Authorize
	if err := authz.CanManageCategories(actor); err != nil {
		return err
	}

	// 3. Referencing posts block the deletion
	count, err := service.repository.CountPosts(context, id)
	if err != nil {
		return fmt.Errorf("category_service_count_failed: %w", err)
	}
	if count > 0 {
		return apperr.StateConflict("Cannot delete category with existing posts")
	}

	// 4. Mutate
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("category_service_delete_failed: %w", err)
	}

	service.logger.Info("category_deleted",
		slog.Int64("category_id", id),
		slog.Int64("actor_id", actor.UserID),
	)

	return nil
}
