// Copyright (c) 2026 Plume. All rights reserved.

/*
Package category handles the taxonomy posts are filed under.

# Architecture

  - Entities: Category.
  - Domain: Owns the categories table. A category referenced by any post
    refuses deletion.
  - Security: All mutations are admin-only.
*/
package category

import (
	"context"
)

// # Domain Entities

// Category represents a post classification. Posts carries the ids of every
// post currently filed under it.
type Category struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Posts []int64 `json:"posts"`
}

// # Repository Contracts

// Repository defines the persistence contract for categories.
type Repository interface {
	/*
		List returns all categories with their post id lists.
	*/
	List(context context.Context) ([]Category, error)

	/*
		FindByID retrieves one category with its post id list.

		Returns:
		  - *Category: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*Category, error)

	/*
		Create inserts a new category.

		Returns:
		  - error: apperr.Duplicate when the name is already taken
	*/
	Create(context context.Context, category *Category) error

	/*
		Update renames an existing category.

		Returns:
		  - error: apperr.Duplicate when the new name collides
	*/
	Update(context context.Context, category *Category) error

	/*
		Delete removes a category row.
	*/
	Delete(context context.Context, id int64) error

	/*
		CountPosts reports how many posts reference the category.
	*/
	CountPosts(context context.Context, id int64) (int64, error)
}
