// Copyright (c) 2026 Plume. All rights reserved.

/*
Package category (Postgres) implements the storage layer for the taxonomy.

# Schema Table Mapping
  - categories: Category rows.
  - posts: Read-only, for the post id lists and the deletion guard.
*/
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumeblog/plume/internal/platform/database/schema"
	"github.com/plumeblog/plume/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation for categories.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectWithPosts aggregates the referencing post ids into an array so a
// category hydrates in a single round trip.
func selectWithPosts() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s,
		       COALESCE(ARRAY_AGG(p.%s ORDER BY p.%s) FILTER (WHERE p.%s IS NOT NULL), '{}')
		FROM %s c
		LEFT JOIN %s p ON p.%s = c.%s`,
		schema.Category.ID, schema.Category.Name,
		schema.Post.ID, schema.Post.ID, schema.Post.ID,
		schema.Category.Table,
		schema.Post.Table, schema.Post.CategoryID, schema.Category.ID,
	)
}

// # Repository Methods

/*
List returns all categories with their post id lists, ordered by id.
*/
func (repository *PostgresRepository) List(context context.Context) ([]Category, error) {
	query := selectWithPosts() + fmt.Sprintf(`
		GROUP BY c.%s
		ORDER BY c.%s`,
		schema.Category.ID, schema.Category.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Posts); err != nil {
			return nil, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

/*
FindByID retrieves one category with its post id list.

Returns:
  - *Category: Hydrated entity
  - error: dberr.ErrNotFound or execution failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Category, error) {
	query := selectWithPosts() + fmt.Sprintf(`
		WHERE c.%s = $1
		GROUP BY c.%s`,
		schema.Category.ID, schema.Category.ID)

	category := &Category{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Posts,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_category_repo_find_failed: %w", err)
	}

	return category, nil
}

/*
Create inserts a new category and hydrates its id.

Returns:
  - error: apperr.Duplicate on a name collision
*/
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.Category.Table, schema.Category.Name, schema.Category.ID)

	if err := repository.pool.QueryRow(context, query, category.Name).Scan(&category.ID); err != nil {
		return dberr.Wrap(err, "category_create")
	}

	return nil
}

/*
Update renames an existing category.

Returns:
  - error: apperr.Duplicate on a name collision
*/
func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Category.Table, schema.Category.Name, schema.Category.ID)

	tag, err := repository.pool.Exec(context, query, category.ID, category.Name)
	if err != nil {
		return dberr.Wrap(err, "category_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Delete removes a category row. The service checks the post guard first; the
FK constraint remains as the database-level backstop.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Category.Table, schema.Category.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "category_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
CountPosts reports how many posts reference the category.
*/
func (repository *PostgresRepository) CountPosts(context context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.Post.Table, schema.Post.CategoryID)

	var count int64
	if err := repository.pool.QueryRow(context, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_category_repo_count_failed: %w", err)
	}

	return count, nil
}
