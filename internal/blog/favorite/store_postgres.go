// Copyright (c) 2026 Plume. All rights reserved.

/*
Package favorite (Postgres) implements the storage layer for bookmarks.

# Schema Table Mapping
  - favorites: Favorite rows, unique on (user_id, post_id).
*/
package favorite

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

// NewPostgresRepository creates the Postgres implementation for favorites.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// favoriteColumns is the select list shared by every read.
func favoriteColumns() string {
	return fmt.Sprintf("%s, %s, %s",
		schema.Favorite.ID, schema.Favorite.UserID, schema.Favorite.PostID)
}

// # Repository Methods

/*
ListByUser returns all favorites owned by the given user.
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]Favorite, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		favoriteColumns(), schema.Favorite.Table, schema.Favorite.UserID, schema.Favorite.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_favorite_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var favorite Favorite
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.PostID); err != nil {
			return nil, fmt.Errorf("postgres_favorite_repo_scan_failed: %w", err)
		}
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}

/*
ListUserIDsByPost returns the ids of every user who favorited the post.
*/
func (repository *PostgresRepository) ListUserIDsByPost(context context.Context, postID int64) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		schema.Favorite.UserID, schema.Favorite.Table, schema.Favorite.PostID, schema.Favorite.ID)

	rows, err := repository.pool.Query(context, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_favorite_repo_list_users_failed: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("postgres_favorite_repo_scan_failed: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	return userIDs, rows.Err()
}

/*
FindByID retrieves one favorite.

Returns:
  - *Favorite: Hydrated entity
  - error: dberr.ErrNotFound or execution failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Favorite, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		favoriteColumns(), schema.Favorite.Table, schema.Favorite.ID)

	favorite := &Favorite{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.PostID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_favorite_repo_find_failed: %w", err)
	}

	return favorite, nil
}

/*
Create inserts a new favorite and hydrates its ID. The unique pair
constraint surfaces repeats as a duplicate error.
*/
func (repository *PostgresRepository) Create(context context.Context, favorite *Favorite) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s`,
		schema.Favorite.Table,
		schema.Favorite.UserID, schema.Favorite.PostID,
		schema.Favorite.ID,
	)

	err := repository.pool.QueryRow(context, query,
		favorite.UserID,
		favorite.PostID,
	).Scan(&favorite.ID)

	if err != nil {
		return dberr.Wrap(err, "favorite_create")
	}

	return nil
}

/*
Delete removes a favorite row.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Favorite.Table, schema.Favorite.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "favorite_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
