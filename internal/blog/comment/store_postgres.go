// Copyright (c) 2026 Plume. All rights reserved.

/*
Package comment (Postgres) implements the storage layer for commentary.

# Schema Table Mapping
  - comments: Comment rows.
*/
package comment

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

// NewPostgresRepository creates the Postgres implementation for comments.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// commentColumns is the select list shared by every read.
func commentColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s",
		schema.Comment.ID, schema.Comment.Content, schema.Comment.CreatedAt,
		schema.Comment.UserID, schema.Comment.PostID)
}

// listBy runs the shared filtered listing for either foreign key column.
func (repository *PostgresRepository) listBy(context context.Context, column string, value int64) ([]Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		commentColumns(), schema.Comment.Table, column, schema.Comment.ID)

	rows, err := repository.pool.Query(context, query, value)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UserID,
			&comment.PostID,
		); err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// # Repository Methods

/*
ListByUser returns all comments authored by the given user.
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]Comment, error) {
	return repository.listBy(context, schema.Comment.UserID, userID)
}

/*
ListByPost returns all comments attached to the given post.
*/
func (repository *PostgresRepository) ListByPost(context context.Context, postID int64) ([]Comment, error) {
	return repository.listBy(context, schema.Comment.PostID, postID)
}

/*
FindByID retrieves one comment.

Returns:
  - *Comment: Hydrated entity
  - error: dberr.ErrNotFound or execution failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		commentColumns(), schema.Comment.Table, schema.Comment.ID)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UserID,
		&comment.PostID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

/*
Create inserts a new comment and hydrates ID and CreatedAt.
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		schema.Comment.Table,
		schema.Comment.Content, schema.Comment.UserID, schema.Comment.PostID,
		schema.Comment.ID, schema.Comment.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.Content,
		comment.UserID,
		comment.PostID,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "comment_create")
	}

	return nil
}

/*
Update persists the content of an existing comment.
*/
func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Comment.Table, schema.Comment.Content, schema.Comment.ID)

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.Content)
	if err != nil {
		return dberr.Wrap(err, "comment_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Delete removes a comment row.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Comment.Table, schema.Comment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "comment_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
