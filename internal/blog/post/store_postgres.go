// Copyright (c) 2026 Plume. All rights reserved.

/*
Package post (Postgres) implements the storage layer for articles.

# Schema Table Mapping
  - posts: Article rows.
  - categories: Joined for name-based filtering.
  - comments, favorites: Touched only by the cascading delete.
*/
package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumeblog/plume/internal/platform/database/schema"
	"github.com/plumeblog/plume/internal/platform/dberr"
	"github.com/plumeblog/plume/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation for posts.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// postColumns is the qualified select list shared by every read.
func postColumns() string {
	return fmt.Sprintf("p.%s, p.%s, p.%s, p.%s, p.%s, p.%s",
		schema.Post.ID, schema.Post.Title, schema.Post.Content,
		schema.Post.CreatedAt, schema.Post.UserID, schema.Post.CategoryID)
}

// scanPosts drains a row set into a slice.
func scanPosts(rows pgx.Rows) ([]Post, error) {
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.CreatedAt,
			&post.UserID,
			&post.CategoryID,
		); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// # Repository Methods

/*
List returns one page of posts ordered by creation time descending, plus the
unpaginated total.
*/
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]Post, int64, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Post.Table)

	var total int64
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		ORDER BY p.%s DESC
		LIMIT $1 OFFSET $2`,
		postColumns(), schema.Post.Table, schema.Post.CreatedAt)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}

	posts, err := scanPosts(rows)
	return posts, total, err
}

/*
FindByID retrieves one post.

Returns:
  - *Post: Hydrated entity
  - error: dberr.ErrNotFound or execution failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		WHERE p.%s = $1`,
		postColumns(), schema.Post.Table, schema.Post.ID)

	post := &Post{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UserID,
		&post.CategoryID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_post_repo_find_failed: %w", err)
	}

	return post, nil
}

/*
ListByCategoryName returns all posts whose category name contains the
fragment, case-insensitively.
*/
func (repository *PostgresRepository) ListByCategoryName(context context.Context, fragment string) ([]Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		JOIN %s c ON c.%s = p.%s
		WHERE c.%s ILIKE $1`,
		postColumns(),
		schema.Post.Table,
		schema.Category.Table, schema.Category.ID, schema.Post.CategoryID,
		schema.Category.Name)

	rows, err := repository.pool.Query(context, query, "%"+fragment+"%")
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_by_category_failed: %w", err)
	}

	return scanPosts(rows)
}

/*
Search returns one page of posts matching every set criterion, plus the
unpaginated total.

Description: The WHERE clause is assembled from the set criteria only, all
values passed as positional parameters. No ORDER BY is applied; callers get
store order.
*/
func (repository *PostgresRepository) Search(context context.Context, filter SearchFilter, params pagination.Params) ([]Post, int64, error) {
	var (
		conditions []string
		args       []any
	)

	appendCondition := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	from := fmt.Sprintf("FROM %s p", schema.Post.Table)

	if filter.Title != "" {
		appendCondition("p."+schema.Post.Title+" ILIKE $%d", "%"+filter.Title+"%")
	}
	if filter.Content != "" {
		appendCondition("p."+schema.Post.Content+" ILIKE $%d", "%"+filter.Content+"%")
	}
	if filter.Category != "" {
		from += fmt.Sprintf(" JOIN %s c ON c.%s = p.%s",
			schema.Category.Table, schema.Category.ID, schema.Post.CategoryID)
		appendCondition("c."+schema.Category.Name+" ILIKE $%d", "%"+filter.Category+"%")
	}
	if filter.UserID > 0 {
		appendCondition("p."+schema.Post.UserID+" = $%d", filter.UserID)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + from + where

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_search_count_failed: %w", err)
	}

	pageQuery := fmt.Sprintf("SELECT %s %s%s LIMIT $%d OFFSET $%d",
		postColumns(), from, where, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_search_failed: %w", err)
	}

	posts, err := scanPosts(rows)
	return posts, total, err
}

/*
Create inserts a new post and hydrates ID and CreatedAt.
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		schema.Post.Table,
		schema.Post.Title, schema.Post.Content, schema.Post.UserID, schema.Post.CategoryID,
		schema.Post.ID, schema.Post.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		post.Title,
		post.Content,
		post.UserID,
		post.CategoryID,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "post_create")
	}

	return nil
}

/*
Update persists title, content and category. UserID and CreatedAt never
appear in the SET list.
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.Post.Table,
		schema.Post.Title, schema.Post.Content, schema.Post.CategoryID,
		schema.Post.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Content,
		post.CategoryID,
	)
	if err != nil {
		return dberr.Wrap(err, "post_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
DeleteCascade removes the post with its comments and favorites atomically.
*/
func (repository *PostgresRepository) DeleteCascade(context context.Context, id int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	steps := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.Comment.Table, schema.Comment.PostID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.Favorite.Table, schema.Favorite.PostID),
	}
	for _, step := range steps {
		if _, err := transaction.Exec(context, step, id); err != nil {
			return fmt.Errorf("postgres_post_repo_cascade_failed: %w", err)
		}
	}

	deletePost := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Post.Table, schema.Post.ID)
	tag, err := transaction.Exec(context, deletePost, id)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}
