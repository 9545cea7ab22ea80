// Copyright (c) 2026 Plume. All rights reserved.

/*
Package account (Postgres) implements the storage layer for user accounts.

# Schema Table Mapping
  - users: Master identity rows.
  - posts, comments, favorites: Touched only by the cascading delete.
*/
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/database/schema"
	"github.com/plumeblog/plume/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation for accounts.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// errUserNotFound carries the user-specific code instead of the generic 404.
func errUserNotFound() error {
	return apperr.UserNotFound("User ID does not exist")
}

// # Repository Methods

/*
Create inserts a new user row and hydrates ID and CreatedAt.

Returns:
  - error: apperr.Duplicate when pseudo or mail collides
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		schema.User.Table,
		schema.User.Pseudo, schema.User.Mail, schema.User.PasswordHash,
		schema.User.Role, schema.User.Federated,
		schema.User.ID, schema.User.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Pseudo,
		user.Mail,
		user.PasswordHash,
		user.Role,
		user.Federated,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "account_create")
	}

	return nil
}

/*
FindByID retrieves a user by primary key.

Returns:
  - *User: Hydrated account entity
  - error: apperr.UserNotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	return repository.findByColumn(context, schema.User.ID, id)
}

/*
FindByMail retrieves a user by their unique mail address.

Returns:
  - *User: Hydrated account entity
  - error: apperr.UserNotFound or database execution failure
*/
func (repository *PostgresRepository) FindByMail(context context.Context, mail string) (*User, error) {
	return repository.findByColumn(context, schema.User.Mail, mail)
}

// findByColumn runs the shared single-row lookup for both key columns.
func (repository *PostgresRepository) findByColumn(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.User.ID, schema.User.Pseudo, schema.User.Mail, schema.User.PasswordHash,
		schema.User.Role, schema.User.Federated, schema.User.CreatedAt,
		schema.User.Table,
		column,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Pseudo,
		&user.Mail,
		&user.PasswordHash,
		&user.Role,
		&user.Federated,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errUserNotFound()
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
List returns all users ordered by id.
*/
func (repository *PostgresRepository) List(context context.Context) ([]User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s`,
		schema.User.ID, schema.User.Pseudo, schema.User.Mail, schema.User.PasswordHash,
		schema.User.Role, schema.User.Federated, schema.User.CreatedAt,
		schema.User.Table,
		schema.User.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.Pseudo,
			&user.Mail,
			&user.PasswordHash,
			&user.Role,
			&user.Federated,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

/*
Update persists pseudo, mail and password hash for an existing user.

Returns:
  - error: apperr.Duplicate on constraint collision, apperr.UserNotFound
    when the row vanished between resolve and write
*/
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.User.Table,
		schema.User.Pseudo, schema.User.Mail, schema.User.PasswordHash,
		schema.User.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Pseudo,
		user.Mail,
		user.PasswordHash,
	)
	if err != nil {
		return dberr.Wrap(err, "account_update")
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound()
	}

	return nil
}

/*
Promote sets the role of the given user to admin.
*/
func (repository *PostgresRepository) Promote(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = 'admin' WHERE %s = $1`,
		schema.User.Table, schema.User.Role, schema.User.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_promote_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound()
	}

	return nil
}

/*
DeleteCascade removes a user and everything they authored atomically.

Description: The order matters. Dependents of the user's posts go first,
then the user's own favorites and comments, then the posts, then the row
itself. Any failure rolls the whole transaction back.
*/
func (repository *PostgresRepository) DeleteCascade(context context.Context, id int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	ownPostsFilter := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Post.ID, schema.Post.Table, schema.Post.UserID)

	steps := []string{
		// 1. Dependents of the user's posts
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
			schema.Comment.Table, schema.Comment.PostID, ownPostsFilter),
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
			schema.Favorite.Table, schema.Favorite.PostID, ownPostsFilter),
		// 2. The user's own activity on other posts
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.Favorite.Table, schema.Favorite.UserID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.Comment.Table, schema.Comment.UserID),
		// 3. The user's posts
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.Post.Table, schema.Post.UserID),
	}

	for _, step := range steps {
		if _, err := transaction.Exec(context, step, id); err != nil {
			return fmt.Errorf("postgres_account_repo_cascade_failed: %w", err)
		}
	}

	// 4. The account row itself
	deleteUser := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.User.Table, schema.User.ID)
	tag, err := transaction.Exec(context, deleteUser, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound()
	}

	return transaction.Commit(context)
}
