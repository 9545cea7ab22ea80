// Copyright (c) 2026 Plume. All rights reserved.

/*
Package account handles user registration, profile management, promotion and
account deletion.

# Architecture

  - Entities: User.
  - Domain: Owns the users table and the cascading removal of everything a
    user authored.
  - Security: Role changes are monotonic (user to admin, never back).
*/
package account

import (
	"context"
	"time"

	"github.com/plumeblog/plume/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// PasswordHash is nil for federated accounts provisioned through an external
// identity provider. Such accounts can never pass password login.
type User struct {
	ID           int64     `json:"id"`
	Pseudo       string    `json:"pseudo"`
	Mail         string    `json:"mail"`
	PasswordHash *string   `json:"-"`
	Role         sec.Role  `json:"role"`
	Federated    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// # Repository Contracts

// Repository defines the persistence contract for user accounts.
type Repository interface {
	/*
		Create inserts a new user row.

		Parameters:
		  - context: context.Context
		  - user: *User (ID and CreatedAt are populated on return)

		Returns:
		  - error: apperr.Duplicate when pseudo or mail is already taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID retrieves a user by primary key.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.UserNotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByMail retrieves a user by their unique mail address.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.UserNotFound or storage failures
	*/
	FindByMail(context context.Context, mail string) (*User, error)

	/*
		List returns all users ordered by id.
	*/
	List(context context.Context) ([]User, error)

	/*
		Update persists the mutable fields pseudo, mail and password hash.

		Returns:
		  - error: apperr.Duplicate when the new pseudo or mail collides
	*/
	Update(context context.Context, user *User) error

	/*
		Promote sets the role of the given user to admin.
	*/
	Promote(context context.Context, id int64) error

	/*
		DeleteCascade removes the user together with their favorites,
		comments and posts (including each post's own comments and
		favorites) in a single transaction.
	*/
	DeleteCascade(context context.Context, id int64) error
}
