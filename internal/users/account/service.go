// Copyright (c) 2026 Plume. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	"github.com/plumeblog/plume/internal/platform/sec"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// # Registration

// RegisterInput carries the validated fields for a new account.
type RegisterInput struct {
	Pseudo   string
	Mail     string
	Password string
}

/*
Register creates a new password-based account with the default user role.

Description: Uniqueness of pseudo and mail is not pre-checked. The insert runs
against the database constraints and a violation surfaces as a 409, which
keeps racing registrations correct.

Parameters:
  - context: context.Context
  - input: RegisterInput (already validated by the HTTP layer)

Returns:
  - *User: The created account
  - error: apperr.Duplicate or storage failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// 1. Hash the password before it ever reaches storage
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	user := &User{
		Pseudo:       input.Pseudo,
		Mail:         input.Mail,
		PasswordHash: &hash,
		Role:         sec.RoleUser,
	}

	// 2. Insert; duplicate pseudo or mail comes back as apperr.Duplicate
	if err := service.repository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.Int64("user_id", user.ID))

	return user, nil
}

// # Profile Management

/*
List returns every registered user.

Returns:
  - []User: All accounts ordered by id
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context) ([]User, error) {
	users, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, nil
}

/*
GetProfile retrieves the account of the authenticated user.

Returns:
  - *User: The hydrated account
  - error: apperr.UserNotFound when the token's subject no longer exists
*/
func (service *Service) GetProfile(context context.Context, userID int64) (*User, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of account fields.
// Pseudo and Mail are mandatory on update; Password is optional.
type UpdateProfileInput struct {
	Pseudo   string
	Mail     string
	Password *string
}

/*
UpdateProfile replaces the account's pseudo and mail, and optionally rotates
the password.

Description: Fetches the current row first so a deleted account yields a 404
before any write. A federated account that sets a password stays federated
but becomes password-capable.

Parameters:
  - context: context.Context
  - userID: int64
  - input: UpdateProfileInput

Returns:
  - *User: The updated account
  - error: apperr.UserNotFound, apperr.Duplicate or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateProfileInput) (*User, error) {

	// 1. Resolve the target row
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// 2. Apply the replacement fields
	user.Pseudo = input.Pseudo
	user.Mail = input.Mail

	if input.Password != nil {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		user.PasswordHash = &hash
	}

	// 3. Persist; constraint collisions surface as apperr.Duplicate
	if err := service.repository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.Int64("user_id", userID))

	return user, nil
}

/*
DeleteAccount removes the authenticated user's account and everything they
authored in one transaction.

Returns:
  - error: apperr.UserNotFound or storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID int64) error {

	// Resolve first so the client gets a 404 instead of a silent no-op
	if _, err := service.repository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.repository.DeleteCascade(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.Int64("user_id", userID))

	return nil
}

// # Promotion

/*
Promote grants the admin role to the target user.

Description: Stage order is resolve then authorize then state-check then
mutate, so a missing target reports 404 even to a non-admin actor.
Promoting an account that is already admin is a state conflict, and the
admin role is never revoked through this path.

Parameters:
  - context: context.Context
  - actor: authz.Identity (must be admin)
  - targetID: int64

Returns:
  - *User: The promoted account
  - error: apperr.UserNotFound, apperr.Forbidden, apperr.StateConflict
*/
func (service *Service) Promote(context context.Context, actor authz.Identity, targetID int64) (*User, error) {

	// 1. Resolve the target
	target, err := service.repository.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	// 2. Authorize the actor
	if err := authz.CanPromote(actor); err != nil {
		return nil, err
	}

	// 3. Promotion is monotonic; repeating it is a conflict
	if target.Role.IsAdmin() {
		return nil, apperr.StateConflict("Resource state conflict: already admin")
	}

	// 4. Mutate
	if err := service.repository.Promote(context, targetID); err != nil {
		return nil, fmt.Errorf("account_service_promote_failed: %w", err)
	}
	target.Role = sec.RoleAdmin

	service.logger.Info("user_promoted",
		slog.Int64("actor_id", actor.UserID),
		slog.Int64("target_id", targetID),
	)

	return target, nil
}
