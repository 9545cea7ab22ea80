// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/constants"
	"github.com/plumeblog/plume/internal/platform/sec"
	"github.com/plumeblog/plume/internal/users/account"
)

// # Service Layer

// Service orchestrates login, refresh and federated identity flows.
type Service struct {
	accounts account.Repository
	tokens   *sec.TokenService
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(accounts account.Repository, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, tokens: tokens, logger: logger}
}

// # Password Login

/*
Login verifies a mail/password pair and issues an access + refresh token pair.

Description: An unknown mail reports 404 while a wrong password reports 401.
Federated-only accounts carry no password hash and always fail the password
stage, indistinguishable from a wrong password.

Parameters:
  - context: context.Context
  - mail: string
  - password: string

Returns:
  - *TokenPair: Signed access and refresh tokens
  - error: apperr.UserNotFound, apperr.InvalidCredentials
*/
func (service *Service) Login(context context.Context, mail, password string) (*TokenPair, error) {

	// 1. Resolve the account
	user, err := service.accounts.FindByMail(context, mail)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.UserNotFound("User does not exist")
		}
		return nil, err
	}

	// 2. Verify the password; nil hash means federated-only
	if user.PasswordHash == nil || !sec.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperr.InvalidCredentials("Invalid mail or password")
	}

	// 3. Issue the pair
	pair, err := service.issuePair(user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", user.ID))

	return pair, nil
}

// # Token Refresh

/*
Refresh exchanges a valid refresh token for a fresh access token.

Description: The refresh token is verified statelessly. Any failure, from a
missing token to an access token presented in its place, reports the same
401 as an absent credential.

Parameters:
  - context: context.Context
  - rawRefreshToken: string

Returns:
  - string: A newly signed access token
  - error: apperr.Unauthorized
*/
func (service *Service) Refresh(context context.Context, rawRefreshToken string) (string, error) {
	claims, err := service.tokens.VerifyRefreshToken(rawRefreshToken)
	if err != nil {
		return "", apperr.Unauthorized("No authentication token or invalid token")
	}

	accessToken, err := service.tokens.GenerateAccessToken(
		claims.UserID, claims.Pseudo, claims.Role, constants.AccessTokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	return accessToken, nil
}

// # Federated Login

/*
LoginFederated validates an external identity token and signs the subject in,
provisioning a passwordless account on first login.

Description: The provider is treated as a black box returning (email,
verified). A rejected token or an unverified email reports 401. When no
account exists for the email, a federated account is created with a pseudo
derived from the mail's local part; a pseudo collision is retried once with
a random suffix.

Parameters:
  - context: context.Context
  - provider: IdentityProvider
  - rawToken: string

Returns:
  - *TokenPair: Signed access and refresh tokens
  - error: apperr.InvalidCredentials or provisioning failures
*/
func (service *Service) LoginFederated(context context.Context, provider IdentityProvider, rawToken string) (*TokenPair, error) {

	// 1. Exchange the token with the provider
	email, verified, err := provider.Exchange(context, rawToken)
	if err != nil || !verified {
		return nil, apperr.InvalidCredentials("Identity token rejected")
	}

	// 2. Resolve or provision the account
	user, err := service.accounts.FindByMail(context, email)
	if apperr.IsNotFound(err) {
		user, err = service.provision(context, email)
	}
	if err != nil {
		return nil, err
	}

	// 3. Issue the pair
	pair, err := service.issuePair(user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in_federated", slog.Int64("user_id", user.ID))

	return pair, nil
}

// Pseudo bounds for provisioned accounts. The derived base leaves room for
// the collision suffix so a retried pseudo still fits the column.
const (
	provisionedPseudoMin = 2
	provisionedPseudoMax = 30
	provisionedMailMax   = 30
	pseudoSuffixLen      = 9 // "-" plus 8 uuid characters
)

// derivePseudo turns the mail's local part into a pseudo within the 2-30
// character bounds. Local parts too short to qualify fall back to a random
// user-prefixed pseudo.
func derivePseudo(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}

	runes := []rune(local)
	if len(runes) > provisionedPseudoMax-pseudoSuffixLen {
		runes = runes[:provisionedPseudoMax-pseudoSuffixLen]
	}
	if len(runes) < provisionedPseudoMin {
		return "user-" + uuid.NewString()[:8]
	}

	return string(runes)
}

// provision creates a passwordless federated account for a verified email.
func (service *Service) provision(context context.Context, email string) (*account.User, error) {

	// The mail column carries the same bound the registration form enforces.
	if utf8.RuneCountInString(email) > provisionedMailMax {
		return nil, apperr.ValidationFailed("Field validation failed", apperr.FieldError{
			Field:   "mail",
			Message: fmt.Sprintf("Maximum %d characters", provisionedMailMax),
		})
	}

	pseudo := derivePseudo(email)

	user := &account.User{
		Pseudo:    pseudo,
		Mail:      email,
		Role:      sec.RoleUser,
		Federated: true,
	}

	err := service.accounts.Create(context, user)
	if apperr.IsConflict(err) {
		// The mail is new, so the collision is on pseudo. Retry once with
		// a random suffix.
		user.Pseudo = pseudo + "-" + uuid.NewString()[:8]
		err = service.accounts.Create(context, user)
	}
	if err != nil {
		return nil, err
	}

	service.logger.Info("federated_account_provisioned", slog.Int64("user_id", user.ID))

	return user, nil
}

// issuePair signs an access and refresh token for the given account.
func (service *Service) issuePair(user *account.User) (*TokenPair, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		user.ID, user.Pseudo, user.Role, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := service.tokens.GenerateRefreshToken(
		user.ID, user.Pseudo, user.Role, constants.RefreshTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
