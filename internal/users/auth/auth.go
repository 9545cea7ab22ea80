// Copyright (c) 2026 Plume. All rights reserved.

/*
Package auth implements credential verification and token issuance.

It covers password login, stateless refresh, and federated login through
external OIDC identity providers (Google, Firebase). Federated logins
auto-provision a passwordless account on first sight of a verified email.

# Architecture

  - Entities: TokenPair (DTO).
  - Domain: Depends on the account package for the User entity and store.
  - Security: Access and refresh tokens are discriminated by a typ claim,
    so a refresh token can never authenticate a request.
*/
package auth

import (
	"context"
)

// # Domain Entities

// TokenPair is the transport shape of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// # Provider Contracts

// IdentityProvider verifies an externally issued identity token and reports
// the subject's email. The provider is a black box to the rest of the flow.
type IdentityProvider interface {
	/*
		Exchange validates a raw identity token against the provider.

		Parameters:
		  - context: context.Context
		  - rawToken: string (The provider-issued ID token)

		Returns:
		  - email: string
		  - verified: bool (Whether the provider attests the email)
		  - error: Verification failures
	*/
	Exchange(context context.Context, rawToken string) (email string, verified bool, err error)
}
