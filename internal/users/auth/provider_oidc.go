// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Issuer URLs for the supported external providers.
const (
	googleIssuer       = "https://accounts.google.com"
	firebaseIssuerBase = "https://securetoken.google.com/"
)

// OIDCProvider implements [IdentityProvider] against any OIDC issuer whose
// ID tokens carry the standard email claims.
type OIDCProvider struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleProvider builds a provider verifying Google Sign-In ID tokens.
func NewGoogleProvider(context context.Context, clientID string) (*OIDCProvider, error) {
	return newOIDCProvider(context, googleIssuer, clientID)
}

// NewFirebaseProvider builds a provider verifying Firebase Auth ID tokens.
// Firebase tokens are issued per project with the project ID as audience.
func NewFirebaseProvider(context context.Context, projectID string) (*OIDCProvider, error) {
	return newOIDCProvider(context, firebaseIssuerBase+projectID, projectID)
}

// newOIDCProvider performs issuer discovery and prepares the token verifier.
func newOIDCProvider(context context.Context, issuer, audience string) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(context, issuer)
	if err != nil {
		return nil, fmt.Errorf("auth: oidc discovery failed for %s: %w", issuer, err)
	}

	return &OIDCProvider{
		verifier: provider.Verifier(&oidc.Config{ClientID: audience}),
	}, nil
}

/*
Exchange validates a raw ID token and extracts the subject's email claims.

Returns:
  - email: string
  - verified: bool
  - error: Signature, audience, issuer or expiry failures
*/
func (p *OIDCProvider) Exchange(context context.Context, rawToken string) (string, bool, error) {
	idToken, err := p.verifier.Verify(context, rawToken)
	if err != nil {
		return "", false, fmt.Errorf("auth: id token rejected: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", false, fmt.Errorf("auth: id token claims unreadable: %w", err)
	}

	return claims.Email, claims.EmailVerified, nil
}
