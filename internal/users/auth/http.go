// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/platform/apperr"
	requestutil "github.com/plumeblog/plume/internal/platform/request"
	"github.com/plumeblog/plume/internal/platform/respond"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	authService *Service

	// Nil providers disable the corresponding endpoint with a 401.
	googleProvider   IdentityProvider
	firebaseProvider IdentityProvider
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, google, firebase IdentityProvider) *Handler {
	return &Handler{
		authService:      service,
		googleProvider:   google,
		firebaseProvider: firebase,
	}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/login/google", handler.loginGoogle)
	router.Post("/login/firebase", handler.loginFirebase)

	return router
}

// # Password Login Endpoints

// loginRequest defines the expected JSON payload for password login.
type loginRequest struct {
	Mail     *string `json:"mail"`
	Password *string `json:"password"`
}

/*
POST /login.

Description: Verifies a mail/password pair and returns a token pair.

Request:
  - body: loginRequest

Response:
  - 200: TokenPair: Signed access and refresh tokens
  - 400: BAD_REQUEST / INVALID_QUERY_PARAM: Malformed or incomplete body
  - 401: INVALID_CREDENTIALS: Wrong password
  - 404: USER_NOT_FOUND: Unknown mail
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Both fields must be present; their content is judged by the login
	// flow itself.
	if input.Mail == nil || input.Password == nil {
		respond.Error(writer, request, apperr.InvalidQueryParam("Invalid query parameter value"))
		return
	}

	pair, err := handler.authService.Login(request.Context(), *input.Mail, *input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", pair)
}

// refreshResponse carries the renewed access token.
type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

/*
POST /refresh.

Description: Exchanges a refresh token, presented as a bearer credential,
for a new access token.

Response:
  - 200: refreshResponse: The renewed access token
  - 401: UNAUTHORIZED: Missing, malformed or non-refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	rawToken, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), rawToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Access token successfully refreshed", refreshResponse{AccessToken: accessToken})
}

// # Federated Login Endpoints

// federatedRequest defines the expected JSON payload for federated login.
type federatedRequest struct {
	IDToken string `json:"id_token"`
}

/*
POST /login/google.

Description: Signs a user in with a Google-issued ID token, provisioning a
federated account on first login.

Request:
  - body: federatedRequest

Response:
  - 200: TokenPair: Signed access and refresh tokens
  - 400: BAD_REQUEST: Malformed body
  - 401: INVALID_CREDENTIALS: Token rejected or email unverified
*/
func (handler *Handler) loginGoogle(writer http.ResponseWriter, request *http.Request) {
	handler.loginWithProvider(writer, request, handler.googleProvider)
}

/*
POST /login/firebase.

Description: Signs a user in with a Firebase-issued ID token, provisioning a
federated account on first login.

Request:
  - body: federatedRequest

Response:
  - 200: TokenPair: Signed access and refresh tokens
  - 400: BAD_REQUEST: Malformed body
  - 401: INVALID_CREDENTIALS: Token rejected or email unverified
*/
func (handler *Handler) loginFirebase(writer http.ResponseWriter, request *http.Request) {
	handler.loginWithProvider(writer, request, handler.firebaseProvider)
}

// loginWithProvider runs the shared federated flow for a configured provider.
func (handler *Handler) loginWithProvider(writer http.ResponseWriter, request *http.Request, provider IdentityProvider) {
	if provider == nil {
		respond.Error(writer, request, apperr.InvalidCredentials("Identity token rejected"))
		return
	}

	var input federatedRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.LoginFederated(request.Context(), provider, input.IDToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", pair)
}
