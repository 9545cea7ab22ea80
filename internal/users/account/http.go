// Copyright (c) 2026 Plume. All rights reserved.

package account

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/platform/authz"
	requestutil "github.com/plumeblog/plume/internal/platform/request"
	"github.com/plumeblog/plume/internal/platform/respond"
	"github.com/plumeblog/plume/internal/platform/validate"
)

// Field limits reproduced from the registration contract.
const (
	pseudoMinLen   = 2
	pseudoMaxLen   = 30
	mailMaxLen     = 30
	passwordMinLen = 6
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public surface
	router.Post("/", handler.register)
	router.Get("/", handler.list)

	// Authenticated surface
	router.Get("/me", handler.getMe)
	router.Put("/me", handler.updateMe)
	router.Delete("/me", handler.deleteMe)

	// Administration
	router.Patch("/{id}/make_admin", handler.promote)

	return router
}

// # Registration Endpoints

// registerRequest defines the expected JSON payload for account creation.
type registerRequest struct {
	Pseudo   string `json:"pseudo"`
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// validateIdentity applies the shared pseudo/mail rules for create and update.
func validateIdentity(v *validate.Validator, pseudo, mail string) {
	v.Required("pseudo", pseudo).
		MinLen("pseudo", pseudo, pseudoMinLen).
		MaxLen("pseudo", pseudo, pseudoMaxLen).
		Required("mail", mail).
		Email("mail", mail).
		MaxLen("mail", mail, mailMaxLen)
}

/*
POST /users.

Description: Registers a new password-based account with the user role.

Request:
  - body: registerRequest

Response:
  - 201: User: The created account
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 409: DUPLICATE_RESSOURCE: Pseudo or mail already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	validateIdentity(v, input.Pseudo, input.Mail)
	v.Required("password", input.Password).
		MinLen("password", input.Password, passwordMinLen)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Register(request.Context(), RegisterInput{
		Pseudo:   input.Pseudo,
		Mail:     input.Mail,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User successfully created", user)
}

/*
GET /users.

Description: Lists all registered users. Public endpoint.

Response:
  - 200: []User: All accounts
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Users successfully retrieved", users)
}

// # Profile Endpoints

/*
GET /users/me.

Description: Retrieves the profile of the authenticated user.

Response:
  - 200: User: The account
  - 401: UNAUTHORIZED: Authentication required
  - 404: USER_NOT_FOUND: Token subject no longer exists
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User successfully retrieved", user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
// Pseudo and mail are mandatory, password is optional.
type updateMeRequest struct {
	Pseudo   string  `json:"pseudo"`
	Mail     string  `json:"mail"`
	Password *string `json:"password"`
}

/*
PUT /users/me.

Description: Replaces the authenticated user's pseudo and mail, and rotates
the password when one is provided.

Request:
  - body: updateMeRequest

Response:
  - 200: User: The updated account
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 404: USER_NOT_FOUND: Token subject no longer exists
  - 409: DUPLICATE_RESSOURCE: New pseudo or mail already taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	validateIdentity(v, input.Pseudo, input.Mail)
	if input.Password != nil {
		v.MinLen("password", *input.Password, passwordMinLen)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateProfileInput{
		Pseudo:   input.Pseudo,
		Mail:     input.Mail,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User successfully modified", user)
}

/*
DELETE /users/me.

Description: Deletes the authenticated user's account together with their
posts, comments and favorites.

Response:
  - 200: Account deleted
  - 401: UNAUTHORIZED: Authentication required
  - 404: USER_NOT_FOUND: Token subject no longer exists
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User successfully deleted", nil)
}

// # Administration Endpoints

/*
PATCH /users/{id}/make_admin.

Description: Grants the admin role to the target user. Admin-only and
monotonic.

Request:
  - id: int64

Response:
  - 200: User: The promoted account
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not an admin
  - 404: USER_NOT_FOUND: Target does not exist
  - 409: STATE_CONFLICT: Target is already admin
*/
func (handler *Handler) promote(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Promote(request.Context(), authz.IdentityFromClaims(claims), targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fmt.Sprintf("User %s has been promoted to admin", user.Pseudo), user)
}
