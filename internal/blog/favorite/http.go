// Copyright (c) 2026 Plume. All rights reserved.

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/platform/authz"
	requestutil "github.com/plumeblog/plume/internal/platform/request"
	"github.com/plumeblog/plume/internal/platform/respond"
	"github.com/plumeblog/plume/internal/platform/validate"
)

// Handler implements the HTTP layer for favorites.
type Handler struct {
	favoriteService *Service
}

// NewHandler constructs a new favorite [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{favoriteService: service}
}

// Routes returns the router for the /favorites surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.listMine)
	router.Get("/posts/{id}/users", handler.listUsersByPost)
	router.Post("/", handler.create)
	router.Delete("/{id}", handler.delete)

	return router
}

// favoriteRequest defines the JSON payload for create.
type favoriteRequest struct {
	PostID int64 `json:"post_id"`
}

// # Read Endpoints

/*
GET /favorites/me.

Description: Lists the authenticated user's favorites.

Response:
  - 200: []Favorite
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.favoriteService.ListMine(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Favorites successfully retrieved", favorites)
}

/*
GET /favorites/posts/{id}/users.

Description: Lists every user who favorited a post. Admin-only.

Response:
  - 200: []account.User
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not an admin
  - 404: RESSOURCE_NOT_FOUND: Unknown post id
*/
func (handler *Handler) listUsersByPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	users, err := handler.favoriteService.ListUsersByPost(request.Context(), authz.IdentityFromClaims(claims), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Users successfully retrieved", users)
}

// # Write Endpoints

/*
POST /favorites.

Description: Bookmarks a post for the authenticated user.

Response:
  - 201: Favorite
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 404: RESSOURCE_NOT_FOUND: Unknown post id
  - 409: DUPLICATE_RESSOURCE: Post already favorited
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input favoriteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Positive("post_id", input.PostID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorite, err := handler.favoriteService.Create(request.Context(), authz.IdentityFromClaims(claims), input.PostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Favorite successfully created", favorite)
}

/*
DELETE /favorites/{id}.

Description: Removes a favorite. Owner-only.

Response:
  - 200: Favorite deleted
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor does not own the favorite
  - 404: RESSOURCE_NOT_FOUND: Unknown favorite id
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.favoriteService.Delete(request.Context(), authz.IdentityFromClaims(claims), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Favorite successfully deleted", nil)
}
