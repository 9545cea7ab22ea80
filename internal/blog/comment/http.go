// Copyright (c) 2026 Plume. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/platform/authz"
	requestutil "github.com/plumeblog/plume/internal/platform/request"
	"github.com/plumeblog/plume/internal/platform/respond"
	"github.com/plumeblog/plume/internal/platform/validate"
)

// Handler implements the HTTP layer for comments.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns the router for the /comments surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.listMine)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// PostRoutes returns the router mounted under /posts/{id}/comments. The
// post id comes from the parent route context.
func (handler *Handler) PostRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByPost)
	router.Post("/", handler.create)

	return router
}

// commentRequest defines the JSON payload for create and update.
type commentRequest struct {
	Content string `json:"content"`
}

// decodeContent decodes and validates the single content field.
func decodeContent(request *http.Request) (string, error) {
	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return "", err
	}

	v := &validate.Validator{}
	v.Required("content", input.Content).MaxLen("content", input.Content, MaxContentLen)
	if err := v.Err(); err != nil {
		return "", err
	}

	return input.Content, nil
}

// # Read Endpoints

/*
GET /comments/me.

Description: Lists the authenticated user's comments.

Response:
  - 200: []Comment
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.commentService.ListMine(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comments successfully retrieved", comments)
}

/*
GET /posts/{id}/comments.

Description: Lists all comments on a post. Public endpoint.

Response:
  - 200: []Comment: Possibly empty
  - 404: RESSOURCE_NOT_FOUND: Unknown post id
*/
func (handler *Handler) listByPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.commentService.ListByPost(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comments successfully retrieved", comments)
}

// # Write Endpoints

/*
POST /posts/{id}/comments.

Description: Attaches a comment to a post.

Response:
  - 201: Comment
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 404: RESSOURCE_NOT_FOUND: Unknown post id
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
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

	content, err := decodeContent(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), authz.IdentityFromClaims(claims), postID, content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Comment successfully created", comment)
}

/*
PUT /comments/{id}.

Description: Rewrites a comment. Author-only.

Response:
  - 200: Comment
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not the author
  - 404: RESSOURCE_NOT_FOUND: Unknown comment id
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
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

	content, err := decodeContent(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), authz.IdentityFromClaims(claims), id, content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comment successfully updated", comment)
}

/*
DELETE /comments/{id}.

Description: Removes a comment. Author or admin.

Response:
  - 200: Comment deleted
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is neither author nor admin
  - 404: RESSOURCE_NOT_FOUND: Unknown comment id
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

	if err := handler.commentService.Delete(request.Context(), authz.IdentityFromClaims(claims), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comment successfully deleted", nil)
}
