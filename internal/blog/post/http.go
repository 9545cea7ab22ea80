// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/authz"
	requestutil "github.com/plumeblog/plume/internal/platform/request"
	"github.com/plumeblog/plume/internal/platform/respond"
	"github.com/plumeblog/plume/internal/platform/validate"
	"github.com/plumeblog/plume/pkg/pagination"
)

// titleMaxLen mirrors the column limit.
const titleMaxLen = 100

// Handler implements the HTTP layer for posts.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] configured with the post endpoints.
//
// The fixed paths /category and /search are declared before /{id}; chi
// routes them by specificity either way, but the listing order mirrors it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public reads
	router.Get("/", handler.list)
	router.Get("/category", handler.listByCategory)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.get)

	// Authenticated writes
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Read Endpoints

/*
GET /posts.

Description: Paginated listing, newest first.

Request:
  - page, limit: Optional positive integers (defaults 1, 10)

Response:
  - 200: []Post + pagination meta
  - 400: INVALID_QUERY_PARAM: Non-positive or non-numeric page/limit
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, meta, err := handler.postService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Posts successfully retrieved", posts, meta)
}

/*
GET /posts/{id}.

Description: Single post read, served from the Redis cache when fresh.

Response:
  - 200: Post
  - 404: RESSOURCE_NOT_FOUND: Unknown post id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Post successfully retrieved", post)
}

/*
GET /posts/category?category=fragment.

Description: Unpaginated listing filtered by category name substring.

Response:
  - 200: []Post
  - 400: MISSING_QUERY_PARAM: No category parameter
  - 404: RESSOURCE_NOT_FOUND: No post matches
*/
func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	fragment := request.URL.Query().Get("category")

	posts, err := handler.postService.ListByCategory(request.Context(), fragment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Posts successfully retrieved", posts)
}

/*
GET /posts/search.

Description: Paginated conjunctive search over title, content, category name
and author.

Request:
  - title, content, category: Optional substrings
  - user_id: Optional author id
  - page, limit: Optional positive integers

Response:
  - 200: []Post + pagination meta
  - 400: INVALID_QUERY_PARAM: Bad user_id, page or limit
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	filter := SearchFilter{
		Title:    query.Get("title"),
		Content:  query.Get("content"),
		Category: query.Get("category"),
	}

	if raw := query.Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID < 1 {
			respond.Error(writer, request, apperr.InvalidQueryParam("Invalid query parameter value"))
			return
		}
		filter.UserID = userID
	}

	posts, meta, err := handler.postService.Search(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Posts successfully retrieved", posts, meta)
}

// # Write Endpoints

// createRequest defines the JSON payload for post creation.
type createRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int64  `json:"category_id"`
}

/*
POST /posts.

Description: Publishes a new post authored by the authenticated user.

Response:
  - 201: Post
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 404: RESSOURCE_NOT_FOUND: Unknown category id
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, titleMaxLen).
		Required("content", input.Content).
		Positive("category_id", input.CategoryID)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Create(request.Context(), authz.IdentityFromClaims(claims), CreateInput{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Post successfully created", post)
}

// updateRequest defines the JSON payload for partial post edits.
type updateRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CategoryID *int64  `json:"category_id"`
}

/*
PUT /posts/{id}.

Description: Partially edits a post. Author-only.

Response:
  - 200: Post
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not the author
  - 404: RESSOURCE_NOT_FOUND: Unknown post or category id
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

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, titleMaxLen)
	}
	if input.Content != nil {
		v.Required("content", *input.Content)
	}
	if input.CategoryID != nil {
		v.Positive("category_id", *input.CategoryID)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Update(request.Context(), authz.IdentityFromClaims(claims), id, UpdateInput{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Post successfully updated", post)
}

/*
DELETE /posts/{id}.

Description: Removes a post with its comments and favorites. Author or
admin.

Response:
  - 200: Post deleted
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is neither author nor admin
  - 404: RESSOURCE_NOT_FOUND: Unknown post id
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

	if err := handler.postService.Delete(request.Context(), authz.IdentityFromClaims(claims), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Post successfully deleted", nil)
}
