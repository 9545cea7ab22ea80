// Copyright (c) 2026 Plume. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/platform/authz"
	requestutil "github.com/plumeblog/plume/internal/platform/request"
	"github.com/plumeblog/plume/internal/platform/respond"
	"github.com/plumeblog/plume/internal/platform/validate"
)

// categoryNameMaxLen mirrors the column limit.
const categoryNameMaxLen = 50

// Handler implements the HTTP layer for categories.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] configured with the category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public reads
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Admin writes. Updates answer to PATCH, the verb existing clients
	// send; PUT is kept as an alias.
	router.Post("/", handler.create)
	router.Patch("/{id}", handler.update)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// categoryRequest defines the JSON payload for create and update.
type categoryRequest struct {
	Name string `json:"name"`
}

// decodeName decodes and validates the single name field.
func decodeName(request *http.Request) (string, error) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return "", err
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, categoryNameMaxLen)
	if err := v.Err(); err != nil {
		return "", err
	}

	return input.Name, nil
}

// # Read Endpoints

/*
GET /categories.

Response:
  - 200: []Category: All categories with their post ids
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categoryService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Categories successfully retrieved", categories)
}

/*
GET /categories/{id}.

Response:
  - 200: Category: The requested category
  - 404: RESSOURCE_NOT_FOUND: Unknown category id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category successfully retrieved", category)
}

// # Write Endpoints

/*
POST /categories.

Description: Creates a category. Admin-only.

Response:
  - 201: Category: The created category
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not an admin
  - 409: DUPLICATE_RESSOURCE: Name already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	name, err := decodeName(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), authz.IdentityFromClaims(claims), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Category successfully created", category)
}

/*
PUT /categories/{id}.

Description: Renames a category. Admin-only.

Response:
  - 200: Category: The renamed category
  - 400: BAD_REQUEST / VALIDATION_FAILED: Malformed or invalid input
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not an admin
  - 404: RESSOURCE_NOT_FOUND: Unknown category id
  - 409: DUPLICATE_RESSOURCE: New name already exists
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

	name, err := decodeName(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Update(request.Context(), authz.IdentityFromClaims(claims), id, name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category successfully updated", category)
}

/*
DELETE /categories/{id}.

Description: Removes a category. Admin-only, refused while posts exist.

Response:
  - 200: Category deleted
  - 401: UNAUTHORIZED: Authentication required
  - 403: FORBIDDEN: Actor is not an admin
  - 404: RESSOURCE_NOT_FOUND: Unknown category id
  - 409: STATE_CONFLICT: Posts still reference the category
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

	if err := handler.categoryService.Delete(request.Context(), authz.IdentityFromClaims(claims), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category successfully deleted", nil)
}
