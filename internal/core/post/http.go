// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post provides the HTTP interface over the search core: browsing
posts by query, retrieving a single post by slug, and registering a new
post behind a proof-of-work challenge.

# Routing Strategy

  - Public: search (GET /) and lookup (GET /{slug}) are open to all callers.
  - PoW-gated: registration (POST /) requires a solved challenge batch
    instead of an authenticated identity.
  - Restricted: alias administration (PUT /aliases/{phrase}) requires the
    Admin role.

The handler translates between the web/JSON layer and [Service]; it is
also the presentation boundary where a [search.Error] gets translated
into an [apperr.AppError].
*/
package post

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ribbit/internal/platform/apperr"
	"github.com/taibuivan/ribbit/internal/platform/middleware"
	requestutil "github.com/taibuivan/ribbit/internal/platform/request"
	"github.com/taibuivan/ribbit/internal/platform/respond"
	"github.com/taibuivan/ribbit/internal/platform/sec"
	"github.com/taibuivan/ribbit/internal/search"
	"github.com/taibuivan/ribbit/pkg/pagination"
	"github.com/taibuivan/ribbit/pkg/query"
)

// Handler implements the HTTP layer for post discovery and registration.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the post domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.findPosts)
	router.Get("/{slug}", handler.findPost)
	router.Get("/challenge", handler.issueChallenge)
	router.Post("/", handler.registerPost)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/aliases/{phrase}", handler.putAlias)
	})

	return router
}

/*
GET /api/v1/posts.

Retrieves a ranked, paginated page of posts matching the "q" query
parameter. An empty query yields an empty page.

Request:
  - q: string (search query)
  - page: int (1-indexed)
  - limit: int (page size, 1-100, default 20)
  - tags: comma-separated list — narrows the ranked page to posts carrying
    every listed tag

Response:
  - 200: []View
*/
func (handler *Handler) findPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	q := request.URL.Query().Get("q")
	tagFilter := query.StringSlice(request.URL.Query().Get("tags"))

	views, total, err := handler.service.FindPosts(request.Context(), q, paginationParams.Page, paginationParams.Limit, tagFilter)
	if err != nil {
		respond.Error(writer, request, translateSearchError(err))
		return
	}

	respond.Paginated(writer, views, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/posts/{slug}.

Retrieves a single post by its slug.

Response:
  - 200: View
  - 404: slug does not resolve to a post
*/
func (handler *Handler) findPost(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.ID(request, "slug")

	view, err := handler.service.FindPost(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, translateSearchError(err))
		return
	}
	respond.OK(writer, view)
}

/*
GET /api/v1/posts/challenge.

Issues a fresh proof-of-work challenge. A client must solve a batch of
[search.ChallengeBatchSize] of these before POST /posts will accept a
registration.

Response:
  - 200: {"challenge": string}
*/
func (handler *Handler) issueChallenge(writer http.ResponseWriter, request *http.Request) {
	challenge, err := handler.service.IssueChallenge()
	if err != nil {
		respond.Error(writer, request, translateSearchError(err))
		return
	}
	respond.OK(writer, map[string]string{"challenge": challenge})
}

/*
POST /api/v1/posts.

Registers a new post. The request must carry a solved proof-of-work
batch alongside the post form.

Request body:

	{
	  "challenges": [string, ...],
	  "post": Form
	}

Response:
  - 201: {"slug": string}
  - 403: proof-of-work batch rejected
  - 400: form failed validation
*/
func (handler *Handler) registerPost(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Challenges []string `json:"challenges"`
		Post       Form     `json:"post"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	slug, err := handler.service.Register(request.Context(), body.Challenges, body.Post)
	if err != nil {
		respond.Error(writer, request, translateSearchError(err))
		return
	}
	respond.Created(writer, map[string]string{"slug": slug})
}

/*
PUT /api/v1/posts/aliases/{phrase}.

Administratively adds tags to the alias set of a query phrase. Existing
aliases are kept; a search phrase with aliases resolves through them
instead of through the phrase itself, and is scored as usual.

Request body:

	{"tags": []string}
*/
func (handler *Handler) putAlias(writer http.ResponseWriter, request *http.Request) {
	phrase := requestutil.ID(request, "phrase")

	var body struct {
		Tags []string `json:"tags"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PutAlias(request.Context(), phrase, body.Tags); err != nil {
		respond.Error(writer, request, translateSearchError(err))
		return
	}
	respond.NoContent(writer)
}

// translateSearchError maps a [search.Error] to the HTTP-facing
// [apperr.AppError]. The search core never carries an HTTP status itself —
// this handler is the one place that assigns one.
func translateSearchError(err error) error {
	var searchErr *search.Error
	if !errors.As(err, &searchErr) {
		return err
	}

	switch searchErr.Kind {
	case search.KindNotFound:
		return apperr.NotFound("Post")
	case search.KindInvalidInput:
		return apperr.ValidationError(searchErr.Message)
	case search.KindPowRejected:
		return apperr.Forbidden(searchErr.Message)
	case search.KindEncoding, search.KindStoreUnavailable:
		return apperr.Internal(searchErr)
	default:
		return apperr.Internal(searchErr)
	}
}
