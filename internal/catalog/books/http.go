package books

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amwozniak/entertainment-api/internal/platform/middleware"
	requestutil "github.com/amwozniak/entertainment-api/internal/platform/request"
	"github.com/amwozniak/entertainment-api/internal/platform/respond"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/convert"
	"github.com/amwozniak/entertainment-api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/genres", handler.genres)
	router.Get("/all", handler.list)
	router.Get("/search", handler.search)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/add", handler.add)
		protected.Patch("/{title}/{author}", handler.update)
		protected.Delete("/{title}/{author}", handler.remove)
	})
}

func (handler *Handler) genres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.Genres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	books, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, books, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := SearchFilter{
		Title:       query.Get("title"),
		Author:      query.Get("author"),
		Genre:       query.Get("genre"),
		AvgRatingGE: convert.ToFloat64(query.Get("avg_rating_ge")),
	}

	books, total, err := handler.service.Search(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, books, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "author"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "author"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func principal(request *http.Request) sec.Principal {
	return requestutil.Claims(request).AsPrincipal()
}
