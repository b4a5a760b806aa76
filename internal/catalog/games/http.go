package games

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amwozniak/entertainment-api/internal/platform/middleware"
	requestutil "github.com/amwozniak/entertainment-api/internal/platform/request"
	"github.com/amwozniak/entertainment-api/internal/platform/respond"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/convert"
	"github.com/amwozniak/entertainment-api/pkg/pagination"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/choices", handler.choices)
	router.Get("/all", handler.list)
	router.Get("/search", handler.search)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/add", handler.add)
		protected.Patch("/{title}/{premiere}/{developer}", handler.update)
		protected.Delete("/{title}/{premiere}/{developer}", handler.remove)
	})
}

func (handler *Handler) choices(writer http.ResponseWriter, request *http.Request) {
	choices, err := handler.service.Choices(request.Context(), request.URL.Query().Get("field"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, choices)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	games, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, games, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := SearchFilter{
		Title:            query.Get("title"),
		PremiereYear:     convert.ToInt(query.Get("premiere_year")),
		Developer:        query.Get("developer"),
		Publisher:        query.Get("publisher"),
		Genre:            query.Get("genres"),
		GameType:         query.Get("game_type"),
		ReviewOverall:    query.Get("review_overall"),
		ReviewDetailed:   query.Get("review_detailed"),
		ExcludeEmptyData: convert.ToBool(query.Get("exclude_empty_data")),
		OrderBy:          query.Get("order_by"),
		Descending:       query.Get("order_type") == "descending",
	}
	if raw := query.Get("reviews_number"); raw != "" {
		filter.ReviewsNumberGE = pointer.To(convert.ToInt(raw))
	}
	if raw := query.Get("reviews_positive"); raw != "" {
		filter.ReviewsPositiveGE = pointer.To(convert.ToFloat64(raw))
	}

	games, total, err := handler.service.Search(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, games, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Create(request.Context(), principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, game)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Update(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "premiere"),
		requestutil.Param(request, "developer"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "premiere"),
		requestutil.Param(request, "developer"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func principal(request *http.Request) sec.Principal {
	return requestutil.Claims(request).AsPrincipal()
}
