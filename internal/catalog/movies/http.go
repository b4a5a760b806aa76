package movies

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amwozniak/entertainment-api/internal/platform/middleware"
	requestutil "github.com/amwozniak/entertainment-api/internal/platform/request"
	"github.com/amwozniak/entertainment-api/internal/platform/respond"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/internal/platform/validate"
	"github.com/amwozniak/entertainment-api/pkg/convert"
	"github.com/amwozniak/entertainment-api/pkg/date"
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
		protected.Patch("/{title}/{premiere}", handler.update)
		protected.Delete("/{title}/{premiere}", handler.remove)
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

	movies, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, movies, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := SearchFilter{
		Title:          query.Get("title"),
		ScoreGE:        convert.ToFloat64(query.Get("score_ge")),
		GenrePrimary:   query.Get("genre_primary"),
		GenreSecondary: query.Get("genre_secondary"),
		Country:        query.Get("country"),
		Language:       query.Get("language"),
		Crew:           query.Get("crew"),
	}

	for param, target := range map[string]*date.Date{
		"premiere_since":  &filter.PremiereSince,
		"premiere_before": &filter.PremiereBefore,
	} {
		if raw := query.Get(param); raw != "" {
			parsed, err := validate.ParseDate(raw)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			*target = date.Of(parsed)
		}
	}

	movies, total, err := handler.service.Search(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, movies, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.Create(request.Context(), principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, movie)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.Update(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "premiere"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movie)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "premiere"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// principal adapts the verified claims to the authorization interface.
// RequireAuth guarantees the claims are present on protected routes.
func principal(request *http.Request) sec.Principal {
	return requestutil.Claims(request).AsPrincipal()
}
