package songs

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
		protected.Patch("/{title}/{artist}/{album_name}", handler.update)
		protected.Delete("/{title}/{artist}/{album_name}", handler.remove)
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

	songs, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, songs, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := SearchFilter{
		Title:        query.Get("title"),
		Artist:       query.Get("artist"),
		AlbumName:    query.Get("album_name"),
		PlaylistName: query.Get("playlist_name"),
		Genre:        query.Get("playlist_genre"),
		Subgenre:     query.Get("playlist_subgenre"),
		PopularityGE: convert.ToInt(query.Get("popularity_ge")),
	}

	if raw := query.Get("premiere_since"); raw != "" {
		parsed, err := validate.ParseDate(raw)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		filter.PremiereSince = date.Of(parsed)
	}

	songs, total, err := handler.service.Search(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, songs, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.Create(request.Context(), principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, song)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.Update(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "artist"),
		requestutil.Param(request, "album_name"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, song)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), principal(request),
		requestutil.Param(request, "title"), requestutil.Param(request, "artist"),
		requestutil.Param(request, "album_name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func principal(request *http.Request) sec.Principal {
	return requestutil.Claims(request).AsPrincipal()
}
