package assessment

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

// RegisterRoutes mounts the assessment endpoints. Every route requires an
// authenticated principal.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/search", handler.search)
		protected.Post("/add", handler.add)
		protected.Patch("/update/{category}/{id_number}", handler.update)
		protected.Delete("/delete/{category}/{id_number}", handler.remove)
	})
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := SearchFilter{
		Category: query.Get("category"),
		Title:    query.Get("title"),
		Wishlist: query.Get("wishlist"),
		PrivRate: query.Get("priv_rate"),
	}
	if raw := query.Get("watchlist"); raw != "" {
		filter.Watchlist = pointer.To(convert.ToBool(raw))
	}
	if raw := query.Get("finished"); raw != "" {
		filter.Finished = pointer.To(convert.ToBool(raw))
	}

	assessments, total, err := handler.service.Search(request.Context(),
		principal(request), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, assessments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assessment, err := handler.service.Create(request.Context(), principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, assessment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assessment, err := handler.service.Update(request.Context(), principal(request),
		requestutil.Param(request, "category"),
		convert.ToInt(requestutil.Param(request, "id_number")), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assessment)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), principal(request),
		requestutil.Param(request, "category"),
		convert.ToInt(requestutil.Param(request, "id_number")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func principal(request *http.Request) sec.Principal {
	return requestutil.Claims(request).AsPrincipal()
}
