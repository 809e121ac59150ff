// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kisanmanch/kisanmanch/internal/platform/middleware"
	requestutil "github.com/kisanmanch/kisanmanch/internal/platform/request"
	"github.com/kisanmanch/kisanmanch/internal/platform/respond"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
	"github.com/kisanmanch/kisanmanch/pkg/pagination"
)

// Handler exposes the media-library HTTP surface.
//
// Creation is multipart-only because an entry without a file is meaningless;
// updates accept multipart when a replacement file rides along and JSON for
// metadata-only edits.
type Handler struct {
	service *Service
}

// NewHandler creates a media HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /api/v1/media.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireRole(sec.RoleEditor))
		router.Post("/", handler.create)
		router.Put("/{id}", handler.update)
		router.Delete("/{id}", handler.remove)
	})

	return router
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
	Category    *string `json:"category"`
	Duration    *string `json:"duration"`
	PublishedAt *string `json:"publishedAt"`
}

// # Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Kind:     Kind(request.URL.Query().Get(FieldKind)),
		Category: request.URL.Query().Get(FieldCategory),
	}

	items, meta, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := requestutil.FormFile(request, FieldFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	thumbnail, err := requestutil.FormFile(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), CreateInput{
		Title:       request.FormValue(FieldTitle),
		Description: request.FormValue(FieldDescription),
		Kind:        request.FormValue(FieldKind),
		Category:    request.FormValue(FieldCategory),
		Duration:    request.FormValue(FieldDuration),
		PublishedAt: request.FormValue(FieldPublishedAt),
		File:        file,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	input, err := handler.decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Deleted(writer)
}

// # Decoding

func (handler *Handler) decodeUpdate(request *http.Request) (UpdateInput, error) {
	if !strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data") {
		var body updateRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			return UpdateInput{}, err
		}
		return UpdateInput{
			Title:       body.Title,
			Description: body.Description,
			Kind:        body.Kind,
			Category:    body.Category,
			Duration:    body.Duration,
			PublishedAt: body.PublishedAt,
		}, nil
	}

	if err := requestutil.ParseMultipart(request); err != nil {
		return UpdateInput{}, err
	}
	file, err := requestutil.FormFile(request, FieldFile)
	if err != nil {
		return UpdateInput{}, err
	}
	thumbnail, err := requestutil.FormFile(request, FieldThumbnail)
	if err != nil {
		return UpdateInput{}, err
	}

	return UpdateInput{
		Title:       formOptional(request, FieldTitle),
		Description: formOptional(request, FieldDescription),
		Kind:        formOptional(request, FieldKind),
		Category:    formOptional(request, FieldCategory),
		Duration:    formOptional(request, FieldDuration),
		PublishedAt: formOptional(request, FieldPublishedAt),
		File:        file,
		Thumbnail:   thumbnail,
	}, nil
}

// formOptional distinguishes "field absent" from "field set to empty".
func formOptional(request *http.Request, field string) *string {
	if request.MultipartForm == nil {
		return nil
	}
	values, ok := request.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
