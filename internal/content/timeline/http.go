// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kisanmanch/kisanmanch/internal/platform/blob"
	"github.com/kisanmanch/kisanmanch/internal/platform/middleware"
	requestutil "github.com/kisanmanch/kisanmanch/internal/platform/request"
	"github.com/kisanmanch/kisanmanch/internal/platform/respond"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
	"github.com/kisanmanch/kisanmanch/internal/platform/validate"
)

// Handler exposes the timeline HTTP surface.
type Handler struct {
	service *Service
}

// NewHandler creates a timeline HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /api/v1/timeline.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireRole(sec.RoleEditor))
		router.Post("/", handler.create)
		router.Put("/{id}", handler.update)
		router.Delete("/{id}", handler.remove)
	})

	return router
}

type updateRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Date           *string `json:"date"`
	Impact         *string `json:"impact"`
	IsKeyMilestone *bool   `json:"isKeyMilestone"`
}

// # Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	milestones, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, milestones)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	gallery, err := galleryFiles(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	keyMilestone, err := formBool(request, FieldIsKeyMilestone)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	milestone, err := handler.service.Create(request.Context(), CreateInput{
		Title:          request.FormValue(FieldTitle),
		Description:    request.FormValue(FieldDescription),
		Date:           request.FormValue(FieldDate),
		Impact:         request.FormValue(FieldImpact),
		IsKeyMilestone: keyMilestone,
		Gallery:        gallery,
		Captions:       formValues(request, "caption"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, milestone)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	input, err := handler.decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	milestone, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, milestone)
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
			Title:          body.Title,
			Description:    body.Description,
			Date:           body.Date,
			Impact:         body.Impact,
			IsKeyMilestone: body.IsKeyMilestone,
		}, nil
	}

	if err := requestutil.ParseMultipart(request); err != nil {
		return UpdateInput{}, err
	}
	gallery, err := galleryFiles(request)
	if err != nil {
		return UpdateInput{}, err
	}
	keyMilestone, err := formOptionalBool(request, FieldIsKeyMilestone)
	if err != nil {
		return UpdateInput{}, err
	}

	return UpdateInput{
		Title:          formOptional(request, FieldTitle),
		Description:    formOptional(request, FieldDescription),
		Date:           formOptional(request, FieldDate),
		Impact:         formOptional(request, FieldImpact),
		IsKeyMilestone: keyMilestone,
		Gallery:        gallery,
		Captions:       formValues(request, "caption"),
	}, nil
}

// galleryFiles opens every uploaded "gallery" part in request order.
func galleryFiles(request *http.Request) ([]*blob.File, error) {
	if request.MultipartForm == nil {
		return nil, nil
	}

	headers := request.MultipartForm.File[FieldGallery]
	files := make([]*blob.File, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			return nil, validate.ErrInvalidForm
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		files = append(files, &blob.File{
			Filename:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Body:        part,
		})
	}
	return files, nil
}

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

func formValues(request *http.Request, field string) []string {
	if request.MultipartForm == nil {
		return nil
	}
	return request.MultipartForm.Value[field]
}

func formBool(request *http.Request, field string) (bool, error) {
	raw := request.FormValue(field)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, validate.RequiredError(field, "Must be true or false")
	}
	return value, nil
}

func formOptionalBool(request *http.Request, field string) (*bool, error) {
	raw := formOptional(request, field)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, validate.RequiredError(field, "Must be true or false")
	}
	return &value, nil
}
