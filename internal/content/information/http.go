// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kisanmanch/kisanmanch/internal/platform/middleware"
	requestutil "github.com/kisanmanch/kisanmanch/internal/platform/request"
	"github.com/kisanmanch/kisanmanch/internal/platform/respond"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
	"github.com/kisanmanch/kisanmanch/internal/platform/validate"
)

// Handler exposes the information-center HTTP surface.
//
// Mutations accept either a JSON body or a multipart form; multipart is used
// whenever the client attaches a file, JSON otherwise. Both shapes share the
// same wire field names.
type Handler struct {
	service *Service
}

// NewHandler creates an information HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /api/v1/information.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public reads
	router.Get("/", handler.list)
	router.Get("/feed", handler.feed)

	// Editor-gated writes
	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireRole(sec.RoleEditor))
		router.Post("/", handler.create)
		router.Put("/{groupTitle}/{itemID}", handler.update)
		router.Delete("/{groupTitle}/{itemID}", handler.remove)
	})

	return router
}

// # Wire Types

type createItemRequest struct {
	GroupTitle       string `json:"groupTitle"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Region           string `json:"region"`
	ContentKind      string `json:"contentKind"`
	UploadDate       string `json:"uploadDate"`
	EngagementMetric *int   `json:"engagementMetric"`
}

type updateItemRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Category         *string `json:"category"`
	Region           *string `json:"region"`
	ContentKind      *string `json:"contentKind"`
	UploadDate       *string `json:"uploadDate"`
	EngagementMetric *int    `json:"engagementMetric"`
}

// # Read Handlers

// list returns every group with its embedded items.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.ListGroups(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

// feed returns the flattened cross-group feed, optionally sorted by
// ?sort=date or ?sort=engagement.
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	feed, err := handler.service.ListFeed(request.Context(), request.URL.Query().Get(FieldSort))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, feed)
}

// # Write Handlers

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Decode either wire shape into one input.
	input, err := handler.decodeCreate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Validate, upload, append.
	group, err := handler.service.CreateItem(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Return the full owning group so the admin UI can re-render it.
	respond.Created(writer, group)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	name := GroupName(requestutil.Param(request, FieldGroupTitle))
	itemID := requestutil.Param(request, "itemID")

	input, err := handler.decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateItem(request.Context(), name, itemID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	name := GroupName(requestutil.Param(request, FieldGroupTitle))
	itemID := requestutil.Param(request, "itemID")

	if err := handler.service.DeleteItem(request.Context(), name, itemID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Deleted(writer)
}

// # Decoding

func (handler *Handler) decodeCreate(request *http.Request) (CreateItemInput, error) {
	if !isMultipart(request) {
		var body createItemRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			return CreateItemInput{}, err
		}
		return CreateItemInput{
			GroupTitle:       body.GroupTitle,
			Title:            body.Title,
			Description:      body.Description,
			Category:         body.Category,
			Region:           body.Region,
			ContentKind:      body.ContentKind,
			UploadDate:       body.UploadDate,
			EngagementMetric: body.EngagementMetric,
		}, nil
	}

	if err := requestutil.ParseMultipart(request); err != nil {
		return CreateItemInput{}, err
	}
	file, err := requestutil.FormFile(request, FieldImage)
	if err != nil {
		return CreateItemInput{}, err
	}
	metric, err := formInt(request, FieldEngagementMetric)
	if err != nil {
		return CreateItemInput{}, err
	}

	return CreateItemInput{
		GroupTitle:       request.FormValue(FieldGroupTitle),
		Title:            request.FormValue(FieldTitle),
		Description:      request.FormValue(FieldDescription),
		Category:         request.FormValue(FieldCategory),
		Region:           request.FormValue(FieldRegion),
		ContentKind:      request.FormValue(FieldContentKind),
		UploadDate:       request.FormValue(FieldUploadDate),
		EngagementMetric: metric,
		File:             file,
	}, nil
}

func (handler *Handler) decodeUpdate(request *http.Request) (UpdateItemInput, error) {
	if !isMultipart(request) {
		var body updateItemRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			return UpdateItemInput{}, err
		}
		return UpdateItemInput{
			Title:            body.Title,
			Description:      body.Description,
			Category:         body.Category,
			Region:           body.Region,
			ContentKind:      body.ContentKind,
			UploadDate:       body.UploadDate,
			EngagementMetric: body.EngagementMetric,
		}, nil
	}

	if err := requestutil.ParseMultipart(request); err != nil {
		return UpdateItemInput{}, err
	}
	file, err := requestutil.FormFile(request, FieldImage)
	if err != nil {
		return UpdateItemInput{}, err
	}
	metric, err := formInt(request, FieldEngagementMetric)
	if err != nil {
		return UpdateItemInput{}, err
	}

	return UpdateItemInput{
		Title:            formOptional(request, FieldTitle),
		Description:      formOptional(request, FieldDescription),
		Category:         formOptional(request, FieldCategory),
		Region:           formOptional(request, FieldRegion),
		ContentKind:      formOptional(request, FieldContentKind),
		UploadDate:       formOptional(request, FieldUploadDate),
		EngagementMetric: metric,
		File:             file,
	}, nil
}

func isMultipart(request *http.Request) bool {
	return strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data")
}

// formOptional distinguishes "field absent" from "field set to empty": only
// fields actually present in the form participate in the merge.
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

func formInt(request *http.Request, field string) (*int, error) {
	raw := formOptional(request, field)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, validate.RequiredError(field, "Must be an integer")
	}
	return &value, nil
}
