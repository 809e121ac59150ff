// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/kisanmanch/kisanmanch/internal/platform/blob"
	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/validate"
	"github.com/kisanmanch/kisanmanch/pkg/slug"
	"github.com/kisanmanch/kisanmanch/pkg/uuidv7"
)

// # Service Inputs

// CreateInput carries the wire values for a new milestone. Gallery files are
// uploaded in request order and their captions matched by position.
type CreateInput struct {
	Title          string
	Description    string
	Date           string
	Impact         string
	IsKeyMilestone bool
	Gallery        []*blob.File
	Captions       []string
}

// UpdateInput carries a partial update. A non-empty Gallery replaces the
// milestone's whole gallery.
type UpdateInput struct {
	Title          *string
	Description    *string
	Date           *string
	Impact         *string
	IsKeyMilestone *bool
	Gallery        []*blob.File
	Captions       []string
}

func (input UpdateInput) isEmpty() bool {
	return input.Title == nil &&
		input.Description == nil &&
		input.Date == nil &&
		input.Impact == nil &&
		input.IsKeyMilestone == nil &&
		len(input.Gallery) == 0
}

// # Service

// Service implements the timeline business rules.
type Service struct {
	repo   Repository
	assets blob.Repository
	logger *slog.Logger
}

// NewService creates a timeline service.
func NewService(repo Repository, assets blob.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, assets: assets, logger: logger}
}

// List returns the full timeline, oldest milestone first.
func (service *Service) List(ctx context.Context) ([]*Milestone, error) {
	return service.repo.List(ctx)
}

/*
Create validates the input, uploads the gallery, and inserts the milestone.

Returns:
  - *Milestone: The stored milestone.
  - error: Validation, storage, or database failure.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Milestone, error) {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, constants.MaxTitleLength).
		Required(FieldDescription, input.Description).
		MaxLen(FieldDescription, input.Description, constants.MaxDescriptionLength).
		Required(FieldDate, input.Date).
		Date(FieldDate, input.Date)
	if err := v.Err(); err != nil {
		return nil, err
	}
	date, _ := validate.ParseDate(input.Date)

	gallery, err := service.uploadGallery(ctx, input.Gallery, input.Captions)
	if err != nil {
		return nil, err
	}

	milestone := &Milestone{
		ID:             uuidv7.New(),
		Title:          input.Title,
		Description:    input.Description,
		Date:           date,
		Impact:         input.Impact,
		IsKeyMilestone: input.IsKeyMilestone,
		Gallery:        gallery,
	}
	if err := service.repo.Create(ctx, milestone); err != nil {
		service.discardGallery(ctx, gallery)
		return nil, err
	}

	service.logger.InfoContext(ctx, "timeline_milestone_created",
		slog.String("milestone_id", milestone.ID),
		slog.Time("milestone_date", milestone.Date),
	)
	return milestone, nil
}

/*
Update merges a partial patch onto one milestone. New gallery files replace
the existing gallery; the superseded images are released afterwards.

Returns:
  - *Milestone: The milestone after the merge.
  - error: Validation failure, ErrNotFound, storage or database failure.
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Milestone, error) {
	if input.isEmpty() {
		return nil, validate.RequiredError("body", "No fields to update")
	}

	v := &validate.Validator{}
	v.UUID("id", id)
	if input.Title != nil {
		v.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, constants.MaxTitleLength)
	}
	if input.Description != nil {
		v.Required(FieldDescription, *input.Description).MaxLen(FieldDescription, *input.Description, constants.MaxDescriptionLength)
	}
	if input.Date != nil {
		v.Date(FieldDate, *input.Date)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := Patch{
		Title:          input.Title,
		Description:    input.Description,
		Impact:         input.Impact,
		IsKeyMilestone: input.IsKeyMilestone,
	}
	if input.Date != nil {
		date, _ := validate.ParseDate(*input.Date)
		patch.Date = &date
	}

	var uploaded []GalleryImage
	if len(input.Gallery) > 0 {
		gallery, err := service.uploadGallery(ctx, input.Gallery, input.Captions)
		if err != nil {
			return nil, err
		}
		uploaded = gallery
		patch.Gallery = &gallery
	}

	updated, previous, err := service.repo.Update(ctx, id, patch)
	if err != nil {
		service.discardGallery(ctx, uploaded)
		return nil, err
	}

	if patch.Gallery != nil {
		service.discardGallery(ctx, previous.Gallery)
	}

	service.logger.InfoContext(ctx, "timeline_milestone_updated", slog.String("milestone_id", id))
	return updated, nil
}

/*
Delete removes one milestone and releases its gallery images.

Returns:
  - error: Validation failure, ErrNotFound, or database failure.
*/
func (service *Service) Delete(ctx context.Context, id string) error {
	v := &validate.Validator{}
	if err := v.UUID("id", id).Err(); err != nil {
		return err
	}

	removed, err := service.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	service.discardGallery(ctx, removed.Gallery)
	service.logger.InfoContext(ctx, "timeline_milestone_deleted", slog.String("milestone_id", id))
	return nil
}

// # Internals

// uploadGallery pushes the files in order, unwinding already-stored objects
// if a later upload fails so a partial gallery never leaks.
func (service *Service) uploadGallery(ctx context.Context, files []*blob.File, captions []string) ([]GalleryImage, error) {
	gallery := make([]GalleryImage, 0, len(files))
	for index, file := range files {
		stored, err := service.assets.Upload(ctx, service.assetKey(file.Filename), file)
		if err != nil {
			service.discardGallery(ctx, gallery)
			return nil, err
		}

		image := GalleryImage{URL: stored.PublicURL, Key: stored.Key}
		if index < len(captions) {
			image.Caption = captions[index]
		}
		gallery = append(gallery, image)
	}
	return gallery, nil
}

func (service *Service) assetKey(filename string) string {
	base := slug.From(filename[:len(filename)-len(filepath.Ext(filename))])
	if base == "" {
		base = "asset"
	}
	return path.Join(constants.StoragePrefixTimeline, uuidv7.New()+"-"+base+filepath.Ext(filename))
}

func (service *Service) discardGallery(ctx context.Context, gallery []GalleryImage) {
	for _, image := range gallery {
		if image.Key == "" {
			continue
		}
		if err := service.assets.Delete(ctx, image.Key); err != nil {
			service.logger.WarnContext(ctx, "timeline_asset_cleanup_failed",
				slog.String("object_key", image.Key),
				slog.String("error", err.Error()),
			)
		}
	}
}
