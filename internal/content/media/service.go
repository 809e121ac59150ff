// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/kisanmanch/kisanmanch/internal/platform/blob"
	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/validate"
	"github.com/kisanmanch/kisanmanch/pkg/pagination"
	"github.com/kisanmanch/kisanmanch/pkg/slug"
	"github.com/kisanmanch/kisanmanch/pkg/uuidv7"
)

// durationPattern accepts "mm:ss" and "hh:mm:ss" display durations.
var durationPattern = regexp.MustCompile(`^(\d{1,2}:)?\d{1,2}:\d{2}$`)

// # Service Inputs

// CreateInput carries the wire values for a new media entry.
type CreateInput struct {
	Title       string
	Description string
	Kind        string
	Category    string
	Duration    string
	PublishedAt string
	File        *blob.File
	Thumbnail   *blob.File
}

// UpdateInput carries a partial update; nil fields are untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Kind        *string
	Category    *string
	Duration    *string
	PublishedAt *string
	File        *blob.File
	Thumbnail   *blob.File
}

func (input UpdateInput) isEmpty() bool {
	return input.Title == nil &&
		input.Description == nil &&
		input.Kind == nil &&
		input.Category == nil &&
		input.Duration == nil &&
		input.PublishedAt == nil &&
		input.File == nil &&
		input.Thumbnail == nil
}

// # Service

// Service implements the media-library business rules. Asset handling
// follows the same upload-first, cleanup-last ordering as the information
// center.
type Service struct {
	repo   Repository
	assets blob.Repository
	logger *slog.Logger
}

// NewService creates a media service.
func NewService(repo Repository, assets blob.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, assets: assets, logger: logger}
}

/*
List returns one page of the library, newest published first.

Parameters:
  - ctx: Request context.
  - filter: Optional kind/category restriction.
  - page: Parsed pagination parameters.

Returns:
  - []*Item: The page of entries.
  - pagination.Meta: Page metadata for the response envelope.
  - error: Validation or database failure.
*/
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Item, pagination.Meta, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, pagination.Meta{}, validate.RequiredError(FieldKind, "Must be one of: photo, video")
	}

	items, total, err := service.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(page.Page, page.Limit, total), nil
}

/*
Get returns one entry and counts the view in the background of the request.

Returns:
  - *Item: The entry, with the view already counted.
  - error: ErrNotFound or database failure.
*/
func (service *Service) Get(ctx context.Context, id string) (*Item, error) {
	v := &validate.Validator{}
	if err := v.UUID("id", id).Err(); err != nil {
		return nil, err
	}

	item, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Counter bump is best-effort; a lost view is not worth a failed read.
	if err := service.repo.IncrementViews(ctx, id); err != nil {
		service.logger.WarnContext(ctx, "media_view_count_failed",
			slog.String("media_id", id),
			slog.String("error", err.Error()),
		)
	} else {
		item.ViewCount++
	}
	return item, nil
}

/*
Create validates the input, uploads the primary file and optional thumbnail,
and inserts the entry.

Returns:
  - *Item: The stored entry.
  - error: Validation, storage, or database failure.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Item, error) {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, constants.MaxTitleLength).
		MaxLen(FieldDescription, input.Description, constants.MaxDescriptionLength)
	if input.Kind != "" {
		v.OneOf(FieldKind, input.Kind, string(KindPhoto), string(KindVideo))
	}
	if input.Duration != "" {
		v.Custom(FieldDuration, !durationPattern.MatchString(input.Duration), "Must look like mm:ss or hh:mm:ss")
	}
	if input.PublishedAt != "" {
		v.Date(FieldPublishedAt, input.PublishedAt)
	}
	v.Custom(FieldFile, input.File == nil, "A media file is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	item := &Item{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Description: input.Description,
		Kind:        KindPhoto,
		Category:    input.Category,
		Duration:    input.Duration,
		PublishedAt: time.Now().UTC(),
	}
	if input.Kind != "" {
		item.Kind = Kind(input.Kind)
	}
	if input.PublishedAt != "" {
		parsed, _ := validate.ParseDate(input.PublishedAt)
		item.PublishedAt = parsed
	}

	// ── 1. Primary file, then thumbnail, before any row exists.
	stored, err := service.assets.Upload(ctx, service.assetKey(input.File.Filename), input.File)
	if err != nil {
		return nil, err
	}
	item.FileURL = stored.PublicURL
	item.FileKey = stored.Key

	if input.Thumbnail != nil {
		thumb, err := service.assets.Upload(ctx, service.assetKey(input.Thumbnail.Filename), input.Thumbnail)
		if err != nil {
			service.discardAsset(ctx, item.FileKey)
			return nil, err
		}
		item.ThumbnailURL = thumb.PublicURL
		item.ThumbnailKey = thumb.Key
	}

	// ── 2. Persist, rolling the objects back on failure.
	if err := service.repo.Create(ctx, item); err != nil {
		service.discardAsset(ctx, item.FileKey)
		service.discardAsset(ctx, item.ThumbnailKey)
		return nil, err
	}

	service.logger.InfoContext(ctx, "media_item_created",
		slog.String("media_id", item.ID),
		slog.String("kind", string(item.Kind)),
	)
	return item, nil
}

/*
Update merges a partial patch, replacing stored assets when new files ride
along.

Returns:
  - *Item: The entry after the merge.
  - error: Validation failure, ErrNotFound, storage or database failure.
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Item, error) {
	if input.isEmpty() {
		return nil, validate.RequiredError("body", "No fields to update")
	}

	v := &validate.Validator{}
	v.UUID("id", id)
	if input.Title != nil {
		v.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, constants.MaxTitleLength)
	}
	if input.Description != nil {
		v.MaxLen(FieldDescription, *input.Description, constants.MaxDescriptionLength)
	}
	if input.Kind != nil {
		v.OneOf(FieldKind, *input.Kind, string(KindPhoto), string(KindVideo))
	}
	if input.Duration != nil && *input.Duration != "" {
		v.Custom(FieldDuration, !durationPattern.MatchString(*input.Duration), "Must look like mm:ss or hh:mm:ss")
	}
	if input.PublishedAt != nil {
		v.Date(FieldPublishedAt, *input.PublishedAt)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := Patch{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Duration:    input.Duration,
	}
	if input.Kind != nil {
		kind := Kind(*input.Kind)
		patch.Kind = &kind
	}
	if input.PublishedAt != nil {
		parsed, _ := validate.ParseDate(*input.PublishedAt)
		patch.PublishedAt = &parsed
	}

	if input.File != nil {
		stored, err := service.assets.Upload(ctx, service.assetKey(input.File.Filename), input.File)
		if err != nil {
			return nil, err
		}
		patch.FileURL = &stored.PublicURL
		patch.FileKey = &stored.Key
	}
	if input.Thumbnail != nil {
		thumb, err := service.assets.Upload(ctx, service.assetKey(input.Thumbnail.Filename), input.Thumbnail)
		if err != nil {
			if patch.FileKey != nil {
				service.discardAsset(ctx, *patch.FileKey)
			}
			return nil, err
		}
		patch.ThumbnailURL = &thumb.PublicURL
		patch.ThumbnailKey = &thumb.Key
	}

	updated, previous, err := service.repo.Update(ctx, id, patch)
	if err != nil {
		if patch.FileKey != nil {
			service.discardAsset(ctx, *patch.FileKey)
		}
		if patch.ThumbnailKey != nil {
			service.discardAsset(ctx, *patch.ThumbnailKey)
		}
		return nil, err
	}

	if previous.FileKey != "" && previous.FileKey != updated.FileKey {
		service.discardAsset(ctx, previous.FileKey)
	}
	if previous.ThumbnailKey != "" && previous.ThumbnailKey != updated.ThumbnailKey {
		service.discardAsset(ctx, previous.ThumbnailKey)
	}

	service.logger.InfoContext(ctx, "media_item_updated", slog.String("media_id", id))
	return updated, nil
}

/*
Delete removes one entry and releases its stored assets.

Returns:
  - error: Validation failure, ErrNotFound, or database failure. Asset
    cleanup failures are logged, never returned.
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

	service.discardAsset(ctx, removed.FileKey)
	service.discardAsset(ctx, removed.ThumbnailKey)
	service.logger.InfoContext(ctx, "media_item_deleted", slog.String("media_id", id))
	return nil
}

// # Internals

func (service *Service) assetKey(filename string) string {
	base := slug.From(filename[:len(filename)-len(filepath.Ext(filename))])
	if base == "" {
		base = "asset"
	}
	return path.Join(constants.StoragePrefixMedia, uuidv7.New()+"-"+base+filepath.Ext(filename))
}

func (service *Service) discardAsset(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := service.assets.Delete(ctx, key); err != nil {
		service.logger.WarnContext(ctx, "media_asset_cleanup_failed",
			slog.String("object_key", key),
			slog.String("error", err.Error()),
		)
	}
}
