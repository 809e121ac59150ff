// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/kisanmanch/kisanmanch/internal/platform/blob"
	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/validate"
	"github.com/kisanmanch/kisanmanch/pkg/slug"
	"github.com/kisanmanch/kisanmanch/pkg/uuidv7"
)

// # Service Inputs

// CreateItemInput carries the wire values for a new item. String fields hold
// the raw form/body values; coercion and defaulting happen in the service.
type CreateItemInput struct {
	GroupTitle       string
	Title            string
	Description      string
	Category         string
	Region           string
	ContentKind      string
	UploadDate       string
	EngagementMetric *int
	File             *blob.File
}

// UpdateItemInput carries a partial update. Nil fields were absent from the
// request and leave the stored value untouched.
type UpdateItemInput struct {
	Title            *string
	Description      *string
	Category         *string
	Region           *string
	ContentKind      *string
	UploadDate       *string
	EngagementMetric *int
	File             *blob.File
}

// isEmpty reports whether the update carries neither fields nor a file.
func (input UpdateItemInput) isEmpty() bool {
	return input.Title == nil &&
		input.Description == nil &&
		input.Category == nil &&
		input.Region == nil &&
		input.ContentKind == nil &&
		input.UploadDate == nil &&
		input.EngagementMetric == nil &&
		input.File == nil
}

// # Service

// Service implements the information-center business rules on top of the
// repository, the asset store, and the feed cache.
//
// Write ordering is upload-first: the asset lands in the object store before
// the database row changes, so a storage failure aborts the operation and a
// database failure leaves at worst an orphaned object, never a dangling URL.
type Service struct {
	repo   Repository
	assets blob.Repository
	cache  FeedCache
	logger *slog.Logger
}

// NewService creates an information service. The cache may be nil, in which
// case every read goes to the repository.
func NewService(repo Repository, assets blob.Repository, cache FeedCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		assets: assets,
		cache:  cache,
		logger: logger,
	}
}

// # Read Operations

/*
ListGroups returns every group with its items, freshest group first.

Parameters:
  - ctx: Request context.

Returns:
  - []*Group: All groups in the collection, possibly empty.
  - error: Database failure.
*/
func (service *Service) ListGroups(ctx context.Context) ([]*Group, error) {
	if service.cache != nil {
		if groups, ok := service.cache.Get(ctx); ok {
			return groups, nil
		}
	}

	groups, err := service.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Set(ctx, groups)
	}
	return groups, nil
}

/*
ListFeed returns the flattened public feed, optionally re-sorted.

Parameters:
  - ctx: Request context.
  - sortKey: "", "date", or "engagement".

Returns:
  - []FlatItem: Every item across every group.
  - error: Validation failure on an unknown sort key, or database failure.
*/
func (service *Service) ListFeed(ctx context.Context, sortKey string) ([]FlatItem, error) {
	if sortKey != "" {
		v := &validate.Validator{}
		if err := v.OneOf(FieldSort, sortKey, FeedSortKeys...).Err(); err != nil {
			return nil, err
		}
	}

	groups, err := service.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	feed := Flatten(groups)
	SortFeed(feed, sortKey)
	return feed, nil
}

// # Write Operations

/*
CreateItem validates the input, uploads the attached asset if any, and
appends the new item to its group, creating the group on first use.

Parameters:
  - ctx: Request context.
  - input: Wire values plus optional file.

Returns:
  - *Group: The owning group after the append.
  - error: Validation failure, storage failure, or database failure.
*/
func (service *Service) CreateItem(ctx context.Context, input CreateItemInput) (*Group, error) {
	v := &validate.Validator{}
	v.Required(FieldGroupTitle, input.GroupTitle).
		OneOf(FieldGroupTitle, input.GroupTitle, groupNameStrings()...).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, constants.MaxTitleLength).
		Required(FieldDescription, input.Description).
		MaxLen(FieldDescription, input.Description, constants.MaxDescriptionLength).
		MaxLen(FieldRegion, input.Region, constants.MaxRegionLength)
	if input.Category != "" {
		v.OneOf(FieldCategory, input.Category, categoryStrings()...)
	}
	if input.ContentKind != "" {
		v.OneOf(FieldContentKind, input.ContentKind, contentKindStrings()...)
	}
	if input.UploadDate != "" {
		v.Date(FieldUploadDate, input.UploadDate)
	}
	if input.EngagementMetric != nil {
		v.NonNegative(FieldEngagementMetric, *input.EngagementMetric)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	item := Item{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Description: input.Description,
		Category:    CategorySubsidy,
		Region:      DefaultRegion,
		ContentKind: KindDocument,
		UploadDate:  time.Now().UTC(),
	}
	if input.Category != "" {
		item.Category = Category(input.Category)
	}
	if input.Region != "" {
		item.Region = input.Region
	}
	if input.ContentKind != "" {
		item.ContentKind = ContentKind(input.ContentKind)
	}
	if input.UploadDate != "" {
		parsed, _ := validate.ParseDate(input.UploadDate)
		item.UploadDate = parsed
	}
	if input.EngagementMetric != nil {
		item.EngagementMetric = *input.EngagementMetric
	}

	name := GroupName(input.GroupTitle)

	// ── 1. Push the asset before touching the database.
	if input.File != nil {
		stored, err := service.assets.Upload(ctx, service.assetKey(name, input.File.Filename), input.File)
		if err != nil {
			return nil, err
		}
		item.Image = stored.PublicURL
		item.ImageKey = stored.Key
	}

	// ── 2. Atomic get-or-create + append.
	group, err := service.repo.AppendItem(ctx, name, item)
	if err != nil {
		service.discardAsset(ctx, item.ImageKey)
		return nil, err
	}

	service.invalidate(ctx)
	service.logger.InfoContext(ctx, "information_item_created",
		slog.String("group_title", string(name)),
		slog.String("item_id", item.ID),
	)
	return group, nil
}

/*
UpdateItem merges a partial patch onto one item, replacing its stored asset
when a new file rides along.

Parameters:
  - ctx: Request context.
  - name: Owning group.
  - itemID: Target item.
  - input: Non-nil fields to change plus optional replacement file.

Returns:
  - *Item: The item after the merge.
  - error: Validation failure, ErrGroupNotFound, ErrItemNotFound, storage
    failure, or database failure.
*/
func (service *Service) UpdateItem(ctx context.Context, name GroupName, itemID string, input UpdateItemInput) (*Item, error) {
	if input.isEmpty() {
		return nil, validate.RequiredError("body", "No fields to update")
	}

	v := &validate.Validator{}
	v.OneOf(FieldGroupTitle, string(name), groupNameStrings()...).
		UUID("itemID", itemID)
	if input.Title != nil {
		v.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, constants.MaxTitleLength)
	}
	if input.Description != nil {
		v.Required(FieldDescription, *input.Description).MaxLen(FieldDescription, *input.Description, constants.MaxDescriptionLength)
	}
	if input.Category != nil {
		v.OneOf(FieldCategory, *input.Category, categoryStrings()...)
	}
	if input.Region != nil {
		v.Required(FieldRegion, *input.Region).MaxLen(FieldRegion, *input.Region, constants.MaxRegionLength)
	}
	if input.ContentKind != nil {
		v.OneOf(FieldContentKind, *input.ContentKind, contentKindStrings()...)
	}
	if input.UploadDate != nil {
		v.Date(FieldUploadDate, *input.UploadDate)
	}
	if input.EngagementMetric != nil {
		v.NonNegative(FieldEngagementMetric, *input.EngagementMetric)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := ItemPatch{
		Title:            input.Title,
		Description:      input.Description,
		Region:           input.Region,
		EngagementMetric: input.EngagementMetric,
	}
	if input.Category != nil {
		category := Category(*input.Category)
		patch.Category = &category
	}
	if input.ContentKind != nil {
		kind := ContentKind(*input.ContentKind)
		patch.ContentKind = &kind
	}
	if input.UploadDate != nil {
		parsed, _ := validate.ParseDate(*input.UploadDate)
		patch.UploadDate = &parsed
	}

	// ── 1. Replacement asset goes up before the row changes.
	if input.File != nil {
		stored, err := service.assets.Upload(ctx, service.assetKey(name, input.File.Filename), input.File)
		if err != nil {
			return nil, err
		}
		patch.Image = &stored.PublicURL
		patch.ImageKey = &stored.Key
	}

	// ── 2. Locked merge inside the group row.
	updated, previous, err := service.repo.UpdateItem(ctx, name, itemID, patch)
	if err != nil {
		if patch.ImageKey != nil {
			service.discardAsset(ctx, *patch.ImageKey)
		}
		return nil, err
	}

	// ── 3. Drop the replaced asset, best-effort.
	if previous.ImageKey != "" && previous.ImageKey != updated.ImageKey {
		service.discardAsset(ctx, previous.ImageKey)
	}

	service.invalidate(ctx)
	service.logger.InfoContext(ctx, "information_item_updated",
		slog.String("group_title", string(name)),
		slog.String("item_id", itemID),
	)
	return updated, nil
}

/*
DeleteItem removes one item from its group and releases its stored asset.

Parameters:
  - ctx: Request context.
  - name: Owning group.
  - itemID: Target item.

Returns:
  - error: ErrGroupNotFound, ErrItemNotFound, or database failure. Asset
    cleanup failures are logged, never returned.
*/
func (service *Service) DeleteItem(ctx context.Context, name GroupName, itemID string) error {
	v := &validate.Validator{}
	if err := v.OneOf(FieldGroupTitle, string(name), groupNameStrings()...).
		UUID("itemID", itemID).
		Err(); err != nil {
		return err
	}

	removed, err := service.repo.RemoveItem(ctx, name, itemID)
	if err != nil {
		return err
	}

	service.discardAsset(ctx, removed.ImageKey)
	service.invalidate(ctx)
	service.logger.InfoContext(ctx, "information_item_deleted",
		slog.String("group_title", string(name)),
		slog.String("item_id", itemID),
	)
	return nil
}

// # Internals

// assetKey derives a unique, readable object key for an uploaded file.
func (service *Service) assetKey(name GroupName, filename string) string {
	base := slug.From(filename[:len(filename)-len(filepath.Ext(filename))])
	if base == "" {
		base = "asset"
	}
	return path.Join(
		constants.StoragePrefixInformation,
		string(name),
		uuidv7.New()+"-"+base+filepath.Ext(filename),
	)
}

// discardAsset deletes an object best-effort. A miss or a storage outage is
// logged and swallowed: content mutations never fail on cleanup.
func (service *Service) discardAsset(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := service.assets.Delete(ctx, key); err != nil {
		service.logger.WarnContext(ctx, "information_asset_cleanup_failed",
			slog.String("object_key", key),
			slog.String("error", err.Error()),
		)
	}
}

func (service *Service) invalidate(ctx context.Context) {
	if service.cache != nil {
		service.cache.Invalidate(ctx)
	}
}

// # Enum Helpers

func groupNameStrings() []string {
	out := make([]string, len(GroupNames))
	for i, name := range GroupNames {
		out[i] = string(name)
	}
	return out
}

func categoryStrings() []string {
	out := make([]string, len(Categories))
	for i, category := range Categories {
		out[i] = string(category)
	}
	return out
}

func contentKindStrings() []string {
	out := make([]string, len(ContentKinds))
	for i, kind := range ContentKinds {
		out[i] = string(kind)
	}
	return out
}
