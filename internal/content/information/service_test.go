// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
	"github.com/kisanmanch/kisanmanch/internal/platform/blob"
	"github.com/kisanmanch/kisanmanch/pkg/pointer"
	"github.com/kisanmanch/kisanmanch/pkg/uuidv7"
)

// # Fakes

// memoryRepository mirrors the Postgres semantics in memory: one entry per
// group title, ordered items, get-or-create on append, distinct not-found
// errors for group and item.
type memoryRepository struct {
	groups []*Group
}

var _ Repository = (*memoryRepository)(nil)

func (repo *memoryRepository) List(_ context.Context) ([]*Group, error) {
	out := make([]*Group, len(repo.groups))
	copy(out, repo.groups)
	return out, nil
}

func (repo *memoryRepository) AppendItem(_ context.Context, name GroupName, item Item) (*Group, error) {
	group := repo.find(name)
	if group == nil {
		group = &Group{ID: uuidv7.New(), GroupTitle: name}
		repo.groups = append(repo.groups, group)
	}
	group.Items = append(group.Items, item)
	return group, nil
}

func (repo *memoryRepository) UpdateItem(_ context.Context, name GroupName, itemID string, patch ItemPatch) (*Item, *Item, error) {
	group := repo.find(name)
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}
	index := indexOfItem(group.Items, itemID)
	if index < 0 {
		return nil, nil, ErrItemNotFound
	}

	previous := group.Items[index]
	patch.Apply(&group.Items[index])
	updated := group.Items[index]
	return &updated, &previous, nil
}

func (repo *memoryRepository) RemoveItem(_ context.Context, name GroupName, itemID string) (*Item, error) {
	group := repo.find(name)
	if group == nil {
		return nil, ErrGroupNotFound
	}
	index := indexOfItem(group.Items, itemID)
	if index < 0 {
		return nil, ErrItemNotFound
	}

	removed := group.Items[index]
	group.Items = append(group.Items[:index], group.Items[index+1:]...)
	return &removed, nil
}

func (repo *memoryRepository) find(name GroupName) *Group {
	for _, group := range repo.groups {
		if group.GroupTitle == name {
			return group
		}
	}
	return nil
}

// memoryAssets records object-store traffic and can simulate an outage.
type memoryAssets struct {
	uploads    []string
	deletes    []string
	uploadFail bool
}

var _ blob.Repository = (*memoryAssets)(nil)

func (assets *memoryAssets) Upload(_ context.Context, key string, file *blob.File) (*blob.Data, error) {
	if assets.uploadFail {
		return nil, apperr.StorageUnavailable(errors.New("connection refused"))
	}
	assets.uploads = append(assets.uploads, key)
	return &blob.Data{
		Key:         key,
		PublicURL:   "https://assets.kisanmanch.org/" + key,
		ContentType: file.ContentType,
		Size:        file.Size,
	}, nil
}

func (assets *memoryAssets) Delete(_ context.Context, key string) error {
	assets.deletes = append(assets.deletes, key)
	return nil
}

func (assets *memoryAssets) Get(_ context.Context, _ string) (io.ReadCloser, *blob.Data, error) {
	return nil, nil, errors.New("not implemented")
}

// memoryCache counts invalidations so tests can assert writes bust the feed.
type memoryCache struct {
	groups        []*Group
	sets          int
	invalidations int
}

var _ FeedCache = (*memoryCache)(nil)

func (cache *memoryCache) Get(_ context.Context) ([]*Group, bool) {
	if cache.groups == nil {
		return nil, false
	}
	return cache.groups, true
}

func (cache *memoryCache) Set(_ context.Context, groups []*Group) {
	cache.groups = groups
	cache.sets++
}

func (cache *memoryCache) Invalidate(_ context.Context) {
	cache.groups = nil
	cache.invalidations++
}

func newTestService() (*Service, *memoryRepository, *memoryAssets, *memoryCache) {
	repo := &memoryRepository{}
	assets := &memoryAssets{}
	cache := &memoryCache{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, assets, cache, logger), repo, assets, cache
}

func testFile(name string) *blob.File {
	return &blob.File{
		Filename:    name,
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("data"),
	}
}

// # Create

/*
TestCreateItemDefaults verifies a minimal create fills every optional field
with its documented default and the item lands in the named group.
*/
func TestCreateItemDefaults(t *testing.T) {
	service, _, _, _ := newTestService()

	group, err := service.CreateItem(context.Background(), CreateItemInput{
		GroupTitle:  string(GroupGovernmentSchemes),
		Title:       "PM-KISAN Samman Nidhi",
		Description: "Rs 6000 per year income support.",
	})
	require.NoError(t, err)
	require.Len(t, group.Items, 1)

	item := group.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, CategorySubsidy, item.Category)
	assert.Equal(t, "national", item.Region)
	assert.Equal(t, KindDocument, item.ContentKind)
	assert.Zero(t, item.EngagementMetric)
	assert.False(t, item.UploadDate.IsZero())
	assert.Empty(t, item.Image)
}

/*
TestCreateItemValidation verifies the closed enums and required fields are
enforced before anything is uploaded or persisted.
*/
func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateItemInput
		field string
	}{
		{
			"unknown group title",
			CreateItemInput{GroupTitle: "marketPrices", Title: "t", Description: "d"},
			FieldGroupTitle,
		},
		{
			"missing title",
			CreateItemInput{GroupTitle: string(GroupNewsUpdates), Description: "d"},
			FieldTitle,
		},
		{
			"missing description",
			CreateItemInput{GroupTitle: string(GroupNewsUpdates), Title: "t"},
			FieldDescription,
		},
		{
			"unknown category",
			CreateItemInput{GroupTitle: string(GroupNewsUpdates), Title: "t", Description: "d", Category: "finance"},
			FieldCategory,
		},
		{
			"unknown content kind",
			CreateItemInput{GroupTitle: string(GroupNewsUpdates), Title: "t", Description: "d", ContentKind: "audio"},
			FieldContentKind,
		},
		{
			"bad upload date",
			CreateItemInput{GroupTitle: string(GroupNewsUpdates), Title: "t", Description: "d", UploadDate: "14-03-2026"},
			FieldUploadDate,
		},
		{
			"negative engagement",
			CreateItemInput{GroupTitle: string(GroupNewsUpdates), Title: "t", Description: "d", EngagementMetric: pointer.To(-1)},
			FieldEngagementMetric,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, repo, assets, _ := newTestService()

			_, err := service.CreateItem(context.Background(), tc.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tc.field, appErr.Details[0].Field)
			assert.Empty(t, repo.groups)
			assert.Empty(t, assets.uploads)
		})
	}
}

/*
TestCreateItemGroupReuse verifies group-title uniqueness: repeated creates
under one title accumulate items in a single group while other titles get
their own, and each write busts the feed cache.
*/
func TestCreateItemGroupReuse(t *testing.T) {
	service, repo, _, cache := newTestService()
	ctx := context.Background()

	first, err := service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "PM-KISAN", Description: "Income support.",
	})
	require.NoError(t, err)

	second, err := service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "Soil Health Card", Description: "Free soil testing.",
	})
	require.NoError(t, err)

	_, err = service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupNewsUpdates), Title: "Rally announced", Description: "March gathering.",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, repo.groups, 2)
	assert.Equal(t, "PM-KISAN", repo.groups[0].Items[0].Title)
	assert.Equal(t, "Soil Health Card", repo.groups[0].Items[1].Title)
	assert.Equal(t, 3, cache.invalidations)
}

/*
TestCreateItemWithFile verifies upload-before-persist: the asset key is
namespaced under the group, the stored URL lands on the item, and a storage
outage aborts the create without touching the repository.
*/
func TestCreateItemWithFile(t *testing.T) {
	t.Run("upload success", func(t *testing.T) {
		service, repo, assets, _ := newTestService()

		group, err := service.CreateItem(context.Background(), CreateItemInput{
			GroupTitle:  string(GroupEducationalMaterials),
			Title:       "Organic farming guide",
			Description: "Hindi-language PDF handbook.",
			ContentKind: string(KindDocument),
			File:        testFile("Organic Farming Guide.pdf"),
		})
		require.NoError(t, err)

		item := group.Items[0]
		require.Len(t, assets.uploads, 1)
		assert.True(t, strings.HasPrefix(assets.uploads[0], "information/educationalMaterials/"))
		assert.True(t, strings.HasSuffix(assets.uploads[0], "-organic-farming-guide.pdf"))
		assert.Equal(t, assets.uploads[0], item.ImageKey)
		assert.Equal(t, "https://assets.kisanmanch.org/"+item.ImageKey, item.Image)
		require.Len(t, repo.groups, 1)
	})

	t.Run("upload failure aborts", func(t *testing.T) {
		service, repo, assets, _ := newTestService()
		assets.uploadFail = true

		_, err := service.CreateItem(context.Background(), CreateItemInput{
			GroupTitle:  string(GroupEducationalMaterials),
			Title:       "Organic farming guide",
			Description: "Hindi-language PDF handbook.",
			File:        testFile("guide.pdf"),
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "STORAGE_UNAVAILABLE", appErr.Code)
		assert.Empty(t, repo.groups)
	})
}

// # Update

/*
TestUpdateItem verifies the partial merge: only the supplied fields change,
missing group and missing item fail with their own distinct errors, and an
empty patch is rejected outright.
*/
func TestUpdateItem(t *testing.T) {
	seed := func(t *testing.T, service *Service) (GroupName, string) {
		t.Helper()
		group, err := service.CreateItem(context.Background(), CreateItemInput{
			GroupTitle:       string(GroupGovernmentSchemes),
			Title:            "PM-KISAN",
			Description:      "Income support.",
			Region:           "north",
			EngagementMetric: pointer.To(100),
		})
		require.NoError(t, err)
		return group.GroupTitle, group.Items[0].ID
	}

	t.Run("merges only supplied fields", func(t *testing.T) {
		service, _, _, _ := newTestService()
		name, itemID := seed(t, service)

		item, err := service.UpdateItem(context.Background(), name, itemID, UpdateItemInput{
			Title:            pointer.To("PM-KISAN 2026"),
			EngagementMetric: pointer.To(250),
		})
		require.NoError(t, err)

		assert.Equal(t, "PM-KISAN 2026", item.Title)
		assert.Equal(t, 250, item.EngagementMetric)
		assert.Equal(t, "Income support.", item.Description)
		assert.Equal(t, "north", item.Region)
		assert.Equal(t, itemID, item.ID)
	})

	t.Run("group not found", func(t *testing.T) {
		service, _, _, _ := newTestService()
		_, itemID := seed(t, service)

		_, err := service.UpdateItem(context.Background(), GroupNewsUpdates, itemID, UpdateItemInput{
			Title: pointer.To("x"),
		})
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("item not found in existing group", func(t *testing.T) {
		service, _, _, _ := newTestService()
		name, _ := seed(t, service)

		_, err := service.UpdateItem(context.Background(), name, uuidv7.New(), UpdateItemInput{
			Title: pointer.To("x"),
		})
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.NotErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		service, _, _, _ := newTestService()
		name, itemID := seed(t, service)

		_, err := service.UpdateItem(context.Background(), name, itemID, UpdateItemInput{})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("invalid enum value rejected", func(t *testing.T) {
		service, _, _, _ := newTestService()
		name, itemID := seed(t, service)

		_, err := service.UpdateItem(context.Background(), name, itemID, UpdateItemInput{
			Category: pointer.To("finance"),
		})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

/*
TestUpdateItemReplacesAsset verifies a new file swaps the stored asset: the
replacement is uploaded first and the superseded object is deleted after the
row settles.
*/
func TestUpdateItemReplacesAsset(t *testing.T) {
	service, _, assets, _ := newTestService()
	ctx := context.Background()

	group, err := service.CreateItem(ctx, CreateItemInput{
		GroupTitle:  string(GroupNewsUpdates),
		Title:       "Rally photos",
		Description: "Coverage of the March rally.",
		File:        testFile("rally-v1.jpg"),
	})
	require.NoError(t, err)
	oldKey := group.Items[0].ImageKey

	item, err := service.UpdateItem(ctx, group.GroupTitle, group.Items[0].ID, UpdateItemInput{
		File: testFile("rally-v2.jpg"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, oldKey, item.ImageKey)
	assert.Equal(t, []string{oldKey}, assets.deletes)
}

// # Delete

/*
TestDeleteItem verifies delete precision: only the targeted item leaves its
group, siblings and other groups survive, the asset is released, and the
not-found split holds for unknown groups versus unknown items.
*/
func TestDeleteItem(t *testing.T) {
	service, repo, assets, cache := newTestService()
	ctx := context.Background()

	group, err := service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "PM-KISAN", Description: "d",
		File: testFile("pmkisan.png"),
	})
	require.NoError(t, err)
	_, err = service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "Soil Health Card", Description: "d",
	})
	require.NoError(t, err)
	_, err = service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupNewsUpdates), Title: "Rally", Description: "d",
	})
	require.NoError(t, err)

	target := group.Items[0]
	require.NoError(t, service.DeleteItem(ctx, group.GroupTitle, target.ID))

	require.Len(t, repo.groups, 2)
	schemes := repo.find(GroupGovernmentSchemes)
	require.Len(t, schemes.Items, 1)
	assert.Equal(t, "Soil Health Card", schemes.Items[0].Title)
	assert.Len(t, repo.find(GroupNewsUpdates).Items, 1)
	assert.Contains(t, assets.deletes, target.ImageKey)
	assert.Equal(t, 4, cache.invalidations)

	t.Run("unknown group", func(t *testing.T) {
		err := service.DeleteItem(ctx, GroupAgriculturalResources, target.ID)
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		err := service.DeleteItem(ctx, GroupNewsUpdates, uuidv7.New())
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

// # Reads

/*
TestListFeed verifies the feed endpoint semantics: caching on first read,
flattening across groups, sort-key validation.
*/
func TestListFeed(t *testing.T) {
	service, _, _, cache := newTestService()
	ctx := context.Background()

	_, err := service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupGovernmentSchemes), Title: "PM-KISAN", Description: "d",
		EngagementMetric: pointer.To(10),
	})
	require.NoError(t, err)
	_, err = service.CreateItem(ctx, CreateItemInput{
		GroupTitle: string(GroupNewsUpdates), Title: "Rally", Description: "d",
		EngagementMetric: pointer.To(90),
	})
	require.NoError(t, err)

	feed, err := service.ListFeed(ctx, SortByEngagement)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "Rally", feed[0].Title)
	assert.Equal(t, GroupNewsUpdates, feed[0].GroupTitle)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the snapshot.
	_, err = service.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	t.Run("unknown sort key", func(t *testing.T) {
		_, err := service.ListFeed(ctx, "title")
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

/*
TestSchemeLifecycle walks one record through its whole life: created with a
document, re-pointed at a new region, engagement bumped, then removed — with
the group surviving empty at the end.
*/
func TestSchemeLifecycle(t *testing.T) {
	service, repo, assets, _ := newTestService()
	ctx := context.Background()

	group, err := service.CreateItem(ctx, CreateItemInput{
		GroupTitle:       string(GroupGovernmentSchemes),
		Title:            "PM-KISAN Samman Nidhi",
		Description:      "Rs 6000 per year in three installments.",
		Category:         string(CategorySubsidy),
		Region:           "national",
		ContentKind:      string(KindDocument),
		UploadDate:       "2026-02-01",
		EngagementMetric: pointer.To(0),
		File:             testFile("pm-kisan-guidelines.pdf"),
	})
	require.NoError(t, err)
	itemID := group.Items[0].ID

	item, err := service.UpdateItem(ctx, GroupGovernmentSchemes, itemID, UpdateItemInput{
		Region:           pointer.To("north"),
		EngagementMetric: pointer.To(340),
	})
	require.NoError(t, err)
	assert.Equal(t, "north", item.Region)
	assert.Equal(t, 340, item.EngagementMetric)
	assert.Equal(t, "PM-KISAN Samman Nidhi", item.Title)

	require.NoError(t, service.DeleteItem(ctx, GroupGovernmentSchemes, itemID))

	schemes := repo.find(GroupGovernmentSchemes)
	require.NotNil(t, schemes, "group row outlives its last item")
	assert.Empty(t, schemes.Items)
	assert.Len(t, assets.deletes, 1)
}
