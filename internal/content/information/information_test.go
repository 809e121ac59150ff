// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/*
TestGroupNameValid verifies the group set is closed: the four known sections
pass and everything else, including case variants, fails.
*/
func TestGroupNameValid(t *testing.T) {
	tests := []struct {
		name  string
		value GroupName
		want  bool
	}{
		{"government schemes", GroupGovernmentSchemes, true},
		{"agricultural resources", GroupAgriculturalResources, true},
		{"educational materials", GroupEducationalMaterials, true},
		{"news updates", GroupNewsUpdates, true},
		{"unknown group", GroupName("marketPrices"), false},
		{"wrong case", GroupName("GovernmentSchemes"), false},
		{"empty", GroupName(""), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Valid())
		})
	}
}

/*
TestCategoryAndKindValid verifies the item enums accept only their fixed sets.
*/
func TestCategoryAndKindValid(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, category.Valid(), string(category))
	}
	assert.False(t, Category("finance").Valid())
	assert.False(t, Category("").Valid())

	for _, kind := range ContentKinds {
		assert.True(t, kind.Valid(), string(kind))
	}
	assert.False(t, ContentKind("audio").Valid())
}

/*
TestItemPatchApply verifies the merge is field-by-field: set fields replace,
nil fields preserve, and a zero patch is a no-op.
*/
func TestItemPatchApply(t *testing.T) {
	uploaded := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	base := Item{
		ID:               "0191e2f0-0000-7000-8000-000000000001",
		Title:            "PM-KISAN Samman Nidhi",
		Description:      "Income support for landholding farmer families.",
		Category:         CategorySubsidy,
		Region:           "national",
		Image:            "https://assets.example.org/pmkisan.png",
		ImageKey:         "information/governmentSchemes/pmkisan.png",
		EngagementMetric: 120,
		ContentKind:      KindDocument,
		UploadDate:       uploaded,
	}

	t.Run("partial patch keeps untouched fields", func(t *testing.T) {
		item := base
		title := "PM-KISAN (updated)"
		metric := 150
		patch := ItemPatch{Title: &title, EngagementMetric: &metric}

		patch.Apply(&item)

		assert.Equal(t, "PM-KISAN (updated)", item.Title)
		assert.Equal(t, 150, item.EngagementMetric)
		assert.Equal(t, base.Description, item.Description)
		assert.Equal(t, base.Category, item.Category)
		assert.Equal(t, base.Image, item.Image)
		assert.Equal(t, base.UploadDate, item.UploadDate)
		assert.Equal(t, base.ID, item.ID)
	})

	t.Run("zero patch is a no-op", func(t *testing.T) {
		item := base
		patch := ItemPatch{}

		assert.True(t, patch.IsZero())
		patch.Apply(&item)
		assert.Equal(t, base, item)
	})

	t.Run("explicit empty string overwrites", func(t *testing.T) {
		item := base
		empty := ""
		patch := ItemPatch{Image: &empty, ImageKey: &empty}

		assert.False(t, patch.IsZero())
		patch.Apply(&item)
		assert.Empty(t, item.Image)
		assert.Empty(t, item.ImageKey)
	})
}
