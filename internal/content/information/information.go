// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package information manages the Information Center content repository.

A single collection is partitioned into a fixed set of named groups
(government schemes, agricultural resources, educational materials, news
updates). Each group owns an ordered, embedded list of content items that are
created, edited, and deleted individually without disturbing their siblings
or the group's other metadata.

# Core Responsibility

  - Identity: Defines the [Group] container and the embedded [Item] entity.
  - Consistency: Group titles are unique; item IDs are unique within their group.
  - Composition: Items exist only inside their owning group and never move
    between groups. Deleting a group deletes its items.

The package also provides the flattened feed view consumed by the public site.
*/
package information

import "time"

// # Group Names

// GroupName identifies one of the fixed Information Center sections.
//
// Group names are a closed set: a request naming anything else is a
// validation error, never a new ad-hoc group.
type GroupName string

const (
	GroupGovernmentSchemes     GroupName = "governmentSchemes"
	GroupAgriculturalResources GroupName = "agriculturalResources"
	GroupEducationalMaterials  GroupName = "educationalMaterials"
	GroupNewsUpdates           GroupName = "newsUpdates"
)

// GroupNames lists every valid group in display order.
var GroupNames = []GroupName{
	GroupGovernmentSchemes,
	GroupAgriculturalResources,
	GroupEducationalMaterials,
	GroupNewsUpdates,
}

// Valid reports whether the name belongs to the fixed group set.
func (name GroupName) Valid() bool {
	for _, known := range GroupNames {
		if name == known {
			return true
		}
	}
	return false
}

// # Item Enums

// Category classifies an item by farmer-facing topic.
type Category string

const (
	CategorySubsidy       Category = "subsidy"
	CategoryCertification Category = "certification"
	CategoryInsurance     Category = "insurance"
	CategorySeasonal      Category = "seasonal"
	CategorySustainable   Category = "sustainable"
	CategoryWeather       Category = "weather"
)

// Categories lists every valid category. The first entry is the default.
var Categories = []Category{
	CategorySubsidy,
	CategoryCertification,
	CategoryInsurance,
	CategorySeasonal,
	CategorySustainable,
	CategoryWeather,
}

// Valid reports whether the category belongs to the fixed set.
func (category Category) Valid() bool {
	for _, known := range Categories {
		if category == known {
			return true
		}
	}
	return false
}

// ContentKind describes the kind of asset an item points at.
type ContentKind string

const (
	KindDocument ContentKind = "document"
	KindImage    ContentKind = "image"
	KindVideo    ContentKind = "video"
)

// ContentKinds lists every valid kind. The first entry is the default.
var ContentKinds = []ContentKind{KindDocument, KindImage, KindVideo}

// Valid reports whether the kind belongs to the fixed set.
func (kind ContentKind) Valid() bool {
	for _, known := range ContentKinds {
		if kind == known {
			return true
		}
	}
	return false
}

// DefaultRegion is applied when an item omits its region.
//
// Regions are otherwise free-form; the frontend offers national, north,
// south, east, west, and "all" but the repository does not restrict the set.
const DefaultRegion = "national"

// # Core Entities

// Item is a single content entry embedded in exactly one group.
//
// The JSON tags double as the wire format and the JSONB persistence shape:
// items are stored verbatim inside their group row, so the imageKey
// bookkeeping field travels with the item the same way the original
// public-asset ID did.
type Item struct {
	ID               string      `json:"id"` // UUIDv7, stable for the item's lifetime
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Category         Category    `json:"category"`
	Region           string      `json:"region"`
	Image            string      `json:"image,omitempty"`    // public URL of the uploaded asset
	ImageKey         string      `json:"imageKey,omitempty"` // object-store key, used for cleanup
	EngagementMetric int         `json:"engagementMetric"`
	ContentKind      ContentKind `json:"contentKind"`
	UploadDate       time.Time   `json:"uploadDate"`
}

// Group is a uniquely-named container owning an ordered list of items.
//
// Insertion order equals list order; there is no explicit sort key.
type Group struct {
	ID         string    `json:"id"` // UUIDv7
	GroupTitle GroupName `json:"groupTitle"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// # Partial Updates

// ItemPatch is a typed partial update for one item.
//
// Nil fields are left untouched by [ItemPatch.Apply]; this is a shallow
// field-by-field merge, never a replace, so omitted fields keep their
// current values rather than resetting to schema defaults.
type ItemPatch struct {
	Title            *string
	Description      *string
	Category         *Category
	Region           *string
	Image            *string
	ImageKey         *string
	EngagementMetric *int
	ContentKind      *ContentKind
	UploadDate       *time.Time
}

// Apply merges the non-nil patch fields onto the item in place.
func (patch ItemPatch) Apply(item *Item) {
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Region != nil {
		item.Region = *patch.Region
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.ImageKey != nil {
		item.ImageKey = *patch.ImageKey
	}
	if patch.EngagementMetric != nil {
		item.EngagementMetric = *patch.EngagementMetric
	}
	if patch.ContentKind != nil {
		item.ContentKind = *patch.ContentKind
	}
	if patch.UploadDate != nil {
		item.UploadDate = *patch.UploadDate
	}
}

// IsZero reports whether the patch carries no changes at all.
func (patch ItemPatch) IsZero() bool {
	return patch.Title == nil &&
		patch.Description == nil &&
		patch.Category == nil &&
		patch.Region == nil &&
		patch.Image == nil &&
		patch.ImageKey == nil &&
		patch.EngagementMetric == nil &&
		patch.ContentKind == nil &&
		patch.UploadDate == nil
}

// # Field Identifiers

const (
	FieldGroupTitle       = "groupTitle"
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldCategory         = "category"
	FieldRegion           = "region"
	FieldImage            = "image"
	FieldEngagementMetric = "engagementMetric"
	FieldContentKind      = "contentKind"
	FieldUploadDate       = "uploadDate"
	FieldSort             = "sort"
)
