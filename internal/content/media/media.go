// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media manages the public media library: rally photographs, event
videos, and press coverage shown in the site gallery.

Unlike the information center, media entries are flat rows — there is no
grouping container. Each entry owns up to two stored assets: the primary
file and an optional thumbnail used by the gallery grid.
*/
package media

import "time"

// # Enums

// Kind tells the gallery how to render an entry.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Kinds lists every valid media kind. The first entry is the default.
var Kinds = []Kind{KindPhoto, KindVideo}

// Valid reports whether the kind belongs to the fixed set.
func (kind Kind) Valid() bool {
	for _, known := range Kinds {
		if kind == known {
			return true
		}
	}
	return false
}

// # Core Entity

// Item is one media library entry.
type Item struct {
	ID           string    `json:"id"` // UUIDv7
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Kind         Kind      `json:"kind"`
	Category     string    `json:"category"` // free-form gallery filter label
	FileURL      string    `json:"fileUrl,omitempty"`
	FileKey      string    `json:"fileKey,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	ThumbnailKey string    `json:"thumbnailKey,omitempty"`
	Duration     string    `json:"duration,omitempty"` // "mm:ss", videos only
	ViewCount    int       `json:"viewCount"`
	PublishedAt  time.Time `json:"publishedAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Patch is a typed partial update for one entry. Nil fields are untouched.
type Patch struct {
	Title        *string
	Description  *string
	Kind         *Kind
	Category     *string
	FileURL      *string
	FileKey      *string
	ThumbnailURL *string
	ThumbnailKey *string
	Duration     *string
	PublishedAt  *time.Time
}

// IsZero reports whether the patch carries no changes.
func (patch Patch) IsZero() bool {
	return patch.Title == nil &&
		patch.Description == nil &&
		patch.Kind == nil &&
		patch.Category == nil &&
		patch.FileURL == nil &&
		patch.FileKey == nil &&
		patch.ThumbnailURL == nil &&
		patch.ThumbnailKey == nil &&
		patch.Duration == nil &&
		patch.PublishedAt == nil
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldKind        = "kind"
	FieldCategory    = "category"
	FieldFile        = "file"
	FieldThumbnail   = "thumbnail"
	FieldDuration    = "duration"
	FieldPublishedAt = "publishedAt"
)
