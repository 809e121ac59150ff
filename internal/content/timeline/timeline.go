// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package timeline manages the movement-history timeline: dated milestones
shown on the "Our Journey" page, each with an impact summary and an optional
photo gallery.

Milestones are ordered chronologically by their milestone date, not by
creation time, so backfilling older history slots entries into place.
*/
package timeline

import "time"

// GalleryImage is one photo attached to a milestone.
//
// Images are stored as a JSONB array on the milestone row, mirroring how the
// information center embeds items in their group.
type GalleryImage struct {
	URL     string `json:"url"`
	Key     string `json:"key,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Milestone is one dated entry on the movement timeline.
type Milestone struct {
	ID             string         `json:"id"` // UUIDv7
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Date           time.Time      `json:"date"`
	Impact         string         `json:"impact,omitempty"` // e.g. "2 lakh farmers reached"
	IsKeyMilestone bool           `json:"isKeyMilestone"`
	Gallery        []GalleryImage `json:"gallery"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Patch is a typed partial update. Nil fields are untouched; a non-nil
// Gallery replaces the whole gallery.
type Patch struct {
	Title          *string
	Description    *string
	Date           *time.Time
	Impact         *string
	IsKeyMilestone *bool
	Gallery        *[]GalleryImage
}

// IsZero reports whether the patch carries no changes.
func (patch Patch) IsZero() bool {
	return patch.Title == nil &&
		patch.Description == nil &&
		patch.Date == nil &&
		patch.Impact == nil &&
		patch.IsKeyMilestone == nil &&
		patch.Gallery == nil
}

// # Field Identifiers

const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldDate           = "date"
	FieldImpact         = "impact"
	FieldIsKeyMilestone = "isKeyMilestone"
	FieldGallery        = "gallery"
)
