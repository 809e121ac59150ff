// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

import (
	"context"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
)

// ErrNotFound is returned when no milestone matches the requested ID.
var ErrNotFound = apperr.NotFound("Timeline milestone")

// Repository is the persistence contract for timeline milestones.
type Repository interface {

	// List returns every milestone in chronological order, oldest first.
	List(ctx context.Context) ([]*Milestone, error)

	// Create inserts a fully populated milestone.
	Create(ctx context.Context, milestone *Milestone) error

	/*
		Update merges a partial patch onto one milestone.

		Returns:
		  - *Milestone: The milestone after the merge.
		  - *Milestone: The milestone as it was before the merge.
		  - error: ErrNotFound or database failure.
	*/
	Update(ctx context.Context, id string, patch Patch) (*Milestone, *Milestone, error)

	/*
		Delete removes one milestone.

		Returns:
		  - *Milestone: The removed milestone, so callers can release its gallery.
		  - error: ErrNotFound or database failure.
	*/
	Delete(ctx context.Context, id string) (*Milestone, error)
}
