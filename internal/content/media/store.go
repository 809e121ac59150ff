// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
	"github.com/kisanmanch/kisanmanch/pkg/pagination"
)

// ErrNotFound is returned when no media entry matches the requested ID.
var ErrNotFound = apperr.NotFound("Media item")

// Filter narrows a listing. Zero values mean "no restriction".
type Filter struct {
	Kind     Kind
	Category string
}

// Repository is the persistence contract for media entries.
type Repository interface {

	/*
		List returns a page of entries, newest published first.

		Parameters:
		  - ctx: Request context.
		  - filter: Optional kind/category restriction.
		  - page: Validated pagination parameters.

		Returns:
		  - []*Item: The page of entries.
		  - int: Total entries matching the filter, for page metadata.
		  - error: Database failure.
	*/
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Item, int, error)

	/*
		Get returns one entry by ID.

		Returns:
		  - *Item: The entry.
		  - error: ErrNotFound or database failure.
	*/
	Get(ctx context.Context, id string) (*Item, error)

	// Create inserts a fully populated entry.
	Create(ctx context.Context, item *Item) error

	/*
		Update merges a partial patch onto one entry.

		Returns:
		  - *Item: The entry after the merge.
		  - *Item: The entry as it was before the merge.
		  - error: ErrNotFound or database failure.
	*/
	Update(ctx context.Context, id string, patch Patch) (*Item, *Item, error)

	/*
		Delete removes one entry.

		Returns:
		  - *Item: The removed entry, so callers can release its assets.
		  - error: ErrNotFound or database failure.
	*/
	Delete(ctx context.Context, id string) (*Item, error)

	// IncrementViews bumps the view counter without touching updatedat.
	// A miss is silently ignored.
	IncrementViews(ctx context.Context, id string) error
}
