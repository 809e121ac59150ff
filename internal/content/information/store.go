// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"context"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
)

// # Errors

// Missing-group and missing-item lookups fail differently so callers can
// tell "no such section" apart from "no such entry in that section".
var (
	ErrGroupNotFound = apperr.NotFound("Information group")
	ErrItemNotFound  = apperr.NotFound("Information item")
)

// # Repository Interface

// Repository is the persistence contract for information groups.
//
// Implementations must keep group titles unique and must mutate items
// atomically with respect to concurrent writers touching the same group.
type Repository interface {

	/*
		List returns every group with its full item list, most recently
		updated group first.

		Parameters:
		  - ctx: Request context.

		Returns:
		  - []*Group: All groups, possibly empty, never nil.
		  - error: Database failure.
	*/
	List(ctx context.Context) ([]*Group, error)

	/*
		AppendItem appends one item to the named group, creating the group
		first if it does not exist yet. Get-or-create and append happen in a
		single atomic statement so concurrent appends to the same fresh group
		can never race into two rows.

		Parameters:
		  - ctx: Request context.
		  - name: Target group, already validated against the fixed set.
		  - item: Fully populated item, ID included.

		Returns:
		  - *Group: The owning group after the append.
		  - error: Database failure.
	*/
	AppendItem(ctx context.Context, name GroupName, item Item) (*Group, error)

	/*
		UpdateItem merges a partial patch onto one item inside the named
		group. The group row is locked for the duration so read-merge-write
		is atomic.

		Parameters:
		  - ctx: Request context.
		  - name: Owning group.
		  - itemID: Target item within the group.
		  - patch: Non-nil fields to merge; nil fields are untouched.

		Returns:
		  - *Item: The item after the merge.
		  - *Item: The item as it was before the merge.
		  - error: ErrGroupNotFound, ErrItemNotFound, or database failure.
	*/
	UpdateItem(ctx context.Context, name GroupName, itemID string, patch ItemPatch) (*Item, *Item, error)

	/*
		RemoveItem deletes one item from the named group, leaving siblings
		and the group row itself in place.

		Parameters:
		  - ctx: Request context.
		  - name: Owning group.
		  - itemID: Target item within the group.

		Returns:
		  - *Item: The removed item, so callers can release its assets.
		  - error: ErrGroupNotFound, ErrItemNotFound, or database failure.
	*/
	RemoveItem(ctx context.Context, name GroupName, itemID string) (*Item, error)
}
