// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = apperr.NotFound("Account")

// Repository is the persistence contract for backend accounts.
type Repository interface {

	// Create inserts a new account. A duplicate username or email surfaces
	// as a conflict error.
	Create(ctx context.Context, account *Account) error

	// GetByUsername returns one account by its unique username.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByID returns one account by primary key.
	GetByID(ctx context.Context, id string) (*Account, error)
}
