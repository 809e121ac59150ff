// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kisanmanch/kisanmanch/internal/platform/database/schema"
	"github.com/kisanmanch/kisanmanch/internal/platform/dberr"
)

// PostgresRepository persists information groups in the content schema.
//
// Each group is a single row; its items live in a JSONB array column. That
// keeps "a group and its items" a one-row read and lets item mutations ride
// on row-level locks instead of a separate items table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a Postgres-backed information repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Queries

var groupColumns = strings.Join(schema.ContentInformationGroup.Columns(), ", ")

var queryListGroups = fmt.Sprintf(`
	SELECT %s
	FROM %s
	ORDER BY %s DESC`,
	groupColumns, schema.ContentInformationGroup.Table, schema.ContentInformationGroup.UpdatedAt,
)

// Get-or-create and append in one statement. The EXCLUDED row carries the
// new item as a one-element array, so the conflict branch is a plain
// array concatenation onto the existing row.
var queryAppendItem = fmt.Sprintf(`
	INSERT INTO %s (%s)
	VALUES ($1, $2, jsonb_build_array($3::jsonb), NOW(), NOW())
	ON CONFLICT (%s) DO UPDATE
	SET %s = %s.%s || EXCLUDED.%s,
	    %s = NOW()
	RETURNING %s`,
	schema.ContentInformationGroup.Table, groupColumns,
	schema.ContentInformationGroup.GroupTitle,
	schema.ContentInformationGroup.Items, schema.ContentInformationGroup.Table,
	schema.ContentInformationGroup.Items, schema.ContentInformationGroup.Items,
	schema.ContentInformationGroup.UpdatedAt,
	groupColumns,
)

var queryLockGroupItems = fmt.Sprintf(`
	SELECT %s
	FROM %s
	WHERE %s = $1
	FOR UPDATE`,
	schema.ContentInformationGroup.Items, schema.ContentInformationGroup.Table,
	schema.ContentInformationGroup.GroupTitle,
)

var queryStoreGroupItems = fmt.Sprintf(`
	UPDATE %s
	SET %s = $2, %s = NOW()
	WHERE %s = $1`,
	schema.ContentInformationGroup.Table,
	schema.ContentInformationGroup.Items, schema.ContentInformationGroup.UpdatedAt,
	schema.ContentInformationGroup.GroupTitle,
)

// # Repository Implementation

func (repo *PostgresRepository) List(ctx context.Context) ([]*Group, error) {
	rows, err := repo.pool.Query(ctx, queryListGroups)
	if err != nil {
		return nil, dberr.Wrap(err, "list information groups")
	}
	defer rows.Close()

	groups := make([]*Group, 0)
	for rows.Next() {
		var group Group
		if err := rows.Scan(&group.ID, &group.GroupTitle, &group.Items, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan information group")
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate information groups")
	}
	return groups, nil
}

func (repo *PostgresRepository) AppendItem(ctx context.Context, name GroupName, item Item) (*Group, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode information item: %w", err)
	}

	var group Group
	err = repo.pool.QueryRow(ctx, queryAppendItem, item.ID, name, payload).
		Scan(&group.ID, &group.GroupTitle, &group.Items, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "append information item")
	}
	return &group, nil
}

func (repo *PostgresRepository) UpdateItem(ctx context.Context, name GroupName, itemID string, patch ItemPatch) (*Item, *Item, error) {
	var updated, previous Item

	err := repo.withGroupLock(ctx, name, func(items []Item) ([]Item, error) {
		index := indexOfItem(items, itemID)
		if index < 0 {
			return nil, ErrItemNotFound
		}

		previous = items[index]
		patch.Apply(&items[index])
		updated = items[index]
		return items, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, &previous, nil
}

func (repo *PostgresRepository) RemoveItem(ctx context.Context, name GroupName, itemID string) (*Item, error) {
	var removed Item

	err := repo.withGroupLock(ctx, name, func(items []Item) ([]Item, error) {
		index := indexOfItem(items, itemID)
		if index < 0 {
			return nil, ErrItemNotFound
		}

		removed = items[index]
		return append(items[:index], items[index+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// # Internals

// withGroupLock runs a read-mutate-write cycle on one group's item list
// under a row lock. The mutate callback returns the replacement list or a
// domain error; either way the row lock is held until commit or rollback.
func (repo *PostgresRepository) withGroupLock(ctx context.Context, name GroupName, mutate func(items []Item) ([]Item, error)) error {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin information transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var items []Item
	if err := tx.QueryRow(ctx, queryLockGroupItems, name).Scan(&items); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrGroupNotFound
		}
		return dberr.Wrap(err, "lock information group")
	}

	items, err = mutate(items)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode information items: %w", err)
	}
	if _, err := tx.Exec(ctx, queryStoreGroupItems, name, payload); err != nil {
		return dberr.Wrap(err, "store information items")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit information transaction")
	}
	return nil
}

func indexOfItem(items []Item, itemID string) int {
	for index, item := range items {
		if item.ID == itemID {
			return index
		}
	}
	return -1
}
