// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kisanmanch/kisanmanch/internal/platform/database/schema"
	"github.com/kisanmanch/kisanmanch/internal/platform/dberr"
	"github.com/kisanmanch/kisanmanch/pkg/pagination"
)

// PostgresRepository persists media entries in the content schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a Postgres-backed media repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Queries

var mediaColumns = strings.Join(schema.ContentMedia.Columns(), ", ")

var queryGetMedia = fmt.Sprintf(`
	SELECT %s
	FROM %s
	WHERE %s = $1`,
	mediaColumns, schema.ContentMedia.Table, schema.ContentMedia.ID,
)

var queryInsertMedia = fmt.Sprintf(`
	INSERT INTO %s (%s)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())`,
	schema.ContentMedia.Table, mediaColumns,
)

var queryDeleteMedia = fmt.Sprintf(`
	DELETE FROM %s
	WHERE %s = $1
	RETURNING %s`,
	schema.ContentMedia.Table, schema.ContentMedia.ID, mediaColumns,
)

var queryIncrementViews = fmt.Sprintf(`
	UPDATE %s
	SET %s = %s + 1
	WHERE %s = $1`,
	schema.ContentMedia.Table, schema.ContentMedia.ViewCount,
	schema.ContentMedia.ViewCount, schema.ContentMedia.ID,
)

// # Repository Implementation

func (repo *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Item, int, error) {
	where, args := buildFilter(filter)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", schema.ContentMedia.Table, where)
	if err := repo.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count media items")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		mediaColumns, schema.ContentMedia.Table, where, schema.ContentMedia.PublishedAt,
		len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset())

	rows, err := repo.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list media items")
	}
	defer rows.Close()

	items := make([]*Item, 0, page.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan media item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate media items")
	}
	return items, total, nil
}

func (repo *PostgresRepository) Get(ctx context.Context, id string) (*Item, error) {
	item, err := scanItem(repo.pool.QueryRow(ctx, queryGetMedia, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "get media item")
	}
	return item, nil
}

func (repo *PostgresRepository) Create(ctx context.Context, item *Item) error {
	_, err := repo.pool.Exec(ctx, queryInsertMedia,
		item.ID, item.Title, item.Description, item.Kind, item.Category,
		item.FileURL, item.FileKey, item.ThumbnailURL, item.ThumbnailKey,
		item.Duration, item.ViewCount, item.PublishedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create media item")
	}
	return nil
}

func (repo *PostgresRepository) Update(ctx context.Context, id string, patch Patch) (*Item, *Item, error) {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "begin media transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	previous, err := scanItem(tx.QueryRow(ctx, queryGetMedia+" FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, dberr.Wrap(err, "lock media item")
	}

	assignments, args := buildPatch(patch)
	if len(assignments) == 0 {
		return previous, previous, tx.Commit(ctx)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s, %s = NOW() WHERE %s = $%d RETURNING %s",
		schema.ContentMedia.Table, strings.Join(assignments, ", "),
		schema.ContentMedia.UpdatedAt, schema.ContentMedia.ID, len(args), mediaColumns,
	)

	updated, err := scanItem(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, nil, dberr.Wrap(err, "update media item")
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, dberr.Wrap(err, "commit media transaction")
	}
	return updated, previous, nil
}

func (repo *PostgresRepository) Delete(ctx context.Context, id string) (*Item, error) {
	item, err := scanItem(repo.pool.QueryRow(ctx, queryDeleteMedia, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "delete media item")
	}
	return item, nil
}

func (repo *PostgresRepository) IncrementViews(ctx context.Context, id string) error {
	if _, err := repo.pool.Exec(ctx, queryIncrementViews, id); err != nil {
		return dberr.Wrap(err, "increment media views")
	}
	return nil
}

// # Internals

func buildFilter(filter Filter) (string, []interface{}) {
	clauses := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.ContentMedia.Kind, len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.ContentMedia.Category, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func buildPatch(patch Patch) ([]string, []interface{}) {
	assignments := make([]string, 0, 10)
	args := make([]interface{}, 0, 10)

	assign := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		assign(schema.ContentMedia.Title, *patch.Title)
	}
	if patch.Description != nil {
		assign(schema.ContentMedia.Description, *patch.Description)
	}
	if patch.Kind != nil {
		assign(schema.ContentMedia.Kind, *patch.Kind)
	}
	if patch.Category != nil {
		assign(schema.ContentMedia.Category, *patch.Category)
	}
	if patch.FileURL != nil {
		assign(schema.ContentMedia.FileURL, *patch.FileURL)
	}
	if patch.FileKey != nil {
		assign(schema.ContentMedia.FileKey, *patch.FileKey)
	}
	if patch.ThumbnailURL != nil {
		assign(schema.ContentMedia.ThumbnailURL, *patch.ThumbnailURL)
	}
	if patch.ThumbnailKey != nil {
		assign(schema.ContentMedia.ThumbnailKey, *patch.ThumbnailKey)
	}
	if patch.Duration != nil {
		assign(schema.ContentMedia.Duration, *patch.Duration)
	}
	if patch.PublishedAt != nil {
		assign(schema.ContentMedia.PublishedAt, *patch.PublishedAt)
	}
	return assignments, args
}

func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	err := row.Scan(
		&item.ID, &item.Title, &item.Description, &item.Kind, &item.Category,
		&item.FileURL, &item.FileKey, &item.ThumbnailURL, &item.ThumbnailKey,
		&item.Duration, &item.ViewCount, &item.PublishedAt,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
