// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline

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

// PostgresRepository persists milestones in the content schema. The gallery
// travels as a JSONB array on the milestone row.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a Postgres-backed timeline repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var milestoneColumns = strings.Join(schema.ContentTimeline.Columns(), ", ")

var queryListMilestones = fmt.Sprintf(`
	SELECT %s
	FROM %s
	ORDER BY %s ASC`,
	milestoneColumns, schema.ContentTimeline.Table, schema.ContentTimeline.Date,
)

var queryInsertMilestone = fmt.Sprintf(`
	INSERT INTO %s (%s)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
	schema.ContentTimeline.Table, milestoneColumns,
)

var queryLockMilestone = fmt.Sprintf(`
	SELECT %s
	FROM %s
	WHERE %s = $1
	FOR UPDATE`,
	milestoneColumns, schema.ContentTimeline.Table, schema.ContentTimeline.ID,
)

var queryStoreMilestone = fmt.Sprintf(`
	UPDATE %s
	SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
	WHERE %s = $1`,
	schema.ContentTimeline.Table,
	schema.ContentTimeline.Title, schema.ContentTimeline.Description,
	schema.ContentTimeline.Date, schema.ContentTimeline.Impact,
	schema.ContentTimeline.IsKeyMilestone, schema.ContentTimeline.Gallery,
	schema.ContentTimeline.UpdatedAt,
	schema.ContentTimeline.ID,
)

var queryDeleteMilestone = fmt.Sprintf(`
	DELETE FROM %s
	WHERE %s = $1
	RETURNING %s`,
	schema.ContentTimeline.Table, schema.ContentTimeline.ID, milestoneColumns,
)

// # Repository Implementation

func (repo *PostgresRepository) List(ctx context.Context) ([]*Milestone, error) {
	rows, err := repo.pool.Query(ctx, queryListMilestones)
	if err != nil {
		return nil, dberr.Wrap(err, "list timeline milestones")
	}
	defer rows.Close()

	milestones := make([]*Milestone, 0)
	for rows.Next() {
		milestone, err := scanMilestone(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan timeline milestone")
		}
		milestones = append(milestones, milestone)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate timeline milestones")
	}
	return milestones, nil
}

func (repo *PostgresRepository) Create(ctx context.Context, milestone *Milestone) error {
	gallery, err := encodeGallery(milestone.Gallery)
	if err != nil {
		return err
	}

	_, err = repo.pool.Exec(ctx, queryInsertMilestone,
		milestone.ID, milestone.Title, milestone.Description, milestone.Date,
		milestone.Impact, milestone.IsKeyMilestone, gallery,
	)
	if err != nil {
		return dberr.Wrap(err, "create timeline milestone")
	}
	return nil
}

func (repo *PostgresRepository) Update(ctx context.Context, id string, patch Patch) (*Milestone, *Milestone, error) {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "begin timeline transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	previous, err := scanMilestone(tx.QueryRow(ctx, queryLockMilestone, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, dberr.Wrap(err, "lock timeline milestone")
	}

	updated := *previous
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Impact != nil {
		updated.Impact = *patch.Impact
	}
	if patch.IsKeyMilestone != nil {
		updated.IsKeyMilestone = *patch.IsKeyMilestone
	}
	if patch.Gallery != nil {
		updated.Gallery = *patch.Gallery
	}

	gallery, err := encodeGallery(updated.Gallery)
	if err != nil {
		return nil, nil, err
	}
	_, err = tx.Exec(ctx, queryStoreMilestone,
		id, updated.Title, updated.Description, updated.Date,
		updated.Impact, updated.IsKeyMilestone, gallery,
	)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "update timeline milestone")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, dberr.Wrap(err, "commit timeline transaction")
	}
	return &updated, previous, nil
}

func (repo *PostgresRepository) Delete(ctx context.Context, id string) (*Milestone, error) {
	milestone, err := scanMilestone(repo.pool.QueryRow(ctx, queryDeleteMilestone, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "delete timeline milestone")
	}
	return milestone, nil
}

// # Internals

func encodeGallery(gallery []GalleryImage) ([]byte, error) {
	if gallery == nil {
		gallery = []GalleryImage{}
	}
	payload, err := json.Marshal(gallery)
	if err != nil {
		return nil, fmt.Errorf("encode milestone gallery: %w", err)
	}
	return payload, nil
}

func scanMilestone(row pgx.Row) (*Milestone, error) {
	var milestone Milestone
	err := row.Scan(
		&milestone.ID, &milestone.Title, &milestone.Description, &milestone.Date,
		&milestone.Impact, &milestone.IsKeyMilestone, &milestone.Gallery,
		&milestone.CreatedAt, &milestone.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}
