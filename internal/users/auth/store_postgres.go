// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
	"github.com/kisanmanch/kisanmanch/internal/platform/database/schema"
	"github.com/kisanmanch/kisanmanch/internal/platform/dberr"
)

// PostgresRepository persists accounts in the users schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a Postgres-backed account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var accountColumns = strings.Join(schema.UsersAccount.Columns(), ", ")

var queryInsertAccount = fmt.Sprintf(`
	INSERT INTO %s (%s)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
	schema.UsersAccount.Table, accountColumns,
)

var queryAccountByUsername = fmt.Sprintf(`
	SELECT %s
	FROM %s
	WHERE %s = $1`,
	accountColumns, schema.UsersAccount.Table, schema.UsersAccount.Username,
)

var queryAccountByID = fmt.Sprintf(`
	SELECT %s
	FROM %s
	WHERE %s = $1`,
	accountColumns, schema.UsersAccount.Table, schema.UsersAccount.ID,
)

func (repo *PostgresRepository) Create(ctx context.Context, account *Account) error {
	_, err := repo.pool.Exec(ctx, queryInsertAccount,
		account.ID, account.Username, account.Email, account.DisplayName,
		account.PasswordHash, account.Role,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return dberr.Wrap(err, "create account")
	}
	return nil
}

func (repo *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return repo.scanOne(repo.pool.QueryRow(ctx, queryAccountByUsername, username), "get account by username")
}

func (repo *PostgresRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	return repo.scanOne(repo.pool.QueryRow(ctx, queryAccountByID, id), "get account by id")
}

func (repo *PostgresRepository) scanOne(row pgx.Row, action string) (*Account, error) {
	var account Account
	err := row.Scan(
		&account.ID, &account.Username, &account.Email, &account.DisplayName,
		&account.PasswordHash, &account.Role, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, dberr.Wrap(err, action)
	}
	return &account, nil
}
