// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
)

// # Fakes

type memoryRepository struct {
	accounts []*Account
}

var _ Repository = (*memoryRepository)(nil)

func (repo *memoryRepository) Create(_ context.Context, account *Account) error {
	for _, existing := range repo.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	repo.accounts = append(repo.accounts, account)
	return nil
}

func (repo *memoryRepository) GetByUsername(_ context.Context, username string) (*Account, error) {
	for _, account := range repo.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (repo *memoryRepository) GetByID(_ context.Context, id string) (*Account, error) {
	for _, account := range repo.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, ErrAccountNotFound
}

const testInviteCode = "kisan-sabha-2026"

// newTestService builds a service without a token signer; tests that need
// token issuance are skipped at that boundary and covered in sec's own tests.
func newTestService() (*Service, *memoryRepository) {
	repo := &memoryRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, nil, testInviteCode, logger), repo
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:    "Ramesh.Editor",
		Email:       "Ramesh@kisanmanch.org",
		DisplayName: "Ramesh",
		Password:    "a-long-field-password",
		InviteCode:  testInviteCode,
	}
}

// # Tests

/*
TestRegister verifies invite-code gating, credential hashing, username and
email normalization, and the duplicate-account conflict.
*/
func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, repo := newTestService()

		profile, err := service.Register(context.Background(), validRegistration())
		require.NoError(t, err)

		assert.Equal(t, "ramesh.editor", profile.Username)
		assert.Equal(t, "ramesh@kisanmanch.org", profile.Email)
		assert.Equal(t, sec.RoleEditor, profile.Role)

		require.Len(t, repo.accounts, 1)
		stored := repo.accounts[0]
		assert.NotEqual(t, "a-long-field-password", stored.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("a-long-field-password", stored.PasswordHash))
	})

	t.Run("bad invite code", func(t *testing.T) {
		service, repo := newTestService()

		input := validRegistration()
		input.InviteCode = "guessed"
		_, err := service.Register(context.Background(), input)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.Empty(t, repo.accounts)
	})

	t.Run("short password", func(t *testing.T) {
		service, _ := newTestService()

		input := validRegistration()
		input.Password = "short"
		_, err := service.Register(context.Background(), input)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Register(context.Background(), validRegistration())
		require.NoError(t, err)

		_, err = service.Register(context.Background(), validRegistration())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

/*
TestLoginRejections verifies the unknown-user and wrong-password paths are
indistinguishable to the caller.
*/
func TestLoginRejections(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, unknownErr := service.Login(ctx, LoginInput{Username: "nobody", Password: "a-long-field-password"})
	_, wrongPassErr := service.Login(ctx, LoginInput{Username: "ramesh.editor", Password: "wrong-password-here"})

	for _, err := range []error{unknownErr, wrongPassErr} {
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		assert.Equal(t, "Invalid username or password", appErr.Message)
	}
}

/*
TestMe verifies profile lookup for a live account and the not-found path for
a token that outlived its account.
*/
func TestMe(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	profile, err := service.Register(ctx, validRegistration())
	require.NoError(t, err)

	fetched, err := service.Me(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.Username, fetched.Username)

	repo.accounts = nil
	_, err = service.Me(ctx, profile.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
