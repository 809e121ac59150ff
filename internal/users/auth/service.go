// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/kisanmanch/kisanmanch/internal/platform/apperr"
	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
	"github.com/kisanmanch/kisanmanch/internal/platform/validate"
	"github.com/kisanmanch/kisanmanch/pkg/uuidv7"
)

// # Service Inputs

// RegisterInput carries the wire values for a new backend account.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	InviteCode  string `json:"inviteCode"`
}

// LoginInput carries the wire values for a login attempt.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// # Service

// Service implements account registration and login.
type Service struct {
	repo       Repository
	tokens     *sec.TokenService
	inviteCode string
	logger     *slog.Logger
}

// NewService creates an auth service. The invite code comes from deployment
// configuration and gates all self-registration.
func NewService(repo Repository, tokens *sec.TokenService, inviteCode string, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		inviteCode: inviteCode,
		logger:     logger,
	}
}

/*
Register creates a backend account gated by the organization invite code.
New accounts start as editors; promotion to admin is a manual operation.

Returns:
  - Profile: The created account, credential fields stripped.
  - error: Validation failure, forbidden on a bad invite code, conflict on a
    taken username/email, or database failure.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (Profile, error) {
	v := &validate.Validator{}
	v.Required("username", input.Username).
		MinLen("username", input.Username, 3).
		MaxLen("username", input.Username, 50).
		Required("email", input.Email).
		Email("email", input.Email).
		MaxLen("displayName", input.DisplayName, constants.MaxNameLength).
		Required("password", input.Password).
		MinLen("password", input.Password, 10)
	if err := v.Err(); err != nil {
		return Profile{}, err
	}

	if subtle.ConstantTimeCompare([]byte(input.InviteCode), []byte(service.inviteCode)) != 1 {
		service.logger.WarnContext(ctx, "auth_invite_code_rejected",
			slog.String("username", input.Username),
		)
		return Profile{}, apperr.Forbidden("Invalid invite code")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return Profile{}, apperr.Internal(err)
	}

	account := &Account{
		ID:           uuidv7.New(),
		Username:     strings.ToLower(strings.TrimSpace(input.Username)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
		Role:         sec.RoleEditor,
	}
	if account.DisplayName == "" {
		account.DisplayName = account.Username
	}

	if err := service.repo.Create(ctx, account); err != nil {
		return Profile{}, err
	}

	service.logger.InfoContext(ctx, "auth_account_registered",
		slog.String("user_id", account.ID),
		slog.String("username", account.Username),
	)
	return account.ToProfile(), nil
}

/*
Login verifies the credentials and issues an access token.

A missing account and a wrong password return the same unauthorized error so
the endpoint does not leak which usernames exist.

Returns:
  - Session: Token, lifetime, and the account profile.
  - error: Unauthorized on bad credentials, or database failure.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (Session, error) {
	v := &validate.Validator{}
	if err := v.Required("username", input.Username).
		Required("password", input.Password).
		Err(); err != nil {
		return Session{}, err
	}

	account, err := service.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(input.Username)))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Session{}, apperr.Unauthorized("Invalid username or password")
		}
		return Session{}, err
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		service.logger.WarnContext(ctx, "auth_login_rejected",
			slog.String("username", account.Username),
		)
		return Session{}, apperr.Unauthorized("Invalid username or password")
	}

	token, err := service.tokens.GenerateAccessToken(
		account.ID, account.Username, string(account.Role), constants.AccessTokenTTL,
	)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "auth_login_succeeded",
		slog.String("user_id", account.ID),
	)
	return Session{
		AccessToken: token,
		ExpiresIn:   int64(constants.AccessTokenTTL.Seconds()),
		User:        account.ToProfile(),
	}, nil
}

/*
Me returns the profile behind an authenticated request.

Returns:
  - Profile: The account profile.
  - error: ErrAccountNotFound if the token outlived the account, or database
    failure.
*/
func (service *Service) Me(ctx context.Context, userID string) (Profile, error) {
	account, err := service.repo.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return account.ToProfile(), nil
}
