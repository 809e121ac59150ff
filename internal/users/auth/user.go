// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth manages backend accounts and login for the content admin.

Accounts are not a public feature: the site itself is anonymous. Editors and
administrators register with an organization invite code and authenticate
with short-lived RS256 access tokens; every content mutation route checks
the resulting role.
*/
package auth

import (
	"time"

	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
)

// Account is one backend user.
//
// PasswordHash never crosses the API boundary; the wire shape is [Profile].
type Account struct {
	ID           string
	Username     string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         sec.UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the client-safe projection of an account.
type Profile struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	Role        sec.UserRole `json:"role"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ToProfile strips the credential fields for API responses.
func (account *Account) ToProfile() Profile {
	return Profile{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        account.Role,
		CreatedAt:   account.CreatedAt,
	}
}

// Session is the login response payload.
type Session struct {
	AccessToken string  `json:"accessToken"`
	ExpiresIn   int64   `json:"expiresIn"` // seconds
	User        Profile `json:"user"`
}
