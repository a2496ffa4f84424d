// Package identity is the credential store behind sign-up and sign-in. It owns
// accounts, password hashes, access tokens and refresh tokens, and shares no
// transaction with the profile store.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// Metadata is the minimal profile data stored with an account
type Metadata struct {
	UserType    string `json:"user_type"`
	DisplayName string `json:"display_name"`
}

// Account is one identity record
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Metadata     Metadata
	CreatedAt    time.Time
}

// Session is the result of a successful authentication
type Session struct {
	IdentityID   string   `json:"identity_id"`
	Email        string   `json:"-"`
	Metadata     Metadata `json:"-"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"` // seconds
}

// RefreshToken is a stored, hashed refresh token
type RefreshToken struct {
	ID        string
	AccountID string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

// AccountStore persists accounts
type AccountStore interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	ListByEmail(ctx context.Context, email string) ([]*Account, error)
	Delete(ctx context.Context, id string) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, hash string) error
	RevokeAllAccountTokens(ctx context.Context, accountID string) error
}
