package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/identity"
)

// TokenRepository handles refresh token data access. It implements identity.TokenStore.
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a new refresh token
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *identity.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	query := `CREATE type::thing('refresh_token', $id) CONTENT $content`
	vars := map[string]interface{}{
		"id": token.ID,
		"content": map[string]interface{}{
			"account_id": token.AccountID,
			"token_hash": token.TokenHash,
			"expires_at": models.CustomDateTime{Time: token.ExpiresAt},
			"created_at": models.CustomDateTime{Time: token.CreatedAt},
			"revoked":    false,
		},
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// GetRefreshTokenByHash retrieves a refresh token by its hash
func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*identity.RefreshToken, error) {
	query := `SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`
	rows, err := queryAll(ctx, r.db, query, map[string]interface{}{"hash": hash})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return parseRefreshToken(rows[0]), nil
}

// RevokeRefreshToken revokes a single refresh token
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, hash string) error {
	query := `UPDATE refresh_token SET revoked = true WHERE token_hash = $hash`
	return r.db.Execute(ctx, query, map[string]interface{}{"hash": hash})
}

// RevokeAllAccountTokens revokes every refresh token of an account
func (r *TokenRepository) RevokeAllAccountTokens(ctx context.Context, accountID string) error {
	query := `UPDATE refresh_token SET revoked = true WHERE account_id = $account_id AND revoked = false`
	return r.db.Execute(ctx, query, map[string]interface{}{"account_id": accountID})
}

// DeleteExpiredRefreshTokens removes refresh tokens that expired before the cutoff
func (r *TokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) error {
	query := `DELETE refresh_token WHERE expires_at < $before`
	if err := r.db.Execute(ctx, query, map[string]interface{}{
		"before": models.CustomDateTime{Time: before},
	}); err != nil {
		return fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	return nil
}

func parseRefreshToken(m map[string]interface{}) *identity.RefreshToken {
	token := &identity.RefreshToken{
		ID:        recordKey(m["id"]),
		AccountID: getString(m, "account_id"),
		TokenHash: getString(m, "token_hash"),
		Revoked:   getBool(m, "revoked"),
	}
	if t := getTime(m, "expires_at"); t != nil {
		token.ExpiresAt = *t
	}
	if t := getTime(m, "created_at"); t != nil {
		token.CreatedAt = *t
	}
	return token
}
