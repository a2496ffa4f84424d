package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/gigbook/pkg/jwt"
)

// Provider implements account and session management on top of an account
// store, a token store and the JWT signer
type Provider struct {
	accounts   AccountStore
	tokens     TokenStore
	jwt        *jwt.Service
	refreshTTL time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// ProviderConfig holds configuration for the provider
type ProviderConfig struct {
	Accounts   AccountStore
	Tokens     TokenStore
	JWT        *jwt.Service
	RefreshTTL time.Duration // Default: 30 days
	BcryptCost int           // Default: 12
	Logger     *zap.Logger
}

// NewProvider creates a new identity provider
func NewProvider(cfg ProviderConfig) *Provider {
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Provider{
		accounts:   cfg.Accounts,
		tokens:     cfg.Tokens,
		jwt:        cfg.JWT,
		refreshTTL: cfg.RefreshTTL,
		bcryptCost: cfg.BcryptCost,
		logger:     cfg.Logger.Named("identity"),
	}
}

// CreateAccount stores a new account and returns its id
func (p *Provider) CreateAccount(ctx context.Context, email, password string, meta Metadata) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account := &Account{
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     meta,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		return "", err
	}

	p.logger.Info("account created", zap.String("identity_id", account.ID))
	return account.ID, nil
}

// Authenticate checks credentials and opens a session
func (p *Provider) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	accounts, err := p.accounts.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrInvalidCredentials
	}

	account := accounts[0]
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return p.issueSession(ctx, account)
}

// DeleteAccount removes an account and revokes its refresh tokens
func (p *Provider) DeleteAccount(ctx context.Context, id string) error {
	if err := p.tokens.RevokeAllAccountTokens(ctx, id); err != nil {
		return err
	}
	if err := p.accounts.Delete(ctx, id); err != nil {
		return err
	}
	p.logger.Info("account deleted", zap.String("identity_id", id))
	return nil
}

// VerifyToken validates an access token and returns the identity id it was issued to
func (p *Provider) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := p.jwt.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", err
		}
		return "", ErrInvalidAccessToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidAccessToken
	}
	return claims.Subject, nil
}

// ListAccountsByEmail returns the accounts registered with an email
func (p *Provider) ListAccountsByEmail(ctx context.Context, email string) ([]*Account, error) {
	return p.accounts.ListByEmail(ctx, normalizeEmail(email))
}

// GetAccount returns an account by id
func (p *Provider) GetAccount(ctx context.Context, id string) (*Account, error) {
	account, err := p.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// RefreshSession rotates a refresh token. Reusing a revoked token revokes every
// session of the account.
func (p *Provider) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	hash := hashToken(refreshToken)

	stored, err := p.tokens.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrInvalidRefreshToken
	}

	if stored.Revoked {
		p.logger.Warn("refresh token reuse detected", zap.String("identity_id", stored.AccountID))
		if err := p.tokens.RevokeAllAccountTokens(ctx, stored.AccountID); err != nil {
			p.logger.Error("failed to revoke sessions after token reuse",
				zap.String("identity_id", stored.AccountID),
				zap.Error(err),
			)
		}
		return nil, ErrRefreshTokenRevoked
	}

	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	if err := p.tokens.RevokeRefreshToken(ctx, hash); err != nil {
		return nil, err
	}

	account, err := p.GetAccount(ctx, stored.AccountID)
	if err != nil {
		return nil, err
	}
	return p.issueSession(ctx, account)
}

// RevokeSessions revokes every refresh token of an identity
func (p *Provider) RevokeSessions(ctx context.Context, identityID string) error {
	return p.tokens.RevokeAllAccountTokens(ctx, identityID)
}

func (p *Provider) issueSession(ctx context.Context, account *Account) (*Session, error) {
	accessToken, err := p.jwt.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: account.ID},
		Email:            account.Email,
		UserType:         account.Metadata.UserType,
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := p.tokens.CreateRefreshToken(ctx, &RefreshToken{
		AccountID: account.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(p.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	return &Session{
		IdentityID:   account.ID,
		Email:        account.Email,
		Metadata:     account.Metadata,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(p.jwt.GetExpiration().Seconds()),
	}, nil
}

// generateRefreshToken creates a cryptographically secure random token
func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
