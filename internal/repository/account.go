package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/identity"
)

// AccountRepository stores identity accounts. It implements identity.AccountStore.
type AccountRepository struct {
	db database.Database
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db database.Database) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create stores a new account, assigning its id. A taken email returns
// identity.ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, account *identity.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query := `CREATE type::thing('account', $id) CONTENT $content`
	vars := map[string]interface{}{
		"id": account.ID,
		"content": map[string]interface{}{
			"email":         account.Email,
			"password_hash": account.PasswordHash,
			"user_type":     account.Metadata.UserType,
			"display_name":  account.Metadata.DisplayName,
			"created_at":    models.CustomDateTime{Time: account.CreatedAt},
		},
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account, or nil when it does not exist
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*identity.Account, error) {
	data, err := getRecord(ctx, r.db, tableAccount, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseAccount(data), nil
}

// ListByEmail returns the accounts registered with an email
func (r *AccountRepository) ListByEmail(ctx context.Context, email string) ([]*identity.Account, error) {
	query := `SELECT * FROM account WHERE email = $email`
	rows, err := queryAll(ctx, r.db, query, map[string]interface{}{"email": email})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make([]*identity.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, parseAccount(row))
	}
	return accounts, nil
}

// Delete removes an account
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.db, tableAccount, id)
}

func parseAccount(m map[string]interface{}) *identity.Account {
	account := &identity.Account{
		ID:           recordKey(m["id"]),
		Email:        getString(m, "email"),
		PasswordHash: getString(m, "password_hash"),
		Metadata: identity.Metadata{
			UserType:    getString(m, "user_type"),
			DisplayName: getString(m, "display_name"),
		},
	}
	if t := getTime(m, "created_at"); t != nil {
		account.CreatedAt = *t
	}
	return account
}
