package database

import (
	"context"
	"fmt"
)

// schema is applied in order at startup. Every statement is idempotent.
var schema = []string{
	// identity store
	`DEFINE TABLE IF NOT EXISTS account SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS account_email ON account FIELDS email UNIQUE`,
	`DEFINE TABLE IF NOT EXISTS refresh_token SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS refresh_token_hash ON refresh_token FIELDS token_hash UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS refresh_token_account ON refresh_token FIELDS account_id`,

	// marketplace
	`DEFINE TABLE IF NOT EXISTS profile SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS profile_user_type ON profile FIELDS user_type, is_active`,
	`DEFINE TABLE IF NOT EXISTS availability SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS availability_professional ON availability FIELDS professional_id, date`,
	`DEFINE TABLE IF NOT EXISTS booking SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS booking_client ON booking FIELDS client_id`,
	`DEFINE INDEX IF NOT EXISTS booking_professional ON booking FIELDS professional_id`,
	`DEFINE TABLE IF NOT EXISTS quote_request SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS quote_request_client ON quote_request FIELDS client_id`,
	`DEFINE INDEX IF NOT EXISTS quote_request_professional ON quote_request FIELDS professional_id`,
	`DEFINE TABLE IF NOT EXISTS equipment SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS equipment_owner ON equipment FIELDS owner_id`,
	`DEFINE TABLE IF NOT EXISTS equipment_proposal SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS equipment_proposal_buyer ON equipment_proposal FIELDS buyer_id`,
	`DEFINE INDEX IF NOT EXISTS equipment_proposal_seller ON equipment_proposal FIELDS seller_id`,
	`DEFINE TABLE IF NOT EXISTS review SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS review_booking ON review FIELDS booking_id UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS review_professional ON review FIELDS professional_id`,
	`DEFINE TABLE IF NOT EXISTS portfolio_item SCHEMALESS`,
	`DEFINE INDEX IF NOT EXISTS portfolio_item_professional ON portfolio_item FIELDS professional_id, sort_order`,
}

// Migrate defines the tables and indexes the repositories rely on
func Migrate(ctx context.Context, db Database) error {
	for _, stmt := range schema {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("migrate %q: %w", stmt, err)
		}
	}
	return nil
}
