package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS pricing_tiers (
		id BIGSERIAL PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		people_count INTEGER NOT NULL CHECK (people_count > 0),
		price_per_person BIGINT NOT NULL,
		deposit_per_person BIGINT NOT NULL DEFAULT 0 CHECK (deposit_per_person >= 0),
		local_payment_per_person BIGINT NOT NULL DEFAULT 0 CHECK (local_payment_per_person >= 0)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pricing_tiers_product_id ON pricing_tiers (product_id);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'option_category') THEN
			CREATE TYPE option_category AS ENUM ('accommodation', 'vehicle');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS product_options (
		id TEXT PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		category option_category NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_modifier BIGINT NOT NULL DEFAULT 0,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		image_url TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_product_options_product ON product_options (product_id, category);`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL DEFAULT 'product',
		status TEXT NOT NULL DEFAULT 'pending_payment',
		product_name TEXT NOT NULL,
		user_id UUID,
		customer_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		headcount TEXT NOT NULL DEFAULT '',
		total_people INTEGER NOT NULL DEFAULT 1,
		total_amount BIGINT NOT NULL DEFAULT 0,
		deposit BIGINT NOT NULL DEFAULT 0,
		deposit_status TEXT NOT NULL DEFAULT 'unpaid',
		balance BIGINT NOT NULL DEFAULT 0,
		balance_status TEXT NOT NULL DEFAULT 'unpaid',
		assigned_guide TEXT,
		daily_accommodations TEXT,
		history TEXT,
		are_assignments_visible_to_user BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user_id ON reservations (user_id) WHERE user_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations (created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		destination TEXT NOT NULL DEFAULT '',
		travel_dates TEXT NOT NULL DEFAULT '',
		travelers TEXT NOT NULL DEFAULT '',
		customer_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		confirmed_price BIGINT,
		deposit BIGINT,
		admin_note TEXT,
		estimate_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_user_id ON quotes (user_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
