package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trash_report_status') THEN
			CREATE TYPE trash_report_status AS ENUM ('pending', 'in_review', 'verified', 'solved', 'rejected');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS waste_categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(50) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		recycling_instructions TEXT NOT NULL DEFAULT '',
		icon TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS trash_reports (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		latitude NUMERIC(9,6) NOT NULL,
		longitude NUMERIC(9,6) NOT NULL,
		image TEXT NOT NULL,
		description TEXT NOT NULL,
		severity SMALLINT NOT NULL CHECK (severity BETWEEN 1 AND 4),
		is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
		status trash_report_status NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trash_reports_status ON trash_reports (status);`,
	`CREATE INDEX IF NOT EXISTS idx_trash_reports_created_at ON trash_reports (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_trash_reports_user_id ON trash_reports (user_id);`,
	`CREATE TABLE IF NOT EXISTS report_comments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		report_id UUID NOT NULL REFERENCES trash_reports(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		content TEXT NOT NULL CHECK (length(btrim(content)) > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_report_comments_report_id ON report_comments (report_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS report_status_changes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		report_id UUID NOT NULL REFERENCES trash_reports(id) ON DELETE CASCADE,
		old_status trash_report_status NOT NULL,
		new_status trash_report_status NOT NULL,
		changed_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_report_status_changes_report_id ON report_status_changes (report_id, created_at);`,
	`CREATE TABLE IF NOT EXISTS recycling_points (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '',
		latitude NUMERIC(10,7),
		longitude NUMERIC(10,7),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		opening_hours JSONB NOT NULL DEFAULT '{}'::jsonb,
		contact_info JSONB NOT NULL DEFAULT '{}'::jsonb
	);`,
	`CREATE INDEX IF NOT EXISTS idx_recycling_points_active ON recycling_points (is_active) WHERE latitude IS NOT NULL AND longitude IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_recycling_points_coords ON recycling_points (latitude, longitude);`,
	`CREATE TABLE IF NOT EXISTS recycling_point_categories (
		recycling_point_id UUID NOT NULL REFERENCES recycling_points(id) ON DELETE CASCADE,
		waste_category_id UUID NOT NULL REFERENCES waste_categories(id) ON DELETE CASCADE,
		PRIMARY KEY (recycling_point_id, waste_category_id)
	);`,
	`CREATE TABLE IF NOT EXISTS badges (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(50) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		points_required INTEGER NOT NULL CHECK (points_required >= 0),
		category VARCHAR(50) NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id UUID PRIMARY KEY,
		points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
		level INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
		total_detections INTEGER NOT NULL DEFAULT 0 CHECK (total_detections >= 0),
		badges JSONB NOT NULL DEFAULT '[]'::jsonb,
		preferences JSONB NOT NULL DEFAULT '{}'::jsonb
	);`,
	`CREATE TABLE IF NOT EXISTS impact_metrics (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		waste_category_id UUID NOT NULL REFERENCES waste_categories(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		co2_saved NUMERIC(10,2) NOT NULL,
		water_saved NUMERIC(10,2) NOT NULL,
		date DATE NOT NULL DEFAULT CURRENT_DATE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_impact_metrics_user_date ON impact_metrics (user_id, date DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Migrate applies the schema to an already opened connection.
func Migrate(db *gorm.DB) error {
	return runMigrations(db)
}
