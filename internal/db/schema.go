package db

import (
	"context"
	"database/sql"
	"fmt"
)

// The DDL is kept to the subset postgres and sqlite both accept.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		marketplace_id    TEXT PRIMARY KEY,
		title             TEXT NOT NULL DEFAULT '',
		brand             TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		price             DOUBLE PRECISION,
		discount          DOUBLE PRECISION,
		commission_rate   DOUBLE PRECISION,
		rating            DOUBLE PRECISION,
		review_count      INTEGER,
		material          TEXT NOT NULL DEFAULT '',
		weave_type        TEXT NOT NULL DEFAULT '',
		thread_count      INTEGER,
		color             TEXT NOT NULL DEFAULT '',
		size              TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL DEFAULT '',
		pretty_title      TEXT NOT NULL DEFAULT '',
		summary_text      TEXT NOT NULL DEFAULT '',
		primary_image_ref TEXT NOT NULL DEFAULT '',
		images            TEXT NOT NULL DEFAULT '[]',
		bullets           TEXT NOT NULL DEFAULT '[]',
		external_scores   TEXT NOT NULL DEFAULT '{}',
		created_at        TIMESTAMP NOT NULL,
		last_updated      TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand)`,

	`CREATE TABLE IF NOT EXISTS product_features (
		id            TEXT PRIMARY KEY,
		product_id    TEXT NOT NULL REFERENCES products(marketplace_id),
		text          TEXT NOT NULL,
		polarity      TEXT NOT NULL,
		category      TEXT NOT NULL,
		importance    TEXT NOT NULL,
		impact_score  DOUBLE PRECISION NOT NULL,
		provenance    TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL,
		UNIQUE (product_id, text)
	)`,

	`CREATE TABLE IF NOT EXISTS affiliate_links (
		id                   TEXT PRIMARY KEY,
		product_id           TEXT NOT NULL REFERENCES products(marketplace_id),
		platform             TEXT NOT NULL DEFAULT '',
		affiliate_type       TEXT NOT NULL DEFAULT '',
		link_type            TEXT NOT NULL DEFAULT 'web',
		raw_url              TEXT NOT NULL,
		commission_rate      DOUBLE PRECISION,
		end_date             TIMESTAMP,
		internal_link        TEXT NOT NULL DEFAULT '',
		pretty_referral_link TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMP NOT NULL,
		UNIQUE (product_id, raw_url)
	)`,

	`CREATE TABLE IF NOT EXISTS product_scores (
		product_id  TEXT PRIMARY KEY REFERENCES products(marketplace_id),
		method      TEXT NOT NULL,
		overall     DOUBLE PRECISION NOT NULL,
		sub_scores  TEXT NOT NULL DEFAULT '{}',
		computed_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ingest_runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		started_at  TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		total       INTEGER NOT NULL,
		created     INTEGER NOT NULL,
		updated     INTEGER NOT NULL,
		skipped     INTEGER NOT NULL,
		failed      INTEGER NOT NULL
	)`,
}

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for i, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
