package database

import (
	"context"
	"database/sql"
	"fmt"
)

// news.date and news.time are deliberately text: the feed is ordered
// lexically on both columns, matching the data the storefront client
// already ships.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		avatar_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		image TEXT,
		price NUMERIC(12,2),
		category TEXT,
		rating NUMERIC(3,1),
		stock INTEGER NOT NULL DEFAULT 4
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		rating INTEGER CHECK (rating >= 1 AND rating <= 5),
		comment_text TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		order_details TEXT NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending payment',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS news (
		id SERIAL PRIMARY KEY,
		image TEXT,
		news_image TEXT,
		news_title TEXT NOT NULL,
		news_categories TEXT,
		time TEXT,
		date TEXT,
		color TEXT,
		description TEXT
	)`,
}

// EnsureSchema creates any missing tables. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
