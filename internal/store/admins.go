package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
)

func GetAdminByUsername(ctx context.Context, db *sql.DB, username string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash
		 FROM admins
		 WHERE username = $1`,
		username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return admin, nil
}
