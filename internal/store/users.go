package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
)

func CreateUser(ctx context.Context, db *sql.DB, username, password string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id`,
		username, password).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, database.ErrUsernameTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, avatar_url
		 FROM users
		 WHERE username = $1`,
		username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.AvatarURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func UpdateUserAvatar(ctx context.Context, db *sql.DB, userID int64, avatarURL string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET avatar_url = $1 WHERE id = $2`,
		avatarURL, userID)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}
