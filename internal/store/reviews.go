package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/storefront-api/internal/models"
)

type CreateReviewRequest struct {
	UserID      int64
	ProductID   int64
	Rating      int
	CommentText *string
}

func CreateReview(ctx context.Context, db *sql.DB, req CreateReviewRequest) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO reviews (user_id, product_id, rating, comment_text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		req.UserID, req.ProductID, req.Rating, req.CommentText).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create review: %w", err)
	}
	return id, nil
}

func ReviewsByProduct(ctx context.Context, db *sql.DB, productID int64) ([]models.Review, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.user_id, u.username, u.avatar_url, r.product_id, r.rating, r.comment_text, r.created_at
		 FROM reviews r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.product_id = $1
		 ORDER BY r.created_at DESC`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("reviews by product: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Username,
			&review.AvatarURL,
			&review.ProductID,
			&review.Rating,
			&review.CommentText,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

// ReviewsByUser joins in the reviewed product's title via LEFT JOIN: a
// review outlives its product, showing up with a nil title instead of
// disappearing.
func ReviewsByUser(ctx context.Context, db *sql.DB, userID int64) ([]models.Review, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.user_id, u.username, u.avatar_url, r.product_id, p.title, r.rating, r.comment_text, r.created_at
		 FROM reviews r
		 JOIN users u ON r.user_id = u.id
		 LEFT JOIN products p ON r.product_id = p.id
		 WHERE r.user_id = $1
		 ORDER BY r.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("reviews by user: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Username,
			&review.AvatarURL,
			&review.ProductID,
			&review.ProductTitle,
			&review.Rating,
			&review.CommentText,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}
