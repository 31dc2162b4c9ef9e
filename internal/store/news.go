package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/storefront-api/internal/models"
)

// ListNews orders lexically on the text date and time columns. That is
// the contract the storefront client was built against, not an
// oversight to fix here.
func ListNews(ctx context.Context, db *sql.DB) ([]models.News, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, image, news_image, news_title, news_categories, time, date, color, description
		 FROM news
		 ORDER BY date DESC, time DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		var item models.News
		err := rows.Scan(
			&item.ID,
			&item.Image,
			&item.NewsImage,
			&item.NewsTitle,
			&item.NewsCategories,
			&item.Time,
			&item.Date,
			&item.Color,
			&item.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scan news item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}
