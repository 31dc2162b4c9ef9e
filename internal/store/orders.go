package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	UserID      int64
	Items       []models.OrderLine
	TotalAmount decimal.Decimal
}

// CreateOrder serializes the submitted line items verbatim into the
// order row and commits inside a single transaction, so a failed insert
// leaves no partial state. Stock is not reserved or decremented here;
// the transaction exists so that a future decrement can join the same
// atomic unit.
func CreateOrder(ctx context.Context, db *sql.DB, req CreateOrderRequest) (int64, error) {
	snapshot, err := json.Marshal(req.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal order items: %w", err)
	}

	var orderID int64
	err = database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`INSERT INTO orders (user_id, order_details, total_amount, status)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			req.UserID, string(snapshot), req.TotalAmount, models.OrderStatusPendingPayment).Scan(&orderID)
	})
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	return orderID, nil
}

// ListOrdersByUser returns the user's orders newest first, with each
// stored snapshot deserialized back into line items.
func ListOrdersByUser(ctx context.Context, db *sql.DB, userID int64) ([]models.Order, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, order_details, total_amount, status, created_at
		 FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var details string
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&details,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		if err := json.Unmarshal([]byte(details), &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order %d items: %w", order.ID, err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus overwrites the status unconditionally; there is no
// legal-transition check on the free-text value.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, orderID int64, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}
