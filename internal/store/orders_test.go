package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
	"github.com/shopspring/decimal"
)

func TestCreateOrderSnapshotRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	userID, err := CreateUser(ctx, db, "order-user", "secret")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	items := []models.OrderLine{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("9.99")},
		{ProductID: 7, Quantity: 1, Price: decimal.RequireFromString("5.50")},
	}

	orderID, err := CreateOrder(ctx, db, CreateOrderRequest{
		UserID:      userID,
		Items:       items,
		TotalAmount: decimal.RequireFromString("25.48"),
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}
	if orderID == 0 {
		t.Error("Order ID should not be 0")
	}

	orders, err := ListOrdersByUser(ctx, db, userID)
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}

	got := orders[0]
	if got.ID != orderID {
		t.Errorf("Expected order ID %d, got %d", orderID, got.ID)
	}
	if got.Status != models.OrderStatusPendingPayment {
		t.Errorf("Expected status %q, got %q", models.OrderStatusPendingPayment, got.Status)
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("25.48")) {
		t.Errorf("Expected total 25.48, got %s", got.TotalAmount)
	}
	if len(got.Items) != len(items) {
		t.Fatalf("Expected %d items, got %d", len(items), len(got.Items))
	}
	for i, item := range items {
		if got.Items[i].ProductID != item.ProductID ||
			got.Items[i].Quantity != item.Quantity ||
			!got.Items[i].Price.Equal(item.Price) {
			t.Errorf("Item %d mismatch: got %+v, want %+v", i, got.Items[i], item)
		}
	}
}

func TestOrderSnapshotSurvivesProductEdits(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	userID, err := CreateUser(ctx, db, "snapshot-user", "secret")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	price := decimal.RequireFromString("10.00")
	productID, err := CreateProduct(ctx, db, CreateProductRequest{
		Title: "Mug", Price: price, Stock: 3,
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	_, err = CreateOrder(ctx, db, CreateOrderRequest{
		UserID:      userID,
		Items:       []models.OrderLine{{ProductID: productID, Quantity: 1, Price: price}},
		TotalAmount: price,
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if err := DeleteProduct(ctx, db, productID); err != nil {
		t.Fatalf("Delete product: %v", err)
	}

	orders, err := ListOrdersByUser(ctx, db, userID)
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if len(orders) != 1 || len(orders[0].Items) != 1 {
		t.Fatalf("Expected 1 order with 1 item, got %+v", orders)
	}
	if orders[0].Items[0].ProductID != productID {
		t.Errorf("Snapshot should keep deleted product reference %d, got %d",
			productID, orders[0].Items[0].ProductID)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	userID, err := CreateUser(ctx, db, "list-user", "secret")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := CreateOrder(ctx, db, CreateOrderRequest{
			UserID:      userID,
			Items:       []models.OrderLine{{ProductID: 1, Quantity: 1}},
			TotalAmount: decimal.NewFromInt(int64(i + 1)),
		})
		if err != nil {
			t.Fatalf("Create order %d: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	orders, err := ListOrdersByUser(ctx, db, userID)
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("Expected 3 orders, got %d", len(orders))
	}
	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt.After(orders[i-1].CreatedAt) {
			t.Errorf("Orders not newest first at index %d", i)
		}
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	userID, err := CreateUser(ctx, db, "status-user", "secret")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	orderID, err := CreateOrder(ctx, db, CreateOrderRequest{
		UserID:      userID,
		Items:       []models.OrderLine{{ProductID: 1, Quantity: 1}},
		TotalAmount: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if err := UpdateOrderStatus(ctx, db, orderID, "shipped"); err != nil {
		t.Fatalf("Update status: %v", err)
	}

	orders, err := ListOrdersByUser(ctx, db, userID)
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if orders[0].Status != "shipped" {
		t.Errorf("Expected status shipped, got %q", orders[0].Status)
	}

	// Free-text status, no transition rules: moving back is allowed.
	if err := UpdateOrderStatus(ctx, db, orderID, models.OrderStatusPendingPayment); err != nil {
		t.Fatalf("Update status back: %v", err)
	}

	err = UpdateOrderStatus(ctx, db, 999999, "shipped")
	if !errors.Is(err, database.ErrOrderNotFound) {
		t.Errorf("Expected order not found, got: %v", err)
	}
}
