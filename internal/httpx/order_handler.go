package httpx

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
	"github.com/safar/storefront-api/internal/store"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	DB *sql.DB
}

func (h *OrderHandler) Register(r *chi.Mux) {
	r.Post("/create_order", h.createOrder)
	r.Get("/my_orders/{userId}", h.myOrders)
	r.Put("/update_order_status/{orderId}", h.updateOrderStatus)
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int64              `json:"userId"`
		Items       []models.OrderLine `json:"items"`
		TotalAmount *decimal.Decimal   `json:"totalAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || len(req.Items) == 0 || req.TotalAmount == nil {
		writeError(w, http.StatusBadRequest, "Missing required order information")
		return
	}

	orderID, err := store.CreateOrder(r.Context(), h.DB, store.CreateOrderRequest{
		UserID:      req.UserID,
		Items:       req.Items,
		TotalAmount: *req.TotalAmount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"orderId": orderID,
	})
}

func (h *OrderHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	orders, err := store.ListOrdersByUser(r.Context(), h.DB, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := urlParamInt64(r, "orderId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "Missing new order status")
		return
	}

	if err := store.UpdateOrderStatus(r.Context(), h.DB, orderID, req.Status); err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Order %d status updated to %s", orderID, req.Status),
	})
}
