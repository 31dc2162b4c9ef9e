package httpx

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
	"github.com/safar/storefront-api/internal/store"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	DB *sql.DB
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Post("/admin/login", h.login)
	r.Get("/admin/products", h.listProducts)
	r.Post("/admin/products", h.createProduct)
	r.Put("/admin/products/{productId}", h.updateProduct)
	r.Delete("/admin/products/{productId}", h.deleteProduct)
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Admin username and password are required")
		return
	}

	admin, err := store.GetAdminByUsername(r.Context(), h.DB, req.Username)
	if err != nil {
		if errors.Is(err, database.ErrAdminNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid admin username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Password != admin.PasswordHash {
		writeError(w, http.StatusUnauthorized, "Invalid admin username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Admin login successful",
		"adminId":  admin.ID,
		"username": admin.Username,
	})
}

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := store.ListProducts(r.Context(), h.DB)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string           `json:"title"`
		Description *string          `json:"description"`
		Image       *string          `json:"image"`
		Price       *decimal.Decimal `json:"price"`
		Category    *string          `json:"category"`
		Rating      *decimal.Decimal `json:"rating"`
		Stock       *int             `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Price == nil || req.Stock == nil {
		writeError(w, http.StatusBadRequest, "Product title, price and stock are required")
		return
	}

	productID, err := store.CreateProduct(r.Context(), h.DB, store.CreateProductRequest{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       *req.Price,
		Category:    req.Category,
		Rating:      req.Rating,
		Stock:       *req.Stock,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Product created successfully",
		"productId": productID,
	})
}

func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := urlParamInt64(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var patch store.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "No product fields provided to update")
		return
	}

	if err := store.UpdateProduct(r.Context(), h.DB, productID, patch); err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := urlParamInt64(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := store.DeleteProduct(r.Context(), h.DB, productID); err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
