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
)

type CatalogHandler struct {
	DB *sql.DB
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/search", h.search)
	r.Get("/product_stock/{productId}", h.productStock)
	r.Post("/check_stock", h.checkStock)
}

func (h *CatalogHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	products, err := store.SearchProducts(r.Context(), h.DB,
		q.Get("query"), q.Get("sortBy"), q.Get("sortOrder"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) productStock(w http.ResponseWriter, r *http.Request) {
	productID, err := urlParamInt64(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	stock, err := store.GetProductStock(r.Context(), h.DB, productID)
	if err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"productId": productID,
		"stock":     stock,
	})
}

func (h *CatalogHandler) checkStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []store.StockCheckItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Items == nil {
		writeError(w, http.StatusBadRequest, "Invalid items list")
		return
	}

	results, err := store.CheckStock(r.Context(), h.DB, req.Items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, results)
}
