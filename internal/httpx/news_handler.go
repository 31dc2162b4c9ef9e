package httpx

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safar/storefront-api/internal/models"
	"github.com/safar/storefront-api/internal/store"
)

type NewsHandler struct {
	DB *sql.DB
}

func (h *NewsHandler) Register(r *chi.Mux) {
	r.Get("/news", h.list)
}

func (h *NewsHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListNews(r.Context(), h.DB)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if items == nil {
		items = []models.News{}
	}
	writeJSON(w, http.StatusOK, items)
}
