package httpx

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safar/storefront-api/internal/models"
	"github.com/safar/storefront-api/internal/store"
)

type ReviewHandler struct {
	DB *sql.DB
}

func (h *ReviewHandler) Register(r *chi.Mux) {
	r.Post("/submit_review", h.submitReview)
	r.Get("/product_reviews/{productId}", h.productReviews)
	r.Get("/user/comments/{userId}", h.userComments)
}

func (h *ReviewHandler) submitReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int64   `json:"userId"`
		ProductID   int64   `json:"productId"`
		Rating      *int    `json:"rating"`
		CommentText *string `json:"commentText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.ProductID == 0 || req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "Missing required review information")
		return
	}

	reviewID, err := store.CreateReview(r.Context(), h.DB, store.CreateReviewRequest{
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		Rating:      *req.Rating,
		CommentText: req.CommentText,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Review submitted successfully",
		"reviewId": reviewID,
	})
}

func (h *ReviewHandler) productReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := urlParamInt64(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	reviews, err := store.ReviewsByProduct(r.Context(), h.DB, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) userComments(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	reviews, err := store.ReviewsByUser(r.Context(), h.DB, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}
