package httpx

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/safar/storefront-api/internal/config"
	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/store"
)

const maxAvatarMemory = 10 << 20

type AccountHandler struct {
	DB      *sql.DB
	Uploads config.UploadConfig
}

func (h *AccountHandler) Register(r *chi.Mux) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/upload_avatar", h.uploadAvatar)
}

func (h *AccountHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	userID, err := store.CreateUser(r.Context(), h.DB, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"userId":  userID,
	})
}

func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := store.GetUserByUsername(r.Context(), h.DB, req.Username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Plaintext comparison, matching what registration stores.
	if req.Password != user.PasswordHash {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Login successful",
		"userId":    user.ID,
		"username":  user.Username,
		"avatarUrl": user.AvatarURL,
	})
}

// uploadAvatar responds with the original {"success": ..., "message": ...}
// shape rather than the {"error": ...} body the other endpoints use; the
// storefront client keys on the success flag for this one call.
func (h *AccountHandler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		writeUploadError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	userID, err := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	if err != nil {
		writeUploadError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeUploadError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}
	defer file.Close()

	avatarDir := filepath.Join(h.Uploads.Dir, "avatars")
	if err := os.MkdirAll(avatarDir, 0o755); err != nil {
		writeUploadError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("%d-%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(avatarDir, filename))
	if err != nil {
		writeUploadError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeUploadError(w, http.StatusInternalServerError, err.Error())
		return
	}

	avatarURL := h.Uploads.PublicBaseURL + "/avatars/" + filename
	if err := store.UpdateUserAvatar(r.Context(), h.DB, userID, avatarURL); err != nil {
		writeUploadError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Avatar updated successfully",
		"avatarUrl": avatarURL,
	})
}

func writeUploadError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
