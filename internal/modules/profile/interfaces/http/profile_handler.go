package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/anuragc10/academiapro/internal/gateway/middleware"
	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	"github.com/anuragc10/academiapro/internal/modules/profile/application"
	"github.com/anuragc10/academiapro/internal/shared/utils"
)

// 5 MB cap on profile image uploads.
const maxUploadSize = 5 << 20

type ProfileHandler struct {
	service *application.ProfileService
}

func NewProfileHandler(service *application.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch profile", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req application.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUserNotFound):
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, authdomain.ErrUserAlreadyExists):
			utils.WriteError(w, http.StatusConflict, "email already in use", nil)
		default:
			utils.WriteError(w, http.StatusBadRequest, "failed to update profile", err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}

// UploadImage accepts a multipart form with a "profileImage" file field,
// stores the resized image and returns its URL.
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	file, header, err := r.FormFile("profileImage")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "missing profileImage file", err)
		return
	}
	defer file.Close()

	url, err := h.service.UploadImage(r.Context(), userID, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUnsupportedImage):
			utils.WriteError(w, http.StatusBadRequest, "unsupported image format", err)
		case errors.Is(err, authdomain.ErrUserNotFound):
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
		default:
			utils.WriteError(w, http.StatusInternalServerError, "failed to upload image", err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"profileImage": url})
}
