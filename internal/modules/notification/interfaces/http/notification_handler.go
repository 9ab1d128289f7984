package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/anuragc10/academiapro/internal/gateway/middleware"
	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	"github.com/anuragc10/academiapro/internal/modules/notification/application"
	"github.com/anuragc10/academiapro/internal/modules/notification/domain"
	"github.com/anuragc10/academiapro/internal/modules/notification/infrastructure/websocket"
	"github.com/anuragc10/academiapro/internal/shared/utils"
)

type NotificationHandler struct {
	service *application.NotificationService
	hub     *websocket.Hub
}

func NewNotificationHandler(service *application.NotificationService, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub}
}

// Subscribe upgrades to a websocket and registers the caller for push
// delivery. The identity comes from the auth middleware, never the request.
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	role, _ := r.Context().Value(middleware.ContextKeyRole).(string)

	websocket.ServeWs(h.hub, w, r, userID, role)
}

// ListForUser returns the notifications visible to the user in the path:
// their own, their role's, and global broadcasts, newest first.
func (h *NotificationHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	notifications, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch notifications", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, notifications)
}

// MarkRead marks one notification as read and returns the updated record.
// The authenticated caller's identity travels along so their unread count
// is refreshed immediately.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", err)
		return
	}

	n, err := h.service.MarkRead(r.Context(), callerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			utils.WriteError(w, http.StatusNotFound, "notification not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to mark notification as read", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, n)
}

// MarkAllRead marks everything visible to the user in the path as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if err := h.service.MarkAllRead(r.Context(), userID); err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to mark all notifications as read", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// Create persists a new notification. Reaching here requires the faculty or
// admin role (enforced by the role middleware on the route).
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in application.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	n, err := h.service.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to create notification", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, n)
}

// UnreadCount returns the number of unread visible notifications.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "user not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to get unread count", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}
