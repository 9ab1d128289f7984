package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anuragc10/academiapro/internal/gateway/middleware"
	auth_http "github.com/anuragc10/academiapro/internal/modules/auth/interfaces/http"
	notification_http "github.com/anuragc10/academiapro/internal/modules/notification/interfaces/http"
	profile_http "github.com/anuragc10/academiapro/internal/modules/profile/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler         *auth_http.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	ProfileHandler      *profile_http.ProfileHandler
	NotificationHandler *notification_http.NotificationHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Auth Routes
	mux.HandleFunc("POST /register", config.AuthHandler.Register)
	mux.HandleFunc("POST /login", config.AuthHandler.Login)
	mux.Handle("GET /me", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.AuthHandler.Me)))

	// Profile Routes
	mux.Handle("GET /profile", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.ProfileHandler.GetProfile)))
	mux.Handle("PUT /profile", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.ProfileHandler.UpdateProfile)))
	mux.Handle("POST /profile/image", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.ProfileHandler.UploadImage)))

	// Notification Routes
	mux.Handle("GET /notifications/{userId}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.ListForUser)))
	mux.Handle("GET /notifications/{userId}/unread-count", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.UnreadCount)))
	mux.Handle("POST /notifications/read/{id}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkRead)))
	mux.Handle("POST /notifications/mark-all-read/{userId}", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkAllRead)))
	mux.Handle("POST /notifications", config.AuthMiddleware.RequireAuth(config.AuthMiddleware.RequireRole(http.HandlerFunc(config.NotificationHandler.Create), "faculty", "admin")))
	mux.Handle("GET /ws", config.AuthMiddleware.RequireAuth(http.HandlerFunc(config.NotificationHandler.Subscribe)))

	return mux
}
