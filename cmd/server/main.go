package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/anuragc10/academiapro/internal/gateway"
	"github.com/anuragc10/academiapro/internal/gateway/middleware"
	"github.com/anuragc10/academiapro/internal/modules/auth"
	"github.com/anuragc10/academiapro/internal/modules/filestorage"
	"github.com/anuragc10/academiapro/internal/modules/notification"
	"github.com/anuragc10/academiapro/internal/modules/profile"
	"github.com/anuragc10/academiapro/internal/shared/infrastructure/config"
	"github.com/anuragc10/academiapro/internal/shared/infrastructure/database"
	"github.com/anuragc10/academiapro/pkg/migration"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := migration.AutoMigrate(databaseURL(cfg.Database), migrationsPath, logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Connecting to DB...")
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database Connected Successfully!")

	// Redis is optional. Without it the unread-count cache is disabled and
	// counts are always computed from Postgres.
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, unread-count cache disabled: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:" + cfg.Server.Port
	}

	fileModule, err := filestorage.NewModule(ctx, cfg.FileStorage, publicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry)
	profileModule := profile.NewModule(authModule.UserRepository(), fileModule.Service())
	notifModule := notification.NewModule(db, rdb, authModule.UserFinder())
	defer notifModule.Hub().Stop()

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:         authModule.HTTPHandler(),
		AuthMiddleware:      authMiddleware,
		ProfileHandler:      profileModule.HTTPHandler(),
		NotificationHandler: notifModule.HTTPHandler(),
	})

	if !cfg.FileStorage.UseS3 {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.FileStorage.LocalPath))))
	}

	handler := middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func databaseURL(cfg database.PostgresConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     cfg.DBName,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}
	return u.String()
}
