package auth

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/anuragc10/academiapro/internal/modules/auth/application"
	"github.com/anuragc10/academiapro/internal/modules/auth/domain"
	"github.com/anuragc10/academiapro/internal/modules/auth/infrastructure/persistence/postgres"
	auth_http "github.com/anuragc10/academiapro/internal/modules/auth/interfaces/http"
)

// Module represents the Auth module
type Module struct {
	service    *application.AuthService
	repository *postgres.PgUserRepository
	handler    *auth_http.AuthHandler
}

// NewModule creates and initializes the Auth module
func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration) *Module {
	repository := postgres.NewUserRepository(db)
	service := application.NewAuthService(repository, jwtSecret, jwtExpiry)
	handler := auth_http.NewAuthHandler(service)

	return &Module{
		service:    service,
		repository: repository,
		handler:    handler,
	}
}

// Service returns the auth service for use by the gateway layer
func (m *Module) Service() *application.AuthService {
	return m.service
}

// UserFinder returns the user lookup interface for use by other modules
func (m *Module) UserFinder() domain.UserFinder {
	return m.repository
}

// UserRepository returns the full user repository
func (m *Module) UserRepository() domain.UserRepository {
	return m.repository
}

// HTTPHandler returns the HTTP handler for the auth module
func (m *Module) HTTPHandler() *auth_http.AuthHandler {
	return m.handler
}
