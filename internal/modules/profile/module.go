package profile

import (
	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	fileapp "github.com/anuragc10/academiapro/internal/modules/filestorage/application"
	"github.com/anuragc10/academiapro/internal/modules/profile/application"
	profile_http "github.com/anuragc10/academiapro/internal/modules/profile/interfaces/http"
)

// Module represents the Profile module
type Module struct {
	service *application.ProfileService
	handler *profile_http.ProfileHandler
}

// NewModule creates and initializes the Profile module
func NewModule(repo authdomain.UserRepository, files *fileapp.FileService) *Module {
	service := application.NewProfileService(repo, files)
	handler := profile_http.NewProfileHandler(service)

	return &Module{
		service: service,
		handler: handler,
	}
}

// HTTPHandler returns the HTTP handler for the profile module
func (m *Module) HTTPHandler() *profile_http.ProfileHandler {
	return m.handler
}

// Service returns the profile service
func (m *Module) Service() *application.ProfileService {
	return m.service
}
