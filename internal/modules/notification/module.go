package notification

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	authdomain "github.com/anuragc10/academiapro/internal/modules/auth/domain"
	"github.com/anuragc10/academiapro/internal/modules/notification/application"
	"github.com/anuragc10/academiapro/internal/modules/notification/infrastructure/cache"
	"github.com/anuragc10/academiapro/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/anuragc10/academiapro/internal/modules/notification/infrastructure/websocket"
	notification_http "github.com/anuragc10/academiapro/internal/modules/notification/interfaces/http"
)

type Module struct {
	service *application.NotificationService
	handler *notification_http.NotificationHandler
	hub     *websocket.Hub
}

// NewModule wires the notification module. rdb may be nil, which disables
// the unread-count cache.
func NewModule(db *sqlx.DB, rdb *redis.Client, users authdomain.UserFinder) *Module {
	repo := postgres.NewPgNotificationRepository(db)
	hub := websocket.NewHub()
	go hub.Run()

	unread := cache.NewUnreadCache(rdb, 30*time.Second)
	service := application.NewNotificationService(repo, users, hub, unread)
	handler := notification_http.NewNotificationHandler(service, hub)

	return &Module{
		service: service,
		handler: handler,
		hub:     hub,
	}
}

func (m *Module) HTTPHandler() *notification_http.NotificationHandler {
	return m.handler
}

func (m *Module) Service() *application.NotificationService {
	return m.service
}

func (m *Module) Hub() *websocket.Hub {
	return m.hub
}
