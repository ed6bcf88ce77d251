package controllers

import (
	"time"

	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Dependencies are the collaborators shared by the HTTP handlers
type Dependencies struct {
	DB              *gorm.DB
	Redis           *redis.Client
	Notifier        services.VerificationNotifier
	Storage         utils.Uploader
	OAuth           *oauth2.Config
	VerificationTTL time.Duration
	FrontendURL     string
}

var (
	deps         Dependencies
	authService  *services.AuthService
	eventService *services.EventService
)

// Setup wires the handlers to their dependencies. It must be called
// before the router serves requests.
func Setup(d Dependencies) {
	deps = d
	authService = &services.AuthService{
		DB:              d.DB,
		Notifier:        d.Notifier,
		VerificationTTL: d.VerificationTTL,
	}
	eventService = &services.EventService{
		DB:      d.DB,
		Storage: d.Storage,
	}
}
