package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rotostampa/piscanner/internal/config"
	"github.com/rotostampa/piscanner/internal/store"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, st *store.Store) error
}
