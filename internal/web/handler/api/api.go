// Package api provides the JSON endpoints for barcodes and settings.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rotostampa/piscanner/internal/config"
	"github.com/rotostampa/piscanner/internal/store"
	"github.com/rotostampa/piscanner/internal/web/handler"
)

const (
	// BarcodesPath is the path of the barcodes endpoint.
	BarcodesPath = handler.RootPath + "api/barcodes"

	// SettingsPath is the path of the settings endpoint.
	SettingsPath = handler.RootPath + "api/settings"

	// DefaultLimit is the default number of barcodes returned.
	DefaultLimit = 50

	// MaxLimit caps the limit query parameter.
	MaxLimit = 500
)

// Barcode is the JSON representation of a scanned barcode.
type Barcode struct {
	ID          uint64     `json:"id"`
	Barcode     string     `json:"barcode"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Status      string     `json:"status"`
	Pending     bool       `json:"pending"`
}

// Service is the api handler service.
type Service struct {
	cfg *config.Config
	st  *store.Store
}

// Handler is the api handler.
var Handler = Service{}

// Init initializes the api handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(BarcodesPath, s.GetBarcodes)
	app.Get(SettingsPath, s.GetSettings)
}

// GetBarcodes returns the most recent barcodes as JSON.
func (s *Service) GetBarcodes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	pendingOnly := c.QueryBool("pending", false)

	barcodes, err := s.st.Read(limit, pendingOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to read barcodes")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	out := make([]Barcode, 0, len(barcodes))

	for i := range barcodes {
		b := &barcodes[i]
		out = append(out, Barcode{
			ID:          b.ID,
			Barcode:     b.Barcode,
			CreatedAt:   b.CreatedAt,
			CompletedAt: b.CompletedAt,
			Status:      b.Status,
			Pending:     b.Pending(),
		})
	}

	return c.JSON(fiber.Map{
		"barcodes": out,
	})
}

// GetSettings returns the resolved settings as JSON. The bearer token is
// masked so a dashboard screenshot can not leak it.
func (s *Service) GetSettings(c *fiber.Ctx) error {
	settings, err := s.st.Settings()
	if err != nil {
		log.Error().Err(err).Msg("failed to read settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if settings[store.KeyServerToken] != "" {
		settings[store.KeyServerToken] = "********"
	}

	return c.JSON(fiber.Map{
		"settings": settings,
	})
}
