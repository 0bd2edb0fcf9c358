// Package dashboard provides the dashboard handler showing recent scans.
package dashboard

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rotostampa/piscanner/internal/config"
	"github.com/rotostampa/piscanner/internal/store"
	"github.com/rotostampa/piscanner/internal/web/handler"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// PageSize is the number of recent scans shown.
	PageSize = 50

	timeFormat = "2006-01-02 15:04:05"
)

// Row represents a scanned barcode for template rendering.
type Row struct {
	ID          uint64
	Barcode     string
	CreatedAt   string
	CompletedAt string
	Status      string
	Pending     bool
}

// SettingRow represents a resolved setting for template rendering.
type SettingRow struct {
	Key   string
	Value string
}

// Service is the dashboard handler service.
type Service struct {
	cfg *config.Config
	st  *store.Store
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	barcodes, err := s.st.Read(PageSize, false)
	if err != nil {
		log.Error().Err(err).Msg("failed to read barcodes")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to read barcodes: " + err.Error())
	}

	settings, err := s.st.Settings()
	if err != nil {
		log.Error().Err(err).Msg("failed to read settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to read settings: " + err.Error())
	}

	rows := buildRows(barcodes)

	log.Debug().
		Int("barcodes", len(rows)).
		Int("settings", len(settings)).
		Msg("dashboard rendered")

	return c.Render(TemplateName, fiber.Map{
		"Title":    s.cfg.Title,
		"Rows":     rows,
		"Settings": buildSettingRows(settings),
	}, handler.BaseLayout)
}

// buildRows converts stored barcodes to template rows.
func buildRows(barcodes []store.Barcode) []Row {
	rows := make([]Row, 0, len(barcodes))

	for i := range barcodes {
		b := &barcodes[i]

		row := Row{
			ID:        b.ID,
			Barcode:   b.Barcode,
			CreatedAt: b.CreatedAt.Local().Format(timeFormat),
			Status:    b.Status,
			Pending:   b.Pending(),
		}

		if b.CompletedAt != nil {
			row.CompletedAt = b.CompletedAt.Local().Format(timeFormat)
		}

		rows = append(rows, row)
	}

	return rows
}

// buildSettingRows flattens the settings map into sorted rows. The bearer
// token is masked, everything else is operator-visible configuration.
func buildSettingRows(settings map[string]string) []SettingRow {
	rows := make([]SettingRow, 0, len(settings))

	for key, value := range settings {
		if key == store.KeyServerToken && value != "" {
			value = "********"
		}

		rows = append(rows, SettingRow{Key: key, Value: value})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})

	return rows
}
