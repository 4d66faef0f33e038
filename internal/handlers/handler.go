package handlers

import (
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medqueue-uz/medqueue-api/internal/config"
	"github.com/medqueue-uz/medqueue-api/internal/realtime"
	"github.com/medqueue-uz/medqueue-api/internal/services"
)

// Handler bundles the dependencies every HTTP handler needs: the database,
// the Telegram notifier, the realtime hub and the process configuration.
type Handler struct {
	DB       *mongo.Database
	Notifier *services.TelegramNotifier
	Hub      *realtime.Hub
	Cfg      *config.Config
	Logger   zerolog.Logger
}

// New builds a Handler with all its collaborators.
func New(db *mongo.Database, notifier *services.TelegramNotifier, hub *realtime.Hub, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		DB:       db,
		Notifier: notifier,
		Hub:      hub,
		Cfg:      cfg,
		Logger:   logger,
	}
}

// parseDate accepts the date formats booking clients send: a plain calendar
// date or a full RFC3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
