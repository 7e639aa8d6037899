// Package handler implements the JSON API surface.
package handler

import (
	"log/slog"

	"buswatch/internal/config"
	"buswatch/internal/delay"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	resolver *delay.Resolver
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a Handler.
func New(resolver *delay.Resolver, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{resolver: resolver, cfg: cfg, logger: logger}
}

// dataSource returns the human-readable origin label for a snapshot set.
func (h *Handler) dataSource(simulated bool) string {
	if simulated {
		return "simulated (upstream unavailable)"
	}
	return h.cfg.TransitBaseURL
}
