package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
)

type Handler struct {
	services *service.Services

	tokenSignKey string
	registry     *prometheus.Registry

	logger *logger.Logger
}

func NewHandler(services *service.Services, tokenSignKey string, registry *prometheus.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		tokenSignKey: tokenSignKey,
		registry:     registry,
		logger:       logger,
	}
}
