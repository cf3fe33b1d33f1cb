package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	myHTTP "github.com/MKhiriev/go-story-sync/internal/handler/http"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
)

// Handlers aggregates the transport handlers of the server.
type Handlers struct {
	HTTP *myHTTP.Handler
}

func NewHandlers(services *service.Services, tokenSignKey string, registry *prometheus.Registry, logger *logger.Logger) *Handlers {
	return &Handlers{
		HTTP: myHTTP.NewHandler(services, tokenSignKey, registry, logger),
	}
}
