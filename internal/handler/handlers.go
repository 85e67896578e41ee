// Package handler aggregates the transport handlers of the application.
// The server currently exposes a single REST transport.
package handler

import (
	"github.com/sixpath/sixpath-server/internal/handler/http"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}
}
