package app

import (
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
)

type Middleware struct {
	Session *middleware.SessionMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Session: middleware.NewSessionMiddleware(log, services.Session),
	}
}
