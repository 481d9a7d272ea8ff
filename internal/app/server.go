package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"sms-ingest/internal/handlers"
	"sms-ingest/internal/server"
)

// BuildServer assembles the handlers and routes into a ready-to-start server.
func (app *App) BuildServer() (*server.Server, http.Handler) {
	h := handlers.New(app.Storage, app.Verifier, app.Validator, app.Config, app.Metrics)

	router := mux.NewRouter()
	SetupRoutes(router, h, app.Metrics, app.initializeRateLimiter())

	return server.New(router, app.Config.Port), router
}
