package routes

import (
	"net/http"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/config"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/events"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/handlers"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/middleware"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/storage"
)

// SetupRoutes registers the HTTP surface, each route exactly once, and wraps
// the mux with request logging.
func SetupRoutes(store *storage.Service, det handlers.Detector, hub *events.Hub, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handlers.HomeHandler())
	mux.HandleFunc("/predict/", handlers.PredictHandler(store, det, hub, logger))
	mux.HandleFunc("/output/", handlers.OutputHandler(store, logger))
	mux.HandleFunc("/ui", handlers.UIHandler(cfg.TemplatePath, logger))
	mux.HandleFunc("/ws", handlers.EventsWebsocketHandler(hub, logger))

	return middleware.Logging(logger)(mux)
}
