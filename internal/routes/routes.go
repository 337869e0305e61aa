package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/handlers"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/middleware"
	"github.com/srpanda29/poultry-health-dashboard/internal/repository"
	"github.com/srpanda29/poultry-health-dashboard/internal/services"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/detection"
)

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, path+".html")

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers static file serving, the API endpoints and the log
// endpoints, and wraps the mux with request logging.
func SetupRoutes(
	manager *services.Manager,
	detector *detection.Service,
	outcomeStore *detection.OutcomeStore,
	readingRepo repository.ReadingRepository,
	cfg *config.Config,
	logger *logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// Live feeds
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(manager, logger))
	mux.HandleFunc("/api/camera", handlers.CameraWebsocketHandler(manager, logger))

	// Detection pipeline
	mux.HandleFunc("/api/detect", handlers.DetectHandler(detector, outcomeStore, logger))
	mux.HandleFunc("/api/detect/last", handlers.LastOutcomeHandler(outcomeStore))

	// Telemetry
	mux.HandleFunc("/api/sensors/latest", handlers.LatestReadingHandler(readingRepo, logger))
	mux.HandleFunc("/api/sensors/history", handlers.ReadingHistoryHandler(readingRepo, logger))
	mux.HandleFunc("/api/sensors/stats", handlers.ReadingStatsHandler(readingRepo, logger))

	// Log endpoints
	for _, level := range []string{"info", "warning", "error"} {
		mux.HandleFunc("/logs/"+level, handlers.ShowLogsHandler(cfg, level))
		mux.HandleFunc("/logs/"+level+"/clear", handlers.ClearLogsHandler(logger, level))
	}

	// Automatic HTML handler mapping, for example: /index -> <static>/index.html
	mux.HandleFunc("/", dynamicHTMLHandler(cfg.StaticDir))

	return middleware.RequestLogMiddleware(mux, logger)
}
