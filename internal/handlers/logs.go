package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
)

// ShowLogsHandler serves one level's log file as plain text.
func ShowLogsHandler(cfg *config.Config, level string) http.HandlerFunc {
	filename := level + ".log"
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := filepath.Join(cfg.LogDirectory, filename)

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Log file not found: " + filename))
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, filePath)
	}
}

// ClearLogsHandler truncates one level's log file.
func ClearLogsHandler(logger *logger.Logger, level string) http.HandlerFunc {
	filename := level + ".log"
	return func(w http.ResponseWriter, r *http.Request) {
		logger.CleanLogs(filename)
	}
}
