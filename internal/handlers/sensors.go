package handlers

import (
	"net/http"
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/dto"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/repository"
)

// LatestReadingHandler returns the newest stored sensor reading.
func LatestReadingHandler(readingRepo repository.ReadingRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reading, err := readingRepo.Latest()
		if err != nil {
			logger.Error("Error loading latest reading: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if reading == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, reading)
	}
}

// ReadingHistoryHandler lists readings, newest first. Supported query params:
// hours (window back from now, default 6), after/before (RFC3339, override
// hours), limit (default 500).
func ReadingHistoryHandler(readingRepo repository.ReadingRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filters := &dto.ReadingFilters{
			After:  parseTime(q.Get("after")),
			Before: parseTime(q.Get("before")),
			Limit:  atoiDefault(q.Get("limit"), 500),
		}

		if filters.After.IsZero() && filters.Before.IsZero() {
			hours := atoiDefault(q.Get("hours"), 6)
			filters.After = time.Now().Add(-time.Duration(hours) * time.Hour)
		}

		readings, err := readingRepo.GetRange(filters)
		if err != nil {
			logger.Error("Error loading reading history: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, readings)
	}
}

// ReadingStatsHandler returns aggregate statistics over all stored readings.
func ReadingStatsHandler(readingRepo repository.ReadingRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := readingRepo.GetStats()
		if err != nil {
			logger.Error("Error loading reading stats: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	}
}
