package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// atoiDefault parses a positive integer query value, falling back to def for
// anything empty, malformed or non-positive.
func atoiDefault(value string, def int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseTime parses an RFC3339 query value; zero time when absent or invalid.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// writeJSON serializes payload with the JSON content type.
func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
