package handlers

import (
	"errors"
	"net/http"

	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/detection"
)

// maxUploadBytes caps the multipart form memory for an uploaded image.
const maxUploadBytes = 20 << 20

// DetectHandler accepts a multipart image upload, runs the detection pipeline
// once and returns the resulting outcome. A request without an image field is
// the no-selection case, not an error. The dashboard disables its submit
// control while a request is in flight; overlapping requests simply race for
// the outcome slot, last write wins.
func DetectHandler(detector *detection.Service, store *detection.OutcomeStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var selected *detection.SelectedImage

		if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
			file, header, err := r.FormFile("image")
			switch {
			case err == nil:
				defer file.Close()
				selected = &detection.SelectedImage{
					Reader:    file,
					MediaType: header.Header.Get("Content-Type"),
				}
			case errors.Is(err, http.ErrMissingFile):
				// no selection, fall through with selected == nil
			default:
				logger.Error("Error reading uploaded image: %v", err)
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}
		}

		outcome := detector.Detect(selected)
		store.Set(outcome)

		writeJSON(w, outcome)
	}
}

// LastOutcomeHandler returns the current content of the outcome slot. Before
// the first invocation the slot is empty and the handler reports 204.
func LastOutcomeHandler(store *detection.OutcomeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, ok := store.Last()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, outcome)
	}
}
