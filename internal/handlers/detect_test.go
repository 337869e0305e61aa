package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/handlers"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/detection"
)

// ========================================
// Test Setup Helpers
// ========================================

func setupDetectHandler(t *testing.T, apiStatus int, apiBody string) (http.HandlerFunc, *detection.OutcomeStore, *int32) {
	t.Helper()

	var hits int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(apiStatus)
		w.Write([]byte(apiBody))
	}))
	t.Cleanup(api.Close)

	cfg := &config.Config{
		DetectAPIURL: api.URL,
		DetectAPIKey: "test-key",
		LogDirectory: t.TempDir(),
	}
	log := logger.NewLogger(cfg)

	detector := detection.NewService(cfg, log)
	store := detection.NewOutcomeStore(nil)

	return handlers.DetectHandler(detector, store, log), store, &hits
}

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "bird.jpg")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	return body, writer.FormDataContentType()
}

func decodeOutcome(t *testing.T, rec *httptest.ResponseRecorder) detection.Outcome {
	t.Helper()

	var outcome detection.Outcome
	if err := json.NewDecoder(rec.Body).Decode(&outcome); err != nil {
		t.Fatalf("Failed to decode outcome: %v", err)
	}
	return outcome
}

// ========================================
// Detect Handler Tests
// ========================================

func TestDetectHandler_Success(t *testing.T) {
	handler, store, _ := setupDetectHandler(t, http.StatusOK,
		`{"outputs":[{"model_predictions":{"predictions":[{"class":"Newcastle Disease","confidence":0.8734}]}}]}`)

	body, contentType := multipartImage(t, "image", []byte("fake jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/api/detect", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	outcome := decodeOutcome(t, rec)
	if outcome.Status != detection.StatusSuccess {
		t.Errorf("Expected success outcome, got %+v", outcome)
	}
	if outcome.Label != "Newcastle Disease" || outcome.ConfidencePercent != 87.34 {
		t.Errorf("Unexpected outcome payload: %+v", outcome)
	}

	stored, ok := store.Last()
	if !ok || stored != outcome {
		t.Errorf("Expected outcome slot to hold the response, got %+v", stored)
	}
}

func TestDetectHandler_NoImageField(t *testing.T) {
	handler, store, hits := setupDetectHandler(t, http.StatusOK, `{"outputs":[]}`)

	body, contentType := multipartImage(t, "unrelated", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/detect", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	outcome := decodeOutcome(t, rec)
	if outcome.Status != detection.StatusNoImageSelected {
		t.Errorf("Expected no_image_selected, got %+v", outcome)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("Expected no upstream call, got %d", atomic.LoadInt32(hits))
	}

	if stored, ok := store.Last(); !ok || stored.Status != detection.StatusNoImageSelected {
		t.Errorf("Expected slot to record the no-selection outcome, got %+v", stored)
	}
}

func TestDetectHandler_MethodNotAllowed(t *testing.T) {
	handler, _, _ := setupDetectHandler(t, http.StatusOK, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/api/detect", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestDetectHandler_UpstreamFailureStillAnswers(t *testing.T) {
	handler, _, _ := setupDetectHandler(t, http.StatusUnauthorized, `bad key`)

	body, contentType := multipartImage(t, "image", []byte("fake jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/api/detect", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with failure outcome, got %d", rec.Code)
	}

	outcome := decodeOutcome(t, rec)
	if outcome.Status != detection.StatusRequestFailed {
		t.Errorf("Expected request_failed, got %+v", outcome)
	}
	if outcome.RawBody != "bad key" {
		t.Errorf("Expected diagnostic body, got %q", outcome.RawBody)
	}
}

// ========================================
// Last Outcome Handler Tests
// ========================================

func TestLastOutcomeHandler(t *testing.T) {
	store := detection.NewOutcomeStore(nil)
	handler := handlers.LastOutcomeHandler(store)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/detect/last", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 before first detection, got %d", rec.Code)
	}

	store.Set(detection.Outcome{Status: detection.StatusNoPredictionFound})

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/detect/last", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 after detection, got %d", rec.Code)
	}
	if outcome := decodeOutcome(t, rec); outcome.Status != detection.StatusNoPredictionFound {
		t.Errorf("Expected stored outcome, got %+v", outcome)
	}
}
