package detection

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
)

// skippedClass is the label the classifier assigns to a healthy bird. A leading
// prediction with this class (any case) is passed over during the search.
const skippedClass = "chicken"

// SelectedImage is the image picked by the user: a byte source plus the
// declared media type. A nil SelectedImage means nothing was picked.
type SelectedImage struct {
	Reader    io.Reader
	MediaType string
}

// detectionRequest is the exact body shape the inference service expects.
// Value must be plain base64 with no data-URL prefix.
type detectionRequest struct {
	APIKey string        `json:"api_key"`
	Inputs requestInputs `json:"inputs"`
}

type requestInputs struct {
	Image requestImage `json:"image"`
}

type requestImage struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Service runs the image-submission pipeline against the remote classifier.
type Service struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	logger   *logger.Logger
}

// NewService creates the pipeline service. The client carries no timeout:
// once issued, a request runs to completion or transport failure, and there
// is no retry.
func NewService(cfg *config.Config, logger *logger.Logger) *Service {
	client := resty.New()
	client.SetTimeout(0)
	client.SetRetryCount(0)

	return &Service{
		client:   client,
		endpoint: cfg.DetectAPIURL,
		apiKey:   cfg.DetectAPIKey,
		logger:   logger,
	}
}

// Detect runs one invocation of the pipeline: encode, submit, interpret.
// Every failure mode folds into a StatusRequestFailed outcome; nothing
// escapes the invocation without producing exactly one Outcome.
func (s *Service) Detect(image *SelectedImage) Outcome {
	if image == nil {
		return Outcome{Status: StatusNoImageSelected}
	}

	raw, err := io.ReadAll(image.Reader)
	if err != nil {
		s.logger.Error("Could not read selected image: %v", err)
		return Outcome{
			Status: StatusRequestFailed,
			Reason: fmt.Sprintf("could not read image: %v", err),
		}
	}

	body := detectionRequest{
		APIKey: s.apiKey,
		Inputs: requestInputs{
			Image: requestImage{Type: "base64", Value: base64.StdEncoding.EncodeToString(raw)},
		},
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(s.endpoint)
	if err != nil {
		s.logger.Error("Detection request failed: %v", err)
		return Outcome{
			Status: StatusRequestFailed,
			Reason: fmt.Sprintf("request failed: %v", err),
		}
	}

	respBody := resp.Body()

	if !resp.IsSuccess() {
		s.logger.Warning("Detection service returned status %d", resp.StatusCode())
		return Outcome{
			Status:  StatusRequestFailed,
			Reason:  reasonForStatus(resp.StatusCode(), respBody),
			RawBody: diagnosticBody(respBody),
		}
	}

	var payload interface{}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		s.logger.Error("Could not parse detection response: %v", err)
		return Outcome{
			Status:  StatusRequestFailed,
			Reason:  fmt.Sprintf("could not parse response: %v", err),
			RawBody: string(respBody),
		}
	}

	diagnostic := diagnosticBody(respBody)

	label, confidence, found := firstAcceptedPrediction(payload)
	if !found {
		return Outcome{Status: StatusNoPredictionFound, RawBody: diagnostic}
	}

	s.logger.Info("Detected condition %q (%.2f%%)", label, roundPercent(confidence))
	return Outcome{
		Status:            StatusSuccess,
		Label:             label,
		ConfidencePercent: roundPercent(confidence),
		RawBody:           diagnostic,
	}
}

// firstAcceptedPrediction walks outputs in order and inspects only the leading
// entry of each output's model_predictions.predictions list. The first entry
// with a string class, a numeric confidence, and a class other than
// skippedClass wins. First match, not best confidence.
func firstAcceptedPrediction(payload interface{}) (string, float64, bool) {
	root, ok := payload.(map[string]interface{})
	if !ok {
		return "", 0, false
	}

	outputs, _ := root["outputs"].([]interface{})
	for _, output := range outputs {
		entry, ok := output.(map[string]interface{})
		if !ok {
			continue
		}

		modelPredictions, ok := entry["model_predictions"].(map[string]interface{})
		if !ok {
			continue
		}

		predictions, ok := modelPredictions["predictions"].([]interface{})
		if !ok || len(predictions) == 0 {
			continue
		}

		leading, ok := predictions[0].(map[string]interface{})
		if !ok {
			continue
		}

		class, ok := leading["class"].(string)
		if !ok {
			continue
		}

		confidence, ok := leading["confidence"].(float64)
		if !ok {
			continue
		}

		if strings.EqualFold(class, skippedClass) {
			continue
		}

		return class, confidence, true
	}

	return "", 0, false
}

// reasonForStatus maps a non-success HTTP status to a human-readable reason.
func reasonForStatus(code int, body []byte) string {
	switch code {
	case http.StatusUnauthorized:
		return "Unauthorized, check credential/access"
	case http.StatusForbidden:
		return "Forbidden, insufficient permission or resource not public"
	case http.StatusUnprocessableEntity:
		return "Unprocessable request body"
	default:
		return fmt.Sprintf("Request failed with status %d: %s", code, string(body))
	}
}

// diagnosticBody prepares the raw response for display: indented when it is
// valid JSON, verbatim otherwise.
func diagnosticBody(body []byte) string {
	var indented bytes.Buffer
	if err := json.Indent(&indented, body, "", "  "); err != nil {
		return string(body)
	}
	return indented.String()
}

// roundPercent converts a [0,1] confidence into a percentage with two decimals.
func roundPercent(confidence float64) float64 {
	return math.Round(confidence*100*100) / 100
}
