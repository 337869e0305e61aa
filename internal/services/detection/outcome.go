package detection

import "sync"

// Status classifies the terminal state of one pipeline invocation.
type Status string

const (
	StatusNoImageSelected   Status = "no_image_selected"
	StatusSuccess           Status = "success"
	StatusNoPredictionFound Status = "no_prediction_found"
	StatusRequestFailed     Status = "request_failed"
)

// Outcome is the single result surfaced to the UI for one invocation.
// RawBody carries the diagnostic response text; it is display-only and
// never feeds back into classification.
type Outcome struct {
	Status            Status  `json:"status"`
	Label             string  `json:"label,omitempty"`
	ConfidencePercent float64 `json:"confidencePercent,omitempty"`
	Reason            string  `json:"reason,omitempty"`
	RawBody           string  `json:"rawBody,omitempty"`
}

// OutcomeStore holds the most recent outcome. Each Set overwrites the slot
// (last write wins) and fires the notify hook outside the lock. Guarding
// against overlapping invocations is the caller's job.
type OutcomeStore struct {
	mu       sync.RWMutex
	current  Outcome
	hasValue bool
	onChange func(Outcome)
}

// NewOutcomeStore creates a store; onChange may be nil.
func NewOutcomeStore(onChange func(Outcome)) *OutcomeStore {
	return &OutcomeStore{onChange: onChange}
}

// Set overwrites the outcome slot and notifies subscribers.
func (s *OutcomeStore) Set(outcome Outcome) {
	s.mu.Lock()
	s.current = outcome
	s.hasValue = true
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(outcome)
	}
}

// Last returns the current outcome and whether one has been set yet.
func (s *OutcomeStore) Last() (Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasValue
}
