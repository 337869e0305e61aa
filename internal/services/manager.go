package services

import (
	"encoding/base64"
	"encoding/json"

	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/model"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/detection"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/storage"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/websocket"
)

// Manager routes live data between producers (camera clients, the telemetry
// simulator, the detection pipeline) and the viewer hub plus storage.
type Manager struct {
	bufferService    *storage.BufferService
	websocketService *websocket.HubService
	logger           *logger.Logger
}

// liveMessage is the envelope every hub broadcast uses. Kind is one of
// "frame", "reading" or "outcome"; exactly one payload field is set.
type liveMessage struct {
	Kind    string               `json:"kind"`
	Camera  string               `json:"camera,omitempty"`
	Image   string               `json:"image,omitempty"`
	Reading *model.SensorReading `json:"reading,omitempty"`
	Outcome *detection.Outcome   `json:"outcome,omitempty"`
}

func NewManager(bufferService *storage.BufferService, websocketService *websocket.HubService, logger *logger.Logger) *Manager {
	return &Manager{
		bufferService:    bufferService,
		websocketService: websocketService,
		logger:           logger,
	}
}

// HandleCameraFrame relays one JPEG frame from a camera client to all viewers.
func (m *Manager) HandleCameraFrame(image []byte, camera string) {
	msg := liveMessage{
		Kind:   "frame",
		Camera: camera,
		Image:  base64.StdEncoding.EncodeToString(image),
	}
	m.send(msg)
}

// HandleReading pushes a fresh sensor reading to viewers and buffers it for
// persistence.
func (m *Manager) HandleReading(reading model.SensorReading) {
	r := reading
	m.send(liveMessage{Kind: "reading", Reading: &r})
	m.bufferService.Add(reading)
}

// HandleOutcome pushes the newest detection outcome to viewers. Outcomes are
// not persisted; the slot in the detection store is the only state.
func (m *Manager) HandleOutcome(outcome detection.Outcome) {
	o := outcome
	m.send(liveMessage{Kind: "outcome", Outcome: &o})
}

func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.websocketService
}

func (m *Manager) GetBufferService() *storage.BufferService {
	return m.bufferService
}

func (m *Manager) send(msg liveMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		m.logger.Error("Error marshaling live message: %v", err)
		return
	}
	m.websocketService.Broadcast(payload)
}
