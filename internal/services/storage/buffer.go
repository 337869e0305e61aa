package storage

import (
	"sync"
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/model"
	"github.com/srpanda29/poultry-health-dashboard/internal/repository"
)

// BufferService collects sensor readings in memory and periodically flushes
// them to the database in one batch, so the simulator never blocks on SQLite.
type BufferService struct {
	readings      []model.SensorReading
	limit         int
	flushInterval time.Duration
	mu            sync.Mutex
	logger        *logger.Logger
	readingRepo   repository.ReadingRepository
}

// NewBufferService creates a new BufferService backed by the reading repository.
func NewBufferService(config *config.Config, logger *logger.Logger, readingRepo repository.ReadingRepository) *BufferService {
	return &BufferService{
		readings:      make([]model.SensorReading, 0),
		limit:         config.ReadingBufferLimit,
		flushInterval: time.Duration(config.ReadingFlushSecs) * time.Second,
		logger:        logger,
		readingRepo:   readingRepo,
	}
}

// Run starts a ticker loop that periodically flushes readings to the database.
func (s *BufferService) Run() {
	ticker := time.NewTicker(s.flushInterval)

	defer ticker.Stop()
	for {
		<-ticker.C
		s.Flush()
	}
}

// Add appends a reading to the in-memory buffer. When the buffer hits its
// limit the oldest readings are flushed inline.
func (s *BufferService) Add(reading model.SensorReading) {
	s.mu.Lock()
	s.readings = append(s.readings, reading)
	full := len(s.readings) >= s.limit
	s.mu.Unlock()

	if full {
		s.Flush()
	}
}

// Len reports how many readings are currently buffered.
func (s *BufferService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.readings)
}

// Flush writes buffered readings to the database and resets the buffer.
func (s *BufferService) Flush() {
	s.mu.Lock()
	if len(s.readings) == 0 {
		s.mu.Unlock()
		return
	}
	batch := make([]model.SensorReading, len(s.readings))
	copy(batch, s.readings)
	s.readings = s.readings[:0]
	s.mu.Unlock()

	if s.readingRepo == nil {
		return
	}

	if err := s.readingRepo.InsertBatch(batch); err != nil {
		s.logger.Error("Error saving readings to database: %v", err)
		return
	}

	s.logger.Info("Flushed %d readings to database", len(batch))
}
