package repository

import (
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/dto"
	"github.com/srpanda29/poultry-health-dashboard/internal/model"
)

// ReadingRepository defines the interface for sensor reading data operations.
type ReadingRepository interface {
	// Create operations
	Insert(reading *model.SensorReading) (int64, error)
	InsertBatch(readings []model.SensorReading) error

	// Read operations
	Latest() (*model.SensorReading, error)
	GetRange(filter *dto.ReadingFilters) ([]model.SensorReading, error)
	GetStats() (*dto.SensorStats, error)

	// Delete operations
	DeleteOlderThan(cutoff time.Time) (int64, error)
	DeleteAll() error
}
