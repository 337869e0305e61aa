package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/dto"
	"github.com/srpanda29/poultry-health-dashboard/internal/model"
)

// ReadingRepository implements repository.ReadingRepository for SQLite.
type ReadingRepository struct {
	db *DB
}

// NewReadingRepository creates a new SQLite sensor reading repository.
func NewReadingRepository(db *DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Insert adds a new reading record to the database.
func (r *ReadingRepository) Insert(reading *model.SensorReading) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO sensor_readings (timestamp, temperature_c, humidity_pct, ammonia_ppm, light_lux)
		VALUES (?, ?, ?, ?, ?)
	`, reading.Timestamp, reading.TemperatureC, reading.HumidityPct, reading.AmmoniaPpm, reading.LightLux)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reading: %w", err)
	}

	return result.LastInsertId()
}

// InsertBatch adds multiple readings in a single transaction.
func (r *ReadingRepository) InsertBatch(readings []model.SensorReading) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sensor_readings (timestamp, temperature_c, humidity_pct, ammonia_ppm, light_lux)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		if _, err := stmt.Exec(reading.Timestamp, reading.TemperatureC, reading.HumidityPct, reading.AmmoniaPpm, reading.LightLux); err != nil {
			return fmt.Errorf("failed to insert reading: %w", err)
		}
	}

	return tx.Commit()
}

// Latest retrieves the most recent reading, or nil when the table is empty.
func (r *ReadingRepository) Latest() (*model.SensorReading, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var reading model.SensorReading
	err := r.db.Conn().QueryRow(`
		SELECT id, timestamp, temperature_c, humidity_pct, ammonia_ppm, light_lux
		FROM sensor_readings ORDER BY timestamp DESC, id DESC LIMIT 1
	`).Scan(&reading.ID, &reading.Timestamp, &reading.TemperatureC, &reading.HumidityPct, &reading.AmmoniaPpm, &reading.LightLux)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}
	return &reading, nil
}

// GetRange retrieves readings based on filter criteria, newest first.
func (r *ReadingRepository) GetRange(filter *dto.ReadingFilters) ([]model.SensorReading, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT id, timestamp, temperature_c, humidity_pct, ammonia_ppm, light_lux
		FROM sensor_readings
		WHERE 1=1
	`
	args := []interface{}{}

	if !filter.After.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.After)
	}

	if !filter.Before.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.Before)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []model.SensorReading
	for rows.Next() {
		var reading model.SensorReading
		if err := rows.Scan(&reading.ID, &reading.Timestamp, &reading.TemperatureC, &reading.HumidityPct, &reading.AmmoniaPpm, &reading.LightLux); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// GetStats returns aggregate statistics over all stored readings.
func (r *ReadingRepository) GetStats() (*dto.SensorStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var stats dto.SensorStats
	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*),
			COALESCE(AVG(temperature_c), 0),
			COALESCE(MIN(temperature_c), 0),
			COALESCE(MAX(temperature_c), 0),
			COALESCE(AVG(humidity_pct), 0),
			COALESCE(AVG(ammonia_ppm), 0),
			COALESCE(AVG(light_lux), 0)
		FROM sensor_readings
	`).Scan(&stats.Count, &stats.AvgTemperatureC, &stats.MinTemperatureC, &stats.MaxTemperatureC,
		&stats.AvgHumidityPct, &stats.AvgAmmoniaPpm, &stats.AvgLightLux)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	return &stats, nil
}

// DeleteOlderThan removes readings older than the cutoff and reports how many went away.
func (r *ReadingRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`DELETE FROM sensor_readings WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete readings: %w", err)
	}

	return result.RowsAffected()
}

// DeleteAll removes every stored reading.
func (r *ReadingRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM sensor_readings`); err != nil {
		return fmt.Errorf("failed to delete readings: %w", err)
	}
	return nil
}
