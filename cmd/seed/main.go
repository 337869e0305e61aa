package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/model"
	"github.com/srpanda29/poultry-health-dashboard/internal/repository/sqlite"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/telemetry"
)

// Backfills simulated sensor history so the dashboard charts are populated on
// a fresh install.
func main() {
	dbPath := flag.String("db", filepath.Join("data", "telemetry.db"), "Database path")
	hours := flag.Int("hours", 24, "How many hours of history to generate")
	stepSecs := flag.Int("step", 60, "Seconds between generated readings")
	flag.Parse()

	fmt.Printf("Seeding %dh of sensor history into %s\n", *hours, *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewReadingRepository(db)
	generator := telemetry.NewGenerator(time.Now().UnixNano())

	step := time.Duration(*stepSecs) * time.Second
	start := time.Now().Add(-time.Duration(*hours) * time.Hour)

	var readings []model.SensorReading
	for ts := start; ts.Before(time.Now()); ts = ts.Add(step) {
		readings = append(readings, generator.Next(ts))
	}

	if err := repo.InsertBatch(readings); err != nil {
		log.Fatalf("Failed to insert readings: %v", err)
	}

	fmt.Printf("✅ Inserted %d readings\n", len(readings))

	stats, err := repo.GetStats()
	if err == nil {
		fmt.Printf("\n📊 Database Statistics:\n")
		fmt.Printf("   Total readings: %d\n", stats.Count)
		fmt.Printf("   Temperature: avg %.1f°C (min %.1f, max %.1f)\n", stats.AvgTemperatureC, stats.MinTemperatureC, stats.MaxTemperatureC)
		fmt.Printf("   Humidity: avg %.1f%%\n", stats.AvgHumidityPct)
		fmt.Printf("   Ammonia: avg %.1f ppm\n", stats.AvgAmmoniaPpm)
	}
}
