package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/repository/sqlite"
	"github.com/srpanda29/poultry-health-dashboard/internal/routes"
	"github.com/srpanda29/poultry-health-dashboard/internal/services"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/detection"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/storage"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/telemetry"
	"github.com/srpanda29/poultry-health-dashboard/internal/services/websocket"
)

type App struct {
	config        *config.Config
	logger        *logger.Logger
	db            *sqlite.DB
	readingRepo   *sqlite.ReadingRepository
	bufferService *storage.BufferService
	hubService    *websocket.HubService
	manager       *services.Manager
	detector      *detection.Service
	outcomeStore  *detection.OutcomeStore
	simulator     *telemetry.Simulator
	retention     *telemetry.RetentionJob
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	readingRepo := sqlite.NewReadingRepository(db)
	buffer := storage.NewBufferService(cfg, log, readingRepo)
	hub := websocket.NewHubService(log)
	manager := services.NewManager(buffer, hub, log)

	detector := detection.NewService(cfg, log)
	outcomeStore := detection.NewOutcomeStore(manager.HandleOutcome)

	simulator := telemetry.NewSimulator(cfg, manager, log)
	retention := telemetry.NewRetentionJob(cfg, readingRepo, log)

	return &App{
		config:        cfg,
		logger:        log,
		db:            db,
		readingRepo:   readingRepo,
		bufferService: buffer,
		hubService:    hub,
		manager:       manager,
		detector:      detector,
		outcomeStore:  outcomeStore,
		simulator:     simulator,
		retention:     retention,
	}, nil
}

func (a *App) Run() error {
	// Start background services
	go a.hubService.Run()
	go a.bufferService.Run()
	go a.simulator.Run()

	if err := a.retention.Start(); err != nil {
		return fmt.Errorf("failed to start retention job: %w", err)
	}

	router := routes.SetupRoutes(a.manager, a.detector, a.outcomeStore, a.readingRepo, a.config, a.logger)

	fmt.Printf("🐔 Poultry Health Dashboard\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🗄️  Database: %s\n", a.config.DatabasePath)
	fmt.Printf("🔬 Detection API: %s\n", a.config.DetectAPIURL)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
