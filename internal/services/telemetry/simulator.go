package telemetry

import (
	"time"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/services"
)

// Simulator emits a simulated sensor reading on a fixed interval and hands it
// to the manager for broadcast and buffering.
type Simulator struct {
	generator *Generator
	manager   *services.Manager
	logger    *logger.Logger
	interval  time.Duration
	stop      chan struct{}
}

func NewSimulator(cfg *config.Config, manager *services.Manager, logger *logger.Logger) *Simulator {
	return &Simulator{
		generator: NewGenerator(time.Now().UnixNano()),
		manager:   manager,
		logger:    logger,
		interval:  time.Duration(cfg.SensorInterval) * time.Second,
		stop:      make(chan struct{}),
	}
}

// Run ticks until Stop is called. Call it from its own goroutine.
func (s *Simulator) Run() {
	s.logger.Info("🌡️  Telemetry simulator started - reading every %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			reading := s.generator.Next(time.Now())
			s.manager.HandleReading(reading)
		case <-s.stop:
			s.logger.Info("🛑 Telemetry simulator stopped")
			return
		}
	}
}

// Stop terminates the Run loop.
func (s *Simulator) Stop() {
	close(s.stop)
}
