package telemetry

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/srpanda29/poultry-health-dashboard/internal/config"
	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/repository"
)

// RetentionJob prunes sensor readings older than the retention window on a
// cron schedule.
type RetentionJob struct {
	readingRepo repository.ReadingRepository
	logger      *logger.Logger
	days        int
	schedule    string
	cron        *cron.Cron
}

func NewRetentionJob(cfg *config.Config, readingRepo repository.ReadingRepository, logger *logger.Logger) *RetentionJob {
	return &RetentionJob{
		readingRepo: readingRepo,
		logger:      logger,
		days:        cfg.RetentionDays,
		schedule:    cfg.CleanupSchedule,
	}
}

// Start schedules the prune. An invalid cron spec surfaces as an error here.
func (j *RetentionJob) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("🧹 Retention job scheduled (%s), keeping %d days", j.schedule, j.days)
	return nil
}

// RunOnce prunes immediately, independent of the schedule.
func (j *RetentionJob) RunOnce() {
	cutoff := time.Now().AddDate(0, 0, -j.days)
	deleted, err := j.readingRepo.DeleteOlderThan(cutoff)
	if err != nil {
		j.logger.Error("Error pruning old readings: %v", err)
		return
	}
	if deleted > 0 {
		j.logger.Info("Pruned %d readings older than %s", deleted, cutoff.Format("2006-01-02"))
	}
}

// Stop halts the scheduler.
func (j *RetentionJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}
