package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"reporthub_backend/internals/configs"
	"reporthub_backend/internals/features/finance/financial_years/service"
	"reporthub_backend/internals/helpers/dbtime"
)

// StartRolloverCron keeps the financial year for "now" persisted and current.
// It runs once immediately so a fresh deploy on Dec 1 doesn't wait for the schedule.
func StartRolloverCron(db *gorm.DB) *cron.Cron {
	schedule := configs.FYRolloverSchedule
	if schedule == "" {
		schedule = "5 0 * * *"
	}

	c := cron.New(
		cron.WithLocation(dbtime.AppLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := c.AddFunc(schedule, func() { RunRollover(db) }); err != nil {
		log.Fatalf("[CRON] add financial year rollover failed: %v", err)
	}

	RunRollover(db)
	log.Printf("[CRON] financial year rollover started schedule=%q tz=%s", schedule, dbtime.AppLocation())
	c.Start()
	return c
}

func RunRollover(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	m, created, err := service.EnsureYear(ctx, db, time.Now())
	if err != nil {
		log.Printf("[CRON] financial year rollover error: %v", err)
		return
	}
	switch {
	case created:
		// EnsureYear logs the new year
	case m.FinancialYearIsCurrent:
		log.Printf("[CRON] financial year %s already current", m.FinancialYearLabel)
	default:
		log.Printf("[CRON] financial year %s exists, keeping the year set current by an admin", m.FinancialYearLabel)
	}
}
