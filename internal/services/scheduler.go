package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartDailyAnalysisScheduler runs the daily analysis once per day at the
// given local hour until ctx is cancelled. The run itself is sequential and
// synchronous; only the waiting happens on this goroutine.
func StartDailyAnalysisScheduler(ctx context.Context, db *gorm.DB, gen TextGenerator, hour int) {
	go func() {
		for {
			next := nextRunTime(time.Now(), hour)
			zap.L().Info("daily analysis scheduled", zap.Time("nextRun", next))

			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				RunDailyAnalysis(ctx, db, gen)
			}
		}
	}()
}

// nextRunTime returns the next occurrence of hour o'clock local time
// strictly after now.
func nextRunTime(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
