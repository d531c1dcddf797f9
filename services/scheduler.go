package services

import (
	"log"
	"time"

	"foot-match-service/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleSweeper runs the idempotent auto-close check over OPEN
// matches every minute. The accepting transaction already closes matches
// inline; this sweep is reconciliation for anything that slipped through
// (a crash between commit and close on an older schema, manual data fixes).
func (s *MatchService) StartLifecycleSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var matches []models.Match
			err := s.DB.Where("status = ?", models.MatchStatusOpen).Find(&matches).Error
			if err != nil {
				log.Printf("[Sweeper] DB error: %v", err)
				return
			}

			for _, m := range matches {
				if err := s.AutoCloseIfFull(nil, m.ID); err != nil {
					log.Printf("[Sweeper] auto-close failed for match %s: %v", m.ID, err)
				}
			}
		}),
	)
}
