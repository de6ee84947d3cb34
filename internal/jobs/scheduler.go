// Package jobs runs the background cron work: the nightly streak
// sweep and the hourly at-risk reminders.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/common"
	"github.com/noctua-labs/arcana-bot/internal/features/journey"
)

// Scheduler drives the cron jobs.
type Scheduler struct {
	cron             *cron.Cron
	loc              *time.Location
	journeyService   *journey.Service
	journeyRepo      *journey.Repository
	reminderFromHour int
	remindersEnabled bool
	sendFunc         func(userID int64, text string)
}

// NewScheduler creates the scheduler in the given timezone. sendFunc
// delivers reminder texts to a user's DM.
func NewScheduler(
	loc *time.Location,
	journeyService *journey.Service,
	journeyRepo *journey.Repository,
	reminderFromHour int,
	remindersEnabled bool,
	sendFunc func(userID int64, text string),
) *Scheduler {
	return &Scheduler{
		cron:             cron.New(cron.WithLocation(loc)),
		loc:              loc,
		journeyService:   journeyService,
		journeyRepo:      journeyRepo,
		reminderFromHour: reminderFromHour,
		remindersEnabled: remindersEnabled,
		sendFunc:         sendFunc,
	}
}

// Start registers and launches the jobs.
func (s *Scheduler) Start(ctx context.Context) {
	// Shortly after local midnight: reconcile every active streak so
	// lapsed ones read zero even if the user never opens the bot.
	s.cron.AddFunc("5 0 * * *", func() {
		log.Info("[CRON] nightly streak sweep")
		s.sweepStreaks(ctx)
	})

	// Hourly: nudge users whose streak is about to lapse.
	s.cron.AddFunc("0 * * * *", func() {
		if !s.remindersEnabled {
			return
		}
		log.Debug("[CRON] reminder check")
		s.sendReminders(ctx)
	})

	s.cron.Start()
	log.WithField("tz", s.loc.String()).Info("scheduler started")
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("scheduler stopped")
}

// sweepStreaks reconciles every profile with an active streak against
// the new calendar day.
func (s *Scheduler) sweepStreaks(ctx context.Context) {
	profiles, err := s.journeyRepo.ListActiveStreaks(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] sweep: list failed")
		return
	}

	today := journey.DayOf(time.Now().In(s.loc)).String()
	var lapsed int
	for _, p := range profiles {
		updated, err := s.journeyService.Reconcile(ctx, p.UserID, today)
		if err != nil {
			log.WithError(err).WithField("user_id", p.UserID).Warn("[CRON] sweep: reconcile failed")
			continue
		}
		if updated.CurrentStreak == 0 {
			lapsed++
		}
	}

	log.WithFields(log.Fields{
		"checked": len(profiles),
		"lapsed":  lapsed,
	}).Info("[CRON] nightly sweep done")
}

// sendReminders messages users whose streak is at risk today. At most
// one reminder per user per day, tracked via reminder_sent_on, and
// only in the evening so the nudge lands when it can still be acted on.
func (s *Scheduler) sendReminders(ctx context.Context) {
	now := time.Now().In(s.loc)
	if now.Hour() < s.reminderFromHour {
		return
	}
	today := journey.DayOf(now)

	profiles, err := s.journeyRepo.ListActiveStreaks(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] reminders: list failed")
		return
	}

	var sent int
	for _, p := range profiles {
		if p.ReminderSentOn != nil && p.ReminderSentOn.Equal(today) {
			continue
		}
		status, err := s.journeyService.Status(ctx, p.UserID, today.String())
		if err != nil {
			log.WithError(err).WithField("user_id", p.UserID).Warn("[CRON] reminders: status failed")
			continue
		}
		if !status.IsStreakAtRisk {
			continue
		}

		s.sendFunc(p.UserID, "🔥 Your "+common.FormatDays(status.CurrentStreak)+
			" streak ends at midnight. Draw today's card with /card to keep it alive!")
		if err := s.journeyRepo.MarkReminderSent(ctx, p.UserID, today); err != nil {
			log.WithError(err).WithField("user_id", p.UserID).Warn("[CRON] reminders: mark failed")
		}
		sent++
	}

	if sent > 0 {
		log.WithField("sent", sent).Info("[CRON] streak reminders sent")
	}
}
