package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 1 * time.Minute

type ReminderSender interface {
	SendReminder(ctx context.Context) error
}

// ReminderScheduler fires the reminder job at fixed UTC times of day.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	reminders  ReminderSender
	logger     *logrus.Entry
	specs      []string
}

func NewReminderScheduler(reminders ReminderSender, logger *logrus.Entry, specs []string) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.PrintfLogger(logger))),
		),
		reminders: reminders,
		logger:    logger,
		specs:     specs,
	}
}

// Start registers one job per cron spec and starts the engine. Nothing is
// started if any spec fails to parse.
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	for _, spec := range s.specs {
		if _, err := s.cronEngine.AddFunc(spec, s.fire); err != nil {
			return fmt.Errorf("could not add reminder job %q: %w", spec, err)
		}
	}

	s.cronEngine.Start()
	s.logger.WithField("specs", s.specs).Info("Reminder scheduler started")
	return nil
}

func (s *ReminderScheduler) fire() {
	s.logger.Info("Cron job triggered for reminder")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := s.reminders.SendReminder(ctx); err != nil {
		s.logger.WithError(err).Error("Error during reminder firing")
	}
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped")
}
