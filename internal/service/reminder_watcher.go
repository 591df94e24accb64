package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ReminderWatcher checks for renewals due soon on a cron schedule and logs
// the owner alert with its share links
type ReminderWatcher struct {
	scheduler *cron.Cron
	reminders ReminderService
	schedule  string
	jobID     cron.EntryID
	now       func() time.Time
	log       zerolog.Logger
}

// NewReminderWatcher creates a watcher for a standard 5-field cron schedule
func NewReminderWatcher(reminders ReminderService, schedule string, log zerolog.Logger) *ReminderWatcher {
	return &ReminderWatcher{
		scheduler: cron.New(),
		reminders: reminders,
		schedule:  schedule,
		now:       time.Now,
		log:       log,
	}
}

// Start schedules the check and starts the scheduler in the background
func (w *ReminderWatcher) Start(ctx context.Context) error {
	var err error
	w.jobID, err = w.scheduler.AddFunc(w.schedule, func() {
		if _, err := w.Check(ctx); err != nil {
			w.log.Error().Err(err).Msg("reminder check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminders %q: %w", w.schedule, err)
	}

	w.scheduler.Start()
	w.log.Info().Str("schedule", w.schedule).Msg("reminder watcher started")
	return nil
}

// Stop stops the scheduler and waits for a running check to finish
func (w *ReminderWatcher) Stop() {
	<-w.scheduler.Stop().Done()
	w.log.Info().Msg("reminder watcher stopped")
}

// Next is the time of the next scheduled check
func (w *ReminderWatcher) Next() time.Time {
	return w.scheduler.Entry(w.jobID).Next
}

// Check runs one reminder pass now
func (w *ReminderWatcher) Check(ctx context.Context) (*Alert, error) {
	alert, err := w.reminders.Alert(ctx, w.now())
	if err != nil {
		return nil, err
	}
	if alert == nil {
		w.log.Debug().Msg("no renewals due in the next two days")
		return nil, nil
	}

	w.log.Warn().
		Int("clients", len(alert.Renewals)).
		Str("whatsapp", alert.WhatsAppURL).
		Str("email", alert.MailtoURL).
		Msg(alert.Message)
	return alert, nil
}
