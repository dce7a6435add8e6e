// Package schedule runs the weigh-in reminder job.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"weightlog/internal/app"
)

// Notifier is the outbound port for reminder delivery; the core only decides
// whether a reminder is due.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier writes reminders to the log, the default delivery channel.
type LogNotifier struct{}

// Notify logs the reminder message.
func (LogNotifier) Notify(ctx context.Context, message string) error {
	log.Info().Str("reminder", message).Msg("weigh-in reminder")
	return nil
}

// Reminder checks once a day whether a weigh-in reminder is due: on Sundays,
// or when the last observation is older than the staleness threshold.
type Reminder struct {
	scheduler *gocron.Scheduler
	obs       *app.ObservationService
	notifier  Notifier
	staleDays int
}

// New creates a Reminder. staleDays <= 0 defaults to 7.
func New(obs *app.ObservationService, notifier Notifier, staleDays int) *Reminder {
	if staleDays <= 0 {
		staleDays = 7
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		obs:       obs,
		notifier:  notifier,
		staleDays: staleDays,
	}
}

// Start schedules the daily check at 09:00 and starts the scheduler.
func (r *Reminder) Start() error {
	_, err := r.scheduler.Every(1).Day().At("09:00").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		r.Check(ctx, time.Now())
	})
	if err != nil {
		return err
	}
	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future jobs.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// Check applies the reminder rule for the given time and notifies when due.
// Exposed separately so callers (and tests) can run it without the scheduler.
func (r *Reminder) Check(ctx context.Context, now time.Time) {
	days, err := r.obs.DaysSinceLast(ctx)
	if err != nil {
		// An empty store still deserves a nudge on Sundays.
		if now.Weekday() == time.Sunday {
			r.notify(ctx, "It's Sunday: time to record your weight.")
		}
		return
	}

	switch {
	case now.Weekday() == time.Sunday:
		r.notify(ctx, "It's Sunday: time to record your weight.")
	case days >= r.staleDays:
		r.notify(ctx, fmt.Sprintf("No weigh-in for %d days. Time to update your log.", days))
	}
}

func (r *Reminder) notify(ctx context.Context, msg string) {
	if err := r.notifier.Notify(ctx, msg); err != nil {
		log.Error().Err(err).Msg("reminder delivery failed")
	}
}
