package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"farmbook/internal/backend"
	"farmbook/internal/core"
)

// ReminderPublisher publishes one reminder notification per due task.
type ReminderPublisher interface {
	PublishTaskReminder(ctx context.Context, taskID, title, dueDate string) error
}

// ReminderWorker periodically scans for due tasks and publishes reminders.
type ReminderWorker struct {
	store     backend.TaskStore
	publisher ReminderPublisher
	interval  time.Duration
}

func NewReminderWorker(store backend.TaskStore, publisher ReminderPublisher, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		store:     store,
		publisher: publisher,
		interval:  interval,
	}
}

// ProcessDueTasks publishes a reminder for every open task due at the given
// instant and returns how many were published. With no publisher configured
// it still reports the due count so logs stay useful.
func (w *ReminderWorker) ProcessDueTasks(ctx context.Context, now time.Time) (int, error) {
	today := now.Format(core.DateLayout)

	due, err := w.store.DueTasks(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("list due tasks: %w", err)
	}

	published := 0
	for _, task := range due {
		if w.publisher == nil {
			published++
			continue
		}
		if err := w.publisher.PublishTaskReminder(ctx, task.ID, task.Title, task.DueDate); err != nil {
			return published, fmt.Errorf("publish reminder for task %s: %w", task.ID, err)
		}
		published++
	}

	return published, nil
}

// Run processes due tasks once immediately, then on every tick until the
// context ends.
func (w *ReminderWorker) Run(ctx context.Context) error {
	if count, err := w.ProcessDueTasks(ctx, time.Now()); err != nil {
		slog.ErrorContext(ctx, "Initial reminder pass failed", "error", err)
	} else {
		slog.InfoContext(ctx, "Initial reminder pass complete", "reminders", count)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Reminder worker stopping", "reason", ctx.Err())
			return ctx.Err()
		case now := <-ticker.C:
			count, err := w.ProcessDueTasks(ctx, now)
			if err != nil {
				slog.ErrorContext(ctx, "Reminder pass failed", "error", err)
				continue
			}
			slog.InfoContext(ctx, "Reminder pass complete",
				"reminders", count,
				"next_check", now.Add(w.interval).Format("15:04:05"))
		}
	}
}
