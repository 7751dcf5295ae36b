package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmbook/internal/core"
	"farmbook/internal/memory"
)

type capturePublisher struct {
	published []string
	fail      bool
}

func (p *capturePublisher) PublishTaskReminder(_ context.Context, taskID, _, _ string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, taskID)
	return nil
}

func seedTasks(t *testing.T, store *memory.Store) {
	t.Helper()
	tasks := []core.Task{
		{ID: "t1", Title: "Worm the goats", DueDate: "2024-04-28"},
		{ID: "t2", Title: "Order feed", DueDate: "2024-05-01"},
		{ID: "t3", Title: "Shear", DueDate: "2024-07-01"},
		{ID: "t4", Title: "Fix fence", DueDate: "2024-04-01", Done: true},
	}
	for _, task := range tasks {
		if err := store.CreateTask(context.Background(), task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}
}

func TestProcessDueTasks(t *testing.T) {
	store := memory.New()
	seedTasks(t, store)

	pub := &capturePublisher{}
	w := NewReminderWorker(store, pub, time.Hour)

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	count, err := w.ProcessDueTasks(context.Background(), now)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if count != 2 {
		t.Errorf("published = %d, want 2", count)
	}
	if len(pub.published) != 2 || pub.published[0] != "t1" || pub.published[1] != "t2" {
		t.Errorf("published ids = %v", pub.published)
	}
}

func TestProcessDueTasksWithoutPublisher(t *testing.T) {
	store := memory.New()
	seedTasks(t, store)

	w := NewReminderWorker(store, nil, time.Hour)
	count, err := w.ProcessDueTasks(context.Background(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if count != 2 {
		t.Errorf("due count = %d, want 2", count)
	}
}

func TestProcessDueTasksPublishError(t *testing.T) {
	store := memory.New()
	seedTasks(t, store)

	w := NewReminderWorker(store, &capturePublisher{fail: true}, time.Hour)
	if _, err := w.ProcessDueTasks(context.Background(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("expected error when publishing fails")
	}
}
