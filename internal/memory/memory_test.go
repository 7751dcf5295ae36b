package memory

import (
	"context"
	"errors"
	"testing"

	"farmbook/internal/core"
)

func TestTransactionCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec := core.Transaction{ID: "t1", Date: "2024-03-01", Kind: core.Expense, Description: "Feed", Amount: 120}
	if err := s.CreateTransaction(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetTransaction(ctx, "t1")
	if err != nil || got.Description != "Feed" {
		t.Fatalf("get = %+v, %v", got, err)
	}

	rec.Amount = 130
	if err := s.UpdateTransaction(ctx, rec); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetTransaction(ctx, "t1")
	if got.Amount != 130 {
		t.Errorf("amount after update = %v", got.Amount)
	}

	if err := s.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		if err := s.CreateTransaction(ctx, core.Transaction{ID: id, Kind: core.Expense}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	got, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestDeleteAnimalDropsEvents(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateAnimal(ctx, core.Animal{ID: "a1", Tag: "E-101"}); err != nil {
		t.Fatalf("create animal: %v", err)
	}
	if err := s.AddAnimalEvent(ctx, core.AnimalEvent{ID: "e1", AnimalID: "a1", Type: core.EventWeight, Date: "2024-03-01", Value: 42}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	if err := s.DeleteAnimal(ctx, "a1"); err != nil {
		t.Fatalf("delete animal: %v", err)
	}
	events, _ := s.ListAnimalEvents(ctx, "a1")
	if len(events) != 0 {
		t.Errorf("expected no events after delete, got %d", len(events))
	}
}

func TestDueTasks(t *testing.T) {
	s := New()
	ctx := context.Background()

	tasks := []core.Task{
		{ID: "t1", Title: "Worm the goats", DueDate: "2024-04-30"},
		{ID: "t2", Title: "Order feed", DueDate: "2024-05-01"},
		{ID: "t3", Title: "Shear", DueDate: "2024-06-15"},
		{ID: "t4", Title: "Done already", DueDate: "2024-04-01", Done: true},
		{ID: "t5", Title: "No date"},
	}
	for _, task := range tasks {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	due, err := s.DueTasks(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("due tasks: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due tasks, got %d", len(due))
	}

	if err := s.MarkTaskDone(ctx, "t1"); err != nil {
		t.Fatalf("mark done: %v", err)
	}
	due, _ = s.DueTasks(ctx, "2024-05-01")
	if len(due) != 1 || due[0].ID != "t2" {
		t.Errorf("after marking done, due = %+v", due)
	}
}
