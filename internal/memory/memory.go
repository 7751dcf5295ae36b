// Package memory holds an in-process store used for development and tests.
package memory

import (
	"context"
	"sync"

	"farmbook/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.Transaction
	animals []core.Animal
	events  []core.AnimalEvent
	tasks   []core.Task
}

func New() *Store {
	return &Store{}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, t)
	return nil
}

// CreateTransactions appends the whole batch. Memory appends cannot fail
// part way, so the all-or-nothing contract holds trivially.
func (s *Store) CreateTransactions(_ context.Context, records []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.records...), nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.records {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == t.ID {
			s.records[i] = t
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) CreateAnimal(_ context.Context, a core.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animals = append(s.animals, a)
	return nil
}

func (s *Store) ListAnimals(_ context.Context) ([]core.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Animal(nil), s.animals...), nil
}

func (s *Store) GetAnimal(_ context.Context, id string) (core.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.animals {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Animal{}, core.ErrNotFound
}

func (s *Store) UpdateAnimal(_ context.Context, a core.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.animals {
		if s.animals[i].ID == a.ID {
			s.animals[i] = a
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteAnimal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.animals {
		if s.animals[i].ID == id {
			s.animals = append(s.animals[:i], s.animals[i+1:]...)
			// Events follow their animal.
			kept := s.events[:0]
			for _, e := range s.events {
				if e.AnimalID != id {
					kept = append(kept, e)
				}
			}
			s.events = kept
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) AddAnimalEvent(_ context.Context, e core.AnimalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *Store) ListAnimalEvents(_ context.Context, animalID string) ([]core.AnimalEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.AnimalEvent
	for _, e := range s.events {
		if e.AnimalID == animalID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) CreateTask(_ context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	return nil
}

func (s *Store) UpdateTask(_ context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) ListTasks(_ context.Context) ([]core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Task(nil), s.tasks...), nil
}

func (s *Store) DueTasks(_ context.Context, today string) ([]core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Task
	for _, t := range s.tasks {
		if !t.Done && t.DueDate != "" && t.DueDate <= today {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) MarkTaskDone(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Done = true
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}
