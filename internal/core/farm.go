package core

import (
	"strings"
	"time"
)

const (
	EventWeight   EventType = "weight"
	EventHealth   EventType = "health"
	EventBreeding EventType = "breeding"
)

type (
	EventType string

	// Animal is one head of livestock.
	Animal struct {
		ID        string `json:"id"`
		Tag       string `json:"tag"`
		Name      string `json:"name"`
		Species   string `json:"species"`
		Breed     string `json:"breed"`
		Sex       string `json:"sex"`
		BirthDate string `json:"birthDate"`
		Status    string `json:"status"`
		Notes     string `json:"notes"`
	}

	// AnimalEvent is one history entry for an animal: a weight reading, a
	// health treatment, or a breeding record. Value carries the weight in kg
	// for weight events and is zero otherwise.
	AnimalEvent struct {
		ID       string    `json:"id"`
		AnimalID string    `json:"animalId"`
		Type     EventType `json:"type"`
		Date     string    `json:"date"`
		Value    float64   `json:"value"`
		Notes    string    `json:"notes"`
	}

	// Task is a simple farm reminder with a due date.
	Task struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Details string `json:"details"`
		DueDate string `json:"dueDate"`
		Done    bool   `json:"done"`
	}
)

// IsValid reports whether the event type is one of the known kinds.
func (e EventType) IsValid() bool {
	switch e {
	case EventWeight, EventHealth, EventBreeding:
		return true
	}
	return false
}

func (a Animal) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(a.Tag) == "" && strings.TrimSpace(a.Name) == "" {
		return ErrEmptyDescription
	}
	if a.BirthDate != "" {
		if _, err := time.Parse(DateLayout, a.BirthDate); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

func (e AnimalEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.AnimalID) == "" {
		return ErrEmptyID
	}
	if !e.Type.IsValid() {
		return ErrInvalidKind
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	if e.Type == EventWeight && e.Value <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyDescription
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DateLayout, t.DueDate); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// Due reports whether the task is due at the given instant: not done and
// with a due date on or before now's calendar date.
func (t Task) Due(now time.Time) bool {
	if t.Done || t.DueDate == "" {
		return false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.After(today)
}
