package amqp

import (
	"encoding/json"
	"time"
)

// TaskReminderMessage represents a lightweight reminder notification.
// Contains only the task ID and due date, consumers fetch the full task
// from the database when they need more.
type TaskReminderMessage struct {
	TaskID    string    `json:"taskId"`
	Title     string    `json:"title"`
	DueDate   string    `json:"dueDate"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTaskReminderMessage creates a new reminder message
func NewTaskReminderMessage(taskID, title, dueDate string) *TaskReminderMessage {
	return &TaskReminderMessage{
		TaskID:    taskID,
		Title:     title,
		DueDate:   dueDate,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TaskReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TaskReminderMessageFromJSON creates a message from JSON bytes
func TaskReminderMessageFromJSON(data []byte) (*TaskReminderMessage, error) {
	var msg TaskReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
