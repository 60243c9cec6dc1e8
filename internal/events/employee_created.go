package events

import "time"

const EmployeeCreatedTopic = "hrm.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	BadgeID    string    `json:"badge_id"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}
