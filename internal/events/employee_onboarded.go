package events

import "time"

const EmployeeOnboardedTopic = "hr.employee.onboarded.v1"

// EmployeeOnboardedEvent is emitted when a completed preboarding checklist
// is converted into an employee record.
type EmployeeOnboardedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ChecklistID string    `json:"checklist_id"`
	EmployeeID  string    `json:"employee_id"`
	CompanyID   string    `json:"company_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
