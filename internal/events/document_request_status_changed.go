package events

import "time"

const DocumentRequestStatusTopic = "hr.document.request.status.v1"

// DocumentRequestStatusChangedEvent notifies the owning user after a
// document request transition has been committed. Delivery is best effort.
type DocumentRequestStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	DocumentID   string    `json:"document_id"`
	CompanyID    string    `json:"company_id"`
	EmployeeID   string    `json:"employee_id"`
	UserID       string    `json:"user_id"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	AdminNotes   string    `json:"admin_notes,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
