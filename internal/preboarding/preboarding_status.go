package preboarding

const (
	ItemStatusPending   = "PENDING"
	ItemStatusSubmitted = "SUBMITTED"
	ItemStatusApproved  = "APPROVED"
	ItemStatusRejected  = "REJECTED"
)

const (
	ChecklistStatusInProgress = "IN_PROGRESS"
	ChecklistStatusCompleted  = "COMPLETED"
)

// ChecklistStatus derives the checklist state from its items. A checklist
// without items is never complete.
func ChecklistStatus(items []ChecklistItem) string {
	if len(items) == 0 {
		return ChecklistStatusInProgress
	}
	for _, item := range items {
		if item.Status != ItemStatusApproved {
			return ChecklistStatusInProgress
		}
	}
	return ChecklistStatusCompleted
}
