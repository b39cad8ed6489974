package preboarding

type CreateChecklistRequest struct {
	CandidateName  string   `json:"candidate_name" binding:"required"`
	CandidateEmail string   `json:"candidate_email" binding:"required,email"`
	CandidatePhone string   `json:"candidate_phone"`
	DepartmentID   string   `json:"department_id" binding:"omitempty,uuid"`
	StartDate      string   `json:"start_date" binding:"required"`
	ItemTitles     []string `json:"item_titles" binding:"required,min=1"`
}

type RejectItemRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ChecklistItemResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	SortOrder       int     `json:"sort_order"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
}

type ChecklistResponse struct {
	ID             string                  `json:"id"`
	CompanyID      string                  `json:"company_id"`
	CandidateName  string                  `json:"candidate_name"`
	CandidateEmail string                  `json:"candidate_email"`
	CandidatePhone string                  `json:"candidate_phone,omitempty"`
	DepartmentID   string                  `json:"department_id,omitempty"`
	StartDate      string                  `json:"start_date"`
	Status         string                  `json:"status"`
	Items          []ChecklistItemResponse `json:"items"`
}

type ConversionResponse struct {
	ChecklistID string `json:"checklist_id"`
	EmployeeID  string `json:"employee_id"`
	UserID      string `json:"user_id"`
}
