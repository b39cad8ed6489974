package document

type CreateDocumentRequestRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	DocumentType string `json:"document_type" binding:"required"`
	Reason       string `json:"reason"`
}

type UpdateDocumentStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

type DocumentRequestResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	EmployeeID   string  `json:"employee_id"`
	DocumentType string  `json:"document_type"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	CollectedAt  *string `json:"collected_at,omitempty"`
	AdminNotes   *string `json:"admin_notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
