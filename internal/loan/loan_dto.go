package loan

type ApplyLoanRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	TermMonths int     `json:"term_months" binding:"required,gt=0"`
	Purpose    string  `json:"purpose"`
}

type ApproveLoanRequest struct {
	ApprovedAmount *float64 `json:"approved_amount"`
	TermMonths     *int     `json:"term_months"`
	Remarks        *string  `json:"remarks"`
}

type RejectLoanRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

type LoanApplicationResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	EmployeeID     string   `json:"employee_id"`
	Amount         float64  `json:"amount"`
	TermMonths     int      `json:"term_months"`
	Purpose        string   `json:"purpose"`
	Status         string   `json:"status"`
	ApprovedAmount *float64 `json:"approved_amount,omitempty"`
	ReviewerID     *string  `json:"reviewer_id,omitempty"`
	ReviewedAt     *string  `json:"reviewed_at,omitempty"`
	Remarks        *string  `json:"remarks,omitempty"`
}
