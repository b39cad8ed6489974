package leave

type CreateLeaveApplicationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type RejectLeaveApplicationRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

// CalendarQuery selects applications whose date range overlaps the given
// calendar month.
type CalendarQuery struct {
	Year         int     `form:"year" binding:"required"`
	Month        int     `form:"month" binding:"required"`
	EmployeeID   *string `form:"employee_id"`
	DepartmentID *string `form:"department_id"`
	ShowPending  bool    `form:"show_pending"`
}

type LeaveApplicationResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	DepartmentID    *string `json:"department_id,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
