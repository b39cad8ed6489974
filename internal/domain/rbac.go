package domain

// EnforceRequest is the single question the permission gate answers:
// may this employee of this company perform action on resource.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Closed set of gated resources.
const (
	ResourceEmployee     = "employee"
	ResourceDepartment   = "department"
	ResourceLeave        = "leave"
	ResourceKpi          = "kpi"
	ResourceLoan         = "loan"
	ResourceDocument     = "document"
	ResourcePreboarding  = "preboarding"
	ResourceTraining     = "training"
	ResourceNotification = "notification"
)

const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionManage  = "manage"
)
