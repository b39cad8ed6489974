package training

type CreateSessionRequest struct {
	Title       string `json:"title" binding:"required"`
	Trainer     string `json:"trainer"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
}

type JoinWaitlistRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type SessionResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Title       string `json:"title"`
	Trainer     string `json:"trainer,omitempty"`
	Location    string `json:"location,omitempty"`
	Capacity    int    `json:"capacity"`
	ScheduledAt string `json:"scheduled_at"`
}

type WaitlistEntryResponse struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	EmployeeID string `json:"employee_id"`
	Position   int    `json:"position"`
	JoinedAt   string `json:"joined_at"`
}
