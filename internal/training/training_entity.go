package training

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title       string `gorm:"type:varchar(255);not null"`
	Trainer     string `gorm:"type:varchar(255)"`
	Location    string `gorm:"type:varchar(255)"`
	Capacity    int    `gorm:"type:int;not null"`
	ScheduledAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Session) TableName() string {
	return "training_sessions"
}

// WaitlistEntry holds one employee's place in a session's queue. Position
// is derived from creation order and never stored.
type WaitlistEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_training_waitlist_session_employee"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_training_waitlist_session_employee"`

	CreatedAt time.Time
}

func (WaitlistEntry) TableName() string {
	return "training_waitlist_entries"
}
