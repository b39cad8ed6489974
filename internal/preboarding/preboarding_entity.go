package preboarding

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checklist collects a candidate's details before their employee record
// exists. Its status is derived from the items, never stored.
type Checklist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	CandidateName  string     `gorm:"type:varchar(255);not null"`
	CandidateEmail string     `gorm:"type:varchar(255);not null"`
	CandidatePhone string     `gorm:"type:varchar(30)"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid"`
	StartDate      time.Time

	Items []ChecklistItem `gorm:"foreignKey:ChecklistID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Checklist) TableName() string {
	return "preboarding_checklists"
}

type ChecklistItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChecklistID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title     string `gorm:"type:varchar(255);not null"`
	SortOrder int    `gorm:"type:int;not null"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	RejectionReason *string    `gorm:"type:text"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChecklistItem) TableName() string {
	return "preboarding_checklist_items"
}

// Conversion records the one employee a checklist produced. The unique
// index on checklist_id is what makes double conversion impossible.
type Conversion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChecklistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_preboarding_conversions_checklist"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
}

func (Conversion) TableName() string {
	return "preboarding_conversions"
}
