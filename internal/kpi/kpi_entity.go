package kpi

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CycleParticipant is one employee enrolled in a performance cycle.
type CycleParticipant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CycleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CycleParticipant) TableName() string {
	return "performance_cycle_participants"
}

// KpiAssignment carries a weight toward the participant's weighted score.
// AchievementPercentage stays nil until progress is recorded.
type KpiAssignment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;index:idx_kpi_assignments_participant"`

	Title                 string           `gorm:"type:varchar(150);not null"`
	Weight                decimal.Decimal  `gorm:"type:numeric(8,2);not null"`
	AchievementPercentage *decimal.Decimal `gorm:"type:numeric(6,2)"`
	Status                string           `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (KpiAssignment) TableName() string {
	return "kpi_assignments"
}
