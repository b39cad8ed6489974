package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanApplication struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_loan_applications_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TermMonths int             `gorm:"type:int;not null"`
	Purpose    string          `gorm:"type:text"`

	Status         string           `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_loan_applications_company_status"`
	ApprovedAmount *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ReviewerID     *uuid.UUID       `gorm:"type:uuid"`
	ReviewedAt     *time.Time
	Remarks        *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}
