package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_document_requests_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	DocumentType string `gorm:"type:varchar(50);not null"`
	Reason       string `gorm:"type:text"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_document_requests_company_status"`
	ProcessedAt *time.Time
	CollectedAt *time.Time
	AdminNotes  *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DocumentRequest) TableName() string {
	return "document_requests"
}
