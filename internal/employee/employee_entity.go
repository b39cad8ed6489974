package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	EmployeeNumber   string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_employee_number"`
	FullName         string `gorm:"type:varchar(255);not null"`
	Email            string `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Phone            string `gorm:"type:varchar(30)"`
	HireDate         time.Time
	EmploymentStatus string `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
