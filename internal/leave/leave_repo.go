package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrm/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRef is the slice of the employees row the leave module reads.
type EmployeeRef struct {
	ID           uuid.UUID
	DepartmentID *uuid.UUID
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveApplication, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
	Delete(ctx context.Context, companyID, id string) error
	// FindEmployeeRef returns nil without error when the employee does not
	// belong to the company.
	FindEmployeeRef(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error)
	FindOverlappingRange(ctx context.Context, companyID string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]LeaveApplication, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeaveApplication{}, "id = ?", id).Error
}

func (r *repository) FindEmployeeRef(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "department_id").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Take(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// FindOverlappingRange selects applications whose [start_date, end_date]
// interval intersects [rangeStart, rangeEnd], i.e.
// start_date <= rangeEnd AND end_date >= rangeStart.
func (r *repository) FindOverlappingRange(
	ctx context.Context,
	companyID string,
	rangeStart, rangeEnd time.Time,
	statuses []string,
	employeeID, departmentID *string,
) ([]LeaveApplication, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status IN ?", statuses).
		Where("start_date <= ?", rangeEnd).
		Where("end_date >= ?", rangeStart)

	if employeeID != nil && *employeeID != "" {
		db = db.Where("employee_id = ?", *employeeID)
	}
	if departmentID != nil && *departmentID != "" {
		db = db.Where("department_id = ?", *departmentID)
	}

	var apps []LeaveApplication
	err := db.Order("start_date ASC").Find(&apps).Error
	return apps, err
}
