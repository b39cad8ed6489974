package department_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/department"
	departmenterrors "go-hrm/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	createFn             func(ctx context.Context, dept *department.Department) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]department.Department, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*department.Department, error)
	updateFn             func(ctx context.Context, dept *department.Department) error
	deleteFn             func(ctx context.Context, companyID, id string) error
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository { return f }

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAllByCompany(ctx context.Context, companyID string) ([]department.Department, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*department.Department, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, dept *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	repo := &fakeDepartmentRepository{
		createFn: func(ctx context.Context, dept *department.Department) error {
			assert.Equal(t, uuid.MustParse(companyID), dept.CompanyID)
			assert.Equal(t, "Engineering", dept.Name)
			return nil
		},
	}
	svc := department.NewService(db, repo)

	resp, err := svc.Create(ctx, companyID, department.CreateDepartmentRequest{Name: "Engineering"})

	assert.NoError(t, err)
	assert.Equal(t, "Engineering", resp.Name)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeDepartmentRepository{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*department.Department, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := department.NewService(db, repo)

	_, err = svc.GetByID(ctx, companyID, uuid.New().String())
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}
