package document

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *DocumentRequest) error
	FindAllByCompany(ctx context.Context, companyID string) ([]DocumentRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*DocumentRequest, error)
	Update(ctx context.Context, d *DocumentRequest) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, d *DocumentRequest) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]DocumentRequest, error) {
	var requests []DocumentRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*DocumentRequest, error) {
	var d DocumentRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *DocumentRequest) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
