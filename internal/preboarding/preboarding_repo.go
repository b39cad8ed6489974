package preboarding

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=preboarding_repo.go -destination=mock/preboarding_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateChecklist(ctx context.Context, cl *Checklist) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Checklist, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Checklist, error)
	FindItem(ctx context.Context, companyID, checklistID, itemID string) (*ChecklistItem, error)
	UpdateItem(ctx context.Context, item *ChecklistItem) error
	CreateConversion(ctx context.Context, conv *Conversion) error
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

func (r *repository) CreateChecklist(ctx context.Context, cl *Checklist) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Checklist, error) {
	var checklists []Checklist
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Find(&checklists).Error
	return checklists, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Checklist, error) {
	var cl Checklist
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&cl, "id = ?", id).Error
	return &cl, err
}

func (r *repository) FindItem(ctx context.Context, companyID, checklistID, itemID string) (*ChecklistItem, error) {
	var item ChecklistItem
	err := r.db.WithContext(ctx).
		Joins("JOIN preboarding_checklists ON preboarding_checklists.id = preboarding_checklist_items.checklist_id").
		Where("preboarding_checklists.company_id = ?", companyID).
		Where("preboarding_checklist_items.checklist_id = ?", checklistID).
		First(&item, "preboarding_checklist_items.id = ?", itemID).Error
	return &item, err
}

func (r *repository) UpdateItem(ctx context.Context, item *ChecklistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) CreateConversion(ctx context.Context, conv *Conversion) error {
	return r.db.WithContext(ctx).Create(conv).Error
}
