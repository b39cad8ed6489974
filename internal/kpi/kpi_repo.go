package kpi

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=kpi_repo.go -destination=mock/kpi_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ParticipantExists(ctx context.Context, companyID, participantID string) (bool, error)
	CreateAssignment(ctx context.Context, a *KpiAssignment) error
	FindAssignmentByID(ctx context.Context, companyID, id string) (*KpiAssignment, error)
	FindAssignmentsByParticipant(ctx context.Context, companyID, participantID string) ([]KpiAssignment, error)
	UpdateAssignment(ctx context.Context, a *KpiAssignment) error
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

func (r *repository) ParticipantExists(ctx context.Context, companyID, participantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CycleParticipant{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", participantID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateAssignment(ctx context.Context, a *KpiAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAssignmentByID(ctx context.Context, companyID, id string) (*KpiAssignment, error) {
	var a KpiAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindAssignmentsByParticipant(ctx context.Context, companyID, participantID string) ([]KpiAssignment, error) {
	var assignments []KpiAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("participant_id = ?", participantID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) UpdateAssignment(ctx context.Context, a *KpiAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}
