package training

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=training_repo.go -destination=mock/training_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateSession(ctx context.Context, s *Session) error
	FindSessionsByCompany(ctx context.Context, companyID string) ([]Session, error)
	FindSessionByIDAndCompany(ctx context.Context, companyID, id string) (*Session, error)
	CreateWaitlistEntry(ctx context.Context, e *WaitlistEntry) error
	// FindWaitlistBySession returns entries in creation order, oldest first.
	FindWaitlistBySession(ctx context.Context, companyID, sessionID string) ([]WaitlistEntry, error)
	FindWaitlistEntry(ctx context.Context, companyID, entryID string) (*WaitlistEntry, error)
	DeleteWaitlistEntry(ctx context.Context, companyID, entryID string) error
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

func (r *repository) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindSessionsByCompany(ctx context.Context, companyID string) ([]Session, error) {
	var sessions []Session
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("scheduled_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repository) FindSessionByIDAndCompany(ctx context.Context, companyID, id string) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) CreateWaitlistEntry(ctx context.Context, e *WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindWaitlistBySession(ctx context.Context, companyID, sessionID string) ([]WaitlistEntry, error) {
	var entries []WaitlistEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindWaitlistEntry(ctx context.Context, companyID, entryID string) (*WaitlistEntry, error) {
	var e WaitlistEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", entryID).Error
	return &e, err
}

func (r *repository) DeleteWaitlistEntry(ctx context.Context, companyID, entryID string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&WaitlistEntry{}, "id = ?", entryID).Error
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
