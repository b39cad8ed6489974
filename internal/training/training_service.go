package training

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrm/internal/domain"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/apperror"
	trainingerrors "go-hrm/internal/training/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=training_service.go -destination=mock/training_service_mock.go -package=mock
type Service interface {
	CreateSession(ctx context.Context, companyID string, req CreateSessionRequest) (SessionResponse, error)
	GetSessions(ctx context.Context, companyID string) ([]SessionResponse, error)
	Waitlist(ctx context.Context, companyID, sessionID string) ([]WaitlistEntryResponse, error)
	Join(ctx context.Context, companyID, sessionID string, req JoinWaitlistRequest) (WaitlistEntryResponse, error)
	CancelWaitlist(ctx context.Context, companyID, actorID, entryID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("training.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.service")
	}
	return &service{db: db, repo: repo, rbac: rbacService, logger: l}
}

func (s *service) CreateSession(ctx context.Context, companyID string, req CreateSessionRequest) (SessionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SessionResponse{}, trainingerrors.ErrInvalidCompanyID
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return SessionResponse{}, trainingerrors.ErrInvalidScheduledAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create session begin tx failed", zap.Error(err))
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	sess := &Session{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Title:       req.Title,
		Trainer:     req.Trainer,
		Location:    req.Location,
		Capacity:    req.Capacity,
		ScheduledAt: scheduledAt,
	}
	if err := s.repo.WithTx(tx).CreateSession(ctx, sess); err != nil {
		s.logger.Error("create session persist failed", zap.Error(err))
		return SessionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create session commit failed", zap.Error(err))
		return SessionResponse{}, err
	}
	s.logger.Info("create session success", zap.String("session_id", sess.ID.String()))

	return mapToSessionResponse(*sess), nil
}

func (s *service) GetSessions(ctx context.Context, companyID string) ([]SessionResponse, error) {
	sessions, err := s.repo.FindSessionsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]SessionResponse, len(sessions))
	for i, sess := range sessions {
		resp[i] = mapToSessionResponse(sess)
	}
	return resp, nil
}

// Waitlist returns the session queue in join order with derived positions.
func (s *service) Waitlist(ctx context.Context, companyID, sessionID string) ([]WaitlistEntryResponse, error) {
	if _, err := s.repo.FindSessionByIDAndCompany(ctx, companyID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trainingerrors.ErrSessionNotFound
		}
		return nil, err
	}

	entries, err := s.repo.FindWaitlistBySession(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}

	resp := make([]WaitlistEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = WaitlistEntryResponse{
			ID:         e.ID.String(),
			SessionID:  e.SessionID.String(),
			EmployeeID: e.EmployeeID.String(),
			Position:   i + 1,
			JoinedAt:   e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) Join(ctx context.Context, companyID, sessionID string, req JoinWaitlistRequest) (WaitlistEntryResponse, error) {
	s.logger.Debug("join waitlist requested",
		zap.String("company_id", companyID),
		zap.String("session_id", sessionID),
		zap.String("employee_id", req.EmployeeID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return WaitlistEntryResponse{}, trainingerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("join waitlist begin tx failed", zap.Error(err))
		return WaitlistEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindSessionByIDAndCompany(ctx, companyID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WaitlistEntryResponse{}, trainingerrors.ErrSessionNotFound
		}
		return WaitlistEntryResponse{}, err
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("join waitlist company check failed", zap.Error(err))
		return WaitlistEntryResponse{}, err
	}
	if !belongs {
		return WaitlistEntryResponse{}, trainingerrors.ErrEmployeeNotInCompany
	}

	entry := &WaitlistEntry{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		SessionID:  sess.ID,
		EmployeeID: uuid.MustParse(req.EmployeeID),
	}
	if err := qtx.CreateWaitlistEntry(ctx, entry); err != nil {
		s.logger.Warn("join waitlist persist failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return WaitlistEntryResponse{}, mapWaitlistError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("join waitlist commit failed", zap.Error(err))
		return WaitlistEntryResponse{}, mapWaitlistError(err)
	}
	s.logger.Info("join waitlist success",
		zap.String("entry_id", entry.ID.String()),
		zap.String("session_id", sessionID),
	)

	return WaitlistEntryResponse{
		ID:         entry.ID.String(),
		SessionID:  entry.SessionID.String(),
		EmployeeID: entry.EmployeeID.String(),
		JoinedAt:   entry.CreatedAt.Format(time.RFC3339),
	}, nil
}

// CancelWaitlist removes an entry. Only the owning employee or an actor
// holding the training manage permission may cancel; positions of the
// remaining entries shift down naturally since they are derived from order.
func (s *service) CancelWaitlist(ctx context.Context, companyID, actorID, entryID string) error {
	s.logger.Debug("cancel waitlist requested",
		zap.String("company_id", companyID),
		zap.String("entry_id", entryID),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel waitlist begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindWaitlistEntry(ctx, companyID, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trainingerrors.ErrEntryNotFound
		}
		return err
	}

	isOwner := entry.EmployeeID.String() == actorID
	if !isOwner && !s.rbac.HasPermission(companyID, actorID, domain.ResourceTraining, domain.ActionManage) {
		s.logger.Warn("cancel waitlist forbidden",
			zap.String("entry_id", entryID),
			zap.String("actor_id", actorID),
		)
		return apperror.ErrForbidden
	}

	if err := qtx.DeleteWaitlistEntry(ctx, companyID, entryID); err != nil {
		s.logger.Error("cancel waitlist delete failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel waitlist commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("cancel waitlist success", zap.String("entry_id", entryID))
	return nil
}

func mapWaitlistError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_training_waitlist_session_employee" {
			return trainingerrors.ErrAlreadyOnWaitlist
		}
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_training_waitlist_session_employee") {
		return trainingerrors.ErrAlreadyOnWaitlist
	}
	return err
}

func mapToSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID.String(),
		CompanyID:   s.CompanyID.String(),
		Title:       s.Title,
		Trainer:     s.Trainer,
		Location:    s.Location,
		Capacity:    s.Capacity,
		ScheduledAt: s.ScheduledAt.Format(time.RFC3339),
	}
}
