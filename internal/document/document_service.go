package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	documenterrors "go-hrm/internal/document/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCollected  = "COLLECTED"
	StatusRejected   = "REJECTED"
)

var validStatuses = map[string]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusCollected:  {},
	StatusRejected:   {},
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateDocumentRequestRequest) (DocumentRequestResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DocumentRequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DocumentRequestResponse, error)
	UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateDocumentStatusRequest) (DocumentRequestResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	userRepo user.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo user.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{db: db, repo: repo, userRepo: userRepo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateDocumentRequestRequest) (DocumentRequestResponse, error) {
	s.logger.Debug("create document request",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("document_type", req.DocumentType),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create document request begin tx failed", zap.Error(err))
		return DocumentRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DocumentRequestResponse{}, documenterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DocumentRequestResponse{}, documenterrors.ErrInvalidEmployeeID
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create document request company check failed", zap.Error(err))
		return DocumentRequestResponse{}, err
	}
	if !belongs {
		return DocumentRequestResponse{}, documenterrors.ErrEmployeeNotInCompany
	}

	d := &DocumentRequest{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		EmployeeID:   employeeUUID,
		DocumentType: req.DocumentType,
		Reason:       req.Reason,
		Status:       StatusPending,
	}

	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create document request persist failed", zap.Error(err))
		return DocumentRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create document request commit failed", zap.Error(err))
		return DocumentRequestResponse{}, err
	}
	s.logger.Info("create document request success",
		zap.String("request_id", d.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DocumentRequestResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]DocumentRequestResponse, len(requests))
	for i, d := range requests {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DocumentRequestResponse, error) {
	d, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentRequestResponse{}, documenterrors.ErrRequestNotFound
		}
		return DocumentRequestResponse{}, err
	}
	return mapToResponse(*d), nil
}

// UpdateStatus applies an administrative status transition. Entering
// PROCESSING always restamps processed_at, even when the request was
// processed before; entering COLLECTED stamps collected_at once.
func (s *service) UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateDocumentStatusRequest) (DocumentRequestResponse, error) {
	s.logger.Debug("update document request status",
		zap.String("request_id", id),
		zap.String("company_id", companyID),
		zap.String("target_status", req.Status),
	)

	if _, ok := validStatuses[req.Status]; !ok {
		return DocumentRequestResponse{}, documenterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update document status begin tx failed", zap.Error(err))
		return DocumentRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentRequestResponse{}, documenterrors.ErrRequestNotFound
		}
		return DocumentRequestResponse{}, err
	}

	now := time.Now().UTC()
	d.Status = req.Status
	switch req.Status {
	case StatusProcessing:
		d.ProcessedAt = &now
	case StatusCollected:
		if d.CollectedAt == nil {
			d.CollectedAt = &now
		}
	}
	if req.AdminNotes != nil {
		d.AdminNotes = req.AdminNotes
	}

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("update document status persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return DocumentRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update document status commit failed", zap.Error(err))
		return DocumentRequestResponse{}, err
	}
	s.logger.Info("update document status success",
		zap.String("request_id", id),
		zap.String("status", d.Status),
	)

	s.notifyStatusChanged(ctx, d)

	return mapToResponse(*d), nil
}

// notifyStatusChanged enqueues the status event for the owning user.
// Best effort: a missing account or enqueue failure is logged, never
// surfaced to the caller.
func (s *service) notifyStatusChanged(ctx context.Context, d *DocumentRequest) {
	owner, err := s.userRepo.FindByEmployee(ctx, d.CompanyID.String(), d.EmployeeID.String())
	if err != nil {
		s.logger.Warn("document status notification user lookup failed",
			zap.String("request_id", d.ID.String()),
			zap.Error(err),
		)
		return
	}
	if owner == nil {
		s.logger.Debug("document status notification skipped, no linked user",
			zap.String("request_id", d.ID.String()),
			zap.String("employee_id", d.EmployeeID.String()),
		)
		return
	}

	adminNotes := ""
	if d.AdminNotes != nil {
		adminNotes = *d.AdminNotes
	}
	payload, err := json.Marshal(events.DocumentRequestStatusChangedEvent{
		EventType:    "document.request.status.changed",
		RequestID:    contextutil.GetRequestID(ctx),
		DocumentID:   d.ID.String(),
		CompanyID:    d.CompanyID.String(),
		EmployeeID:   d.EmployeeID.String(),
		UserID:       owner.ID.String(),
		DocumentType: d.DocumentType,
		Status:       d.Status,
		AdminNotes:   adminNotes,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("document status notification marshal failed", zap.Error(err))
		return
	}

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "document_request",
		AggregateID:   d.ID.String(),
		EventType:     "document.request.status.changed",
		Topic:         events.DocumentRequestStatusTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Warn("document status notification enqueue failed",
			zap.String("request_id", d.ID.String()),
			zap.Error(err),
		)
	}
}

func mapToResponse(d DocumentRequest) DocumentRequestResponse {
	resp := DocumentRequestResponse{
		ID:           d.ID.String(),
		CompanyID:    d.CompanyID.String(),
		EmployeeID:   d.EmployeeID.String(),
		DocumentType: d.DocumentType,
		Reason:       d.Reason,
		Status:       d.Status,
		AdminNotes:   d.AdminNotes,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
	if d.ProcessedAt != nil {
		v := d.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	if d.CollectedAt != nil {
		v := d.CollectedAt.Format(time.RFC3339)
		resp.CollectedAt = &v
	}
	return resp
}
