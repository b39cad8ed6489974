package preboarding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	preboardingerrors "go-hrm/internal/preboarding/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=preboarding_service.go -destination=mock/preboarding_service_mock.go -package=mock
type Service interface {
	CreateChecklist(ctx context.Context, companyID string, req CreateChecklistRequest) (ChecklistResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ChecklistResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ChecklistResponse, error)
	SubmitItem(ctx context.Context, companyID, checklistID, itemID string) (ChecklistResponse, error)
	ApproveItem(ctx context.Context, companyID, reviewerID, checklistID, itemID string) (ChecklistResponse, error)
	RejectItem(ctx context.Context, companyID, reviewerID, checklistID, itemID, reason string) (ChecklistResponse, error)
	ConvertToEmployee(ctx context.Context, companyID, actorID, checklistID string) (ConversionResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	userRepo     user.Repository
	counter      counter.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("preboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preboarding.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		counter:      counterRepo,
		outbox:       outboxRepo,
		logger:       l,
	}
}

func (s *service) CreateChecklist(ctx context.Context, companyID string, req CreateChecklistRequest) (ChecklistResponse, error) {
	s.logger.Debug("create preboarding checklist requested",
		zap.String("company_id", companyID),
		zap.String("candidate_email", req.CandidateEmail),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ChecklistResponse{}, preboardingerrors.ErrInvalidCompanyID
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ChecklistResponse{}, preboardingerrors.ErrInvalidStartDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create checklist begin tx failed", zap.Error(err))
		return ChecklistResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cl := &Checklist{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		StartDate:      startDate,
	}
	if req.DepartmentID != "" {
		if deptUUID, err := uuid.Parse(req.DepartmentID); err == nil {
			cl.DepartmentID = &deptUUID
		}
	}
	for i, title := range req.ItemTitles {
		cl.Items = append(cl.Items, ChecklistItem{
			ID:          uuid.New(),
			ChecklistID: cl.ID,
			Title:       title,
			SortOrder:   i + 1,
			Status:      ItemStatusPending,
		})
	}

	if err := qtx.CreateChecklist(ctx, cl); err != nil {
		s.logger.Error("create checklist persist failed", zap.Error(err))
		return ChecklistResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create checklist commit failed", zap.Error(err))
		return ChecklistResponse{}, err
	}
	s.logger.Info("create checklist success", zap.String("checklist_id", cl.ID.String()))

	return mapToChecklistResponse(*cl), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ChecklistResponse, error) {
	checklists, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]ChecklistResponse, len(checklists))
	for i, cl := range checklists {
		resp[i] = mapToChecklistResponse(cl)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ChecklistResponse, error) {
	cl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChecklistResponse{}, preboardingerrors.ErrChecklistNotFound
		}
		return ChecklistResponse{}, err
	}
	return mapToChecklistResponse(*cl), nil
}

func (s *service) SubmitItem(ctx context.Context, companyID, checklistID, itemID string) (ChecklistResponse, error) {
	return s.reviewItem(ctx, companyID, "", checklistID, itemID, ItemStatusSubmitted, nil)
}

func (s *service) ApproveItem(ctx context.Context, companyID, reviewerID, checklistID, itemID string) (ChecklistResponse, error) {
	return s.reviewItem(ctx, companyID, reviewerID, checklistID, itemID, ItemStatusApproved, nil)
}

func (s *service) RejectItem(ctx context.Context, companyID, reviewerID, checklistID, itemID, reason string) (ChecklistResponse, error) {
	if reason == "" {
		return ChecklistResponse{}, preboardingerrors.ErrRejectionReasonRequired
	}
	return s.reviewItem(ctx, companyID, reviewerID, checklistID, itemID, ItemStatusRejected, &reason)
}

func (s *service) reviewItem(
	ctx context.Context,
	companyID, reviewerID, checklistID, itemID, targetStatus string,
	reason *string,
) (ChecklistResponse, error) {
	s.logger.Debug("review checklist item requested",
		zap.String("checklist_id", checklistID),
		zap.String("item_id", itemID),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review item begin tx failed", zap.Error(err))
		return ChecklistResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item, err := qtx.FindItem(ctx, companyID, checklistID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChecklistResponse{}, preboardingerrors.ErrItemNotFound
		}
		return ChecklistResponse{}, err
	}

	item.Status = targetStatus
	item.RejectionReason = reason
	if targetStatus == ItemStatusApproved || targetStatus == ItemStatusRejected {
		reviewerUUID, err := uuid.Parse(reviewerID)
		if err != nil {
			return ChecklistResponse{}, preboardingerrors.ErrInvalidReviewerID
		}
		now := time.Now().UTC()
		item.ReviewedBy = &reviewerUUID
		item.ReviewedAt = &now
	}

	if err := qtx.UpdateItem(ctx, item); err != nil {
		s.logger.Error("review item persist failed", zap.Error(err))
		return ChecklistResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review item commit failed", zap.Error(err))
		return ChecklistResponse{}, err
	}
	s.logger.Info("review item success",
		zap.String("item_id", itemID),
		zap.String("status", targetStatus),
	)

	return s.GetByID(ctx, companyID, checklistID)
}

// ConvertToEmployee turns a completed checklist into an employee record and
// a linked user account. The conversion row's unique checklist index makes a
// second call fail cleanly instead of creating a duplicate employee.
func (s *service) ConvertToEmployee(ctx context.Context, companyID, actorID, checklistID string) (ConversionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("convert checklist requested",
		zap.String("request_id", rid),
		zap.String("checklist_id", checklistID),
		zap.String("company_id", companyID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConversionResponse{}, preboardingerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("convert checklist begin tx failed", zap.Error(err))
		return ConversionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cl, err := qtx.FindByIDAndCompany(ctx, companyID, checklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConversionResponse{}, preboardingerrors.ErrChecklistNotFound
		}
		return ConversionResponse{}, err
	}
	if ChecklistStatus(cl.Items) != ChecklistStatusCompleted {
		s.logger.Warn("convert checklist not completed",
			zap.String("checklist_id", checklistID),
		)
		return ConversionResponse{}, preboardingerrors.ErrChecklistIncomplete
	}

	nextVal, err := s.counter.GetNextValue(ctx, companyID, "employee_number")
	if err != nil {
		s.logger.Error("convert checklist generate number failed", zap.Error(err))
		return ConversionResponse{}, err
	}

	empl := &employee.Employee{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		DepartmentID:     cl.DepartmentID,
		EmployeeNumber:   fmt.Sprintf("EMP-%06d", nextVal),
		FullName:         cl.CandidateName,
		Email:            cl.CandidateEmail,
		Phone:            cl.CandidatePhone,
		HireDate:         cl.StartDate,
		EmploymentStatus: "ACTIVE",
	}
	if err := s.employeeRepo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("convert checklist create employee failed", zap.Error(err))
		return ConversionResponse{}, err
	}

	tempHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("convert checklist hash temp password failed", zap.Error(err))
		return ConversionResponse{}, err
	}
	account := &user.User{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		EmployeeID:   &empl.ID,
		Email:        cl.CandidateEmail,
		PasswordHash: string(tempHash),
		IsActive:     true,
	}
	if err := s.userRepo.WithTx(tx).Create(ctx, account); err != nil {
		s.logger.Error("convert checklist create user failed", zap.Error(err))
		return ConversionResponse{}, err
	}

	if err := qtx.CreateConversion(ctx, &Conversion{
		ID:          uuid.New(),
		ChecklistID: cl.ID,
		CompanyID:   companyUUID,
		EmployeeID:  empl.ID,
		UserID:      account.ID,
	}); err != nil {
		s.logger.Warn("convert checklist conversion persist failed",
			zap.String("checklist_id", checklistID),
			zap.Error(err),
		)
		return ConversionResponse{}, mapConversionError(err)
	}

	event := events.EmployeeOnboardedEvent{
		EventType:   "employee_onboarded",
		RequestID:   rid,
		ChecklistID: cl.ID.String(),
		EmployeeID:  empl.ID.String(),
		CompanyID:   companyID,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return ConversionResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "preboarding_checklist",
		AggregateID:   cl.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeOnboardedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("convert checklist outbox persist failed", zap.Error(err))
		return ConversionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("convert checklist commit failed", zap.Error(err))
		return ConversionResponse{}, mapConversionError(err)
	}
	s.logger.Info("convert checklist success",
		zap.String("checklist_id", checklistID),
		zap.String("employee_id", empl.ID.String()),
	)

	return ConversionResponse{
		ChecklistID: cl.ID.String(),
		EmployeeID:  empl.ID.String(),
		UserID:      account.ID.String(),
	}, nil
}

func mapToChecklistResponse(cl Checklist) ChecklistResponse {
	resp := ChecklistResponse{
		ID:             cl.ID.String(),
		CompanyID:      cl.CompanyID.String(),
		CandidateName:  cl.CandidateName,
		CandidateEmail: cl.CandidateEmail,
		CandidatePhone: cl.CandidatePhone,
		StartDate:      cl.StartDate.Format("2006-01-02"),
		Status:         ChecklistStatus(cl.Items),
		Items:          make([]ChecklistItemResponse, len(cl.Items)),
	}
	if cl.DepartmentID != nil {
		resp.DepartmentID = cl.DepartmentID.String()
	}
	for i, item := range cl.Items {
		ir := ChecklistItemResponse{
			ID:              item.ID.String(),
			Title:           item.Title,
			SortOrder:       item.SortOrder,
			Status:          item.Status,
			RejectionReason: item.RejectionReason,
		}
		if item.ReviewedBy != nil {
			v := item.ReviewedBy.String()
			ir.ReviewedBy = &v
		}
		if item.ReviewedAt != nil {
			v := item.ReviewedAt.Format(time.RFC3339)
			ir.ReviewedAt = &v
		}
		resp.Items[i] = ir
	}
	return resp
}
