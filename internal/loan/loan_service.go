package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	loanerrors "go-hrm/internal/loan/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, companyID, actorID string, req ApplyLoanRequest) (LoanApplicationResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LoanApplicationResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LoanApplicationResponse, error)
	Approve(ctx context.Context, companyID, reviewerID, id string, req ApproveLoanRequest) (LoanApplicationResponse, error)
	Reject(ctx context.Context, companyID, reviewerID, id, remarks string) (LoanApplicationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Apply(ctx context.Context, companyID, actorID string, req ApplyLoanRequest) (LoanApplicationResponse, error) {
	s.logger.Debug("apply loan requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply loan begin tx failed", zap.Error(err))
		return LoanApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LoanApplicationResponse{}, loanerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanApplicationResponse{}, loanerrors.ErrInvalidEmployeeID
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("apply loan company check failed", zap.Error(err))
		return LoanApplicationResponse{}, err
	}
	if !belongs {
		return LoanApplicationResponse{}, loanerrors.ErrEmployeeNotInCompany
	}

	l := &LoanApplication{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Amount:     decimal.NewFromFloat(req.Amount),
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply loan persist failed", zap.Error(err))
		return LoanApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply loan commit failed", zap.Error(err))
		return LoanApplicationResponse{}, err
	}
	s.logger.Info("apply loan success",
		zap.String("application_id", l.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LoanApplicationResponse, error) {
	apps, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]LoanApplicationResponse, len(apps))
	for i, l := range apps {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LoanApplicationResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanApplicationResponse{}, loanerrors.ErrApplicationNotFound
		}
		return LoanApplicationResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Approve moves a pending application to its terminal approved state.
// Approved and rejected applications never transition again.
func (s *service) Approve(ctx context.Context, companyID, reviewerID, id string, req ApproveLoanRequest) (LoanApplicationResponse, error) {
	return s.review(ctx, companyID, reviewerID, id, StatusApproved, &req, nil)
}

func (s *service) Reject(ctx context.Context, companyID, reviewerID, id, remarks string) (LoanApplicationResponse, error) {
	return s.review(ctx, companyID, reviewerID, id, StatusRejected, nil, &remarks)
}

func (s *service) review(
	ctx context.Context,
	companyID, reviewerID, id, targetStatus string,
	approval *ApproveLoanRequest,
	remarks *string,
) (LoanApplicationResponse, error) {
	s.logger.Debug("review loan requested",
		zap.String("application_id", id),
		zap.String("company_id", companyID),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review loan begin tx failed", zap.Error(err))
		return LoanApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err = uuid.Parse(companyID); err != nil {
		return LoanApplicationResponse{}, loanerrors.ErrInvalidCompanyID
	}
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LoanApplicationResponse{}, loanerrors.ErrInvalidReviewerID
	}

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanApplicationResponse{}, loanerrors.ErrApplicationNotFound
		}
		return LoanApplicationResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review loan not pending",
			zap.String("application_id", id),
			zap.String("status", l.Status),
		)
		return LoanApplicationResponse{}, loanerrors.ErrInvalidLoanState
	}
	if l.EmployeeID == reviewerUUID {
		return LoanApplicationResponse{}, loanerrors.ErrSelfReview
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.ReviewerID = &reviewerUUID
	l.ReviewedAt = &now

	switch targetStatus {
	case StatusApproved:
		approved := l.Amount
		if approval != nil && approval.ApprovedAmount != nil {
			approved = decimal.NewFromFloat(*approval.ApprovedAmount)
		}
		l.ApprovedAmount = &approved
		if approval != nil && approval.TermMonths != nil {
			l.TermMonths = *approval.TermMonths
		}
		if approval != nil {
			l.Remarks = approval.Remarks
		}
	case StatusRejected:
		if remarks == nil || *remarks == "" {
			return LoanApplicationResponse{}, loanerrors.ErrRemarksRequired
		}
		l.Remarks = remarks
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review loan persist failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return LoanApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review loan commit failed", zap.Error(err))
		return LoanApplicationResponse{}, err
	}
	s.logger.Info("review loan success",
		zap.String("application_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func mapToResponse(l LoanApplication) LoanApplicationResponse {
	resp := LoanApplicationResponse{
		ID:         l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		Amount:     l.Amount.InexactFloat64(),
		TermMonths: l.TermMonths,
		Purpose:    l.Purpose,
		Status:     l.Status,
	}
	if l.ApprovedAmount != nil {
		v := l.ApprovedAmount.InexactFloat64()
		resp.ApprovedAmount = &v
	}
	if l.ReviewerID != nil {
		v := l.ReviewerID.String()
		resp.ReviewerID = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.Remarks = l.Remarks
	return resp
}
