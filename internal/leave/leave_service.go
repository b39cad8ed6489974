package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveApplicationRequest) (LeaveApplicationResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveApplicationResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveApplicationResponse, error)
	Calendar(ctx context.Context, companyID string, q CalendarQuery) ([]LeaveApplicationResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (LeaveApplicationResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveApplicationResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveApplicationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveApplicationRequest) (LeaveApplicationResponse, error) {
	s.logger.Debug("create leave application requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave application begin tx failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}

	ref, err := qtx.FindEmployeeRef(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave application employee lookup failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	if ref == nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	// The employee's department is denormalized onto the application so the
	// calendar's department filter matches without joining employees.
	l := &LeaveApplication{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		EmployeeID:   employeeUUID,
		DepartmentID: ref.DepartmentID,
		LeaveType:    req.LeaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalDays:    totalDays,
		Reason:       req.Reason,
		Status:       StatusPending,
		CreatedBy:    actorUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave application persist failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave application commit failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	s.logger.Info("create leave application success",
		zap.String("application_id", l.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveApplicationResponse, error) {
	apps, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(apps), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveApplicationResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Calendar returns the applications overlapping the requested month,
// ordered by start date. Approved applications always show; pending ones
// only when asked for.
func (s *service) Calendar(ctx context.Context, companyID string, q CalendarQuery) ([]LeaveApplicationResponse, error) {
	if q.Month < 1 || q.Month > 12 {
		return nil, leaveerrors.ErrInvalidCalendarMonth
	}

	monthStart, monthEnd := MonthBounds(q.Year, time.Month(q.Month))

	statuses := []string{StatusApproved}
	if q.ShowPending {
		statuses = append(statuses, StatusPending)
	}

	apps, err := s.repo.FindOverlappingRange(ctx, companyID, monthStart, monthEnd, statuses, q.EmployeeID, q.DepartmentID)
	if err != nil {
		s.logger.Error("calendar query failed",
			zap.String("company_id", companyID),
			zap.Int("year", q.Year),
			zap.Int("month", q.Month),
			zap.Error(err),
		)
		return nil, err
	}

	return mapToListResponse(apps), nil
}

// MonthBounds returns the first and last calendar day of a month.
// time.Date normalizes overflow, so December rolls into January correctly.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (LeaveApplicationResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveApplicationResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusRejected, &rejectionReason)
}

// review moves a pending application to a terminal decision with reviewer
// attribution. Approved and rejected applications never transition again.
func (s *service) review(ctx context.Context, companyID, actorID, id, targetStatus string, rejectionReason *string) (LeaveApplicationResponse, error) {
	s.logger.Debug("review leave application requested",
		zap.String("application_id", id),
		zap.String("company_id", companyID),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave application begin tx failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err = uuid.Parse(companyID); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave application not pending",
			zap.String("application_id", id),
			zap.String("status", l.Status),
		)
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = targetStatus
	now := time.Now().UTC()
	l.ReviewedBy = &actorUUID
	l.ReviewedAt = &now
	if targetStatus == StatusRejected {
		if rejectionReason == nil || *rejectionReason == "" {
			return LeaveApplicationResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.RejectionReason = rejectionReason
	} else {
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review leave application persist failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return LeaveApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave application commit failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	s.logger.Info("review leave application success",
		zap.String("application_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveApplicationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if l.EmployeeID.String() != actorID && l.CreatedBy.String() != actorID {
		return LeaveApplicationResponse{}, leaveerrors.ErrCancelNotAllowed
	}

	l.Status = StatusCanceled
	if err := qtx.Update(ctx, l); err != nil {
		return LeaveApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveApplicationResponse{}, err
	}
	return mapToResponse(*l), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveApplication) LeaveApplicationResponse {
	resp := LeaveApplicationResponse{
		ID:         l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if l.DepartmentID != nil {
		v := l.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(apps []LeaveApplication) []LeaveApplicationResponse {
	resp := make([]LeaveApplicationResponse, len(apps))
	for i, l := range apps {
		resp[i] = mapToResponse(l)
	}
	return resp
}
