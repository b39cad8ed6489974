package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/leave"
	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, l *leave.LeaveApplication) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]leave.LeaveApplication, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error)
	updateFn               func(ctx context.Context, l *leave.LeaveApplication) error
	deleteFn               func(ctx context.Context, companyID, id string) error
	findEmployeeRefFn      func(ctx context.Context, companyID, employeeID string) (*leave.EmployeeRef, error)
	findOverlappingRangeFn func(ctx context.Context, companyID string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]leave.LeaveApplication, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveApplication) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leave.LeaveApplication, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveApplication) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeLeaveRepository) FindEmployeeRef(ctx context.Context, companyID, employeeID string) (*leave.EmployeeRef, error) {
	if f.findEmployeeRefFn != nil {
		return f.findEmployeeRefFn(ctx, companyID, employeeID)
	}
	return &leave.EmployeeRef{ID: uuid.New()}, nil
}

func (f *fakeLeaveRepository) FindOverlappingRange(ctx context.Context, companyID string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]leave.LeaveApplication, error) {
	if f.findOverlappingRangeFn != nil {
		return f.findOverlappingRangeFn(ctx, companyID, rangeStart, rangeEnd, statuses, employeeID, departmentID)
	}
	return nil, nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leave.NewService(db, repo)

	return &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestMonthBounds(t *testing.T) {
	t.Run("regular month", func(t *testing.T) {
		start, end := leave.MonthBounds(2026, time.March)
		assert.Equal(t, "2026-03-01", start.Format("2006-01-02"))
		assert.Equal(t, "2026-03-31", end.Format("2006-01-02"))
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		start, end := leave.MonthBounds(2026, time.December)
		assert.Equal(t, "2026-12-01", start.Format("2006-01-02"))
		assert.Equal(t, "2026-12-31", end.Format("2006-01-02"))
	})

	t.Run("february leap year", func(t *testing.T) {
		_, end := leave.MonthBounds(2028, time.February)
		assert.Equal(t, "2028-02-29", end.Format("2006-01-02"))
	})
}

func TestLeaveService_Calendar(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("passes month bounds and approved-only statuses", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOverlappingRangeFn = func(ctx context.Context, cid string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]leave.LeaveApplication, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, "2026-12-01", rangeStart.Format("2006-01-02"))
			assert.Equal(t, "2026-12-31", rangeEnd.Format("2006-01-02"))
			assert.Equal(t, []string{leave.StatusApproved}, statuses)
			assert.Nil(t, employeeID)
			assert.Nil(t, departmentID)
			return nil, nil
		}

		_, err := deps.service.Calendar(ctx, companyID, leave.CalendarQuery{Year: 2026, Month: 12})
		assert.NoError(t, err)
	})

	t.Run("show_pending widens status filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOverlappingRangeFn = func(ctx context.Context, cid string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]leave.LeaveApplication, error) {
			assert.ElementsMatch(t, []string{leave.StatusApproved, leave.StatusPending}, statuses)
			return nil, nil
		}

		_, err := deps.service.Calendar(ctx, companyID, leave.CalendarQuery{Year: 2026, Month: 7, ShowPending: true})
		assert.NoError(t, err)
	})

	t.Run("employee and department filters forwarded", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		empID := uuid.New().String()
		deptID := uuid.New().String()

		deps.repo.findOverlappingRangeFn = func(ctx context.Context, cid string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]leave.LeaveApplication, error) {
			assert.NotNil(t, employeeID)
			assert.Equal(t, empID, *employeeID)
			assert.NotNil(t, departmentID)
			assert.Equal(t, deptID, *departmentID)
			return nil, nil
		}

		_, err := deps.service.Calendar(ctx, companyID, leave.CalendarQuery{
			Year: 2026, Month: 2, EmployeeID: &empID, DepartmentID: &deptID,
		})
		assert.NoError(t, err)
	})

	t.Run("month out of range rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Calendar(ctx, companyID, leave.CalendarQuery{Year: 2026, Month: 13})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidCalendarMonth)
	})

	t.Run("application spanning the whole month is returned", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		spanning := leave.LeaveApplication{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.New(),
			StartDate:  time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			Status:     leave.StatusApproved,
			CreatedBy:  uuid.New(),
		}

		deps.repo.findOverlappingRangeFn = func(ctx context.Context, cid string, rangeStart, rangeEnd time.Time, statuses []string, employeeID, departmentID *string) ([]leave.LeaveApplication, error) {
			// The repository contract is start <= rangeEnd && end >= rangeStart;
			// verify the spanning interval satisfies it for June.
			assert.True(t, !spanning.StartDate.After(rangeEnd))
			assert.True(t, !spanning.EndDate.Before(rangeStart))
			return []leave.LeaveApplication{spanning}, nil
		}

		resp, err := deps.service.Calendar(ctx, companyID, leave.CalendarQuery{Year: 2026, Month: 6})
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, spanning.ID.String(), resp[0].ID)
	})
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveApplicationRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-03",
			Reason:     "Family event",
		}

		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			assert.Equal(t, uuid.MustParse(companyID), l.CompanyID)
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative start after end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveApplicationRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-05",
			EndDate:    "2026-03-01",
		}

		_, err := deps.service.Create(ctx, companyID, actorID, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("copies department from the employee record", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deptID := uuid.New()
		deps.repo.findEmployeeRefFn = func(ctx context.Context, cid, eid string) (*leave.EmployeeRef, error) {
			assert.Equal(t, employeeID, eid)
			return &leave.EmployeeRef{ID: uuid.MustParse(employeeID), DepartmentID: &deptID}, nil
		}

		var created *leave.LeaveApplication
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			created = l
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveApplicationRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-06-01",
			EndDate:    "2026-06-02",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created.DepartmentID)
		assert.Equal(t, deptID, *created.DepartmentID)
		assert.NotNil(t, resp.DepartmentID)
		assert.Equal(t, deptID.String(), *resp.DepartmentID)
	})

	t.Run("employee without department leaves it empty", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findEmployeeRefFn = func(ctx context.Context, cid, eid string) (*leave.EmployeeRef, error) {
			return &leave.EmployeeRef{ID: uuid.MustParse(employeeID)}, nil
		}

		var created *leave.LeaveApplication
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			created = l
			return nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveApplicationRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-06-01",
			EndDate:    "2026-06-02",
		})

		assert.NoError(t, err)
		assert.Nil(t, created.DepartmentID)
	})

	t.Run("negative employee outside company", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findEmployeeRefFn = func(ctx context.Context, cid, eid string) (*leave.EmployeeRef, error) {
			return nil, nil
		}

		req := leave.CreateLeaveApplicationRequest{
			EmployeeID: employeeID,
			LeaveType:  "SICK",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-02",
		}

		_, err := deps.service.Create(ctx, companyID, actorID, req)
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
	})
}

func TestLeaveService_Review(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	pendingApplication := func() *leave.LeaveApplication {
		return &leave.LeaveApplication{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.New(),
			StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
			Status:     leave.StatusPending,
			CreatedBy:  uuid.New(),
		}
	}

	t.Run("approve pending stamps reviewer", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		resp, err := deps.service.Approve(ctx, companyID, actorID, app.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, actorID, *resp.ReviewedBy)
		assert.NotNil(t, resp.ReviewedAt)
	})

	t.Run("approve already approved fails", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication()
		app.Status = leave.StatusApproved
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, app.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("reject requires reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.Reject(ctx, companyID, actorID, app.ID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("reject pending stores reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		resp, err := deps.service.Reject(ctx, companyID, actorID, app.ID.String(), "overlapping project deadline")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "overlapping project deadline", *resp.RejectionReason)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("owner cancels pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		owner := uuid.New()
		app := &leave.LeaveApplication{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: owner,
			Status:     leave.StatusPending,
			CreatedBy:  owner,
		}
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		resp, err := deps.service.Cancel(ctx, companyID, owner.String(), app.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCanceled, resp.Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := &leave.LeaveApplication{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.New(),
			Status:     leave.StatusPending,
			CreatedBy:  uuid.New(),
		}
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.Cancel(ctx, companyID, uuid.New().String(), app.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrCancelNotAllowed)
	})
}
