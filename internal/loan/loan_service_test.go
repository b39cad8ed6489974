package loan_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/loan"
	loanerrors "go-hrm/internal/loan/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLoanRepository struct {
	withTxFn                 func(tx *sql.Tx) loan.Repository
	createFn                 func(ctx context.Context, l *loan.LoanApplication) error
	findAllByCompanyFn       func(ctx context.Context, companyID string) ([]loan.LoanApplication, error)
	findByIDAndCompanyFn     func(ctx context.Context, companyID, id string) (*loan.LoanApplication, error)
	updateFn                 func(ctx context.Context, l *loan.LoanApplication) error
	employeeBelongsToCompany func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeLoanRepository) WithTx(tx *sql.Tx) loan.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLoanRepository) Create(ctx context.Context, l *loan.LoanApplication) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLoanRepository) FindAllByCompany(ctx context.Context, companyID string) ([]loan.LoanApplication, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLoanRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*loan.LoanApplication, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeLoanRepository) Update(ctx context.Context, l *loan.LoanApplication) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLoanRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeBelongsToCompany != nil {
		return f.employeeBelongsToCompany(ctx, companyID, employeeID)
	}
	return true, nil
}

type loanServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service loan.Service
	repo    *fakeLoanRepository
}

func setupLoanServiceTest(t *testing.T) *loanServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLoanRepository{}
	svc := loan.NewService(db, repo)

	return &loanServiceDeps{
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

func TestLoanService_Apply(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, l *loan.LoanApplication) error {
			assert.Equal(t, uuid.MustParse(companyID), l.CompanyID)
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.True(t, l.Amount.Equal(decimal.NewFromInt(5000)))
			assert.Equal(t, loan.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Apply(ctx, companyID, actorID, loan.ApplyLoanRequest{
			EmployeeID: employeeID,
			Amount:     5000,
			TermMonths: 12,
			Purpose:    "Laptop purchase",
		})

		assert.NoError(t, err)
		assert.Equal(t, loan.StatusPending, resp.Status)
		assert.Equal(t, 12, resp.TermMonths)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee outside company", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.employeeBelongsToCompany = func(ctx context.Context, cid, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Apply(ctx, companyID, actorID, loan.ApplyLoanRequest{
			EmployeeID: employeeID,
			Amount:     1000,
			TermMonths: 6,
		})
		assert.ErrorIs(t, err, loanerrors.ErrEmployeeNotInCompany)
	})
}

func TestLoanService_Review(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	reviewerID := uuid.New().String()

	pendingApplication := func() *loan.LoanApplication {
		return &loan.LoanApplication{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.New(),
			Amount:     decimal.NewFromInt(8000),
			TermMonths: 10,
			Status:     loan.StatusPending,
		}
	}

	t.Run("approve pending stamps reviewer and defaults approved amount", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*loan.LoanApplication, error) {
			return app, nil
		}

		resp, err := deps.service.Approve(ctx, companyID, reviewerID, app.ID.String(), loan.ApproveLoanRequest{})

		assert.NoError(t, err)
		assert.Equal(t, loan.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ReviewerID)
		assert.Equal(t, reviewerID, *resp.ReviewerID)
		assert.NotNil(t, resp.ReviewedAt)
		assert.NotNil(t, resp.ApprovedAmount)
		assert.Equal(t, float64(8000), *resp.ApprovedAmount)
	})

	t.Run("approve with reduced amount and shorter term", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*loan.LoanApplication, error) {
			return app, nil
		}

		approved := 6000.0
		term := 8
		resp, err := deps.service.Approve(ctx, companyID, reviewerID, app.ID.String(), loan.ApproveLoanRequest{
			ApprovedAmount: &approved,
			TermMonths:     &term,
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(6000), *resp.ApprovedAmount)
		assert.Equal(t, 8, resp.TermMonths)
	})

	t.Run("approve already approved fails", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication()
		app.Status = loan.StatusApproved
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*loan.LoanApplication, error) {
			return app, nil
		}

		_, err := deps.service.Approve(ctx, companyID, reviewerID, app.ID.String(), loan.ApproveLoanRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrInvalidLoanState)
	})

	t.Run("reject already rejected fails", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication()
		app.Status = loan.StatusRejected
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*loan.LoanApplication, error) {
			return app, nil
		}

		_, err := deps.service.Reject(ctx, companyID, reviewerID, app.ID.String(), "insufficient tenure")
		assert.ErrorIs(t, err, loanerrors.ErrInvalidLoanState)
	})

	t.Run("reject requires remarks", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*loan.LoanApplication, error) {
			return app, nil
		}

		_, err := deps.service.Reject(ctx, companyID, reviewerID, app.ID.String(), "")
		assert.ErrorIs(t, err, loanerrors.ErrRemarksRequired)
	})

	t.Run("applicant cannot review own application", func(t *testing.T) {
		deps := setupLoanServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication()
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*loan.LoanApplication, error) {
			return app, nil
		}

		_, err := deps.service.Approve(ctx, companyID, app.EmployeeID.String(), app.ID.String(), loan.ApproveLoanRequest{})
		assert.ErrorIs(t, err, loanerrors.ErrSelfReview)
	})
}
