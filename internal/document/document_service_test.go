package document_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hrm/internal/document"
	documenterrors "go-hrm/internal/document/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDocumentRepository struct {
	withTxFn                 func(tx *sql.Tx) document.Repository
	createFn                 func(ctx context.Context, d *document.DocumentRequest) error
	findAllByCompanyFn       func(ctx context.Context, companyID string) ([]document.DocumentRequest, error)
	findByIDAndCompanyFn     func(ctx context.Context, companyID, id string) (*document.DocumentRequest, error)
	updateFn                 func(ctx context.Context, d *document.DocumentRequest) error
	employeeBelongsToCompany func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeDocumentRepository) WithTx(tx *sql.Tx) document.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDocumentRepository) Create(ctx context.Context, d *document.DocumentRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDocumentRepository) FindAllByCompany(ctx context.Context, companyID string) ([]document.DocumentRequest, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*document.DocumentRequest, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) Update(ctx context.Context, d *document.DocumentRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDocumentRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeBelongsToCompany != nil {
		return f.employeeBelongsToCompany(ctx, companyID, employeeID)
	}
	return true, nil
}

type fakeUserRepository struct {
	findByEmployeeFn func(ctx context.Context, companyID, employeeID string) (*user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindByEmployee(ctx context.Context, companyID, employeeID string) (*user.User, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
	created  []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type documentServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  document.Service
	repo     *fakeDocumentRepository
	userRepo *fakeUserRepository
	outbox   *fakeOutboxRepository
}

func setupDocumentServiceTest(t *testing.T) *documentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDocumentRepository{}
	userRepo := &fakeUserRepository{}
	outbox := &fakeOutboxRepository{}
	svc := document.NewService(db, repo, userRepo, outbox)

	return &documentServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		userRepo: userRepo,
		outbox:   outbox,
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

func pendingRequest(companyID string) *document.DocumentRequest {
	return &document.DocumentRequest{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		EmployeeID:   uuid.New(),
		DocumentType: "EMPLOYMENT_CERTIFICATE",
		Status:       document.StatusPending,
	}
}

func TestDocumentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("processing always restamps processed_at", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := pendingRequest(companyID)
		earlier := time.Now().UTC().Add(-48 * time.Hour)
		req.Status = document.StatusProcessing
		req.ProcessedAt = &earlier

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*document.DocumentRequest, error) {
			return req, nil
		}

		resp, err := deps.service.UpdateStatus(ctx, companyID, actorID, req.ID.String(), document.UpdateDocumentStatusRequest{
			Status: document.StatusProcessing,
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusProcessing, resp.Status)
		assert.NotNil(t, req.ProcessedAt)
		assert.True(t, req.ProcessedAt.After(earlier))
	})

	t.Run("collected stamps collected_at once", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := pendingRequest(companyID)
		already := time.Now().UTC().Add(-time.Hour)
		req.CollectedAt = &already

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*document.DocumentRequest, error) {
			return req, nil
		}

		_, err := deps.service.UpdateStatus(ctx, companyID, actorID, req.ID.String(), document.UpdateDocumentStatusRequest{
			Status: document.StatusCollected,
		})

		assert.NoError(t, err)
		assert.Equal(t, already, *req.CollectedAt)
	})

	t.Run("admin notes default to existing value", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := pendingRequest(companyID)
		existing := "bring original ID card"
		req.AdminNotes = &existing

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*document.DocumentRequest, error) {
			return req, nil
		}

		resp, err := deps.service.UpdateStatus(ctx, companyID, actorID, req.ID.String(), document.UpdateDocumentStatusRequest{
			Status: document.StatusProcessing,
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.AdminNotes)
		assert.Equal(t, existing, *resp.AdminNotes)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, companyID, actorID, uuid.New().String(), document.UpdateDocumentStatusRequest{
			Status: "ARCHIVED",
		})
		assert.ErrorIs(t, err, documenterrors.ErrInvalidStatus)
	})

	t.Run("outbox event enqueued for linked user", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := pendingRequest(companyID)
		owner := &user.User{ID: uuid.New(), CompanyID: req.CompanyID}

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*document.DocumentRequest, error) {
			return req, nil
		}
		deps.userRepo.findByEmployeeFn = func(ctx context.Context, cid, eid string) (*user.User, error) {
			assert.Equal(t, req.EmployeeID.String(), eid)
			return owner, nil
		}

		_, err := deps.service.UpdateStatus(ctx, companyID, actorID, req.ID.String(), document.UpdateDocumentStatusRequest{
			Status: document.StatusProcessing,
		})

		assert.NoError(t, err)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.DocumentRequestStatusTopic, deps.outbox.created[0].Topic)
		assert.Equal(t, req.ID.String(), deps.outbox.created[0].AggregateID)
	})

	t.Run("no linked user skips outbox", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := pendingRequest(companyID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*document.DocumentRequest, error) {
			return req, nil
		}

		_, err := deps.service.UpdateStatus(ctx, companyID, actorID, req.ID.String(), document.UpdateDocumentStatusRequest{
			Status: document.StatusRejected,
		})

		assert.NoError(t, err)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("enqueue failure never surfaces", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := pendingRequest(companyID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*document.DocumentRequest, error) {
			return req, nil
		}
		deps.userRepo.findByEmployeeFn = func(ctx context.Context, cid, eid string) (*user.User, error) {
			return &user.User{ID: uuid.New()}, nil
		}
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return errors.New("outbox unavailable")
		}

		resp, err := deps.service.UpdateStatus(ctx, companyID, actorID, req.ID.String(), document.UpdateDocumentStatusRequest{
			Status: document.StatusProcessing,
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusProcessing, resp.Status)
	})
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, d *document.DocumentRequest) error {
			assert.Equal(t, uuid.MustParse(companyID), d.CompanyID)
			assert.Equal(t, document.StatusPending, d.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, document.CreateDocumentRequestRequest{
			EmployeeID:   employeeID,
			DocumentType: "PAYSLIP",
			Reason:       "Visa application",
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee outside company", func(t *testing.T) {
		deps := setupDocumentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.employeeBelongsToCompany = func(ctx context.Context, cid, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, document.CreateDocumentRequestRequest{
			EmployeeID:   employeeID,
			DocumentType: "PAYSLIP",
		})
		assert.ErrorIs(t, err, documenterrors.ErrEmployeeNotInCompany)
	})
}
