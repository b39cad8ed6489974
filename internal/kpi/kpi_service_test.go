package kpi_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-hrm/internal/kpi"
	kpierrors "go-hrm/internal/kpi/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeKpiRepository struct {
	withTxFn                       func(tx *sql.Tx) kpi.Repository
	participantExistsFn            func(ctx context.Context, companyID, participantID string) (bool, error)
	createAssignmentFn             func(ctx context.Context, a *kpi.KpiAssignment) error
	findAssignmentByIDFn           func(ctx context.Context, companyID, id string) (*kpi.KpiAssignment, error)
	findAssignmentsByParticipantFn func(ctx context.Context, companyID, participantID string) ([]kpi.KpiAssignment, error)
	updateAssignmentFn             func(ctx context.Context, a *kpi.KpiAssignment) error
}

func (f *fakeKpiRepository) WithTx(tx *sql.Tx) kpi.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeKpiRepository) ParticipantExists(ctx context.Context, companyID, participantID string) (bool, error) {
	if f.participantExistsFn != nil {
		return f.participantExistsFn(ctx, companyID, participantID)
	}
	return true, nil
}

func (f *fakeKpiRepository) CreateAssignment(ctx context.Context, a *kpi.KpiAssignment) error {
	if f.createAssignmentFn != nil {
		return f.createAssignmentFn(ctx, a)
	}
	return nil
}

func (f *fakeKpiRepository) FindAssignmentByID(ctx context.Context, companyID, id string) (*kpi.KpiAssignment, error) {
	if f.findAssignmentByIDFn != nil {
		return f.findAssignmentByIDFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeKpiRepository) FindAssignmentsByParticipant(ctx context.Context, companyID, participantID string) ([]kpi.KpiAssignment, error) {
	if f.findAssignmentsByParticipantFn != nil {
		return f.findAssignmentsByParticipantFn(ctx, companyID, participantID)
	}
	return nil, nil
}

func (f *fakeKpiRepository) UpdateAssignment(ctx context.Context, a *kpi.KpiAssignment) error {
	if f.updateAssignmentFn != nil {
		return f.updateAssignmentFn(ctx, a)
	}
	return nil
}

type kpiServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service kpi.Service
	repo    *fakeKpiRepository
}

func setupKpiServiceTest(t *testing.T) *kpiServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeKpiRepository{}
	svc := kpi.NewService(db, repo, nil)

	return &kpiServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func TestKpiService_ParticipantSummary(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	participantID := uuid.New().String()
	participantUUID := uuid.MustParse(participantID)

	t.Run("summary over mixed assignments", func(t *testing.T) {
		deps := setupKpiServiceTest(t)
		defer deps.db.Close()

		a80 := decimal.NewFromInt(80)
		a100 := decimal.NewFromInt(100)
		deps.repo.findAssignmentsByParticipantFn = func(ctx context.Context, cid, pid string) ([]kpi.KpiAssignment, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, participantID, pid)
			return []kpi.KpiAssignment{
				{ID: uuid.New(), ParticipantID: participantUUID, Weight: decimal.NewFromInt(2), AchievementPercentage: &a80, Status: kpi.StatusCompleted},
				{ID: uuid.New(), ParticipantID: participantUUID, Weight: decimal.NewFromInt(3), AchievementPercentage: &a100, Status: kpi.StatusCompleted},
				{ID: uuid.New(), ParticipantID: participantUUID, Weight: decimal.NewFromInt(1), Status: kpi.StatusPending},
			}, nil
		}

		resp, err := deps.service.ParticipantSummary(ctx, companyID, participantID)

		assert.NoError(t, err)
		assert.Equal(t, participantID, resp.ParticipantID)
		assert.Len(t, resp.Kpis, 3)
		assert.Equal(t, 92.0, resp.Summary.WeightedAverageAchievement)
		assert.Equal(t, 6.0, resp.Summary.TotalWeight)
		assert.Equal(t, 1, resp.Summary.PendingKpis)
	})

	t.Run("unknown participant", func(t *testing.T) {
		deps := setupKpiServiceTest(t)
		defer deps.db.Close()

		deps.repo.participantExistsFn = func(ctx context.Context, cid, pid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.ParticipantSummary(ctx, companyID, participantID)
		assert.ErrorIs(t, err, kpierrors.ErrParticipantNotFound)
	})

	t.Run("cached summary served without repo hit", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeKpiRepository{
			findAssignmentsByParticipantFn: func(ctx context.Context, cid, pid string) ([]kpi.KpiAssignment, error) {
				t.Fatal("repository must not be hit on cache hit")
				return nil, nil
			},
		}
		svc := kpi.NewService(db, repo, rdb)

		cached := kpi.ParticipantSummaryResponse{
			ParticipantID: participantID,
			Summary:       kpi.ParticipantSummary{TotalKpis: 2, WeightedAverageAchievement: 75},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet("kpi:summary:" + companyID + ":" + participantID).SetVal(string(payload))

		resp, err := svc.ParticipantSummary(ctx, companyID, participantID)

		assert.NoError(t, err)
		assert.Equal(t, 75.0, resp.Summary.WeightedAverageAchievement)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestKpiService_RecordProgress(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("records achievement and status", func(t *testing.T) {
		deps := setupKpiServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		assignment := &kpi.KpiAssignment{
			ID:            uuid.New(),
			CompanyID:     uuid.MustParse(companyID),
			ParticipantID: uuid.New(),
			Weight:        decimal.NewFromInt(2),
			Status:        kpi.StatusPending,
		}
		deps.repo.findAssignmentByIDFn = func(ctx context.Context, cid, id string) (*kpi.KpiAssignment, error) {
			return assignment, nil
		}

		var saved *kpi.KpiAssignment
		deps.repo.updateAssignmentFn = func(ctx context.Context, a *kpi.KpiAssignment) error {
			saved = a
			return nil
		}

		resp, err := deps.service.RecordProgress(ctx, companyID, assignment.ID.String(), kpi.RecordProgressRequest{
			AchievementPercentage: 85,
			Status:                kpi.StatusCompleted,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.NotNil(t, saved.AchievementPercentage)
		assert.True(t, saved.AchievementPercentage.Equal(decimal.NewFromInt(85)))
		assert.Equal(t, kpi.StatusCompleted, resp.Status)
		assert.NotNil(t, resp.AchievementPercentage)
		assert.Equal(t, 85.0, *resp.AchievementPercentage)
	})
}

func TestKpiService_Assign(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	participantID := uuid.New().String()

	t.Run("creates pending assignment", func(t *testing.T) {
		deps := setupKpiServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.createAssignmentFn = func(ctx context.Context, a *kpi.KpiAssignment) error {
			assert.Equal(t, kpi.StatusPending, a.Status)
			assert.True(t, a.Weight.Equal(decimal.NewFromFloat(2.5)))
			assert.Nil(t, a.AchievementPercentage)
			return nil
		}

		resp, err := deps.service.Assign(ctx, companyID, kpi.AssignKpiRequest{
			ParticipantID: participantID,
			Title:         "Close Q3 hiring plan",
			Weight:        2.5,
		})

		assert.NoError(t, err)
		assert.Equal(t, kpi.StatusPending, resp.Status)
	})

	t.Run("unknown participant rejected", func(t *testing.T) {
		deps := setupKpiServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.participantExistsFn = func(ctx context.Context, cid, pid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Assign(ctx, companyID, kpi.AssignKpiRequest{
			ParticipantID: participantID,
			Title:         "Anything",
			Weight:        1,
		})
		assert.ErrorIs(t, err, kpierrors.ErrParticipantNotFound)
	})
}
