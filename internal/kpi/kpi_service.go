package kpi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	kpierrors "go-hrm/internal/kpi/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	summaryKeyPrefix = "kpi:summary:"
	summaryCacheTTL  = 5 * time.Minute
)

func summaryCacheKey(companyID, participantID string) string {
	return summaryKeyPrefix + companyID + ":" + participantID
}

//go:generate mockgen -source=kpi_service.go -destination=mock/kpi_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, companyID string, req AssignKpiRequest) (KpiAssignmentResponse, error)
	RecordProgress(ctx context.Context, companyID, assignmentID string, req RecordProgressRequest) (KpiAssignmentResponse, error)
	ParticipantSummary(ctx context.Context, companyID, participantID string) (ParticipantSummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("kpi.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kpi.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Assign(ctx context.Context, companyID string, req AssignKpiRequest) (KpiAssignmentResponse, error) {
	s.logger.Debug("assign kpi requested",
		zap.String("company_id", companyID),
		zap.String("participant_id", req.ParticipantID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign kpi begin tx failed", zap.Error(err))
		return KpiAssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return KpiAssignmentResponse{}, kpierrors.ErrInvalidCompanyID
	}
	participantUUID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return KpiAssignmentResponse{}, kpierrors.ErrInvalidParticipantID
	}

	weight := decimal.NewFromFloat(req.Weight)
	if !weight.IsPositive() {
		return KpiAssignmentResponse{}, kpierrors.ErrInvalidWeight
	}

	exists, err := qtx.ParticipantExists(ctx, companyID, req.ParticipantID)
	if err != nil {
		s.logger.Error("assign kpi participant lookup failed", zap.Error(err))
		return KpiAssignmentResponse{}, err
	}
	if !exists {
		return KpiAssignmentResponse{}, kpierrors.ErrParticipantNotFound
	}

	a := &KpiAssignment{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		ParticipantID: participantUUID,
		Title:         req.Title,
		Weight:        weight,
		Status:        StatusPending,
	}

	if err := qtx.CreateAssignment(ctx, a); err != nil {
		s.logger.Error("assign kpi persist failed", zap.Error(err))
		return KpiAssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign kpi commit failed", zap.Error(err))
		return KpiAssignmentResponse{}, err
	}

	s.invalidateSummary(ctx, companyID, req.ParticipantID)
	s.logger.Info("assign kpi success",
		zap.String("assignment_id", a.ID.String()),
		zap.String("participant_id", req.ParticipantID),
	)

	return mapAssignmentToResponse(*a), nil
}

func (s *service) RecordProgress(ctx context.Context, companyID, assignmentID string, req RecordProgressRequest) (KpiAssignmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record kpi progress begin tx failed", zap.Error(err))
		return KpiAssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindAssignmentByID(ctx, companyID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KpiAssignmentResponse{}, kpierrors.ErrAssignmentNotFound
		}
		return KpiAssignmentResponse{}, err
	}

	achievement := decimal.NewFromFloat(req.AchievementPercentage)
	a.AchievementPercentage = &achievement
	a.Status = req.Status

	if err := qtx.UpdateAssignment(ctx, a); err != nil {
		s.logger.Error("record kpi progress persist failed",
			zap.String("assignment_id", assignmentID),
			zap.Error(err),
		)
		return KpiAssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("record kpi progress commit failed", zap.Error(err))
		return KpiAssignmentResponse{}, err
	}

	s.invalidateSummary(ctx, companyID, a.ParticipantID.String())
	s.logger.Info("record kpi progress success",
		zap.String("assignment_id", assignmentID),
		zap.String("status", req.Status),
	)

	return mapAssignmentToResponse(*a), nil
}

// ParticipantSummary serves the roll-up from cache when possible;
// singleflight collapses concurrent misses into one database read.
func (s *service) ParticipantSummary(ctx context.Context, companyID, participantID string) (ParticipantSummaryResponse, error) {
	if _, err := uuid.Parse(participantID); err != nil {
		return ParticipantSummaryResponse{}, kpierrors.ErrInvalidParticipantID
	}

	key := summaryCacheKey(companyID, participantID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp ParticipantSummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.loadSummary(ctx, companyID, participantID)
	})
	if err != nil {
		return ParticipantSummaryResponse{}, err
	}

	resp := v.(ParticipantSummaryResponse)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, payload, summaryCacheTTL).Err(); err != nil {
				s.logger.Warn("cache participant summary failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) loadSummary(ctx context.Context, companyID, participantID string) (ParticipantSummaryResponse, error) {
	exists, err := s.repo.ParticipantExists(ctx, companyID, participantID)
	if err != nil {
		return ParticipantSummaryResponse{}, err
	}
	if !exists {
		return ParticipantSummaryResponse{}, kpierrors.ErrParticipantNotFound
	}

	assignments, err := s.repo.FindAssignmentsByParticipant(ctx, companyID, participantID)
	if err != nil {
		s.logger.Error("load participant assignments failed",
			zap.String("participant_id", participantID),
			zap.Error(err),
		)
		return ParticipantSummaryResponse{}, err
	}

	resp := ParticipantSummaryResponse{
		ParticipantID: participantID,
		Kpis:          make([]KpiAssignmentResponse, len(assignments)),
		Summary:       ComputeSummary(assignments),
	}
	for i, a := range assignments {
		resp.Kpis[i] = mapAssignmentToResponse(a)
	}

	return resp, nil
}

func (s *service) invalidateSummary(ctx context.Context, companyID, participantID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, summaryCacheKey(companyID, participantID)).Err(); err != nil {
		s.logger.Warn("invalidate participant summary cache failed",
			zap.String("participant_id", participantID),
			zap.Error(err),
		)
	}
}

func mapAssignmentToResponse(a KpiAssignment) KpiAssignmentResponse {
	resp := KpiAssignmentResponse{
		ID:            a.ID.String(),
		ParticipantID: a.ParticipantID.String(),
		Title:         a.Title,
		Weight:        a.Weight.InexactFloat64(),
		Status:        a.Status,
	}
	if a.AchievementPercentage != nil {
		v := a.AchievementPercentage.InexactFloat64()
		resp.AchievementPercentage = &v
	}
	return resp
}
