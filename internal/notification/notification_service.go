package notification

import (
	"context"
	"fmt"
	"time"

	"go-hrm/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const KindDocumentRequestStatus = "document_request_status"

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	RecordDocumentStatusChange(ctx context.Context, event events.DocumentRequestStatusChangedEvent) error
	ListForUser(ctx context.Context, companyID, userID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, companyID, userID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

// RecordDocumentStatusChange writes the inbox row for a consumed status
// event. The event id unique index makes redelivery a no-op upstream.
func (s *service) RecordDocumentStatusChange(ctx context.Context, event events.DocumentRequestStatusChangedEvent) error {
	companyUUID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return fmt.Errorf("invalid company id in event: %w", err)
	}
	userUUID, err := uuid.Parse(event.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id in event: %w", err)
	}

	body := fmt.Sprintf("Your %s request is now %s.", event.DocumentType, event.Status)
	if event.AdminNotes != "" {
		body = fmt.Sprintf("%s Notes: %s", body, event.AdminNotes)
	}

	eventID := event.DocumentID + ":" + event.Status
	n := &Notification{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		UserID:    userUUID,
		Kind:      KindDocumentRequestStatus,
		Title:     "Document request update",
		Body:      body,
		EventID:   &eventID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("document status notification recorded",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", event.UserID),
		zap.String("status", event.Status),
	)
	return nil
}

func (s *service) ListForUser(ctx context.Context, companyID, userID string) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByUser(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		nr := NotificationResponse{
			ID:        n.ID.String(),
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.ReadAt != nil {
			v := n.ReadAt.Format(time.RFC3339)
			nr.ReadAt = &v
		}
		resp[i] = nr
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, companyID, userID, id string) error {
	return s.repo.MarkRead(ctx, companyID, userID, id)
}
