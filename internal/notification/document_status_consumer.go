package notification

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrm/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DocumentStatusConsumer turns document-request status events into inbox
// rows for the owning user.
type DocumentStatusConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewDocumentStatusConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *DocumentStatusConsumer {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}

	return &DocumentStatusConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.DocumentRequestStatusTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *DocumentStatusConsumer) Start(ctx context.Context) {
	go func() {
		c.logger.Info("document status consumer started")
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.logger.Info("document status consumer stopped")
					return
				}
				c.logger.Error("fetch document status message failed", zap.Error(err))
				continue
			}

			var event events.DocumentRequestStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode document status event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid document status event failed", zap.Error(commitErr))
				}
				continue
			}

			if err := c.service.RecordDocumentStatusChange(ctx, event); err != nil {
				// Redelivered event is safe to skip.
				if isDuplicateNotification(err) {
					c.logger.Warn("notification already recorded for event, skipping",
						zap.String("document_id", event.DocumentID),
						zap.String("status", event.Status),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit duplicate document status event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("record document status notification failed",
					zap.String("document_id", event.DocumentID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit document status event failed", zap.Error(err))
				continue
			}
		}
	}()
}

func (c *DocumentStatusConsumer) Close() error {
	return c.reader.Close()
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notifications_event"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_notifications_event")
}
