package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`

	Kind    string `gorm:"type:varchar(50);not null"`
	Title   string `gorm:"type:varchar(255);not null"`
	Body    string `gorm:"type:text"`
	ReadAt  *time.Time
	EventID *string `gorm:"type:varchar(64);uniqueIndex:uq_notifications_event"`

	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
