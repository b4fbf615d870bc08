package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studora/studora-backend/internal/domain/user"
)

const (
	TypeCourseUpdated = "course_updated"
	TypeDraftApproved = "draft_approved"
	TypeDraftRejected = "draft_rejected"
)

// Notification is a persisted in-app notification. Realtime delivery
// (SSE/mail) rides alongside; the row is the durable record.
type Notification struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Type     string         `gorm:"column:type;not null;index" json:"type"`
	Title    string         `gorm:"column:title;not null" json:"title"`
	Body     string         `gorm:"column:body;type:text" json:"body"`
	LinkPath string         `gorm:"column:link_path" json:"link_path,omitempty"`
	Payload  datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload,omitempty"`
	Read     bool           `gorm:"column:read;not null;default:false;index" json:"read"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Notification) TableName() string { return "notification" }
