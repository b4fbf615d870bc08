package enrollment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/domain/user"
)

// Enrollment is a learner's membership in a course. It drives both the
// notification fan-out and whose progress gets invalidated on publish.
type Enrollment struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	User     *user.User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	Course   *catalog.Course `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	EnrolledAt time.Time      `gorm:"column:enrolled_at;not null;default:now()" json:"enrolled_at"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Enrollment) TableName() string { return "enrollment" }

// SectionProgress stores a learner's completion fraction (0..1) for
// one course section, recomputed from lesson completions.
type SectionProgress struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_user_section,unique" json:"user_id"`
	User      *user.User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SectionID uuid.UUID        `gorm:"type:uuid;not null;index:idx_user_section,unique" json:"section_id"`
	Section   *catalog.Section `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	CourseID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"course_id"`

	Progress float64 `gorm:"column:progress;not null;default:0" json:"progress"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SectionProgress) TableName() string { return "user_course_section" }

// LessonCompletion marks one lesson done for one learner. It is the
// authoritative input for progress recomputation.
type LessonCompletion struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"user_id"`
	User     *user.User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LessonID uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"lesson_id"`
	Lesson   *catalog.Lesson `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`

	CompletedAt time.Time `gorm:"column:completed_at;not null;default:now()" json:"completed_at"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LessonCompletion) TableName() string { return "lesson_completion" }
