package catalog

import (
	"time"

	"github.com/google/uuid"
)

type DraftStatus string

const (
	DraftStatusEditing       DraftStatus = "editing"
	DraftStatusPendingReview DraftStatus = "pending_review"
	DraftStatusRejected      DraftStatus = "rejected"
)

// CourseDraft is a tutor's proposed edit of a published course: a
// shadow copy of the course metadata and curriculum. At most one open
// draft (editing or pending_review) exists per course.
//
// Draft sub-nodes carry a nullable back-reference to the live node
// they were copied from. Nil means newly added; non-nil must resolve
// to a live node owned by the same course. Quiz questions/options do
// not carry back-references: quiz content is compared and replaced
// wholesale per lesson.
type CourseDraft struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_course_open_draft,where:status <> 'rejected'" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	TutorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`

	CategoryID       *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`
	Title            string     `gorm:"column:title;not null" json:"title"`
	ShortDescription string     `gorm:"column:short_description" json:"short_description"`
	Description      string     `gorm:"column:description;type:text" json:"description"`
	Requirement      string     `gorm:"column:requirement;type:text" json:"requirement"`
	PriceCents       int64      `gorm:"column:price_cents;not null;default:0" json:"price_cents"`
	DurationMinutes  int        `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	Language         string     `gorm:"column:language" json:"language"`
	Level            string     `gorm:"column:level" json:"level"`

	Status     DraftStatus `gorm:"column:status;not null;default:'editing';index" json:"status"`
	ReviewNote string      `gorm:"column:review_note;type:text" json:"review_note,omitempty"`

	Sections []*SectionDraft `gorm:"foreignKey:DraftID" json:"sections,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CourseDraft) TableName() string { return "course_draft" }

type SectionDraft struct {
	ID                uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DraftID           uuid.UUID    `gorm:"type:uuid;not null;index" json:"draft_id"`
	Draft             *CourseDraft `gorm:"constraint:OnDelete:CASCADE;foreignKey:DraftID;references:ID" json:"draft,omitempty"`
	OriginalSectionID *uuid.UUID   `gorm:"type:uuid;index" json:"original_section_id,omitempty"`
	Title             string       `gorm:"column:title;not null" json:"title"`
	Position          int          `gorm:"column:position;not null" json:"position"`

	Lessons []*LessonDraft `gorm:"foreignKey:SectionDraftID" json:"lessons,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SectionDraft) TableName() string { return "course_section_draft" }

type LessonDraft struct {
	ID               uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionDraftID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"section_draft_id"`
	SectionDraft     *SectionDraft `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionDraftID;references:ID" json:"section_draft,omitempty"`
	OriginalLessonID *uuid.UUID    `gorm:"type:uuid;index" json:"original_lesson_id,omitempty"`
	Type             LessonType    `gorm:"column:type;not null" json:"type"`
	Title            string        `gorm:"column:title;not null" json:"title"`
	Position         int           `gorm:"column:position;not null" json:"position"`

	DurationMinutes int    `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	VideoURL        string `gorm:"column:video_url" json:"video_url,omitempty"`
	Content         string `gorm:"column:content;type:text" json:"content,omitempty"`

	Questions []*QuizQuestionDraft `gorm:"foreignKey:LessonDraftID" json:"questions,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LessonDraft) TableName() string { return "lesson_draft" }

type QuizQuestionDraft struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonDraftID uuid.UUID    `gorm:"type:uuid;not null;index" json:"lesson_draft_id"`
	LessonDraft   *LessonDraft `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonDraftID;references:ID" json:"lesson_draft,omitempty"`
	Text          string       `gorm:"column:text;type:text;not null" json:"text"`
	Position      int          `gorm:"column:position;not null" json:"position"`
	Explanation   string       `gorm:"column:explanation;type:text" json:"explanation,omitempty"`
	Score         int          `gorm:"column:score;not null;default:1" json:"score"`

	Options []*QuizOptionDraft `gorm:"foreignKey:QuestionDraftID" json:"options,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizQuestionDraft) TableName() string { return "quiz_question_draft" }

type QuizOptionDraft struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionDraftID uuid.UUID          `gorm:"type:uuid;not null;index" json:"question_draft_id"`
	QuestionDraft   *QuizQuestionDraft `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionDraftID;references:ID" json:"question_draft,omitempty"`
	Text            string             `gorm:"column:text;not null" json:"text"`
	Correct         bool               `gorm:"column:correct;not null;default:false" json:"correct"`
	Position        int                `gorm:"column:position;not null" json:"position"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizOptionDraft) TableName() string { return "quiz_option_draft" }
