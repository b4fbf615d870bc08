package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studora/studora-backend/internal/domain/user"
)

type CourseStatus string

const (
	CourseStatusDraft    CourseStatus = "draft"
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusApproved CourseStatus = "approved"
	CourseStatusRejected CourseStatus = "rejected"
	CourseStatusDisabled CourseStatus = "disabled"
)

type LessonType string

const (
	LessonTypeVideo   LessonType = "video"
	LessonTypeReading LessonType = "reading"
	LessonTypeQuiz    LessonType = "quiz"
)

// Course is the live, published curriculum container. Sections (and
// everything below them) are the learner-visible tree.
type Course struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TutorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tutor_id"`
	Tutor      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:TutorID;references:ID" json:"tutor,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`

	Title            string `gorm:"column:title;not null" json:"title"`
	ShortDescription string `gorm:"column:short_description" json:"short_description"`
	Description      string `gorm:"column:description;type:text" json:"description"`
	Requirement      string `gorm:"column:requirement;type:text" json:"requirement"`
	PriceCents       int64  `gorm:"column:price_cents;not null;default:0" json:"price_cents"`
	DurationMinutes  int    `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	Language         string `gorm:"column:language" json:"language"`
	Level            string `gorm:"column:level" json:"level"`

	Status     CourseStatus `gorm:"column:status;not null;default:'draft';index" json:"status"`
	ReviewNote string       `gorm:"column:review_note;type:text" json:"review_note,omitempty"`

	Sections []*Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

type Section struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Position int       `gorm:"column:position;not null" json:"position"`

	Lessons []*Lesson `gorm:"foreignKey:SectionID" json:"lessons,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Section) TableName() string { return "course_section" }

type Lesson struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"section_id"`
	Section   *Section   `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	Type      LessonType `gorm:"column:type;not null" json:"type"`
	Title     string     `gorm:"column:title;not null" json:"title"`
	Position  int        `gorm:"column:position;not null" json:"position"`

	DurationMinutes int    `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	VideoURL        string `gorm:"column:video_url" json:"video_url,omitempty"`
	Content         string `gorm:"column:content;type:text" json:"content,omitempty"`

	Resources []*LessonResource `gorm:"foreignKey:LessonID" json:"resources,omitempty"`
	Questions []*QuizQuestion   `gorm:"foreignKey:LessonID" json:"questions,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

type LessonResource struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson   *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	FileURL  string    `gorm:"column:file_url;not null" json:"file_url"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LessonResource) TableName() string { return "lesson_resource" }

type QuizQuestion struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID    uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson      *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Text        string    `gorm:"column:text;type:text;not null" json:"text"`
	Position    int       `gorm:"column:position;not null" json:"position"`
	Explanation string    `gorm:"column:explanation;type:text" json:"explanation,omitempty"`
	Score       int       `gorm:"column:score;not null;default:1" json:"score"`

	Options []*QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizQuestion) TableName() string { return "quiz_question" }

type QuizOption struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID     `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   *QuizQuestion `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Text       string        `gorm:"column:text;not null" json:"text"`
	Correct    bool          `gorm:"column:correct;not null;default:false" json:"correct"`
	Position   int           `gorm:"column:position;not null" json:"position"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizOption) TableName() string { return "quiz_option" }
