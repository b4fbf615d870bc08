package enrollment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
)

type ProgressRepo interface {
	GetSectionProgress(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (*types.SectionProgress, error)
	// UpsertSectionProgress writes the stored fraction for one
	// (learner, section) pair, creating the row when missing.
	UpsertSectionProgress(ctx context.Context, tx *gorm.DB, progress *types.SectionProgress) error
	// CountDoneLessons counts the learner's completions against
	// lessons currently in the section, so rows whose lesson was
	// deleted never inflate the numerator.
	CountDoneLessons(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (int64, error)
	CreateCompletions(ctx context.Context, tx *gorm.DB, completions []*types.LessonCompletion) ([]*types.LessonCompletion, error)
	CountCompletionsByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) (int64, error)
	DeleteCompletionsByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error
	DeleteSectionProgressBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) GetSectionProgress(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (*types.SectionProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var progress types.SectionProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepo) UpsertSectionProgress(ctx context.Context, tx *gorm.DB, progress *types.SectionProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "section_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(progress).Error
}

func (r *progressRepo) CountDoneLessons(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.LessonCompletion{}).
		Joins("JOIN lesson ON lesson.id = lesson_completion.lesson_id").
		Where("lesson_completion.user_id = ? AND lesson.section_id = ?", userID, sectionID).
		Count(&count).Error
	return count, err
}

func (r *progressRepo) CreateCompletions(ctx context.Context, tx *gorm.DB, completions []*types.LessonCompletion) ([]*types.LessonCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(completions) == 0 {
		return []*types.LessonCompletion{}, nil
	}

	if err := transaction.WithContext(ctx).Omit(clause.Associations).Create(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *progressRepo) CountCompletionsByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if len(lessonIDs) == 0 {
		return 0, nil
	}

	err := transaction.WithContext(ctx).
		Model(&types.LessonCompletion{}).
		Where("lesson_id IN ?", lessonIDs).
		Count(&count).Error
	return count, err
}

func (r *progressRepo) DeleteCompletionsByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(lessonIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Delete(&types.LessonCompletion{}).Error
}

func (r *progressRepo) DeleteSectionProgressBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sectionIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Delete(&types.SectionProgress{}).Error
}
