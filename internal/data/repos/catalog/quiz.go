package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
)

type QuizQuestionRepo interface {
	// Create persists questions together with their options.
	Create(ctx context.Context, tx *gorm.DB, questions []*types.QuizQuestion) ([]*types.QuizQuestion, error)
	GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.QuizQuestion, error)
	// DeleteByLessonIDs removes every question and option for the
	// given lessons, options first.
	DeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error
	CountOptionsByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) (int64, error)
}

type quizQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuizQuestionRepo {
	return &quizQuestionRepo{db: db, log: baseLog.With("repo", "QuizQuestionRepo")}
}

func (r *quizQuestionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.QuizQuestion) ([]*types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return []*types.QuizQuestion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizQuestionRepo) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizQuestion
	if len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("lesson_id IN ?", lessonIDs).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizQuestionRepo) DeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(lessonIDs) == 0 {
		return nil
	}
	transaction = transaction.WithContext(ctx)

	var questionIDs []uuid.UUID
	if err := transaction.Model(&types.QuizQuestion{}).
		Where("lesson_id IN ?", lessonIDs).
		Pluck("id", &questionIDs).Error; err != nil {
		return err
	}

	if len(questionIDs) > 0 {
		if err := transaction.Where("question_id IN ?", questionIDs).
			Delete(&types.QuizOption{}).Error; err != nil {
			return err
		}
	}

	return transaction.Where("lesson_id IN ?", lessonIDs).
		Delete(&types.QuizQuestion{}).Error
}

func (r *quizQuestionRepo) CountOptionsByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if len(lessonIDs) == 0 {
		return 0, nil
	}

	err := transaction.WithContext(ctx).
		Model(&types.QuizOption{}).
		Joins("JOIN quiz_question ON quiz_question.id = quiz_option.question_id").
		Where("quiz_question.lesson_id IN ?", lessonIDs).
		Count(&count).Error
	return count, err
}
