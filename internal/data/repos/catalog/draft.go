package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
)

type CourseDraftRepo interface {
	// Create persists the draft together with its section/lesson/quiz
	// draft children in one association create.
	Create(ctx context.Context, tx *gorm.DB, draft *types.CourseDraft) (*types.CourseDraft, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, draftIDs []uuid.UUID) ([]*types.CourseDraft, error)
	GetOpenByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseDraft, error)
	GetWithCurriculum(ctx context.Context, tx *gorm.DB, draftID uuid.UUID) (*types.CourseDraft, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, draftID uuid.UUID, status types.DraftStatus, reviewNote string) error
	// DeleteCascade removes the draft and every draft sub-entity,
	// children first so no orphan rows survive.
	DeleteCascade(ctx context.Context, tx *gorm.DB, draftID uuid.UUID) error
}

type courseDraftRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseDraftRepo(db *gorm.DB, baseLog *logger.Logger) CourseDraftRepo {
	return &courseDraftRepo{db: db, log: baseLog.With("repo", "CourseDraftRepo")}
}

func (r *courseDraftRepo) Create(ctx context.Context, tx *gorm.DB, draft *types.CourseDraft) (*types.CourseDraft, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *courseDraftRepo) GetByIDs(ctx context.Context, tx *gorm.DB, draftIDs []uuid.UUID) ([]*types.CourseDraft, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseDraft
	if len(draftIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", draftIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseDraftRepo) GetOpenByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseDraft, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var draft types.CourseDraft
	err := transaction.WithContext(ctx).
		Where("course_id = ? AND status IN ?", courseID, []types.DraftStatus{types.DraftStatusEditing, types.DraftStatusPendingReview}).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *courseDraftRepo) GetWithCurriculum(ctx context.Context, tx *gorm.DB, draftID uuid.UUID) (*types.CourseDraft, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var draft types.CourseDraft
	err := transaction.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sections.Lessons.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sections.Lessons.Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", draftID).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *courseDraftRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, draftID uuid.UUID, status types.DraftStatus, reviewNote string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.CourseDraft{}).
		Where("id = ?", draftID).
		Updates(map[string]interface{}{"status": status, "review_note": reviewNote}).Error
}

func (r *courseDraftRepo) DeleteCascade(ctx context.Context, tx *gorm.DB, draftID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	transaction = transaction.WithContext(ctx)

	var sectionDraftIDs []uuid.UUID
	if err := transaction.Model(&types.SectionDraft{}).
		Where("draft_id = ?", draftID).
		Pluck("id", &sectionDraftIDs).Error; err != nil {
		return err
	}

	if len(sectionDraftIDs) > 0 {
		var lessonDraftIDs []uuid.UUID
		if err := transaction.Model(&types.LessonDraft{}).
			Where("section_draft_id IN ?", sectionDraftIDs).
			Pluck("id", &lessonDraftIDs).Error; err != nil {
			return err
		}

		if len(lessonDraftIDs) > 0 {
			var questionDraftIDs []uuid.UUID
			if err := transaction.Model(&types.QuizQuestionDraft{}).
				Where("lesson_draft_id IN ?", lessonDraftIDs).
				Pluck("id", &questionDraftIDs).Error; err != nil {
				return err
			}

			if len(questionDraftIDs) > 0 {
				if err := transaction.Where("question_draft_id IN ?", questionDraftIDs).
					Delete(&types.QuizOptionDraft{}).Error; err != nil {
					return err
				}
			}
			if err := transaction.Where("lesson_draft_id IN ?", lessonDraftIDs).
				Delete(&types.QuizQuestionDraft{}).Error; err != nil {
				return err
			}
			if err := transaction.Where("id IN ?", lessonDraftIDs).
				Delete(&types.LessonDraft{}).Error; err != nil {
				return err
			}
		}

		if err := transaction.Where("id IN ?", sectionDraftIDs).
			Delete(&types.SectionDraft{}).Error; err != nil {
			return err
		}
	}

	return transaction.Where("id = ?", draftID).Delete(&types.CourseDraft{}).Error
}
