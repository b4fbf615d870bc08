package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studora/studora-backend/internal/data/db"
	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	userrepo "github.com/studora/studora-backend/internal/data/repos/user"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// CourseDraftService owns the draft lifecycle up to review: creating a
// working copy of a live course, submitting it, and sending it back.
// Approval itself belongs to CoursePublishService.
type CourseDraftService interface {
	CreateFromCourse(ctx context.Context, courseID, tutorID uuid.UUID) (*types.CourseDraft, error)
	GetWithCurriculum(ctx context.Context, draftID uuid.UUID) (*types.CourseDraft, error)
	Submit(ctx context.Context, draftID uuid.UUID) error
	Reject(ctx context.Context, draftID uuid.UUID, note string) error
}

type courseDraftService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo catalogrepo.CourseRepo
	draftRepo  catalogrepo.CourseDraftRepo
	userRepo   userrepo.UserRepo
	notifier   CourseNotifier
}

func NewCourseDraftService(
	db *gorm.DB,
	courseRepo catalogrepo.CourseRepo,
	draftRepo catalogrepo.CourseDraftRepo,
	userRepo userrepo.UserRepo,
	notifier CourseNotifier,
	baseLog *logger.Logger,
) CourseDraftService {
	return &courseDraftService{
		db:         db,
		log:        baseLog.With("service", "CourseDraftService"),
		courseRepo: courseRepo,
		draftRepo:  draftRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// CreateFromCourse deep-copies the live curriculum into a fresh draft.
// Every copied section and lesson carries a back-reference to the live
// row it came from; rows added to the draft later have none, which is
// how the publish diff tells additions from modifications.
func (s *courseDraftService) CreateFromCourse(ctx context.Context, courseID, tutorID uuid.UUID) (*types.CourseDraft, error) {
	var draft *types.CourseDraft

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.courseRepo.GetWithCurriculum(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrCourseNotFound
			}
			return fmt.Errorf("load course curriculum: %w", err)
		}
		if course.Status != types.CourseStatusApproved {
			return catalog.ErrCourseNotApproved
		}

		open, err := s.draftRepo.GetOpenByCourseID(ctx, tx, courseID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check open draft: %w", err)
		}
		if open != nil {
			return catalog.ErrDraftAlreadyOpen
		}

		draft = copyCourseToDraft(course, tutorID)
		if _, err := s.draftRepo.Create(ctx, tx, draft); err != nil {
			// A concurrent call slipped past the check above; the
			// one-draft-per-course constraint caught it.
			if db.IsUniqueViolation(err) {
				return catalog.ErrDraftAlreadyOpen
			}
			return fmt.Errorf("create draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("draft created", "draft_id", draft.ID, "course_id", courseID, "tutor_id", tutorID)
	return draft, nil
}

func (s *courseDraftService) GetWithCurriculum(ctx context.Context, draftID uuid.UUID) (*types.CourseDraft, error) {
	draft, err := s.draftRepo.GetWithCurriculum(ctx, nil, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrDraftNotFound
		}
		return nil, fmt.Errorf("load draft curriculum: %w", err)
	}
	return draft, nil
}

// Submit moves an editing draft into the review queue.
func (s *courseDraftService) Submit(ctx context.Context, draftID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drafts, err := s.draftRepo.GetByIDs(ctx, tx, []uuid.UUID{draftID})
		if err != nil {
			return fmt.Errorf("load draft: %w", err)
		}
		if len(drafts) == 0 {
			return catalog.ErrDraftNotFound
		}
		if drafts[0].Status != types.DraftStatusEditing {
			return catalog.ErrDraftNotEditing
		}
		return s.draftRepo.UpdateStatus(ctx, tx, draftID, types.DraftStatusPendingReview, "")
	})
}

// Reject sends a pending draft back to the tutor with a review note.
// The draft survives and reopens for editing.
func (s *courseDraftService) Reject(ctx context.Context, draftID uuid.UUID, note string) error {
	var (
		draft  *types.CourseDraft
		course *types.Course
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drafts, err := s.draftRepo.GetByIDs(ctx, tx, []uuid.UUID{draftID})
		if err != nil {
			return fmt.Errorf("load draft: %w", err)
		}
		if len(drafts) == 0 {
			return catalog.ErrDraftNotFound
		}
		draft = drafts[0]
		if draft.Status != types.DraftStatusPendingReview {
			return catalog.ErrDraftNotPending
		}

		courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{draft.CourseID})
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if len(courses) == 0 {
			return catalog.ErrCourseNotFound
		}
		course = courses[0]

		return s.draftRepo.UpdateStatus(ctx, tx, draftID, types.DraftStatusRejected, note)
	})
	if err != nil {
		return err
	}

	s.log.Info("draft rejected", "draft_id", draftID, "course_id", course.ID)

	if s.notifier != nil {
		tutors, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{draft.TutorID})
		if err != nil || len(tutors) == 0 {
			s.log.Warn("could not load tutor for rejection notification", "draft_id", draftID, "error", err)
			return nil
		}
		s.notifier.DraftRejected(ctx, tutors[0], course, note)
	}
	return nil
}

// copyCourseToDraft builds the full draft graph in memory with fresh
// ids and original-id back-references on sections and lessons. Quiz
// rows are value content and carry no back-reference.
func copyCourseToDraft(course *types.Course, tutorID uuid.UUID) *types.CourseDraft {
	draft := &types.CourseDraft{
		ID:               uuid.New(),
		CourseID:         course.ID,
		TutorID:          tutorID,
		CategoryID:       course.CategoryID,
		Title:            course.Title,
		ShortDescription: course.ShortDescription,
		Description:      course.Description,
		Requirement:      course.Requirement,
		PriceCents:       course.PriceCents,
		DurationMinutes:  course.DurationMinutes,
		Language:         course.Language,
		Level:            course.Level,
		Status:           types.DraftStatusEditing,
	}

	for _, section := range course.Sections {
		originalSectionID := section.ID
		sectionDraft := &types.SectionDraft{
			ID:                uuid.New(),
			DraftID:           draft.ID,
			OriginalSectionID: &originalSectionID,
			Title:             section.Title,
			Position:          section.Position,
		}
		for _, lesson := range section.Lessons {
			originalLessonID := lesson.ID
			lessonDraft := &types.LessonDraft{
				ID:               uuid.New(),
				SectionDraftID:   sectionDraft.ID,
				OriginalLessonID: &originalLessonID,
				Type:             lesson.Type,
				Title:            lesson.Title,
				Position:         lesson.Position,
				DurationMinutes:  lesson.DurationMinutes,
				VideoURL:         lesson.VideoURL,
				Content:          lesson.Content,
			}
			for _, question := range lesson.Questions {
				questionDraft := &types.QuizQuestionDraft{
					ID:            uuid.New(),
					LessonDraftID: lessonDraft.ID,
					Text:          question.Text,
					Position:      question.Position,
					Explanation:   question.Explanation,
					Score:         question.Score,
				}
				for _, option := range question.Options {
					questionDraft.Options = append(questionDraft.Options, &types.QuizOptionDraft{
						ID:              uuid.New(),
						QuestionDraftID: questionDraft.ID,
						Text:            option.Text,
						Correct:         option.Correct,
						Position:        option.Position,
					})
				}
				lessonDraft.Questions = append(lessonDraft.Questions, questionDraft)
			}
			sectionDraft.Lessons = append(sectionDraft.Lessons, lessonDraft)
		}
		draft.Sections = append(draft.Sections, sectionDraft)
	}
	return draft
}
