package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	enrollrepo "github.com/studora/studora-backend/internal/data/repos/enrollment"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// MergeApplier folds a ChangeSet into the live rows. Everything runs
// on the caller's transaction; the applier never commits and never
// touches draft rows.
type MergeApplier struct {
	log          *logger.Logger
	courseRepo   catalogrepo.CourseRepo
	sectionRepo  catalogrepo.SectionRepo
	lessonRepo   catalogrepo.LessonRepo
	resourceRepo catalogrepo.LessonResourceRepo
	quizRepo     catalogrepo.QuizQuestionRepo
	progressRepo enrollrepo.ProgressRepo
}

func NewMergeApplier(
	courseRepo catalogrepo.CourseRepo,
	sectionRepo catalogrepo.SectionRepo,
	lessonRepo catalogrepo.LessonRepo,
	resourceRepo catalogrepo.LessonResourceRepo,
	quizRepo catalogrepo.QuizQuestionRepo,
	progressRepo enrollrepo.ProgressRepo,
	baseLog *logger.Logger,
) *MergeApplier {
	return &MergeApplier{
		log:          baseLog.With("service", "MergeApplier"),
		courseRepo:   courseRepo,
		sectionRepo:  sectionRepo,
		lessonRepo:   lessonRepo,
		resourceRepo: resourceRepo,
		quizRepo:     quizRepo,
		progressRepo: progressRepo,
	}
}

// Apply overwrites course metadata wholesale from the draft and applies
// every section/lesson change. Removals cascade bottom-up so no child
// row survives its parent.
func (a *MergeApplier) Apply(ctx context.Context, tx *gorm.DB, course *types.Course, draft *types.CourseDraft, changes *ChangeSet) error {
	a.applyMetadata(course, draft)
	if err := a.courseRepo.Save(ctx, tx, course); err != nil {
		return fmt.Errorf("save course metadata: %w", err)
	}

	for i := range changes.Sections {
		sc := &changes.Sections[i]
		switch sc.Kind {
		case ChangeAdded:
			if err := a.createSection(ctx, tx, course.ID, sc); err != nil {
				return err
			}
		case ChangeModified:
			if err := a.updateSection(ctx, tx, sc); err != nil {
				return err
			}
		case ChangeRemoved:
			if err := a.removeSection(ctx, tx, sc); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyMetadata copies every publishable metadata field from the draft
// onto the live course, the tutor reference included. Status stays as
// it is.
func (a *MergeApplier) applyMetadata(course *types.Course, draft *types.CourseDraft) {
	course.TutorID = draft.TutorID
	course.CategoryID = draft.CategoryID
	course.Title = draft.Title
	course.ShortDescription = draft.ShortDescription
	course.Description = draft.Description
	course.Requirement = draft.Requirement
	course.PriceCents = draft.PriceCents
	course.DurationMinutes = draft.DurationMinutes
	course.Language = draft.Language
	course.Level = draft.Level
}

func (a *MergeApplier) createSection(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, sc *SectionChange) error {
	section := &types.Section{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    sc.Draft.Title,
		Position: sc.Draft.Position,
	}
	if _, err := a.sectionRepo.Create(ctx, tx, []*types.Section{section}); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	for j := range sc.Lessons {
		if err := a.createLesson(ctx, tx, section.ID, sc.Lessons[j].Draft); err != nil {
			return err
		}
	}
	return nil
}

func (a *MergeApplier) updateSection(ctx context.Context, tx *gorm.DB, sc *SectionChange) error {
	if sc.Renamed || sc.Reordered {
		section := sc.Live
		section.Title = sc.Draft.Title
		section.Position = sc.Draft.Position
		if err := a.sectionRepo.Save(ctx, tx, section); err != nil {
			return fmt.Errorf("save section: %w", err)
		}
	}
	for j := range sc.Lessons {
		lc := &sc.Lessons[j]
		switch lc.Kind {
		case ChangeAdded:
			if err := a.createLesson(ctx, tx, sc.SectionID, lc.Draft); err != nil {
				return err
			}
		case ChangeModified:
			if err := a.updateLesson(ctx, tx, lc); err != nil {
				return err
			}
		case ChangeRemoved:
			if err := a.removeLessons(ctx, tx, []uuid.UUID{lc.LessonID}); err != nil {
				return err
			}
		}
	}
	return nil
}

// removeSection deletes a live section with its full subtree: lesson
// completions, resources, quiz rows and lessons first, then learner
// section progress, then the section row itself.
func (a *MergeApplier) removeSection(ctx context.Context, tx *gorm.DB, sc *SectionChange) error {
	lessonIDs := make([]uuid.UUID, 0, len(sc.Live.Lessons))
	for _, lesson := range sc.Live.Lessons {
		lessonIDs = append(lessonIDs, lesson.ID)
	}
	if err := a.removeLessons(ctx, tx, lessonIDs); err != nil {
		return err
	}
	if err := a.progressRepo.DeleteSectionProgressBySectionIDs(ctx, tx, []uuid.UUID{sc.SectionID}); err != nil {
		return fmt.Errorf("delete section progress: %w", err)
	}
	if err := a.sectionRepo.DeleteByIDs(ctx, tx, []uuid.UUID{sc.SectionID}); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

func (a *MergeApplier) removeLessons(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	if err := a.progressRepo.DeleteCompletionsByLessonIDs(ctx, tx, lessonIDs); err != nil {
		return fmt.Errorf("delete lesson completions: %w", err)
	}
	if err := a.resourceRepo.DeleteByLessonIDs(ctx, tx, lessonIDs); err != nil {
		return fmt.Errorf("delete lesson resources: %w", err)
	}
	if err := a.quizRepo.DeleteByLessonIDs(ctx, tx, lessonIDs); err != nil {
		return fmt.Errorf("delete lesson quizzes: %w", err)
	}
	if err := a.lessonRepo.DeleteByIDs(ctx, tx, lessonIDs); err != nil {
		return fmt.Errorf("delete lessons: %w", err)
	}
	return nil
}

func (a *MergeApplier) createLesson(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, ld *types.LessonDraft) error {
	lesson := &types.Lesson{
		ID:              uuid.New(),
		SectionID:       sectionID,
		Type:            ld.Type,
		Title:           ld.Title,
		Position:        ld.Position,
		DurationMinutes: ld.DurationMinutes,
		VideoURL:        ld.VideoURL,
		Content:         ld.Content,
	}
	if _, err := a.lessonRepo.Create(ctx, tx, []*types.Lesson{lesson}); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return a.createQuiz(ctx, tx, lesson.ID, ld.Questions)
}

// updateLesson overwrites the live lesson from its draft. A changed
// quiz is replaced wholesale: old rows dropped, draft rows inserted.
func (a *MergeApplier) updateLesson(ctx context.Context, tx *gorm.DB, lc *LessonChange) error {
	lesson := lc.Live
	ld := lc.Draft
	lesson.Type = ld.Type
	lesson.Title = ld.Title
	lesson.Position = ld.Position
	lesson.DurationMinutes = ld.DurationMinutes
	lesson.VideoURL = ld.VideoURL
	lesson.Content = ld.Content
	if err := a.lessonRepo.Save(ctx, tx, lesson); err != nil {
		return fmt.Errorf("save lesson: %w", err)
	}
	if !lc.QuizChanged {
		return nil
	}
	if err := a.quizRepo.DeleteByLessonIDs(ctx, tx, []uuid.UUID{lesson.ID}); err != nil {
		return fmt.Errorf("delete replaced quiz: %w", err)
	}
	return a.createQuiz(ctx, tx, lesson.ID, ld.Questions)
}

func (a *MergeApplier) createQuiz(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, drafts []*types.QuizQuestionDraft) error {
	if len(drafts) == 0 {
		return nil
	}
	questions := make([]*types.QuizQuestion, 0, len(drafts))
	for _, qd := range drafts {
		question := &types.QuizQuestion{
			ID:          uuid.New(),
			LessonID:    lessonID,
			Text:        qd.Text,
			Position:    qd.Position,
			Explanation: qd.Explanation,
			Score:       qd.Score,
		}
		for _, od := range qd.Options {
			question.Options = append(question.Options, &types.QuizOption{
				ID:         uuid.New(),
				QuestionID: question.ID,
				Text:       od.Text,
				Correct:    od.Correct,
				Position:   od.Position,
			})
		}
		questions = append(questions, question)
	}
	if _, err := a.quizRepo.Create(ctx, tx, questions); err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}
