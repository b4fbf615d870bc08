package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/studora/studora-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, tutorID uuid.UUID, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:      uuid.New(),
		TutorID: tutorID,
		Title:   title,
		Status:  types.CourseStatusApproved,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, title string, position int) *types.Section {
	tb.Helper()
	s := &types.Section{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    title,
		Position: position,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, lessonType types.LessonType, title string, position int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:        uuid.New(),
		SectionID: sectionID,
		Type:      lessonType,
		Title:     title,
		Position:  position,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedLessonResource(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, name string) *types.LessonResource {
	tb.Helper()
	r := &types.LessonResource{
		ID:       uuid.New(),
		LessonID: lessonID,
		Name:     name,
		FileURL:  "https://files.example.com/" + name,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed lesson resource: %v", err)
	}
	return r
}

func SeedQuizQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, text string, position int) *types.QuizQuestion {
	tb.Helper()
	q := &types.QuizQuestion{
		ID:       uuid.New(),
		LessonID: lessonID,
		Text:     text,
		Position: position,
		Score:    1,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz question: %v", err)
	}
	return q
}

func SeedQuizOption(tb testing.TB, ctx context.Context, tx *gorm.DB, questionID uuid.UUID, text string, correct bool, position int) *types.QuizOption {
	tb.Helper()
	o := &types.QuizOption{
		ID:         uuid.New(),
		QuestionID: questionID,
		Text:       text,
		Correct:    correct,
		Position:   position,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed quiz option: %v", err)
	}
	return o
}

func SeedDraft(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, tutorID uuid.UUID, title string, status types.DraftStatus) *types.CourseDraft {
	tb.Helper()
	d := &types.CourseDraft{
		ID:       uuid.New(),
		CourseID: courseID,
		TutorID:  tutorID,
		Title:    title,
		Status:   status,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed draft: %v", err)
	}
	return d
}

func SeedSectionDraft(tb testing.TB, ctx context.Context, tx *gorm.DB, draftID uuid.UUID, originalSectionID *uuid.UUID, title string, position int) *types.SectionDraft {
	tb.Helper()
	sd := &types.SectionDraft{
		ID:                uuid.New(),
		DraftID:           draftID,
		OriginalSectionID: originalSectionID,
		Title:             title,
		Position:          position,
	}
	if err := tx.WithContext(ctx).Create(sd).Error; err != nil {
		tb.Fatalf("seed section draft: %v", err)
	}
	return sd
}

func SeedLessonDraft(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionDraftID uuid.UUID, originalLessonID *uuid.UUID, lessonType types.LessonType, title string, position int) *types.LessonDraft {
	tb.Helper()
	ld := &types.LessonDraft{
		ID:               uuid.New(),
		SectionDraftID:   sectionDraftID,
		OriginalLessonID: originalLessonID,
		Type:             lessonType,
		Title:            title,
		Position:         position,
	}
	if err := tx.WithContext(ctx).Create(ld).Error; err != nil {
		tb.Fatalf("seed lesson draft: %v", err)
	}
	return ld
}

func SeedQuizQuestionDraft(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonDraftID uuid.UUID, text string, position int) *types.QuizQuestionDraft {
	tb.Helper()
	qd := &types.QuizQuestionDraft{
		ID:            uuid.New(),
		LessonDraftID: lessonDraftID,
		Text:          text,
		Position:      position,
		Score:         1,
	}
	if err := tx.WithContext(ctx).Create(qd).Error; err != nil {
		tb.Fatalf("seed quiz question draft: %v", err)
	}
	return qd
}

func SeedQuizOptionDraft(tb testing.TB, ctx context.Context, tx *gorm.DB, questionDraftID uuid.UUID, text string, correct bool, position int) *types.QuizOptionDraft {
	tb.Helper()
	od := &types.QuizOptionDraft{
		ID:              uuid.New(),
		QuestionDraftID: questionDraftID,
		Text:            text,
		Correct:         correct,
		Position:        position,
	}
	if err := tx.WithContext(ctx).Create(od).Error; err != nil {
		tb.Fatalf("seed quiz option draft: %v", err)
	}
	return od
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedLessonCompletion(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) *types.LessonCompletion {
	tb.Helper()
	lc := &types.LessonCompletion{
		ID:       uuid.New(),
		UserID:   userID,
		LessonID: lessonID,
	}
	if err := tx.WithContext(ctx).Create(lc).Error; err != nil {
		tb.Fatalf("seed lesson completion: %v", err)
	}
	return lc
}

func SeedSectionProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID, sectionID uuid.UUID, fraction float64) *types.SectionProgress {
	tb.Helper()
	sp := &types.SectionProgress{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		SectionID: sectionID,
		Progress:  fraction,
	}
	if err := tx.WithContext(ctx).Create(sp).Error; err != nil {
		tb.Fatalf("seed section progress: %v", err)
	}
	return sp
}
