package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/studora/studora-backend/internal/data/repos/testutil"
	types "github.com/studora/studora-backend/internal/domain"
)

func TestCourseRepoGetWithCurriculum(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "courserepo@example.com", types.RoleTutor)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Ordering")

	// seeded out of order on purpose
	second := testutil.SeedSection(t, ctx, tx, course.ID, "Second", 2)
	first := testutil.SeedSection(t, ctx, tx, course.ID, "First", 1)
	testutil.SeedLesson(t, ctx, tx, first.ID, types.LessonTypeReading, "B", 2)
	testutil.SeedLesson(t, ctx, tx, first.ID, types.LessonTypeVideo, "A", 1)
	quiz := testutil.SeedLesson(t, ctx, tx, second.ID, types.LessonTypeQuiz, "Quiz", 1)
	q := testutil.SeedQuizQuestion(t, ctx, tx, quiz.ID, "Q", 1)
	testutil.SeedQuizOption(t, ctx, tx, q.ID, "later", false, 2)
	testutil.SeedQuizOption(t, ctx, tx, q.ID, "earlier", true, 1)

	repo := NewCourseRepo(db, testutil.Logger(t))
	got, err := repo.GetWithCurriculum(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("GetWithCurriculum: %v", err)
	}

	if len(got.Sections) != 2 || got.Sections[0].Title != "First" || got.Sections[1].Title != "Second" {
		t.Fatalf("sections out of order: %+v", got.Sections)
	}
	lessons := got.Sections[0].Lessons
	if len(lessons) != 2 || lessons[0].Title != "A" || lessons[1].Title != "B" {
		t.Fatalf("lessons out of order: %+v", lessons)
	}
	questions := got.Sections[1].Lessons[0].Questions
	if len(questions) != 1 || len(questions[0].Options) != 2 {
		t.Fatalf("quiz not loaded: %+v", questions)
	}
	if questions[0].Options[0].Text != "earlier" {
		t.Fatalf("options out of order: %+v", questions[0].Options)
	}
}

func TestCourseRepoSaveDoesNotTouchAssociations(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "courserepo2@example.com", types.RoleTutor)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Before")
	testutil.SeedSection(t, ctx, tx, course.ID, "Kept", 1)

	repo := NewCourseRepo(db, testutil.Logger(t))
	loaded, err := repo.GetWithCurriculum(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("GetWithCurriculum: %v", err)
	}
	loaded.Title = "After"
	loaded.Sections = nil
	if err := repo.Save(ctx, tx, loaded); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var sections []*types.Section
	if err := tx.Where("course_id = ?", course.ID).Find(&sections).Error; err != nil {
		t.Fatalf("load sections: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("Save must not cascade to sections: %d", len(sections))
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{course.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v (%d)", err, len(got))
	}
	if got[0].Title != "After" {
		t.Fatalf("title not saved: %q", got[0].Title)
	}
}
