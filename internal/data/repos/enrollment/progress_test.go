package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studora/studora-backend/internal/data/repos/testutil"
	types "github.com/studora/studora-backend/internal/domain"
)

func TestProgressRepoCountDoneLessons(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "progress.tutor@example.com", types.RoleTutor)
	learner := testutil.SeedUser(t, ctx, tx, "progress.learner@example.com", types.RoleLearner)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")
	section := testutil.SeedSection(t, ctx, tx, course.ID, "Basics", 1)
	other := testutil.SeedSection(t, ctx, tx, course.ID, "Other", 2)

	done := testutil.SeedLesson(t, ctx, tx, section.ID, types.LessonTypeVideo, "Done", 1)
	testutil.SeedLesson(t, ctx, tx, section.ID, types.LessonTypeReading, "Open", 2)
	elsewhere := testutil.SeedLesson(t, ctx, tx, other.ID, types.LessonTypeReading, "Elsewhere", 1)

	testutil.SeedLessonCompletion(t, ctx, tx, learner.ID, done.ID)
	testutil.SeedLessonCompletion(t, ctx, tx, learner.ID, elsewhere.ID)

	repo := NewProgressRepo(db, testutil.Logger(t))
	count, err := repo.CountDoneLessons(ctx, tx, learner.ID, section.ID)
	if err != nil {
		t.Fatalf("CountDoneLessons: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountDoneLessons: want 1 got %d", count)
	}

	// completions whose lesson was deleted never inflate the count
	if err := tx.Delete(&types.Lesson{}, "id = ?", done.ID).Error; err != nil {
		t.Fatalf("delete lesson: %v", err)
	}
	count, err = repo.CountDoneLessons(ctx, tx, learner.ID, section.ID)
	if err != nil {
		t.Fatalf("CountDoneLessons after delete: %v", err)
	}
	if count != 0 {
		t.Fatalf("CountDoneLessons after delete: want 0 got %d", count)
	}
}

func TestProgressRepoUpsertSectionProgress(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "upsert.tutor@example.com", types.RoleTutor)
	learner := testutil.SeedUser(t, ctx, tx, "upsert.learner@example.com", types.RoleLearner)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")
	section := testutil.SeedSection(t, ctx, tx, course.ID, "Basics", 1)

	repo := NewProgressRepo(db, testutil.Logger(t))

	write := func(fraction float64) {
		t.Helper()
		err := repo.UpsertSectionProgress(ctx, tx, &types.SectionProgress{
			ID:        uuid.New(),
			UserID:    learner.ID,
			CourseID:  course.ID,
			SectionID: section.ID,
			Progress:  fraction,
			UpdatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("UpsertSectionProgress(%v): %v", fraction, err)
		}
	}

	write(0.5)
	write(0.25)

	var rows []*types.SectionProgress
	if err := tx.Where("user_id = ? AND section_id = ?", learner.ID, section.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load progress rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("upsert created duplicate rows: %d", len(rows))
	}
	if rows[0].Progress != 0.25 {
		t.Fatalf("progress: want 0.25 got %v", rows[0].Progress)
	}

	got, err := repo.GetSectionProgress(ctx, tx, learner.ID, section.ID)
	if err != nil {
		t.Fatalf("GetSectionProgress: %v", err)
	}
	if got.Progress != 0.25 {
		t.Fatalf("GetSectionProgress: want 0.25 got %v", got.Progress)
	}
}

func TestProgressRepoDeleteCompletionsByLessonIDs(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "delcomp.tutor@example.com", types.RoleTutor)
	learner := testutil.SeedUser(t, ctx, tx, "delcomp.learner@example.com", types.RoleLearner)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")
	section := testutil.SeedSection(t, ctx, tx, course.ID, "Basics", 1)
	a := testutil.SeedLesson(t, ctx, tx, section.ID, types.LessonTypeVideo, "A", 1)
	b := testutil.SeedLesson(t, ctx, tx, section.ID, types.LessonTypeVideo, "B", 2)
	testutil.SeedLessonCompletion(t, ctx, tx, learner.ID, a.ID)
	testutil.SeedLessonCompletion(t, ctx, tx, learner.ID, b.ID)

	repo := NewProgressRepo(db, testutil.Logger(t))
	if err := repo.DeleteCompletionsByLessonIDs(ctx, tx, []uuid.UUID{a.ID}); err != nil {
		t.Fatalf("DeleteCompletionsByLessonIDs: %v", err)
	}

	left, err := repo.CountCompletionsByLessonIDs(ctx, tx, []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("CountCompletionsByLessonIDs: %v", err)
	}
	if left != 1 {
		t.Fatalf("want 1 completion left got %d", left)
	}

	// empty slice is a no-op
	if err := repo.DeleteCompletionsByLessonIDs(ctx, tx, nil); err != nil {
		t.Fatalf("nil slice: %v", err)
	}
}
