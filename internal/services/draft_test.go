package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	"github.com/studora/studora-backend/internal/data/repos/testutil"
	userrepo "github.com/studora/studora-backend/internal/data/repos/user"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/domain/catalog"
)

func newDraftService(t *testing.T, tx *gorm.DB) (CourseDraftService, *fakeNotifier) {
	t.Helper()
	log := testutil.Logger(t)
	notifier := &fakeNotifier{}
	svc := NewCourseDraftService(
		tx,
		catalogrepo.NewCourseRepo(tx, log),
		catalogrepo.NewCourseDraftRepo(tx, log),
		userrepo.NewUserRepo(tx, log),
		notifier,
		log,
	)
	return svc, notifier
}

func TestCreateFromCourseDeepCopies(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "tutor.draftcopy@example.com", types.RoleTutor)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")
	section := testutil.SeedSection(t, ctx, tx, course.ID, "Basics", 1)
	lesson := testutil.SeedLesson(t, ctx, tx, section.ID, types.LessonTypeQuiz, "Checkpoint", 1)
	q := testutil.SeedQuizQuestion(t, ctx, tx, lesson.ID, "What does fmt do?", 1)
	testutil.SeedQuizOption(t, ctx, tx, q.ID, "Formatting", true, 1)

	svc, _ := newDraftService(t, tx)
	created, err := svc.CreateFromCourse(ctx, course.ID, tutor.ID)
	if err != nil {
		t.Fatalf("CreateFromCourse: %v", err)
	}
	if created.Status != types.DraftStatusEditing {
		t.Fatalf("new draft status: %s", created.Status)
	}
	if created.Title != "Go basics" {
		t.Fatalf("metadata not copied: %q", created.Title)
	}

	loaded, err := svc.GetWithCurriculum(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetWithCurriculum: %v", err)
	}
	if len(loaded.Sections) != 1 {
		t.Fatalf("want 1 section draft got %d", len(loaded.Sections))
	}
	sd := loaded.Sections[0]
	if sd.OriginalSectionID == nil || *sd.OriginalSectionID != section.ID {
		t.Fatalf("missing original section back-reference: %+v", sd)
	}
	if sd.ID == section.ID {
		t.Fatalf("draft section must have its own id")
	}
	if len(sd.Lessons) != 1 {
		t.Fatalf("want 1 lesson draft got %d", len(sd.Lessons))
	}
	ld := sd.Lessons[0]
	if ld.OriginalLessonID == nil || *ld.OriginalLessonID != lesson.ID {
		t.Fatalf("missing original lesson back-reference: %+v", ld)
	}
	if len(ld.Questions) != 1 || len(ld.Questions[0].Options) != 1 {
		t.Fatalf("quiz not copied: %+v", ld.Questions)
	}
	if ld.Questions[0].Options[0].Text != "Formatting" || !ld.Questions[0].Options[0].Correct {
		t.Fatalf("quiz option content wrong: %+v", ld.Questions[0].Options[0])
	}
}

func TestCreateFromCourseGuards(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "tutor.draftguard@example.com", types.RoleTutor)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")

	svc, _ := newDraftService(t, tx)

	// one open draft at a time
	if _, err := svc.CreateFromCourse(ctx, course.ID, tutor.ID); err != nil {
		t.Fatalf("first draft: %v", err)
	}
	if _, err := svc.CreateFromCourse(ctx, course.ID, tutor.ID); !errors.Is(err, catalog.ErrDraftAlreadyOpen) {
		t.Fatalf("want ErrDraftAlreadyOpen got %v", err)
	}

	// unapproved course cannot be drafted
	pending := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Unreviewed")
	pending.Status = types.CourseStatusPending
	if err := tx.Save(pending).Error; err != nil {
		t.Fatalf("set course pending: %v", err)
	}
	if _, err := svc.CreateFromCourse(ctx, pending.ID, tutor.ID); !errors.Is(err, catalog.ErrCourseNotApproved) {
		t.Fatalf("want ErrCourseNotApproved got %v", err)
	}
}

func TestSubmitDraft(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "tutor.submit@example.com", types.RoleTutor)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")
	draft := testutil.SeedDraft(t, ctx, tx, course.ID, tutor.ID, "Go basics", types.DraftStatusEditing)

	svc, _ := newDraftService(t, tx)
	if err := svc.Submit(ctx, draft.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var got types.CourseDraft
	if err := tx.First(&got, "id = ?", draft.ID).Error; err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if got.Status != types.DraftStatusPendingReview {
		t.Fatalf("status: want pending_review got %s", got.Status)
	}

	// double submit is rejected
	if err := svc.Submit(ctx, draft.ID); !errors.Is(err, catalog.ErrDraftNotEditing) {
		t.Fatalf("want ErrDraftNotEditing got %v", err)
	}
}

func TestRejectDraft(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	tutor := testutil.SeedUser(t, ctx, tx, "tutor.reject@example.com", types.RoleTutor)
	course := testutil.SeedCourse(t, ctx, tx, tutor.ID, "Go basics")
	draft := testutil.SeedDraft(t, ctx, tx, course.ID, tutor.ID, "Go basics", types.DraftStatusPendingReview)

	svc, notifier := newDraftService(t, tx)
	if err := svc.Reject(ctx, draft.ID, "needs a clearer outline"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	var got types.CourseDraft
	if err := tx.First(&got, "id = ?", draft.ID).Error; err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if got.Status != types.DraftStatusRejected {
		t.Fatalf("status: want rejected got %s", got.Status)
	}
	if got.ReviewNote != "needs a clearer outline" {
		t.Fatalf("review note not stored: %q", got.ReviewNote)
	}
	if len(notifier.rejected) != 1 || notifier.rejected[0] != tutor.ID {
		t.Fatalf("tutor not notified: %+v", notifier.rejected)
	}

	// rejecting twice fails, the draft is no longer pending
	if err := svc.Reject(ctx, draft.ID, "again"); !errors.Is(err, catalog.ErrDraftNotPending) {
		t.Fatalf("want ErrDraftNotPending got %v", err)
	}
}
