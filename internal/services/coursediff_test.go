package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// liveCourse builds a two-section course: "Basics" with a video lesson
// and a quiz lesson, "Advanced" with a reading lesson.
func liveCourse() *types.Course {
	course := &types.Course{
		ID:      uuid.New(),
		TutorID: uuid.New(),
		Title:   "Go from scratch",
		Status:  types.CourseStatusApproved,
	}

	basics := &types.Section{ID: uuid.New(), CourseID: course.ID, Title: "Basics", Position: 1}
	video := &types.Lesson{
		ID:        uuid.New(),
		SectionID: basics.ID,
		Type:      types.LessonTypeVideo,
		Title:     "Hello world",
		Position:  1,
		VideoURL:  "https://videos.example.com/hello.mp4",
	}
	quizLesson := &types.Lesson{
		ID:        uuid.New(),
		SectionID: basics.ID,
		Type:      types.LessonTypeQuiz,
		Title:     "Checkpoint",
		Position:  2,
	}
	question := &types.QuizQuestion{
		ID:       uuid.New(),
		LessonID: quizLesson.ID,
		Text:     "What does fmt do?",
		Position: 1,
		Score:    1,
	}
	question.Options = []*types.QuizOption{
		{ID: uuid.New(), QuestionID: question.ID, Text: "Formatting", Correct: true, Position: 1},
		{ID: uuid.New(), QuestionID: question.ID, Text: "Networking", Correct: false, Position: 2},
	}
	quizLesson.Questions = []*types.QuizQuestion{question}
	basics.Lessons = []*types.Lesson{video, quizLesson}

	advanced := &types.Section{ID: uuid.New(), CourseID: course.ID, Title: "Advanced", Position: 2}
	reading := &types.Lesson{
		ID:        uuid.New(),
		SectionID: advanced.ID,
		Type:      types.LessonTypeReading,
		Title:     "Goroutines",
		Position:  1,
		Content:   "Concurrency is not parallelism.",
	}
	advanced.Lessons = []*types.Lesson{reading}

	course.Sections = []*types.Section{basics, advanced}
	return course
}

// draftOf deep-copies a course into a draft graph with fresh ids and
// original-id back-references, the shape CreateFromCourse produces.
func draftOf(course *types.Course) *types.CourseDraft {
	return copyCourseToDraft(course, course.TutorID)
}

func TestDiffIdenticalDraft(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !cs.Empty() {
		t.Fatalf("expected empty change set, got %d metadata and %d section changes", len(cs.Metadata), len(cs.Sections))
	}
	if got := cs.Summary(); got != FallbackSummary {
		t.Fatalf("Summary: want %q got %q", FallbackSummary, got)
	}
}

func TestDiffMetadataChange(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Title = "Go from zero"
	draft.PriceCents = 4900

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Metadata) != 2 {
		t.Fatalf("expected 2 metadata changes, got %d: %+v", len(cs.Metadata), cs.Metadata)
	}
	if cs.Metadata[0].Field != "title" || cs.Metadata[0].Old != "Go from scratch" || cs.Metadata[0].New != "Go from zero" {
		t.Fatalf("unexpected title change: %+v", cs.Metadata[0])
	}
	if len(cs.Sections) != 0 {
		t.Fatalf("expected no section changes, got %d", len(cs.Sections))
	}
	summary := cs.Summary()
	if !strings.Contains(summary, `Course title changed from "Go from scratch" to "Go from zero".`) {
		t.Fatalf("summary missing title line: %q", summary)
	}
}

func TestDiffAddedSection(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)

	added := &types.SectionDraft{
		ID:       uuid.New(),
		DraftID:  draft.ID,
		Title:    "Testing",
		Position: 3,
	}
	added.Lessons = []*types.LessonDraft{{
		ID:             uuid.New(),
		SectionDraftID: added.ID,
		Type:           types.LessonTypeReading,
		Title:          "Table tests",
		Position:       1,
	}}
	draft.Sections = append(draft.Sections, added)

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 1 {
		t.Fatalf("expected 1 section change, got %d", len(cs.Sections))
	}
	sc := cs.Sections[0]
	if sc.Kind != ChangeAdded || sc.Title != "Testing" {
		t.Fatalf("unexpected change: %+v", sc)
	}
	if len(sc.Lessons) != 1 || sc.Lessons[0].Kind != ChangeAdded {
		t.Fatalf("expected 1 added lesson, got %+v", sc.Lessons)
	}
	if sc.AffectsProgress() {
		t.Fatalf("added section must not trigger progress invalidation")
	}
	if !strings.Contains(cs.Summary(), `New section "Testing" was added.`) {
		t.Fatalf("summary missing added section: %q", cs.Summary())
	}
}

func TestDiffRemovedSection(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Sections = draft.Sections[:1] // drop "Advanced"

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 1 {
		t.Fatalf("expected 1 section change, got %d", len(cs.Sections))
	}
	sc := cs.Sections[0]
	if sc.Kind != ChangeRemoved || sc.SectionID != course.Sections[1].ID {
		t.Fatalf("unexpected change: %+v", sc)
	}
	removed := cs.RemovedLessonIDs()
	if len(removed) != 1 || removed[0] != course.Sections[1].Lessons[0].ID {
		t.Fatalf("unexpected removed lessons: %v", removed)
	}
	if !strings.Contains(cs.Summary(), `Section "Advanced" was removed.`) {
		t.Fatalf("summary missing removed section: %q", cs.Summary())
	}
}

func TestDiffLessonVideoURLChange(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Sections[0].Lessons[0].VideoURL = "https://videos.example.com/hello-v2.mp4"

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 1 {
		t.Fatalf("expected 1 section change, got %d", len(cs.Sections))
	}
	sc := cs.Sections[0]
	if sc.Kind != ChangeModified || len(sc.Lessons) != 1 {
		t.Fatalf("unexpected change: %+v", sc)
	}
	lc := sc.Lessons[0]
	if lc.Kind != ChangeModified || lc.QuizChanged {
		t.Fatalf("unexpected lesson change: %+v", lc)
	}
	if !lc.AffectsProgress {
		t.Fatalf("video URL change must affect progress")
	}
	if !sc.AffectsProgress() {
		t.Fatalf("section must report progress invalidation")
	}
}

func TestDiffLessonTitleOnlyChange(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Sections[1].Lessons[0].Title = "Goroutines and channels"

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 1 {
		t.Fatalf("expected 1 section change, got %d", len(cs.Sections))
	}
	lc := cs.Sections[0].Lessons[0]
	if lc.Kind != ChangeModified {
		t.Fatalf("unexpected lesson change: %+v", lc)
	}
	if lc.AffectsProgress {
		t.Fatalf("title-only change must not affect progress")
	}
}

func TestDiffQuizIgnoresSurrogateIDs(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)

	// fresh ids on every draft quiz row, same content
	for _, ld := range draft.Sections[0].Lessons {
		for _, q := range ld.Questions {
			q.ID = uuid.New()
			for _, o := range q.Options {
				o.ID = uuid.New()
			}
		}
	}

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !cs.Empty() {
		t.Fatalf("id-only differences must not register as changes: %+v", cs.Sections)
	}
}

func TestDiffQuizContentChange(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Sections[0].Lessons[1].Questions[0].Options[0].Correct = false
	draft.Sections[0].Lessons[1].Questions[0].Options[1].Correct = true

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 1 || len(cs.Sections[0].Lessons) != 1 {
		t.Fatalf("expected exactly one lesson change, got %+v", cs.Sections)
	}
	lc := cs.Sections[0].Lessons[0]
	if !lc.QuizChanged || !lc.AffectsProgress {
		t.Fatalf("flipped answer must mark quiz changed: %+v", lc)
	}
	if !strings.Contains(cs.Summary(), `The quiz for lesson "Checkpoint" was updated.`) {
		t.Fatalf("summary missing quiz line: %q", cs.Summary())
	}
}

func TestDiffDanglingOriginalSectionID(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	bogus := uuid.New()
	draft.Sections[0].OriginalSectionID = &bogus

	_, err := differ.Diff(course, draft)
	var structural *catalog.StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if structural.Entity != "section" || structural.OriginalID != bogus {
		t.Fatalf("unexpected structural error: %+v", structural)
	}
}

func TestDiffDanglingOriginalLessonID(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	bogus := uuid.New()
	draft.Sections[0].Lessons[0].OriginalLessonID = &bogus

	_, err := differ.Diff(course, draft)
	var structural *catalog.StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if structural.Entity != "lesson" {
		t.Fatalf("unexpected structural error: %+v", structural)
	}
}

func TestDiffSectionRename(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Sections[0].Title = "Foundations"

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 1 {
		t.Fatalf("expected 1 section change, got %d", len(cs.Sections))
	}
	sc := cs.Sections[0]
	if sc.Kind != ChangeModified || !sc.Renamed || sc.Reordered {
		t.Fatalf("unexpected change: %+v", sc)
	}
	if sc.AffectsProgress() {
		t.Fatalf("rename must not affect progress")
	}
	if !strings.Contains(cs.Summary(), `Section "Basics" was renamed to "Foundations".`) {
		t.Fatalf("summary missing rename line: %q", cs.Summary())
	}
}

func TestDiffOrdering(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)

	// remove "Basics" (position 1), add "Testing" at position 3
	draft.Sections = draft.Sections[1:]
	draft.Sections = append(draft.Sections, &types.SectionDraft{
		ID:       uuid.New(),
		DraftID:  draft.ID,
		Title:    "Testing",
		Position: 3,
	})

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(cs.Sections) != 2 {
		t.Fatalf("expected 2 section changes, got %d", len(cs.Sections))
	}
	if cs.Sections[0].Kind != ChangeRemoved || cs.Sections[0].Position != 1 {
		t.Fatalf("expected removal of position 1 first, got %+v", cs.Sections[0])
	}
	if cs.Sections[1].Kind != ChangeAdded || cs.Sections[1].Position != 3 {
		t.Fatalf("expected addition at position 3 second, got %+v", cs.Sections[1])
	}
}

func TestSummaryEveryLineTerminated(t *testing.T) {
	differ := NewCourseDiffer(testLogger(t))
	course := liveCourse()
	draft := draftOf(course)
	draft.Title = "Go from zero"
	draft.Sections = draft.Sections[:1]
	draft.Sections[0].Title = "Foundations"

	cs, err := differ.Diff(course, draft)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	summary := cs.Summary()
	if !strings.HasSuffix(summary, "\n") {
		t.Fatalf("summary must end with newline: %q", summary)
	}
	for _, line := range strings.Split(strings.TrimSuffix(summary, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			t.Fatalf("summary has blank line: %q", summary)
		}
	}
}
