package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// FallbackSummary is emitted when a publish produces no visible change
// record, so notification copy is never empty. Downstream text depends
// on the exact string, trailing newline included.
const FallbackSummary = "Course was updated with minor internal changes.\n"

type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// FieldChange records one course-metadata difference as old/new text.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// LessonChange classifies one lesson of a section pair.
//
// AffectsProgress is what drives the progress invalidator: true when
// the lesson was removed, its quiz set differs from live, or its
// content payload (type, video URL, reading text) changed. Title or
// duration edits alone do not reset anyone's progress.
type LessonChange struct {
	Kind     ChangeKind
	LessonID uuid.UUID          // live lesson id; uuid.Nil for added lessons
	Draft    *types.LessonDraft // nil for removed lessons
	Live     *types.Lesson      // nil for added lessons
	Title    string
	Position int

	QuizChanged     bool
	AffectsProgress bool
}

// SectionChange classifies one section of the live/draft pair,
// including its lesson-level changes in position order.
type SectionChange struct {
	Kind      ChangeKind
	SectionID uuid.UUID           // live section id; uuid.Nil for added sections
	Draft     *types.SectionDraft // nil for removed sections
	Live      *types.Section      // nil for added sections
	Title     string
	Position  int

	Renamed   bool
	Reordered bool
	Lessons   []LessonChange
}

// AffectsProgress reports whether any surviving learner progress under
// this section needs recomputation.
func (sc *SectionChange) AffectsProgress() bool {
	for i := range sc.Lessons {
		if sc.Lessons[i].AffectsProgress {
			return true
		}
	}
	return false
}

// ChangeSet is the full structured diff between a live course and its
// draft: metadata field changes plus section/lesson changes ordered by
// position so summaries read in curriculum order.
type ChangeSet struct {
	CourseID uuid.UUID
	DraftID  uuid.UUID

	Metadata []FieldChange
	Sections []SectionChange
}

func (cs *ChangeSet) Empty() bool {
	return len(cs.Metadata) == 0 && len(cs.Sections) == 0
}

// RemovedLessonIDs collects every live lesson id deleted by the merge,
// including lessons of removed sections.
func (cs *ChangeSet) RemovedLessonIDs() []uuid.UUID {
	var ids []uuid.UUID
	for i := range cs.Sections {
		sc := &cs.Sections[i]
		if sc.Kind == ChangeRemoved && sc.Live != nil {
			for _, lesson := range sc.Live.Lessons {
				ids = append(ids, lesson.ID)
			}
			continue
		}
		for j := range sc.Lessons {
			if sc.Lessons[j].Kind == ChangeRemoved {
				ids = append(ids, sc.Lessons[j].LessonID)
			}
		}
	}
	return ids
}

// Summary renders the learner-facing change description, one line per
// change record, each line newline-terminated. An empty diff yields
// FallbackSummary.
func (cs *ChangeSet) Summary() string {
	var out string
	for _, fc := range cs.Metadata {
		if fc.Field == "title" {
			out += fmt.Sprintf("Course title changed from %q to %q.\n", fc.Old, fc.New)
			continue
		}
		out += fmt.Sprintf("Course %s was updated.\n", fc.Field)
	}
	for i := range cs.Sections {
		sc := &cs.Sections[i]
		switch sc.Kind {
		case ChangeAdded:
			out += fmt.Sprintf("New section %q was added.\n", sc.Title)
		case ChangeRemoved:
			out += fmt.Sprintf("Section %q was removed.\n", sc.Title)
		case ChangeModified:
			if sc.Renamed {
				out += fmt.Sprintf("Section %q was renamed to %q.\n", sc.Live.Title, sc.Title)
			}
			for j := range sc.Lessons {
				lc := &sc.Lessons[j]
				switch lc.Kind {
				case ChangeAdded:
					out += fmt.Sprintf("New lesson %q was added to section %q.\n", lc.Title, sc.Title)
				case ChangeRemoved:
					out += fmt.Sprintf("Lesson %q was removed from section %q.\n", lc.Title, sc.Title)
				case ChangeModified:
					if lc.QuizChanged {
						out += fmt.Sprintf("The quiz for lesson %q was updated.\n", lc.Title)
					} else {
						out += fmt.Sprintf("Lesson %q was updated.\n", lc.Title)
					}
				}
			}
		}
	}
	if out == "" {
		return FallbackSummary
	}
	return out
}

// CourseDiffer walks a fully loaded live course graph and draft graph
// and produces the ChangeSet the merge applier and progress
// invalidator consume. It never mutates either graph.
type CourseDiffer struct {
	log *logger.Logger
}

func NewCourseDiffer(baseLog *logger.Logger) *CourseDiffer {
	return &CourseDiffer{log: baseLog.With("service", "CourseDiffer")}
}

// Diff classifies every draft node against the live graph. A draft
// node whose original id does not resolve to a live node of this
// course is a structural error and fails the whole diff.
func (d *CourseDiffer) Diff(course *types.Course, draft *types.CourseDraft) (*ChangeSet, error) {
	cs := &ChangeSet{CourseID: course.ID, DraftID: draft.ID}
	cs.Metadata = diffMetadata(course, draft)

	liveSections := make(map[uuid.UUID]*types.Section, len(course.Sections))
	for _, s := range course.Sections {
		liveSections[s.ID] = s
	}

	seen := make(map[uuid.UUID]bool, len(draft.Sections))
	for _, sd := range draft.Sections {
		if sd.OriginalSectionID == nil {
			sc := SectionChange{
				Kind:     ChangeAdded,
				Draft:    sd,
				Title:    sd.Title,
				Position: sd.Position,
			}
			for _, ld := range sd.Lessons {
				sc.Lessons = append(sc.Lessons, LessonChange{
					Kind:            ChangeAdded,
					Draft:           ld,
					Title:           ld.Title,
					Position:        ld.Position,
					AffectsProgress: false,
				})
			}
			cs.Sections = append(cs.Sections, sc)
			continue
		}

		live, ok := liveSections[*sd.OriginalSectionID]
		if !ok {
			return nil, catalog.NewStructuralError("section", sd.ID, *sd.OriginalSectionID)
		}
		seen[live.ID] = true

		sc, err := d.diffSection(live, sd)
		if err != nil {
			return nil, err
		}
		if sc != nil {
			cs.Sections = append(cs.Sections, *sc)
		}
	}

	for _, live := range course.Sections {
		if seen[live.ID] {
			continue
		}
		cs.Sections = append(cs.Sections, SectionChange{
			Kind:      ChangeRemoved,
			SectionID: live.ID,
			Live:      live,
			Title:     live.Title,
			Position:  live.Position,
		})
	}

	sort.SliceStable(cs.Sections, func(i, j int) bool {
		return cs.Sections[i].Position < cs.Sections[j].Position
	})
	return cs, nil
}

// diffSection compares one matched live/draft section pair. Returns
// nil when the pair is identical at every granularity.
func (d *CourseDiffer) diffSection(live *types.Section, sd *types.SectionDraft) (*SectionChange, error) {
	sc := &SectionChange{
		Kind:      ChangeModified,
		SectionID: live.ID,
		Draft:     sd,
		Live:      live,
		Title:     sd.Title,
		Position:  sd.Position,
		Renamed:   live.Title != sd.Title,
		Reordered: live.Position != sd.Position,
	}

	liveLessons := make(map[uuid.UUID]*types.Lesson, len(live.Lessons))
	for _, l := range live.Lessons {
		liveLessons[l.ID] = l
	}

	seen := make(map[uuid.UUID]bool, len(sd.Lessons))
	for _, ld := range sd.Lessons {
		if ld.OriginalLessonID == nil {
			sc.Lessons = append(sc.Lessons, LessonChange{
				Kind:     ChangeAdded,
				Draft:    ld,
				Title:    ld.Title,
				Position: ld.Position,
			})
			continue
		}

		liveLesson, ok := liveLessons[*ld.OriginalLessonID]
		if !ok {
			return nil, catalog.NewStructuralError("lesson", ld.ID, *ld.OriginalLessonID)
		}
		seen[liveLesson.ID] = true

		if lc := diffLesson(liveLesson, ld); lc != nil {
			sc.Lessons = append(sc.Lessons, *lc)
		}
	}

	for _, liveLesson := range live.Lessons {
		if seen[liveLesson.ID] {
			continue
		}
		sc.Lessons = append(sc.Lessons, LessonChange{
			Kind:            ChangeRemoved,
			LessonID:        liveLesson.ID,
			Live:            liveLesson,
			Title:           liveLesson.Title,
			Position:        liveLesson.Position,
			AffectsProgress: true,
		})
	}

	sort.SliceStable(sc.Lessons, func(i, j int) bool {
		return sc.Lessons[i].Position < sc.Lessons[j].Position
	})

	if !sc.Renamed && !sc.Reordered && len(sc.Lessons) == 0 {
		return nil, nil
	}
	return sc, nil
}

// diffLesson compares one matched live/draft lesson pair and returns
// nil when nothing differs.
func diffLesson(live *types.Lesson, ld *types.LessonDraft) *LessonChange {
	quizChanged := !quizSetsEqual(live.Questions, ld.Questions)
	contentChanged := live.Type != ld.Type ||
		live.VideoURL != ld.VideoURL ||
		live.Content != ld.Content
	metaChanged := live.Title != ld.Title ||
		live.Position != ld.Position ||
		live.DurationMinutes != ld.DurationMinutes

	if !quizChanged && !contentChanged && !metaChanged {
		return nil
	}
	return &LessonChange{
		Kind:            ChangeModified,
		LessonID:        live.ID,
		Draft:           ld,
		Live:            live,
		Title:           ld.Title,
		Position:        ld.Position,
		QuizChanged:     quizChanged,
		AffectsProgress: quizChanged || contentChanged,
	}
}

func diffMetadata(course *types.Course, draft *types.CourseDraft) []FieldChange {
	var out []FieldChange
	add := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			out = append(out, FieldChange{Field: field, Old: oldVal, New: newVal})
		}
	}
	add("title", course.Title, draft.Title)
	add("short description", course.ShortDescription, draft.ShortDescription)
	add("description", course.Description, draft.Description)
	add("requirement", course.Requirement, draft.Requirement)
	add("price", fmt.Sprintf("%d", course.PriceCents), fmt.Sprintf("%d", draft.PriceCents))
	add("duration", fmt.Sprintf("%d", course.DurationMinutes), fmt.Sprintf("%d", draft.DurationMinutes))
	add("language", course.Language, draft.Language)
	add("level", course.Level, draft.Level)
	add("category", uuidPtrString(course.CategoryID), uuidPtrString(draft.CategoryID))
	return out
}

func uuidPtrString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// canonical quiz forms: surrogate ids stripped, children in position
// order, so live and draft sets compare by content only.

type quizOptionKey struct {
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Position int    `json:"position"`
}

type quizQuestionKey struct {
	Text        string          `json:"text"`
	Position    int             `json:"position"`
	Explanation string          `json:"explanation"`
	Score       int             `json:"score"`
	Options     []quizOptionKey `json:"options"`
}

func quizSetsEqual(live []*types.QuizQuestion, draft []*types.QuizQuestionDraft) bool {
	liveKeys := make([]quizQuestionKey, 0, len(live))
	for _, q := range live {
		k := quizQuestionKey{Text: q.Text, Position: q.Position, Explanation: q.Explanation, Score: q.Score}
		for _, o := range q.Options {
			k.Options = append(k.Options, quizOptionKey{Text: o.Text, Correct: o.Correct, Position: o.Position})
		}
		sort.SliceStable(k.Options, func(i, j int) bool { return k.Options[i].Position < k.Options[j].Position })
		liveKeys = append(liveKeys, k)
	}
	draftKeys := make([]quizQuestionKey, 0, len(draft))
	for _, q := range draft {
		k := quizQuestionKey{Text: q.Text, Position: q.Position, Explanation: q.Explanation, Score: q.Score}
		for _, o := range q.Options {
			k.Options = append(k.Options, quizOptionKey{Text: o.Text, Correct: o.Correct, Position: o.Position})
		}
		sort.SliceStable(k.Options, func(i, j int) bool { return k.Options[i].Position < k.Options[j].Position })
		draftKeys = append(draftKeys, k)
	}
	sort.SliceStable(liveKeys, func(i, j int) bool { return liveKeys[i].Position < liveKeys[j].Position })
	sort.SliceStable(draftKeys, func(i, j int) bool { return draftKeys[i].Position < draftKeys[j].Position })

	liveRaw, err := json.Marshal(liveKeys)
	if err != nil {
		return false
	}
	draftRaw, err := json.Marshal(draftKeys)
	if err != nil {
		return false
	}
	return string(liveRaw) == string(draftRaw)
}
