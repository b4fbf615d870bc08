package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	enrollrepo "github.com/studora/studora-backend/internal/data/repos/enrollment"
	userrepo "github.com/studora/studora-backend/internal/data/repos/user"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// PublishResult reports what a completed publish did, for the HTTP
// layer and for operator logs.
type PublishResult struct {
	Course           *types.Course
	Changes          *ChangeSet
	Summary          string
	NotifiedLearners int
}

// CoursePublishService approves a pending draft: it diffs the draft
// against the live course, merges the changes, recomputes affected
// learner progress and deletes the draft, all in one transaction.
// Notifications go out only after the transaction commits.
type CoursePublishService interface {
	Publish(ctx context.Context, draftID uuid.UUID) (*PublishResult, error)
}

type coursePublishService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     catalogrepo.CourseRepo
	draftRepo      catalogrepo.CourseDraftRepo
	enrollmentRepo enrollrepo.EnrollmentRepo
	userRepo       userrepo.UserRepo
	differ         *CourseDiffer
	applier        *MergeApplier
	invalidator    *ProgressInvalidator
	notifier       CourseNotifier
}

func NewCoursePublishService(
	db *gorm.DB,
	courseRepo catalogrepo.CourseRepo,
	draftRepo catalogrepo.CourseDraftRepo,
	enrollmentRepo enrollrepo.EnrollmentRepo,
	userRepo userrepo.UserRepo,
	differ *CourseDiffer,
	applier *MergeApplier,
	invalidator *ProgressInvalidator,
	notifier CourseNotifier,
	baseLog *logger.Logger,
) CoursePublishService {
	return &coursePublishService{
		db:             db,
		log:            baseLog.With("service", "CoursePublishService"),
		courseRepo:     courseRepo,
		draftRepo:      draftRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		differ:         differ,
		applier:        applier,
		invalidator:    invalidator,
		notifier:       notifier,
	}
}

func (s *coursePublishService) Publish(ctx context.Context, draftID uuid.UUID) (*PublishResult, error) {
	var (
		course      *types.Course
		changes     *ChangeSet
		enrollments []*types.Enrollment
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drafts, err := s.draftRepo.GetByIDs(ctx, tx, []uuid.UUID{draftID})
		if err != nil {
			return fmt.Errorf("load draft: %w", err)
		}
		if len(drafts) == 0 {
			return catalog.ErrDraftNotFound
		}
		if drafts[0].Status != types.DraftStatusPendingReview {
			return catalog.ErrDraftNotPending
		}

		draft, err := s.draftRepo.GetWithCurriculum(ctx, tx, draftID)
		if err != nil {
			return fmt.Errorf("load draft curriculum: %w", err)
		}

		course, err = s.courseRepo.GetWithCurriculum(ctx, tx, draft.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrCourseNotFound
			}
			return fmt.Errorf("load course curriculum: %w", err)
		}

		changes, err = s.differ.Diff(course, draft)
		if err != nil {
			return fmt.Errorf("diff draft against course: %w", err)
		}

		if err := s.applier.Apply(ctx, tx, course, draft, changes); err != nil {
			return fmt.Errorf("apply merge: %w", err)
		}

		if err := s.invalidator.Invalidate(ctx, tx, course, changes); err != nil {
			return fmt.Errorf("invalidate progress: %w", err)
		}

		enrollments, err = s.enrollmentRepo.GetByCourseID(ctx, tx, course.ID)
		if err != nil {
			return fmt.Errorf("load enrollments: %w", err)
		}

		if err := s.draftRepo.DeleteCascade(ctx, tx, draftID); err != nil {
			return fmt.Errorf("delete draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := changes.Summary()
	s.log.Info("draft published",
		"draft_id", draftID,
		"course_id", course.ID,
		"changed_sections", len(changes.Sections),
		"changed_fields", len(changes.Metadata))

	notified := s.notify(ctx, course, changes, summary, enrollments)

	return &PublishResult{
		Course:           course,
		Changes:          changes,
		Summary:          summary,
		NotifiedLearners: notified,
	}, nil
}

// notify runs after commit. Learners hear about the update only when
// someone is enrolled; a publish that changed nothing for a course
// nobody follows stays silent entirely.
func (s *coursePublishService) notify(ctx context.Context, course *types.Course, changes *ChangeSet, summary string, enrollments []*types.Enrollment) int {
	if s.notifier == nil {
		return 0
	}

	learners := make([]*types.User, 0, len(enrollments))
	for _, e := range enrollments {
		if e.User != nil {
			learners = append(learners, e.User)
		}
	}
	if len(learners) == 0 && changes.Empty() {
		return 0
	}
	if len(learners) > 0 {
		s.notifier.CourseUpdated(ctx, learners, course, summary)
	}

	tutors, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{course.TutorID})
	if err != nil || len(tutors) == 0 {
		s.log.Warn("could not load tutor for approval notification", "course_id", course.ID, "error", err)
		return len(learners)
	}
	s.notifier.DraftApproved(ctx, tutors[0], course)

	return len(learners)
}
