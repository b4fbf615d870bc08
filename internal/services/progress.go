package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	enrollrepo "github.com/studora/studora-backend/internal/data/repos/enrollment"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// ProgressInvalidator recomputes stored section progress after a merge
// changed lesson content. It runs on the publish transaction, so it
// sees the merged rows and its writes commit or roll back with them.
type ProgressInvalidator struct {
	log            *logger.Logger
	lessonRepo     catalogrepo.LessonRepo
	enrollmentRepo enrollrepo.EnrollmentRepo
	progressRepo   enrollrepo.ProgressRepo
}

func NewProgressInvalidator(
	lessonRepo catalogrepo.LessonRepo,
	enrollmentRepo enrollrepo.EnrollmentRepo,
	progressRepo enrollrepo.ProgressRepo,
	baseLog *logger.Logger,
) *ProgressInvalidator {
	return &ProgressInvalidator{
		log:            baseLog.With("service", "ProgressInvalidator"),
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
	}
}

// Invalidate recomputes progress for every (enrolled learner, affected
// section) pair as doneLessons / totalLessons against the post-merge
// rows. Added sections carry no stored progress and removed sections
// lose theirs in the cascade, so only surviving sections are touched.
// A section left with zero lessons resets to 0.
func (inv *ProgressInvalidator) Invalidate(ctx context.Context, tx *gorm.DB, course *types.Course, changes *ChangeSet) error {
	sectionIDs := affectedSectionIDs(changes)
	if len(sectionIDs) == 0 {
		return nil
	}

	enrollments, err := inv.enrollmentRepo.GetByCourseID(ctx, tx, course.ID)
	if err != nil {
		return fmt.Errorf("load enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return nil
	}

	for _, sectionID := range sectionIDs {
		total, err := inv.lessonRepo.CountBySectionID(ctx, tx, sectionID)
		if err != nil {
			return fmt.Errorf("count lessons for section %s: %w", sectionID, err)
		}
		for _, enrollment := range enrollments {
			if err := inv.recompute(ctx, tx, enrollment.UserID, course.ID, sectionID, total); err != nil {
				return err
			}
		}
	}

	inv.log.Info("section progress recomputed",
		"course_id", course.ID,
		"sections", len(sectionIDs),
		"learners", len(enrollments))
	return nil
}

func (inv *ProgressInvalidator) recompute(ctx context.Context, tx *gorm.DB, userID, courseID, sectionID uuid.UUID, total int64) error {
	var fraction float64
	if total > 0 {
		done, err := inv.progressRepo.CountDoneLessons(ctx, tx, userID, sectionID)
		if err != nil {
			return fmt.Errorf("count done lessons: %w", err)
		}
		fraction = float64(done) / float64(total)
	}

	progress := &types.SectionProgress{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		SectionID: sectionID,
		Progress:  fraction,
		UpdatedAt: time.Now().UTC(),
	}
	if err := inv.progressRepo.UpsertSectionProgress(ctx, tx, progress); err != nil {
		return fmt.Errorf("upsert section progress: %w", err)
	}
	return nil
}

// affectedSectionIDs picks the surviving live sections whose lesson
// content changed in a way that can move a stored fraction.
func affectedSectionIDs(changes *ChangeSet) []uuid.UUID {
	var ids []uuid.UUID
	for i := range changes.Sections {
		sc := &changes.Sections[i]
		if sc.Kind != ChangeModified {
			continue
		}
		if sc.AffectsProgress() {
			ids = append(ids, sc.SectionID)
		}
	}
	return ids
}
