package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	enrollrepo "github.com/studora/studora-backend/internal/data/repos/enrollment"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// CourseService is the read side of the catalog: the live curriculum
// as learners see it.
type CourseService interface {
	GetWithCurriculum(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	GetByTutor(ctx context.Context, tutorID uuid.UUID) ([]*types.Course, error)
	// GetSectionProgress returns the stored fraction for one learner
	// and section, zero when no row exists yet.
	GetSectionProgress(ctx context.Context, userID, sectionID uuid.UUID) (float64, error)
}

type courseService struct {
	log          *logger.Logger
	courseRepo   catalogrepo.CourseRepo
	progressRepo enrollrepo.ProgressRepo
}

func NewCourseService(
	courseRepo catalogrepo.CourseRepo,
	progressRepo enrollrepo.ProgressRepo,
	baseLog *logger.Logger,
) CourseService {
	return &courseService{
		log:          baseLog.With("service", "CourseService"),
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
	}
}

func (s *courseService) GetWithCurriculum(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	course, err := s.courseRepo.GetWithCurriculum(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCourseNotFound
		}
		return nil, fmt.Errorf("load course curriculum: %w", err)
	}
	return course, nil
}

func (s *courseService) GetByTutor(ctx context.Context, tutorID uuid.UUID) ([]*types.Course, error) {
	courses, err := s.courseRepo.GetByTutorIDs(ctx, nil, []uuid.UUID{tutorID})
	if err != nil {
		return nil, fmt.Errorf("load tutor courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetSectionProgress(ctx context.Context, userID, sectionID uuid.UUID) (float64, error) {
	progress, err := s.progressRepo.GetSectionProgress(ctx, nil, userID, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load section progress: %w", err)
	}
	return progress.Progress, nil
}
