package app

import (
	"gorm.io/gorm"

	catalogrepo "github.com/studora/studora-backend/internal/data/repos/catalog"
	enrollrepo "github.com/studora/studora-backend/internal/data/repos/enrollment"
	notifrepo "github.com/studora/studora-backend/internal/data/repos/notification"
	userrepo "github.com/studora/studora-backend/internal/data/repos/user"
	"github.com/studora/studora-backend/internal/platform/logger"
)

type Repos struct {
	User           userrepo.UserRepo
	Course         catalogrepo.CourseRepo
	Section        catalogrepo.SectionRepo
	Lesson         catalogrepo.LessonRepo
	LessonResource catalogrepo.LessonResourceRepo
	QuizQuestion   catalogrepo.QuizQuestionRepo
	CourseDraft    catalogrepo.CourseDraftRepo
	Enrollment     enrollrepo.EnrollmentRepo
	Progress       enrollrepo.ProgressRepo
	Notification   notifrepo.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           userrepo.NewUserRepo(db, log),
		Course:         catalogrepo.NewCourseRepo(db, log),
		Section:        catalogrepo.NewSectionRepo(db, log),
		Lesson:         catalogrepo.NewLessonRepo(db, log),
		LessonResource: catalogrepo.NewLessonResourceRepo(db, log),
		QuizQuestion:   catalogrepo.NewQuizQuestionRepo(db, log),
		CourseDraft:    catalogrepo.NewCourseDraftRepo(db, log),
		Enrollment:     enrollrepo.NewEnrollmentRepo(db, log),
		Progress:       enrollrepo.NewProgressRepo(db, log),
		Notification:   notifrepo.NewNotificationRepo(db, log),
	}
}
