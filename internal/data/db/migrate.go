package db

import (
	types "github.com/studora/studora-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.User{},

		&types.Course{},
		&types.Section{},
		&types.Lesson{},
		&types.LessonResource{},
		&types.QuizQuestion{},
		&types.QuizOption{},

		&types.CourseDraft{},
		&types.SectionDraft{},
		&types.LessonDraft{},
		&types.QuizQuestionDraft{},
		&types.QuizOptionDraft{},

		&types.Enrollment{},
		&types.SectionProgress{},
		&types.LessonCompletion{},

		&types.Notification{},
	)
}
