// Package domain aggregates the per-area entity packages behind one
// import path for repos and services.
package domain

import (
	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/domain/enrollment"
	"github.com/studora/studora-backend/internal/domain/notification"
	"github.com/studora/studora-backend/internal/domain/user"
)

type User = user.User

type Course = catalog.Course
type Section = catalog.Section
type Lesson = catalog.Lesson
type LessonResource = catalog.LessonResource
type QuizQuestion = catalog.QuizQuestion
type QuizOption = catalog.QuizOption

type CourseDraft = catalog.CourseDraft
type SectionDraft = catalog.SectionDraft
type LessonDraft = catalog.LessonDraft
type QuizQuestionDraft = catalog.QuizQuestionDraft
type QuizOptionDraft = catalog.QuizOptionDraft

type Enrollment = enrollment.Enrollment
type SectionProgress = enrollment.SectionProgress
type LessonCompletion = enrollment.LessonCompletion

type Notification = notification.Notification

type CourseStatus = catalog.CourseStatus
type DraftStatus = catalog.DraftStatus
type LessonType = catalog.LessonType

const (
	CourseStatusDraft    = catalog.CourseStatusDraft
	CourseStatusPending  = catalog.CourseStatusPending
	CourseStatusApproved = catalog.CourseStatusApproved
	CourseStatusRejected = catalog.CourseStatusRejected
	CourseStatusDisabled = catalog.CourseStatusDisabled

	DraftStatusEditing       = catalog.DraftStatusEditing
	DraftStatusPendingReview = catalog.DraftStatusPendingReview
	DraftStatusRejected      = catalog.DraftStatusRejected

	LessonTypeVideo   = catalog.LessonTypeVideo
	LessonTypeReading = catalog.LessonTypeReading
	LessonTypeQuiz    = catalog.LessonTypeQuiz

	RoleTutor   = user.RoleTutor
	RoleLearner = user.RoleLearner
	RoleAdmin   = user.RoleAdmin

	NotificationCourseUpdated = notification.TypeCourseUpdated
	NotificationDraftApproved = notification.TypeDraftApproved
	NotificationDraftRejected = notification.TypeDraftRejected
)
