package service

import (
	"lms_backend/internal/model"
)

// 服务层依赖的小接口，由 repository 包的具体类型实现。
// 单测用内存实现替换（见 mock_repos_test.go）。

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByIDs(ids []uint) ([]model.User, error)
	UpdateRole(id uint, role model.UserRole) error
}

type CourseStore interface {
	Create(course *model.Course) error
	FindByID(id string) (*model.Course, error)
	FindPublished() ([]model.Course, error)
	FindByIDs(ids []string) ([]model.Course, error)
	FindByEducator(educatorID uint) ([]model.Course, error)
	FindByEducatorAndAccessCode(educatorID uint, accessCode string) (*model.Course, error)
	Update(course *model.Course) error
	AppendChapter(chapter *model.Chapter) error
	AppendLecture(lecture *model.Lecture) error
	FindChapter(courseID, chapterID string) (*model.Chapter, error)
	MaxChapterOrder(courseID string) (int, error)
	MaxLectureOrder(chapterID string) (int, error)
	DeleteLectures(courseID string) error
	DeleteChapters(courseID string) error
	Delete(courseID string) error
}

type EnrollmentStore interface {
	Enroll(courseID string, userID uint) error
	IsEnrolled(courseID string, userID uint) (bool, error)
	ListCourseIDs(userID uint) ([]string, error)
	ListMembers(courseID string) ([]model.Enrollment, error)
	CountByCourse(courseID string) (int64, error)
	DeleteByCourse(courseID string) error
}

type ProgressStore interface {
	FindByUserAndCourse(userID uint, courseID string) (*model.CourseProgress, error)
	Save(progress *model.CourseProgress) error
	DeleteByCourse(courseID string) error
}

type RatingStore interface {
	Upsert(rating *model.CourseRating) error
	SummaryByCourse(courseID string) (model.RatingSummary, error)
	DeleteByCourse(courseID string) error
}
