package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	Courses     CourseStore
	Enrollments EnrollmentStore
	Progress    ProgressStore
}

func NewEnrollmentService(courses CourseStore, enrollments EnrollmentStore, progress ProgressStore) *EnrollmentService {
	return &EnrollmentService{
		Courses:     courses,
		Enrollments: enrollments,
		Progress:    progress,
	}
}

// Enroll 报名闸口：课程存在 → 口令精确比对（区分大小写）→ 幂等入册。
// 已是成员时直接成功返回，不报错也不产生重复行；口令一经知晓即长期
// 有效，教师轮换口令只影响之后的报名。
func (s *EnrollmentService) Enroll(courseID string, userID uint, suppliedCode string) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrCourseNotFound
		}
		return err
	}

	if course.AccessCode != suppliedCode {
		return util.ErrInvalidAccessCode
	}

	return s.Enrollments.Enroll(courseID, userID)
}

func (s *EnrollmentService) IsEnrolled(courseID string, userID uint) (bool, error) {
	return s.Enrollments.IsEnrolled(courseID, userID)
}

// GetEnrolledCourse 播放器用：取已报名课程的完整视图（URL 全量可见）。
// 未报名按课程不存在处理，不泄露内容树。
func (s *EnrollmentService) GetEnrolledCourse(courseID string, caller *util.Claims) (*model.CourseView, error) {
	enrolled, err := s.Enrollments.IsEnrolled(courseID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	view := RenderCourseView(course, caller, true)
	return &view, nil
}

// ListEnrolledCourses "我的课程"：每门课带当前进度快照
func (s *EnrollmentService) ListEnrolledCourses(caller *util.Claims) ([]model.EnrolledCourseView, error) {
	courseIDs, err := s.Enrollments.ListCourseIDs(caller.UserID)
	if err != nil {
		return nil, err
	}

	courses, err := s.Courses.FindByIDs(courseIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.EnrolledCourseView, 0, len(courses))
	for i := range courses {
		course := &courses[i]

		progress, err := s.Progress.FindByUserAndCourse(caller.UserID, course.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}

		views = append(views, model.EnrolledCourseView{
			Course:   RenderCourseView(course, caller, true),
			Progress: *buildSnapshot(course, progress),
		})
	}

	return views, nil
}
