package service

import (
	"sort"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type DashboardService struct {
	Courses     CourseStore
	Enrollments EnrollmentStore
	Users       UserStore
}

func NewDashboardService(courses CourseStore, enrollments EnrollmentStore, users UserStore) *DashboardService {
	return &DashboardService{
		Courses:     courses,
		Enrollments: enrollments,
		Users:       users,
	}
}

const dashboardRecentLimit = 10

// Dashboard 教师工作台：课程数、报名总数、最近报名的学生
func (s *DashboardService) Dashboard(educatorID uint) (*model.EducatorDashboard, error) {
	courses, err := s.Courses.FindByEducator(educatorID)
	if err != nil {
		return nil, err
	}

	dashboard := &model.EducatorDashboard{
		TotalCourses:         len(courses),
		EnrolledStudentsData: []model.EnrolledStudentData{},
	}

	var all []model.EnrolledStudentData
	userIDs := make(map[uint]struct{})

	for i := range courses {
		members, err := s.Enrollments.ListMembers(courses[i].ID)
		if err != nil {
			return nil, err
		}
		dashboard.TotalEnrollments += len(members)
		for _, m := range members {
			all = append(all, model.EnrolledStudentData{
				CourseTitle: courses[i].Title,
				StudentID:   m.UserID,
				EnrolledAt:  m.CreatedAt,
			})
			userIDs[m.UserID] = struct{}{}
		}
	}

	// 最近报名在前
	sort.Slice(all, func(i, j int) bool {
		return all[i].EnrolledAt.After(all[j].EnrolledAt)
	})
	if len(all) > dashboardRecentLimit {
		all = all[:dashboardRecentLimit]
	}

	if err := s.fillStudentNames(all, userIDs); err != nil {
		return nil, err
	}

	dashboard.EnrolledStudentsData = all
	return dashboard, nil
}

// StudentsByAccessCode 教师按口令查某课程的已报名学生名单
func (s *DashboardService) StudentsByAccessCode(educatorID uint, accessCode string) (string, []model.EnrolledStudentData, error) {
	course, err := s.Courses.FindByEducatorAndAccessCode(educatorID, accessCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, util.ErrCourseNotFound
		}
		return "", nil, err
	}

	members, err := s.Enrollments.ListMembers(course.ID)
	if err != nil {
		return "", nil, err
	}

	students := make([]model.EnrolledStudentData, 0, len(members))
	userIDs := make(map[uint]struct{})
	for _, m := range members {
		students = append(students, model.EnrolledStudentData{
			CourseTitle: course.Title,
			StudentID:   m.UserID,
			EnrolledAt:  m.CreatedAt,
		})
		userIDs[m.UserID] = struct{}{}
	}

	if err := s.fillStudentNames(students, userIDs); err != nil {
		return "", nil, err
	}

	return course.Title, students, nil
}

func (s *DashboardService) fillStudentNames(rows []model.EnrolledStudentData, idSet map[uint]struct{}) error {
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.Users.FindByIDs(ids)
	if err != nil {
		return err
	}

	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range rows {
		rows[i].StudentName = names[rows[i].StudentID]
	}
	return nil
}
