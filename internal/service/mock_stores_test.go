package service

import (
	"fmt"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

// 内存版 store 实现，单测专用。语义对齐 repository 包：
// 未找到统一返回 gorm.ErrRecordNotFound，报名插入为冲突忽略。

type memUserStore struct {
	seq   uint
	users map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint]*model.User)}
}

func (m *memUserStore) Create(user *model.User) error {
	m.seq++
	user.ID = m.seq
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserStore) FindByID(id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserStore) FindByIDs(ids []uint) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserStore) UpdateRole(id uint, role model.UserRole) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

type memCourseStore struct {
	courses map[string]*model.Course
}

func newMemCourseStore() *memCourseStore {
	return &memCourseStore{courses: make(map[string]*model.Course)}
}

func (m *memCourseStore) put(course *model.Course) {
	m.courses[course.ID] = course
}

func (m *memCourseStore) Create(course *model.Course) error {
	m.put(course)
	return nil
}

func (m *memCourseStore) FindByID(id string) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *memCourseStore) FindPublished() ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.courses {
		if c.Published {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourseStore) FindByIDs(ids []string) ([]model.Course, error) {
	var out []model.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourseStore) FindByEducator(educatorID uint) ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.courses {
		if c.EducatorID == educatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourseStore) FindByEducatorAndAccessCode(educatorID uint, accessCode string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.EducatorID == educatorID && c.AccessCode == accessCode {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCourseStore) Update(course *model.Course) error {
	if _, ok := m.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.courses[course.ID] = course
	return nil
}

func (m *memCourseStore) AppendChapter(chapter *model.Chapter) error {
	c, ok := m.courses[chapter.CourseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Chapters = append(c.Chapters, *chapter)
	return nil
}

func (m *memCourseStore) AppendLecture(lecture *model.Lecture) error {
	c, ok := m.courses[lecture.CourseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range c.Chapters {
		if c.Chapters[i].ID == lecture.ChapterID {
			c.Chapters[i].Lectures = append(c.Chapters[i].Lectures, *lecture)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memCourseStore) FindChapter(courseID, chapterID string) (*model.Chapter, error) {
	c, ok := m.courses[courseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range c.Chapters {
		if c.Chapters[i].ID == chapterID {
			return &c.Chapters[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCourseStore) MaxChapterOrder(courseID string) (int, error) {
	max := -1
	c, ok := m.courses[courseID]
	if !ok {
		return max, nil
	}
	for _, ch := range c.Chapters {
		if ch.Order > max {
			max = ch.Order
		}
	}
	return max, nil
}

func (m *memCourseStore) MaxLectureOrder(chapterID string) (int, error) {
	max := -1
	for _, c := range m.courses {
		for _, ch := range c.Chapters {
			if ch.ID != chapterID {
				continue
			}
			for _, l := range ch.Lectures {
				if l.Order > max {
					max = l.Order
				}
			}
		}
	}
	return max, nil
}

func (m *memCourseStore) DeleteLectures(courseID string) error {
	if c, ok := m.courses[courseID]; ok {
		for i := range c.Chapters {
			c.Chapters[i].Lectures = nil
		}
	}
	return nil
}

func (m *memCourseStore) DeleteChapters(courseID string) error {
	if c, ok := m.courses[courseID]; ok {
		c.Chapters = nil
	}
	return nil
}

func (m *memCourseStore) Delete(courseID string) error {
	delete(m.courses, courseID)
	return nil
}

type memEnrollmentStore struct {
	rows []model.Enrollment
}

func newMemEnrollmentStore() *memEnrollmentStore {
	return &memEnrollmentStore{}
}

func (m *memEnrollmentStore) Enroll(courseID string, userID uint) error {
	for _, r := range m.rows {
		if r.CourseID == courseID && r.UserID == userID {
			// 冲突忽略
			return nil
		}
	}
	m.rows = append(m.rows, model.Enrollment{CourseID: courseID, UserID: userID})
	return nil
}

func (m *memEnrollmentStore) IsEnrolled(courseID string, userID uint) (bool, error) {
	for _, r := range m.rows {
		if r.CourseID == courseID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEnrollmentStore) ListCourseIDs(userID uint) ([]string, error) {
	var out []string
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r.CourseID)
		}
	}
	return out, nil
}

func (m *memEnrollmentStore) ListMembers(courseID string) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, r := range m.rows {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memEnrollmentStore) CountByCourse(courseID string) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *memEnrollmentStore) DeleteByCourse(courseID string) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.CourseID != courseID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

type memProgressStore struct {
	rows map[string]*model.CourseProgress
}

func newMemProgressStore() *memProgressStore {
	return &memProgressStore{rows: make(map[string]*model.CourseProgress)}
}

func progressKey(userID uint, courseID string) string {
	return fmt.Sprintf("%s#%d", courseID, userID)
}

func (m *memProgressStore) FindByUserAndCourse(userID uint, courseID string) (*model.CourseProgress, error) {
	p, ok := m.rows[progressKey(userID, courseID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *memProgressStore) Save(progress *model.CourseProgress) error {
	m.rows[progressKey(progress.UserID, progress.CourseID)] = progress
	return nil
}

func (m *memProgressStore) DeleteByCourse(courseID string) error {
	for k, p := range m.rows {
		if p.CourseID == courseID {
			delete(m.rows, k)
		}
	}
	return nil
}

type memRatingStore struct {
	rows map[string]*model.CourseRating
}

func newMemRatingStore() *memRatingStore {
	return &memRatingStore{rows: make(map[string]*model.CourseRating)}
}

func ratingKey(courseID string, userID uint) string {
	return fmt.Sprintf("%s#%d", courseID, userID)
}

func (m *memRatingStore) Upsert(rating *model.CourseRating) error {
	cp := *rating
	m.rows[ratingKey(rating.CourseID, rating.UserID)] = &cp
	return nil
}

func (m *memRatingStore) SummaryByCourse(courseID string) (model.RatingSummary, error) {
	var summary model.RatingSummary
	var sum int
	for _, r := range m.rows {
		if r.CourseID == courseID {
			sum += r.Rating
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(sum) / float64(summary.Count)
	}
	return summary, nil
}

func (m *memRatingStore) DeleteByCourse(courseID string) error {
	for k, r := range m.rows {
		if r.CourseID == courseID {
			delete(m.rows, k)
		}
	}
	return nil
}
