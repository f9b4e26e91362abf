package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Enroll 幂等插入成员关系。唯一索引 + 冲突忽略保证并发报名
// 同一 (课程, 学生) 也只落一行，不做先查后写。
func (r *EnrollmentRepository) Enroll(courseID string, userID uint) error {
	enrollment := &model.Enrollment{CourseID: courseID, UserID: userID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(enrollment).Error
}

func (r *EnrollmentRepository) IsEnrolled(courseID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListCourseIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) ListMembers(courseID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) DeleteByCourse(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error
}
