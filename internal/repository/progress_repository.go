package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndCourse(userID uint, courseID string) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Save 创建或整行覆盖进度记录。同一学生多端并发上报时
// lastLectureID 为后写者胜，完成集合因集合语义不受写序影响。
func (r *ProgressRepository) Save(progress *model.CourseProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) DeleteByCourse(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.CourseProgress{}).Error
}
