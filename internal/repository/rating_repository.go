package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert 插入或覆盖评分。唯一索引 + 冲突更新保证同一学生
// 对同一课程只保留最新一次评分。
func (r *RatingRepository) Upsert(rating *model.CourseRating) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(rating).Error
}

// SummaryByCourse 课程均分与评分人数，无评分时为 (0, 0)
func (r *RatingRepository) SummaryByCourse(courseID string) (model.RatingSummary, error) {
	var summary model.RatingSummary
	err := r.DB.Model(&model.CourseRating{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&summary).Error
	return summary, err
}

func (r *RatingRepository) DeleteByCourse(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.CourseRating{}).Error
}
