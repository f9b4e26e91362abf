package model

// CourseRating 课程评分，每个 (学生, 课程) 恰好一行。
// 重复评分走覆盖更新，分值固定 1~5，仅已报名成员可评。
// 对外只暴露聚合后的均分与评分人数（见 CourseView）。
type CourseRating struct {
	BaseModel
	CourseID string `gorm:"index:idx_course_rater,unique;type:varchar(36);not null" json:"courseId"`
	UserID   uint   `gorm:"index:idx_course_rater,unique;not null" json:"userId"`
	Rating   int    `gorm:"not null" json:"rating"`
}

func (CourseRating) TableName() string {
	return "course_ratings"
}

// RatingSummary 按课程聚合后的评分信息
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
