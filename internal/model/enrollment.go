package model

// Enrollment 学生与课程的多对多成员关系。
// (course_id, user_id) 唯一索引保证并发报名下成员只出现一次，
// 插入使用冲突忽略语义而非先查后写。无退课操作，仅随课程删除级联清理。
type Enrollment struct {
	BaseModel
	CourseID string `gorm:"index:idx_course_user,unique;type:varchar(36);not null" json:"courseId"`
	UserID   uint   `gorm:"index:idx_course_user,unique;not null" json:"userId"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
