package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// LectureIDSet JSON 数组列，按集合语义操作（重复添加为 no-op）
type LectureIDSet []string

func (s LectureIDSet) Value() (driver.Value, error) {
	if s == nil {
		s = LectureIDSet{}
	}
	return json.Marshal(s)
}

func (s *LectureIDSet) Scan(value interface{}) error {
	if value == nil {
		*s = LectureIDSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for LectureIDSet")
	}
	if len(data) == 0 {
		*s = LectureIDSet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Contains 集合成员判断
func (s LectureIDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add 幂等追加，返回追加后的集合
func (s LectureIDSet) Add(id string) LectureIDSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// CourseProgress 每个 (学生, 课程) 恰好一行，首次上报时惰性创建。
// LastLectureID 存最近观看的讲座ID，读取时再解析为树上的下标
// （章节调序或删除后自动回退，避免位置指针失真）。
// Completed 仅是每次写入时重算的缓存提示，判定完成一律以读取时的
// 百分比计算为准。
type CourseProgress struct {
	BaseModel
	UserID           uint         `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID         string       `gorm:"index:idx_user_course,unique;type:varchar(36);not null" json:"courseId"`
	LectureCompleted LectureIDSet `gorm:"type:json" json:"lectureCompleted"`
	LastLectureID    string       `gorm:"size:36" json:"lastLectureId"`
	Completed        bool         `gorm:"default:false" json:"completed"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
