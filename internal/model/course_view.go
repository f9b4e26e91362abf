package model

import "time"

// CourseView 经可见性过滤后的课程只读视图，绝不回写存储。
// AccessCode 仅归属教师可见；未报名者的非试看讲座 URL 为空串。
type CourseView struct {
	ID          string        `json:"id"`
	Title       string        `json:"courseTitle"`
	Description string        `json:"courseDescription"`
	Thumbnail   string        `json:"courseThumbnail"`
	AccessCode  string        `json:"accessCode,omitempty"`
	Published   bool          `json:"isPublished"`
	EducatorID  uint          `json:"educatorId"`
	Chapters    []ChapterView `json:"courseContent"`
	// EnrolledCount 只在单课详情接口填充，列表接口恒为 0
	EnrolledCount int64         `json:"enrolledCount"`
	Rating        RatingSummary `json:"courseRating"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type ChapterView struct {
	ID       string        `json:"id"`
	Title    string        `json:"chapterTitle"`
	Order    int           `json:"chapterOrder"`
	Lectures []LectureView `json:"chapterContent"`
}

type LectureView struct {
	ID          string      `json:"id"`
	Title       string      `json:"lectureTitle"`
	Type        LectureType `json:"lectureType"`
	URL         string      `json:"lectureUrl"`
	Duration    uint        `json:"lectureDuration"`
	FreePreview bool        `json:"isPreviewFree"`
	Order       int         `json:"lectureOrder"`
}

// Position 播放器恢复位置，为当前树上的下标对
type Position struct {
	Chapter int `json:"chapter"`
	Lecture int `json:"lecture"`
}

// ProgressSnapshot 读取进度的统一返回。无进度记录时返回零值快照
// （0%，位置 (0,0)），调用方无需区分"未找到"。
type ProgressSnapshot struct {
	CourseID         string       `json:"courseId"`
	LectureCompleted LectureIDSet `json:"lectureCompleted"`
	LastPosition     Position     `json:"lastPosition"`
	PercentComplete  int          `json:"percentComplete"`
	Completed        bool         `json:"completed"`
}

// EnrolledCourseView 学生"我的课程"列表项
type EnrolledCourseView struct {
	Course   CourseView       `json:"course"`
	Progress ProgressSnapshot `json:"progress"`
}

// EducatorDashboard 教师工作台汇总
type EducatorDashboard struct {
	TotalCourses         int                   `json:"totalCourses"`
	TotalEnrollments     int                   `json:"totalEnrollments"`
	EnrolledStudentsData []EnrolledStudentData `json:"enrolledStudentsData"`
}

type EnrolledStudentData struct {
	CourseTitle string    `json:"courseTitle"`
	StudentID   uint      `json:"studentId"`
	StudentName string    `json:"studentName"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}
