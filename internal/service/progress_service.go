package service

import (
	"math"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	Courses  CourseStore
	Progress ProgressStore
}

func NewProgressService(courses CourseStore, progress ProgressStore) *ProgressService {
	return &ProgressService{
		Courses:  courses,
		Progress: progress,
	}
}

type ReportProgressRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	LectureID string `json:"lectureId" binding:"required"`
	Completed bool   `json:"completed"`
}

// PercentComplete 完成百分比。只统计当前树上仍然存在的讲座：
// 已删除讲座留下的陈旧ID不参与计数，避免虚高。空课程恒为 0。
func PercentComplete(course *model.Course, completed model.LectureIDSet) int {
	total := course.TotalLectures()
	if total == 0 {
		return 0
	}

	live := course.LectureIDSet()
	n := 0
	for _, id := range completed {
		if _, ok := live[id]; ok {
			n++
		}
	}

	return int(math.Round(float64(n) * 100 / float64(total)))
}

// buildSnapshot 由课程树与进度记录推导只读快照。完成与否一律在
// 读取时由百分比判定，持久化的 Completed 标志只作缓存提示。
func buildSnapshot(course *model.Course, progress *model.CourseProgress) *model.ProgressSnapshot {
	snapshot := &model.ProgressSnapshot{
		CourseID:         course.ID,
		LectureCompleted: model.LectureIDSet{},
	}
	if progress != nil {
		snapshot.LectureCompleted = progress.LectureCompleted
		ci, li := course.LocateLecture(progress.LastLectureID)
		snapshot.LastPosition = model.Position{Chapter: ci, Lecture: li}
	}
	snapshot.PercentComplete = PercentComplete(course, snapshot.LectureCompleted)
	snapshot.Completed = snapshot.PercentComplete == 100
	return snapshot
}

func emptySnapshot(courseID string) *model.ProgressSnapshot {
	return &model.ProgressSnapshot{
		CourseID:         courseID,
		LectureCompleted: model.LectureIDSet{},
	}
}

// ReportProgress 进度上报。记录不存在则惰性创建；lastLectureID 无条件
// 覆盖（该调用也用于纯位置跟踪），完成集合仅在 completed 时幂等增长。
// 讲座ID不做子集硬校验，聚合时取交集兜底。
func (s *ProgressService) ReportProgress(userID uint, req ReportProgressRequest) (*model.ProgressSnapshot, error) {
	course, err := s.Courses.FindByID(req.CourseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	progress, err := s.Progress.FindByUserAndCourse(userID, req.CourseID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		progress = &model.CourseProgress{
			UserID:           userID,
			CourseID:         req.CourseID,
			LectureCompleted: model.LectureIDSet{},
		}
	}

	progress.LastLectureID = req.LectureID
	if req.Completed {
		progress.LectureCompleted = progress.LectureCompleted.Add(req.LectureID)
	}
	progress.Completed = PercentComplete(course, progress.LectureCompleted) == 100

	if err := s.Progress.Save(progress); err != nil {
		return nil, err
	}

	return buildSnapshot(course, progress), nil
}

// GetProgress 读取进度。无记录、甚至课程已删除时都返回零值快照
// （0%，位置 (0,0)），调用方不需要分支处理"未找到"。
func (s *ProgressService) GetProgress(userID uint, courseID string) (*model.ProgressSnapshot, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return emptySnapshot(courseID), nil
		}
		return nil, err
	}

	progress, err := s.Progress.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return buildSnapshot(course, nil), nil
		}
		return nil, err
	}

	return buildSnapshot(course, progress), nil
}
