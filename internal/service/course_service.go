package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "course_catalog:published"
	catalogCacheTTL = 5 * time.Minute
)

type CourseService struct {
	Courses     CourseStore
	Enrollments EnrollmentStore
	Progress    ProgressStore
	Ratings     RatingStore
	Redis       *redis.Client
}

func NewCourseService(courses CourseStore, enrollments EnrollmentStore, progress ProgressStore, ratings RatingStore, rdb *redis.Client) *CourseService {
	return &CourseService{
		Courses:     courses,
		Enrollments: enrollments,
		Progress:    progress,
		Ratings:     ratings,
		Redis:       rdb,
	}
}

type LectureRequest struct {
	Title       string `json:"lectureTitle" binding:"required"`
	Type        string `json:"lectureType"`
	URL         string `json:"lectureUrl"`
	Duration    uint   `json:"lectureDuration"`
	FreePreview bool   `json:"isPreviewFree"`
}

type ChapterRequest struct {
	Title    string           `json:"chapterTitle" binding:"required"`
	Lectures []LectureRequest `json:"chapterContent"`
}

type CreateCourseRequest struct {
	Title       string           `json:"courseTitle"`
	Description string           `json:"courseDescription"`
	Thumbnail   string           `json:"courseThumbnail"`
	AccessCode  string           `json:"accessCode"`
	Published   *bool            `json:"isPublished"`
	Content     []ChapterRequest `json:"courseContent"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"courseTitle"`
	Description *string `json:"courseDescription"`
	Thumbnail   *string `json:"courseThumbnail"`
	AccessCode  *string `json:"accessCode"`
	Published   *bool   `json:"isPublished"`
}

// CreateCourse 建课。标题/描述/口令为必填；讲座按调用方给定顺序落序号，
// 视频链接统一规整为可嵌入形式。
func (s *CourseService) CreateCourse(educatorID uint, req CreateCourseRequest) (*model.Course, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.AccessCode) == "" {
		return nil, fmt.Errorf("%w: courseTitle, courseDescription and accessCode are required", util.ErrValidationFailed)
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		AccessCode:  req.AccessCode,
		Published:   published,
		EducatorID:  educatorID,
	}
	course.ID = model.GenerateUUID()

	for ci, chReq := range req.Content {
		chapter := model.Chapter{
			CourseID: course.ID,
			Title:    chReq.Title,
			Order:    ci,
		}
		chapter.ID = model.GenerateUUID()
		for li, lecReq := range chReq.Lectures {
			lecture, err := buildLecture(course.ID, chapter.ID, li, lecReq)
			if err != nil {
				return nil, err
			}
			chapter.Lectures = append(chapter.Lectures, *lecture)
		}
		course.Chapters = append(course.Chapters, chapter)
	}

	if err := s.Courses.Create(course); err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	return course, nil
}

func buildLecture(courseID, chapterID string, order int, req LectureRequest) (*model.Lecture, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: lectureTitle is required", util.ErrValidationFailed)
	}

	lectureType := model.LectureType(req.Type)
	if lectureType == "" {
		lectureType = model.LectureVideo
	}
	if lectureType != model.LectureVideo && lectureType != model.LecturePDF {
		return nil, fmt.Errorf("%w: lectureType must be video or pdf", util.ErrValidationFailed)
	}

	duration := req.Duration
	if duration == 0 {
		duration = 1
	}

	url := req.URL
	if lectureType == model.LectureVideo {
		url = util.NormalizeVideoURL(url)
	}

	lecture := &model.Lecture{
		ChapterID:   chapterID,
		CourseID:    courseID,
		Title:       req.Title,
		Type:        lectureType,
		URL:         url,
		Duration:    duration,
		FreePreview: req.FreePreview,
		Order:       order,
	}
	lecture.ID = model.GenerateUUID()
	return lecture, nil
}

// GetCourseView 取单个课程并套用可见性过滤
func (s *CourseService) GetCourseView(courseID string, caller *util.Claims) (*model.CourseView, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	enrolled := false
	if caller != nil {
		enrolled, err = s.Enrollments.IsEnrolled(courseID, caller.UserID)
		if err != nil {
			return nil, err
		}
	}

	view := RenderCourseView(course, caller, enrolled)

	count, err := s.Enrollments.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	view.EnrolledCount = count

	rating, err := s.Ratings.SummaryByCourse(courseID)
	if err != nil {
		return nil, err
	}
	view.Rating = rating

	return &view, nil
}

// RateCourse 学生评分。仅已报名成员可评，分值 1~5，
// 重复评分覆盖旧值（每人每课只保留一条）。
func (s *CourseService) RateCourse(courseID string, userID uint, rating int) (model.RatingSummary, error) {
	var zero model.RatingSummary

	if rating < 1 || rating > 5 {
		return zero, fmt.Errorf("%w: rating must be between 1 and 5", util.ErrValidationFailed)
	}

	if _, err := s.Courses.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return zero, util.ErrCourseNotFound
		}
		return zero, err
	}

	enrolled, err := s.Enrollments.IsEnrolled(courseID, userID)
	if err != nil {
		return zero, err
	}
	if !enrolled {
		return zero, util.ErrNotEnrolled
	}

	if err := s.Ratings.Upsert(&model.CourseRating{
		CourseID: courseID,
		UserID:   userID,
		Rating:   rating,
	}); err != nil {
		return zero, err
	}

	// 目录里的均分随之变化
	s.invalidateCatalog()
	return s.Ratings.SummaryByCourse(courseID)
}

// RenderCourseView 可见性过滤，只产出派生视图、不回写存储：
//  1. 非归属教师一律剥离 accessCode；
//  2. 未报名（含匿名）调用者仅保留试看讲座的 URL，其余置空；
//  3. 已报名成员与归属教师原样透传全部 URL。
func RenderCourseView(course *model.Course, caller *util.Claims, enrolled bool) model.CourseView {
	isOwner := caller != nil && caller.UserID == course.EducatorID
	revealURLs := isOwner || enrolled

	view := model.CourseView{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Thumbnail:   course.Thumbnail,
		Published:   course.Published,
		EducatorID:  course.EducatorID,
		CreatedAt:   course.CreatedAt,
	}
	if isOwner {
		view.AccessCode = course.AccessCode
	}

	for _, ch := range course.Chapters {
		chView := model.ChapterView{
			ID:    ch.ID,
			Title: ch.Title,
			Order: ch.Order,
		}
		for _, l := range ch.Lectures {
			url := l.URL
			if !revealURLs && !l.FreePreview {
				url = ""
			}
			chView.Lectures = append(chView.Lectures, model.LectureView{
				ID:          l.ID,
				Title:       l.Title,
				Type:        l.Type,
				URL:         url,
				Duration:    l.Duration,
				FreePreview: l.FreePreview,
				Order:       l.Order,
			})
		}
		view.Chapters = append(view.Chapters, chView)
	}

	return view
}

// ListPublished 公开课程目录（已脱敏），带 Redis 缓存
func (s *CourseService) ListPublished(ctx context.Context) ([]model.CourseView, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var views []model.CourseView
			if jsonErr := json.Unmarshal([]byte(cached), &views); jsonErr == nil {
				return views, nil
			}
		}
	}

	courses, err := s.Courses.FindPublished()
	if err != nil {
		return nil, err
	}

	views := make([]model.CourseView, 0, len(courses))
	for i := range courses {
		view := RenderCourseView(&courses[i], nil, false)
		if view.Rating, err = s.Ratings.SummaryByCourse(courses[i].ID); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(views); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache set failed", zap.Error(err))
			}
		}
	}

	return views, nil
}

func (s *CourseService) invalidateCatalog() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// ownedCourse 取课程并校验调用者为归属教师
func (s *CourseService) ownedCourse(courseID string, educatorID uint) (*model.Course, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.EducatorID != educatorID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

// UpdateCourse 课程自身字段更新，含口令轮换。轮换只影响之后的报名，
// 已有成员关系不受影响。
func (s *CourseService) UpdateCourse(courseID string, educatorID uint, req UpdateCourseRequest) error {
	course, err := s.ownedCourse(courseID, educatorID)
	if err != nil {
		return err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.AccessCode != nil {
		course.AccessCode = *req.AccessCode
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	// 已发布课程口令不可为空
	if course.Published && strings.TrimSpace(course.AccessCode) == "" {
		return fmt.Errorf("%w: a published course requires a non-empty access code", util.ErrValidationFailed)
	}
	if strings.TrimSpace(course.Title) == "" || strings.TrimSpace(course.Description) == "" {
		return fmt.Errorf("%w: courseTitle and courseDescription must not be empty", util.ErrValidationFailed)
	}

	if err := s.Courses.Update(course); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

// AppendChapter 在课程末尾追加章节
func (s *CourseService) AppendChapter(courseID string, educatorID uint, title string) (*model.Chapter, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: chapterTitle is required", util.ErrValidationFailed)
	}
	if _, err := s.ownedCourse(courseID, educatorID); err != nil {
		return nil, err
	}

	maxOrder, err := s.Courses.MaxChapterOrder(courseID)
	if err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		CourseID: courseID,
		Title:    title,
		Order:    maxOrder + 1,
	}
	chapter.ID = model.GenerateUUID()

	if err := s.Courses.AppendChapter(chapter); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return chapter, nil
}

// AppendLecture 在指定章节末尾追加讲座
func (s *CourseService) AppendLecture(courseID, chapterID string, educatorID uint, req LectureRequest) (*model.Lecture, error) {
	if _, err := s.ownedCourse(courseID, educatorID); err != nil {
		return nil, err
	}

	if _, err := s.Courses.FindChapter(courseID, chapterID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	maxOrder, err := s.Courses.MaxLectureOrder(chapterID)
	if err != nil {
		return nil, err
	}

	lecture, err := buildLecture(courseID, chapterID, maxOrder+1, req)
	if err != nil {
		return nil, err
	}

	if err := s.Courses.AppendLecture(lecture); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return lecture, nil
}

// DeleteCourse 归属教师删除课程。级联清理按固定顺序分步执行：
// 评分 → 进度记录 → 成员关系 → 讲座 → 章节 → 课程本体。
// 无跨表事务，中途失败直接上报（存储层不具备补偿机制）。
func (s *CourseService) DeleteCourse(courseID string, educatorID uint) error {
	if _, err := s.ownedCourse(courseID, educatorID); err != nil {
		return err
	}

	if err := s.Ratings.DeleteByCourse(courseID); err != nil {
		return fmt.Errorf("deleting ratings: %w", err)
	}
	if err := s.Progress.DeleteByCourse(courseID); err != nil {
		return fmt.Errorf("deleting progress records: %w", err)
	}
	if err := s.Enrollments.DeleteByCourse(courseID); err != nil {
		return fmt.Errorf("deleting enrollments: %w", err)
	}
	if err := s.Courses.DeleteLectures(courseID); err != nil {
		return fmt.Errorf("deleting lectures: %w", err)
	}
	if err := s.Courses.DeleteChapters(courseID); err != nil {
		return fmt.Errorf("deleting chapters: %w", err)
	}
	if err := s.Courses.Delete(courseID); err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}

	s.invalidateCatalog()
	return nil
}

// ListByEducator 教师名下课程（含口令，教师可见自己的）
func (s *CourseService) ListByEducator(educatorID uint) ([]model.CourseView, error) {
	courses, err := s.Courses.FindByEducator(educatorID)
	if err != nil {
		return nil, err
	}
	claims := &util.Claims{UserID: educatorID}
	views := make([]model.CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, RenderCourseView(&courses[i], claims, false))
	}
	return views, nil
}
