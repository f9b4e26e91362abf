package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// withTree 按展示顺序预加载整棵内容树
func (r *CourseRepository) withTree() *gorm.DB {
	return r.DB.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapters.order ASC")
		}).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("lectures.order ASC")
		})
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.withTree().First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.withTree().Where("published = ?", true).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByIDs(ids []string) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.withTree().Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByEducator(educatorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.withTree().Where("educator_id = ?", educatorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByEducatorAndAccessCode(educatorID uint, accessCode string) (*model.Course, error) {
	var course model.Course
	err := r.withTree().
		Where("educator_id = ? AND access_code = ?", educatorID, accessCode).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Update 只更新课程自身的列，内容树走 AppendChapter/AppendLecture
func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"thumbnail":   course.Thumbnail,
			"access_code": course.AccessCode,
			"published":   course.Published,
		}).Error
}

func (r *CourseRepository) AppendChapter(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *CourseRepository) AppendLecture(lecture *model.Lecture) error {
	return r.DB.Create(lecture).Error
}

func (r *CourseRepository) FindChapter(courseID, chapterID string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.Where("id = ? AND course_id = ?", chapterID, courseID).First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// MaxChapterOrder 当前最大章节序号，无章节时为 -1
func (r *CourseRepository) MaxChapterOrder(courseID string) (int, error) {
	var maxOrder *int
	err := r.DB.Model(&model.Chapter{}).
		Where("course_id = ?", courseID).
		Select("MAX(`order`)").
		Scan(&maxOrder).Error
	if err != nil {
		return -1, err
	}
	if maxOrder == nil {
		return -1, nil
	}
	return *maxOrder, nil
}

func (r *CourseRepository) MaxLectureOrder(chapterID string) (int, error) {
	var maxOrder *int
	err := r.DB.Model(&model.Lecture{}).
		Where("chapter_id = ?", chapterID).
		Select("MAX(`order`)").
		Scan(&maxOrder).Error
	if err != nil {
		return -1, err
	}
	if maxOrder == nil {
		return -1, nil
	}
	return *maxOrder, nil
}

// DeleteLectures / DeleteChapters / Delete 级联删除的分步操作，
// 由 service 层按固定顺序调用（无跨表事务，失败即上报）
func (r *CourseRepository) DeleteLectures(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.Lecture{}).Error
}

func (r *CourseRepository) DeleteChapters(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.Chapter{}).Error
}

func (r *CourseRepository) Delete(courseID string) error {
	return r.DB.Where("id = ?", courseID).Delete(&model.Course{}).Error
}
