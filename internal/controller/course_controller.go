package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary 公开课程目录
// @Description 所有已发布课程的脱敏视图（无口令，非试看讲座 URL 为空）
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	views, err := c.CourseService.ListPublished(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 按调用者身份与报名状态套用可见性过滤，游客可访问
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx) // TryAuth 路由，可能为 nil

	view, err := c.CourseService.GetCourseView(ctx.Param("id"), caller)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 教师建课，标题/描述/报名口令必填，内容树按给定顺序保存
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCourseRequest true "课程内容"
// @Success 201 {object} util.Response{data=object} "courseId"
// @Failure 400 {object} util.Response "必填字段缺失"
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"courseId": course.ID})
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 归属教师更新课程字段，含报名口令轮换
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body service.UpdateCourseRequest true "更新字段"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "非归属教师"
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.UpdateCourse(ctx.Param("id"), claims.UserID, req); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Course updated successfully"})
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 归属教师删除课程并级联清理进度记录与成员关系
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "非归属教师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(ctx.Param("id"), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Course and all associated data deleted successfully"})
}

type AppendChapterRequest struct {
	Title string `json:"chapterTitle" binding:"required"`
}

// AppendChapter godoc
// @Summary 追加章节
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body AppendChapterRequest true "章节标题"
// @Success 201 {object} util.Response{data=model.Chapter}
// @Router /api/courses/{id}/chapters [post]
func (c *CourseController) AppendChapter(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AppendChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CourseService.AppendChapter(ctx.Param("id"), claims.UserID, req.Title)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, chapter)
}

// AppendLecture godoc
// @Summary 追加讲座
// @Description 在指定章节末尾追加讲座，视频链接规整为可嵌入形式
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Param body body service.LectureRequest true "讲座内容"
// @Success 201 {object} util.Response{data=model.Lecture}
// @Router /api/courses/{id}/chapters/{chapterId}/lectures [post]
func (c *CourseController) AppendLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lecture, err := c.CourseService.AppendLecture(ctx.Param("id"), ctx.Param("chapterId"), claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, lecture)
}

type RateCourseRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RateCourse godoc
// @Summary 课程评分
// @Description 已报名学生打 1~5 分；重复评分覆盖旧值。返回最新均分与评分人数
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body RateCourseRequest true "分值"
// @Success 200 {object} util.Response{data=model.RatingSummary}
// @Failure 400 {object} util.Response "分值越界"
// @Failure 404 {object} util.Response "课程不存在或未报名"
// @Router /api/courses/{id}/rating [post]
func (c *CourseController) RateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.CourseService.RateCourse(ctx.Param("id"), claims.UserID, req.Rating)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
