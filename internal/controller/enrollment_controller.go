package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

// Enroll godoc
// @Summary 报名课程
// @Description 凭报名口令加入课程。重复报名为幂等成功，不会产生重复成员
// @Tags 报名
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body EnrollRequest true "报名口令"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "口令错误"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EnrollmentService.Enroll(ctx.Param("id"), claims.UserID, req.AccessCode); err != nil {
		if errors.Is(err, util.ErrInvalidAccessCode) {
			monitoring.EnrollmentCounter.WithLabelValues("invalid_code").Inc()
		}
		respondServiceError(ctx, err)
		return
	}

	monitoring.EnrollmentCounter.WithLabelValues("enrolled").Inc()
	util.Success(ctx, gin.H{"message": "Successfully enrolled in the course"})
}

// MyEnrollments godoc
// @Summary 我的课程
// @Description 当前学生已报名的课程列表，附带进度快照
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.EnrolledCourseView}
// @Router /api/my/enrollments [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.EnrollmentService.ListEnrolledCourses(claims)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// GetEnrolledCourse godoc
// @Summary 单个已报名课程
// @Description 播放器加载用，讲座 URL 全量可见；未报名按不存在处理
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Failure 404 {object} util.Response "课程不存在或未报名"
// @Router /api/my/enrollments/{id} [get]
func (c *EnrollmentController) GetEnrolledCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.EnrollmentService.GetEnrolledCourse(ctx.Param("id"), claims)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, view)
}
