package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EducatorController struct {
	CourseService    *service.CourseService
	DashboardService *service.DashboardService
	StorageService   *service.StorageService
}

func NewEducatorController(courseService *service.CourseService, dashboardService *service.DashboardService, storageService *service.StorageService) *EducatorController {
	return &EducatorController{
		CourseService:    courseService,
		DashboardService: dashboardService,
		StorageService:   storageService,
	}
}

// MyCourses godoc
// @Summary 我的课程（教师）
// @Description 教师名下全部课程，口令对归属教师可见
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CourseView}
// @Router /api/educator/courses [get]
func (c *EducatorController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.CourseService.ListByEducator(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// Dashboard godoc
// @Summary 教师工作台
// @Description 课程数、报名总数与最近报名学生
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.EducatorDashboard}
// @Router /api/educator/dashboard [get]
func (c *EducatorController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.Dashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// Students godoc
// @Summary 按口令查学生名单
// @Description 教师凭自己课程的报名口令查看已报名学生
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param accessCode query string true "报名口令"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "课程不存在或非本人课程"
// @Router /api/educator/students [get]
func (c *EducatorController) Students(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	accessCode := ctx.Query("accessCode")
	if accessCode == "" {
		util.BadRequest(ctx, "accessCode is required")
		return
	}

	title, students, err := c.DashboardService.StudentsByAccessCode(claims.UserID, accessCode)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"courseTitle": title,
		"students":    students,
	})
}

// UploadThumbnail godoc
// @Summary 上传课程缩略图
// @Description 图片走对象存储（local/minio/oss），返回可引用的 URL
// @Tags 教师
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param image formData file true "缩略图文件"
// @Success 200 {object} util.Response{data=object} "url"
// @Failure 400 {object} util.Response "文件类型不合法"
// @Router /api/educator/thumbnail [post]
func (c *EducatorController) UploadThumbnail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "Thumbnail Not Attached")
		return
	}

	url, err := c.StorageService.UploadThumbnail(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
