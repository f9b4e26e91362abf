package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// ReportProgress godoc
// @Summary 上报学习进度
// @Description 记录最近观看的讲座；completed 为 true 时同时标记该讲座完成。
// @Description 重复上报为幂等操作，完成百分比只会增长不会回退。
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReportProgressRequest true "进度上报"
// @Success 200 {object} util.Response{data=model.ProgressSnapshot}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/progress [post]
func (c *ProgressController) ReportProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ReportProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.ProgressService.ReportProgress(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// GetProgress godoc
// @Summary 查询学习进度
// @Description 返回完成百分比与恢复位置。无进度记录时返回零值快照而非 404
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.ProgressSnapshot}
// @Router /api/progress/{courseId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.ProgressService.GetProgress(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}
