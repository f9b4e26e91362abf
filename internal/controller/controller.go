package controller

import (
	"errors"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError 把 service 层的哨兵错误映射为统一响应。
// 未识别的错误按存储故障处理：记日志、对外给通用消息。
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrChapterNotFound),
		errors.Is(err, util.ErrLectureNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrNotEnrolled):
		util.NotFound(ctx, "course not found or not enrolled")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "")
	case errors.Is(err, util.ErrInvalidAccessCode):
		util.Forbidden(ctx, "Invalid access code")
	case errors.Is(err, util.ErrValidationFailed):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
