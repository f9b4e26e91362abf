package util

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrCourseNotFound    = errors.New("course not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrLectureNotFound   = errors.New("lecture not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrNotEnrolled       = errors.New("not enrolled in this course")
	ErrValidationFailed  = errors.New("validation failed")
	ErrInvalidImageExt   = errors.New("仅支持 PNG/JPG/WebP 格式的缩略图")
)
