package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 学生/通用 授权接口
		a.registerStudentRoutes(authGroup, c)

		// 讲师相关接口
		a.registerEducatorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 课程目录：游客可浏览，登录用户可见更多（所有者看口令，学员看讲座地址）
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(a.Config), c.course.GetCourse)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.POST("/auth/become-educator", c.auth.BecomeEducator)

	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.POST("/courses/:id/rating", c.course.RateCourse)
	rg.GET("/my/enrollments", c.enrollment.MyEnrollments)
	rg.GET("/my/enrollments/:id", c.enrollment.GetEnrolledCourse)

	rg.POST("/progress", c.progress.ReportProgress)
	rg.GET("/progress/:courseId", c.progress.GetProgress)
}

func (a *App) registerEducatorRoutes(rg *gin.RouterGroup, c *controllers) {
	educator := rg.Group("/")
	educator.Use(middleware.RoleMiddleware(model.Educator))
	{
		educator.POST("/courses", c.course.CreateCourse)
		educator.PUT("/courses/:id", c.course.UpdateCourse)
		educator.DELETE("/courses/:id", c.course.DeleteCourse)
		educator.POST("/courses/:id/chapters", c.course.AppendChapter)
		educator.POST("/courses/:id/chapters/:chapterId/lectures", c.course.AppendLecture)

		educator.GET("/educator/courses", c.educator.MyCourses)
		educator.GET("/educator/dashboard", c.educator.Dashboard)
		educator.GET("/educator/students", c.educator.Students)
		educator.POST("/educator/thumbnail", c.educator.UploadThumbnail)
	}
}
