// 演示数据导入脚本
//
// 在空库上创建一名讲师账号和一门已发布的示例课程，便于本地联调前端。
// 重复执行是安全的：已存在的邮箱/课程会被跳过。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"os"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	users := repository.NewUserRepository(db)
	courses := repository.NewCourseRepository(db)

	authService := service.NewAuthService(users, &cfg)
	courseService := service.NewCourseService(courses, repository.NewEnrollmentRepository(db), repository.NewProgressRepository(db), repository.NewRatingRepository(db), nil)

	const demoEmail = "educator@example.com"
	educator, err := users.FindByEmail(demoEmail)
	if err == gorm.ErrRecordNotFound {
		newUser := &model.User{
			Name:     "演示讲师",
			Email:    demoEmail,
			Password: "password123",
		}
		if err := authService.Register(newUser); err != nil {
			log.Fatalf("创建演示讲师失败: %v", err)
		}
		if err := authService.BecomeEducator(newUser.ID); err != nil {
			log.Fatalf("升级讲师角色失败: %v", err)
		}
		educator = newUser
	} else if err != nil {
		log.Fatalf("查询演示讲师失败: %v", err)
	}

	existing, err := courses.FindByEducator(educator.ID)
	if err != nil {
		log.Fatalf("查询已有课程失败: %v", err)
	}
	if len(existing) > 0 {
		log.Println("示例课程已存在，跳过")
		return
	}

	published := true
	req := service.CreateCourseRequest{
		Title:       "Go 入门",
		Description: "从零开始的 Go 语言课程",
		AccessCode:  "GO2024",
		Published:   &published,
		Content: []service.ChapterRequest{
			{
				Title: "第一章 环境搭建",
				Lectures: []service.LectureRequest{
					{Title: "安装与工具链", Type: "video", URL: "https://www.youtube.com/watch?v=demo1", Duration: 12, FreePreview: true},
					{Title: "第一个程序", Type: "video", URL: "https://www.youtube.com/watch?v=demo2", Duration: 18},
				},
			},
		},
	}

	if _, err := courseService.CreateCourse(educator.ID, req); err != nil {
		log.Fatalf("创建示例课程失败: %v", err)
	}

	log.Println("演示数据导入完成！")
}
