package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/config"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/api/admin"
	feedapi "github.com/springboardmentor4545/Brag-Board-Team6/internal/api/feed"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/api/user"
	apperrors "github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/feed"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/middleware"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/repository/interfaces"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/repository/mysql"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/service"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/storage"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("BragBoard 服务启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("reaction", util.ValidateReactionKind)
		v.RegisterValidation("role", util.ValidateRole)
	}

	// 初始化文件存储
	fileStorage, err := storage.New(config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 初始化内存中的表扬帖状态
	feedStore := feed.NewStore()

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	userService := service.NewUserService(userRepo, feedStore)
	feedService := service.NewFeedService(feedStore)
	statsService := service.NewStatsService(userRepo, feedStore)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, fileStorage)
	feedHandler := feedapi.NewFeedHandler(feedService)

	analytics := apperrors.NewErrorAnalytics()
	adminHandler := admin.NewAdminHandler(userService, statsService, analytics)

	// 把数据库中的用户同步到内存状态
	seedUsersFromDB(userRepo, feedStore)

	// 数据库为空时加载演示数据，避免覆盖真实用户
	if config.AppConfig.DemoSeed && len(feedStore.Users()) == 0 {
		feed.SeedDemo(feedStore)
	}

	// 设置 Gin 路由
	r := gin.Default()

	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(analytics))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 头像等上传文件的静态服务
	if config.AppConfig.StorageDriver == storage.DriverLocal {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 认证路由
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		authorized := auth.Group("/")
		authorized.Use(middleware.AuthMiddleware(userService))
		{
			authorized.GET("/me", authHandler.Me)
			authorized.POST("/logout", authHandler.Logout)
		}
	}

	// 业务路由，全部需要认证
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(userService))
	{
		api.GET("/shoutouts", feedHandler.ListShoutouts)
		api.POST("/shoutouts", feedHandler.CreateShoutout)
		api.POST("/shoutouts/:id/reactions", feedHandler.ToggleReaction)
		api.POST("/shoutouts/:id/comments", feedHandler.AddComment)

		api.GET("/leaderboard", feedHandler.Leaderboard)
		api.GET("/stats/departments", feedHandler.DepartmentStats)
		api.GET("/departments", feedHandler.Departments)

		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.UpdateProfile)
		api.POST("/profile/avatar", profileHandler.UploadAvatar)

		// 管理员路由组
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminMiddleware(userService))
		{
			adminRoutes.POST("/shoutouts/:id/flag", feedHandler.FlagShoutout)
			adminRoutes.DELETE("/shoutouts/:id", feedHandler.DeleteShoutout)
			adminRoutes.GET("/users", adminHandler.GetUsers)
			adminRoutes.GET("/stats", adminHandler.GetSystemStats)
			adminRoutes.GET("/errors", adminHandler.GetErrorStats)
		}
	}

	srv := &http.Server{
		Addr:    config.AppConfig.ServerAddr,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", config.AppConfig.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// seedUsersFromDB 启动时把数据库中的全部用户加载进内存状态
func seedUsersFromDB(userRepo interfaces.UserRepository, feedStore *feed.Store) {
	const pageSize = 500
	total := 0
	for page := 1; ; page++ {
		users, err := userRepo.FindAll(page, pageSize)
		if err != nil {
			util.Logger.Error("加载用户失败", zap.Error(err), zap.Int("page", page))
			return
		}
		if len(users) == 0 {
			break
		}
		for _, u := range users {
			feedStore.AddUser(u)
		}
		total += len(users)
		if len(users) < pageSize {
			break
		}
	}
	util.Logger.Info("用户加载完成", zap.Int("total", total))
}
