// pkg/api/server.go
package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"GoalArena/pkg/config"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer 创建新的API服务器
func NewServer(cfg *config.Config) *Server {
	router := gin.New()

	// 设置中间件
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	srv := &http.Server{
		Addr:         ":" + cfg.API.Port,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout.Std(),
		WriteTimeout: cfg.API.WriteTimeout.Std(),
	}

	return &Server{
		router: router,
		srv:    srv,
	}
}

// SetupRoutes 设置路由
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 健康检查
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	// API v1 路由组
	v1 := s.router.Group("/api/v1")
	{
		// 目录接口
		v1.GET("/categories", handlers.GetCategories)

		videos := v1.Group("/videos")
		{
			videos.GET("", handlers.GetVideos)
			videos.GET("/recent", handlers.GetRecentHighlights)
			videos.GET("/date", handlers.GetVideosByDateRange)
			videos.GET("/category/:categoryName", handlers.GetVideosByCategory)
			videos.GET("/category/:categoryName/date/:filter", handlers.GetVideosByCategoryAndDay)
			videos.GET("/:id", handlers.GetVideoByID)
			videos.GET("/:id/related", handlers.GetRelatedVideos)
		}

		// 搜索与过滤选项
		v1.GET("/search", handlers.Search)
		v1.GET("/filter-options", handlers.GetFilterOptions)

		// 互动账本接口
		v1.POST("/saved-matches", handlers.AddSavedMatch)
		v1.DELETE("/saved-matches", handlers.RemoveSavedMatch)
		v1.GET("/saved-matches", handlers.ListSavedMatches)
		v1.POST("/loved-matches", handlers.AddLovedMatch)
		v1.DELETE("/loved-matches", handlers.RemoveLovedMatch)
		v1.GET("/loved-matches", handlers.ListLovedMatches)
		v1.POST("/favorite-matches", handlers.AddFavoriteMatch)
		v1.DELETE("/favorite-matches", handlers.RemoveFavoriteMatch)
		v1.GET("/favorite-matches", handlers.ListFavoriteMatches)
		v1.GET("/matches/:match_id/stats", handlers.GetMatchStats)
		v1.GET("/subscribers/:subscriber_id/stats", handlers.GetSubscriberStats)
		v1.GET("/interactions/top", handlers.GetTopInteractions)

		// 鉴权接口
		auth := v1.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.GET("/callback", handlers.Callback)
			auth.GET("/status", handlers.Status)
			auth.POST("/webhook", handlers.Webhook)
			auth.POST("/logout", handlers.Logout)
		}
	}
}

// Start 启动服务器
func (s *Server) Start() {
	// 在goroutine中启动服务器
	go func() {
		log.Printf("API服务器启动在 %s\n", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v\n", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v\n", err)
	}

	log.Println("服务器已关闭")
}
