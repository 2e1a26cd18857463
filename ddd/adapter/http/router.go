package http

import (
	"github.com/gin-gonic/gin"

	"video-ingest-service/ddd/application/app"
	"video-ingest-service/pkg/middleware"
)

// Router 路由配置
type Router struct {
	videoApp    app.VideoApp
	storageRoot string
}

// NewRouter 创建路由配置
func NewRouter(videoApp app.VideoApp, storageRoot string) *Router {
	return &Router{videoApp: videoApp, storageRoot: storageRoot}
}

// SetupMiddleware 设置中间件
func (r *Router) SetupMiddleware(engine *gin.Engine) {
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestContextMiddleware())
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes(engine *gin.Engine) {
	videoController := NewVideoController(r.videoApp)

	v1 := engine.Group("/api/v1")
	{
		videos := v1.Group("/videos")
		{
			videos.POST("/upload", videoController.UploadVideo)            // 上传视频
			videos.GET("", videoController.ListVideos)                     // 获取视频列表
			videos.GET("/owner/:owner_uuid", videoController.ListVideosByOwner) // 按所有者获取视频
			videos.GET("/:video_uuid", videoController.GetVideo)           // 获取视频详情
			videos.GET("/:video_uuid/stream", videoController.StreamVideo) // 获取播放清单
			videos.GET("/:video_uuid/raw", videoController.RawVideo)       // 获取原始文件
		}
	}

	// 静态挂载存储根目录，HLS清单中的切片引用经由此路径解析
	if r.storageRoot != "" {
		engine.Static("/storage", r.storageRoot)
	}

	// 健康检查路由
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "video-ingest-service",
		})
	})
}
