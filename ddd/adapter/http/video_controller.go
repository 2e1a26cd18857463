package http

import (
	"github.com/gin-gonic/gin"

	"video-ingest-service/ddd/application/app"
	"video-ingest-service/ddd/application/cqe"
	"video-ingest-service/pkg/errno"
	"video-ingest-service/pkg/restapi"
)

// VideoController 视频HTTP控制器
type VideoController struct {
	videoApp app.VideoApp
}

// NewVideoController 创建视频控制器
func NewVideoController(videoApp app.VideoApp) *VideoController {
	return &VideoController{videoApp: videoApp}
}

// UploadVideo 处理 multipart 视频上传
func (c *VideoController) UploadVideo(ctx *gin.Context) {
	var req cqe.UploadVideoReq
	req.Title = ctx.PostForm("title")
	req.Description = ctx.PostForm("description")
	req.OwnerUUID = ctx.GetHeader("X-User-UUID")
	if req.OwnerUUID == "" {
		// No authentication layer in front of this service yet.
		req.OwnerUUID = "default"
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		restapi.Failed(ctx, errno.NewBizError(errno.ErrEmptyUpload, err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		restapi.Failed(ctx, errno.NewBizError(errno.ErrIO, err))
		return
	}
	defer file.Close()

	req.Filename = fileHeader.Filename
	req.ContentType = fileHeader.Header.Get("Content-Type")
	req.Size = fileHeader.Size
	req.Body = file

	video, err := c.videoApp.UploadVideo(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, video)
}

// ListVideos 获取全部视频
func (c *VideoController) ListVideos(ctx *gin.Context) {
	videos, err := c.videoApp.ListVideos(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, videos)
}

// ListVideosByOwner 获取指定所有者的视频
func (c *VideoController) ListVideosByOwner(ctx *gin.Context) {
	ownerUUID := ctx.Param("owner_uuid")
	if ownerUUID == "" {
		restapi.Failed(ctx, errno.ErrOwnerUUIDRequired)
		return
	}
	videos, err := c.videoApp.ListVideosByOwner(ctx.Request.Context(), ownerUUID)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, videos)
}

// GetVideo 获取视频详情
func (c *VideoController) GetVideo(ctx *gin.Context) {
	videoUUID := ctx.Param("video_uuid")
	if videoUUID == "" {
		restapi.Failed(ctx, errno.ErrMissingParam)
		return
	}
	video, err := c.videoApp.GetVideo(ctx.Request.Context(), videoUUID)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, video)
}

// StreamVideo 按清晰度返回HLS播放清单文件
func (c *VideoController) StreamVideo(ctx *gin.Context) {
	req := cqe.StreamVideoReq{
		VideoUUID: ctx.Param("video_uuid"),
		Quality:   ctx.Query("quality"),
	}
	manifest, err := c.videoApp.ResolveManifest(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	ctx.Header("Content-Type", "application/vnd.apple.mpegurl")
	ctx.File(manifest)
}

// RawVideo 返回原始上传文件
func (c *VideoController) RawVideo(ctx *gin.Context) {
	videoUUID := ctx.Param("video_uuid")
	if videoUUID == "" {
		restapi.Failed(ctx, errno.ErrMissingParam)
		return
	}
	raw, err := c.videoApp.ResolveRaw(ctx.Request.Context(), videoUUID)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	ctx.File(raw)
}
