package cqe

import (
	"io"

	"video-ingest-service/pkg/errno"
)

// UploadVideoReq 上传视频请求
type UploadVideoReq struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	OwnerUUID   string `header:"X-User-UUID" binding:"required"`

	// 来自 multipart 文件部分
	Filename    string    `form:"-"`
	ContentType string    `form:"-"`
	Size        int64     `form:"-"`
	Body        io.Reader `form:"-"`
}

func (req *UploadVideoReq) Validate() error {
	if req.Title == "" {
		return errno.ErrTitleRequired
	}
	if req.OwnerUUID == "" {
		return errno.ErrOwnerUUIDRequired
	}
	if req.Body == nil {
		return errno.ErrEmptyUpload
	}
	return nil
}

// ImportVideoReq 从服务器本地路径导入视频请求
type ImportVideoReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	OwnerUUID   string `json:"owner_uuid" binding:"required"`
	Path        string `json:"path" binding:"required"`
}

func (req *ImportVideoReq) Validate() error {
	if req.Title == "" {
		return errno.ErrTitleRequired
	}
	if req.OwnerUUID == "" {
		return errno.ErrOwnerUUIDRequired
	}
	if req.Path == "" {
		return errno.ErrMissingParam
	}
	return nil
}

// StreamVideoReq 获取播放清单请求
type StreamVideoReq struct {
	VideoUUID string `uri:"video_uuid" binding:"required"`
	Quality   string `form:"quality" binding:"required"`
}

func (req *StreamVideoReq) Validate() error {
	if req.VideoUUID == "" || req.Quality == "" {
		return errno.ErrMissingParam
	}
	return nil
}
