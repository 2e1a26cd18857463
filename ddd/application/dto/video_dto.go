package dto

import (
	"time"

	"video-ingest-service/ddd/domain/entity"
)

// VideoDto 视频元数据数据传输对象
type VideoDto struct {
	VideoUUID   string    `json:"video_uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         *string   `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	OwnerUUID   string    `json:"owner_uuid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewVideoDto 从实体创建DTO
func NewVideoDto(video *entity.VideoEntity) *VideoDto {
	if video == nil {
		return nil
	}
	return &VideoDto{
		VideoUUID:   video.VideoUUID(),
		Title:       video.Title(),
		Description: video.Description(),
		URL:         video.URL(),
		Thumbnail:   video.Thumbnail(),
		OwnerUUID:   video.OwnerUUID(),
		CreatedAt:   video.CreatedAt(),
		UpdatedAt:   video.UpdatedAt(),
	}
}

// NewVideoDtos 批量从实体创建DTO
func NewVideoDtos(videos []*entity.VideoEntity) []*VideoDto {
	dtos := make([]*VideoDto, 0, len(videos))
	for _, v := range videos {
		if v != nil {
			dtos = append(dtos, NewVideoDto(v))
		}
	}
	return dtos
}
