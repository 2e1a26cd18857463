package convertor

import (
	"video-ingest-service/ddd/domain/entity"
	"video-ingest-service/ddd/infrastructure/database/po"
)

// VideoConvertor 视频实体与持久化对象转换器
type VideoConvertor struct{}

// NewVideoConvertor 创建视频转换器
func NewVideoConvertor() *VideoConvertor {
	return &VideoConvertor{}
}

// ToEntity 将PO转换为Entity
func (c *VideoConvertor) ToEntity(videoPo *po.Video) *entity.VideoEntity {
	if videoPo == nil {
		return nil
	}
	return entity.NewVideoEntityWithDetails(
		videoPo.Id,
		videoPo.VideoUUID,
		videoPo.Title,
		videoPo.Description,
		videoPo.URL,
		videoPo.Thumbnail,
		videoPo.OwnerUUID,
		videoPo.CreatedAt,
		videoPo.UpdatedAt,
	)
}

// ToPO 将Entity转换为PO
func (c *VideoConvertor) ToPO(videoEntity *entity.VideoEntity) *po.Video {
	if videoEntity == nil {
		return nil
	}
	return &po.Video{
		BaseModel: po.BaseModel{
			Id:        videoEntity.ID(),
			CreatedAt: videoEntity.CreatedAt(),
			UpdatedAt: videoEntity.UpdatedAt(),
		},
		VideoUUID:   videoEntity.VideoUUID(),
		Title:       videoEntity.Title(),
		Description: videoEntity.Description(),
		URL:         videoEntity.URL(),
		Thumbnail:   videoEntity.Thumbnail(),
		OwnerUUID:   videoEntity.OwnerUUID(),
	}
}

// ToEntities 批量将PO转换为Entity
func (c *VideoConvertor) ToEntities(pos []*po.Video) []*entity.VideoEntity {
	if pos == nil {
		return nil
	}
	entities := make([]*entity.VideoEntity, 0, len(pos))
	for _, videoPo := range pos {
		if videoPo != nil {
			entities = append(entities, c.ToEntity(videoPo))
		}
	}
	return entities
}
