package dao

import (
	"context"

	"gorm.io/gorm"

	"video-ingest-service/ddd/infrastructure/database/po"
	"video-ingest-service/internal/resource"
)

// VideoDAO 视频元数据数据访问对象
type VideoDAO struct {
	db *gorm.DB
}

// NewVideoDAO 创建视频DAO实例
func NewVideoDAO() *VideoDAO {
	return &VideoDAO{
		db: resource.DefaultMysqlResource().MainDB(),
	}
}

// NewVideoDAOWith wires an explicit connection, used by tests.
func NewVideoDAOWith(db *gorm.DB) *VideoDAO {
	return &VideoDAO{db: db}
}

// Create 创建视频记录
func (d *VideoDAO) Create(ctx context.Context, videoPo *po.Video) error {
	return d.db.WithContext(ctx).Model(&po.Video{}).Create(videoPo).Error
}

// Save 全量更新视频记录
func (d *VideoDAO) Save(ctx context.Context, videoPo *po.Video) error {
	return d.db.WithContext(ctx).Save(videoPo).Error
}

// FindByVideoUUID 根据UUID查询视频
func (d *VideoDAO) FindByVideoUUID(ctx context.Context, videoUUID string) (*po.Video, error) {
	var video po.Video
	if err := d.db.WithContext(ctx).
		Where("video_uuid = ?", videoUUID).
		First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// FindByOwnerUUID 根据所有者查询视频列表
func (d *VideoDAO) FindByOwnerUUID(ctx context.Context, ownerUUID string) ([]*po.Video, error) {
	var videos []*po.Video
	if err := d.db.WithContext(ctx).
		Where("owner_uuid = ?", ownerUUID).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// FindAll 查询全部视频
func (d *VideoDAO) FindAll(ctx context.Context) ([]*po.Video, error) {
	var videos []*po.Video
	if err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// DeleteByVideoUUID 根据UUID删除视频记录
func (d *VideoDAO) DeleteByVideoUUID(ctx context.Context, videoUUID string) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("video_uuid = ?", videoUUID).
		Delete(&po.Video{})
	return result.RowsAffected, result.Error
}
