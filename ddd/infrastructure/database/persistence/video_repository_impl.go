package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"video-ingest-service/ddd/domain/entity"
	"video-ingest-service/ddd/domain/repo"
	"video-ingest-service/ddd/infrastructure/database/convertor"
	"video-ingest-service/ddd/infrastructure/database/dao"
	"video-ingest-service/pkg/errno"
)

// videoRepositoryImpl 视频仓储实现
type videoRepositoryImpl struct {
	videoDao  *dao.VideoDAO
	convertor *convertor.VideoConvertor
}

// NewVideoRepository 创建视频仓储实现
func NewVideoRepository() repo.VideoRepository {
	return &videoRepositoryImpl{
		videoDao:  dao.NewVideoDAO(),
		convertor: convertor.NewVideoConvertor(),
	}
}

// NewVideoRepositoryWith wires an explicit DAO, used by tests.
func NewVideoRepositoryWith(videoDao *dao.VideoDAO) repo.VideoRepository {
	return &videoRepositoryImpl{
		videoDao:  videoDao,
		convertor: convertor.NewVideoConvertor(),
	}
}

// CreateVideo persists a new record and assigns its identity.
func (r *videoRepositoryImpl) CreateVideo(ctx context.Context, video *entity.VideoEntity) (*entity.VideoEntity, error) {
	videoPo := r.convertor.ToPO(video)
	videoPo.VideoUUID = uuid.NewString()
	if err := r.videoDao.Create(ctx, videoPo); err != nil {
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	video.AssignIdentity(videoPo.Id, videoPo.VideoUUID)
	return video, nil
}

// UpdateVideo saves the full record; last writer wins.
func (r *videoRepositoryImpl) UpdateVideo(ctx context.Context, video *entity.VideoEntity) (*entity.VideoEntity, error) {
	if err := r.videoDao.Save(ctx, r.convertor.ToPO(video)); err != nil {
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	return video, nil
}

func (r *videoRepositoryImpl) FindByUUID(ctx context.Context, videoUUID string) (*entity.VideoEntity, error) {
	videoPo, err := r.videoDao.FindByVideoUUID(ctx, videoUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrVideoNotFound
		}
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	return r.convertor.ToEntity(videoPo), nil
}

func (r *videoRepositoryImpl) FindByOwner(ctx context.Context, ownerUUID string) ([]*entity.VideoEntity, error) {
	pos, err := r.videoDao.FindByOwnerUUID(ctx, ownerUUID)
	if err != nil {
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	return r.convertor.ToEntities(pos), nil
}

func (r *videoRepositoryImpl) FindAll(ctx context.Context) ([]*entity.VideoEntity, error) {
	pos, err := r.videoDao.FindAll(ctx)
	if err != nil {
		return nil, errno.NewBizError(errno.ErrStore, err)
	}
	return r.convertor.ToEntities(pos), nil
}

func (r *videoRepositoryImpl) DeleteByUUID(ctx context.Context, videoUUID string) error {
	affected, err := r.videoDao.DeleteByVideoUUID(ctx, videoUUID)
	if err != nil {
		return errno.NewBizError(errno.ErrStore, err)
	}
	if affected == 0 {
		return errno.ErrVideoNotFound
	}
	return nil
}
