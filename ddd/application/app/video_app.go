package app

import (
	"context"
	"sync"

	"video-ingest-service/ddd/application/cqe"
	"video-ingest-service/ddd/application/dto"
	"video-ingest-service/ddd/domain/gateway"
	"video-ingest-service/ddd/domain/service"
	"video-ingest-service/ddd/infrastructure/cache"
	"video-ingest-service/ddd/infrastructure/database/persistence"
	"video-ingest-service/ddd/infrastructure/executor"
	"video-ingest-service/ddd/infrastructure/messaging"
	"video-ingest-service/ddd/infrastructure/storagefs"
	"video-ingest-service/internal/resource"
	"video-ingest-service/pkg/assert"
	"video-ingest-service/pkg/config"
	kafkaclient "video-ingest-service/pkg/kafka"
)

var (
	singleVideoApp VideoApp
	onceVideoApp   sync.Once
)

// VideoApp is the application service behind the HTTP adapter and the
// importer CLI.
type VideoApp interface {
	// UploadVideo 上传视频（流式）
	UploadVideo(ctx context.Context, req *cqe.UploadVideoReq) (*dto.VideoDto, error)
	// ImportVideo 从服务器本地路径导入视频
	ImportVideo(ctx context.Context, req *cqe.ImportVideoReq) (*dto.VideoDto, error)
	// ListVideos 获取全部视频列表
	ListVideos(ctx context.Context) ([]*dto.VideoDto, error)
	// ListVideosByOwner 获取指定所有者的视频列表
	ListVideosByOwner(ctx context.Context, ownerUUID string) ([]*dto.VideoDto, error)
	// GetVideo 获取视频详情
	GetVideo(ctx context.Context, videoUUID string) (*dto.VideoDto, error)
	// ResolveManifest 解析播放清单文件路径
	ResolveManifest(ctx context.Context, req *cqe.StreamVideoReq) (string, error)
	// ResolveRaw 解析原始视频文件路径
	ResolveRaw(ctx context.Context, videoUUID string) (string, error)
}

type videoAppImpl struct {
	uploads service.UploadService
	library service.LibraryService
}

// DefaultVideoApp wires the production dependency graph from global
// resources; safe to call from multiple goroutines.
func DefaultVideoApp() VideoApp {
	assert.NotCircular()
	onceVideoApp.Do(func() {
		cfg := config.GetGlobalConfig()

		videos := persistence.NewVideoRepository()
		layout := storagefs.NewLayout(cfg.Storage.Root)
		encoder := executor.NewFFmpegEncoder(cfg)
		listingCache := cache.NewRedisListingCache(resource.DefaultRedisResource().Client())

		var events gateway.EventPublisher
		if cfg.Kafka.Enabled {
			events = messaging.NewKafkaEventPublisher(kafkaclient.DefaultClient(), cfg.Kafka.Topics.VideoEvents)
		}

		facade := service.NewPostCommitFacade(videos, listingCache, events, cfg.Cache.ListingTTL)
		uploads := service.NewUploadService(videos, layout, encoder, facade, cfg.Storage.MaxUploadSizeBytes())
		library := service.NewLibraryService(videos, layout, listingCache)

		singleVideoApp = NewVideoAppWith(uploads, library)
	})
	assert.NotNil(singleVideoApp)
	return singleVideoApp
}

// NewVideoAppWith wires explicit services, used by tests.
func NewVideoAppWith(uploads service.UploadService, library service.LibraryService) VideoApp {
	return &videoAppImpl{uploads: uploads, library: library}
}

func (a *videoAppImpl) UploadVideo(ctx context.Context, req *cqe.UploadVideoReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	video, err := a.uploads.UploadStream(ctx, &service.UploadCommand{
		Title:       req.Title,
		Description: req.Description,
		OwnerUUID:   req.OwnerUUID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Size:        req.Size,
		Body:        req.Body,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDto(video), nil
}

func (a *videoAppImpl) ImportVideo(ctx context.Context, req *cqe.ImportVideoReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	video, err := a.uploads.UploadFromPath(ctx, req.Title, req.Description, req.OwnerUUID, req.Path)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDto(video), nil
}

func (a *videoAppImpl) ListVideos(ctx context.Context) ([]*dto.VideoDto, error) {
	videos, err := a.library.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDtos(videos), nil
}

func (a *videoAppImpl) ListVideosByOwner(ctx context.Context, ownerUUID string) ([]*dto.VideoDto, error) {
	videos, err := a.library.ListByOwner(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDtos(videos), nil
}

func (a *videoAppImpl) GetVideo(ctx context.Context, videoUUID string) (*dto.VideoDto, error) {
	video, err := a.library.GetByUUID(ctx, videoUUID)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDto(video), nil
}

func (a *videoAppImpl) ResolveManifest(ctx context.Context, req *cqe.StreamVideoReq) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return a.library.ResolveManifest(ctx, req.VideoUUID, req.Quality)
}

func (a *videoAppImpl) ResolveRaw(ctx context.Context, videoUUID string) (string, error) {
	return a.library.ResolveRaw(ctx, videoUUID)
}
