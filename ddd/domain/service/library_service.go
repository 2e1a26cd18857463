package service

import (
	"context"
	"path/filepath"

	"video-ingest-service/ddd/domain/entity"
	"video-ingest-service/ddd/domain/gateway"
	"video-ingest-service/ddd/domain/repo"
	"video-ingest-service/ddd/domain/vo"
	"video-ingest-service/pkg/errno"
	"video-ingest-service/pkg/logger"
)

// LibraryService answers read queries over the committed video library.
type LibraryService interface {
	ListAll(ctx context.Context) ([]*entity.VideoEntity, error)
	// ListByOwner reads through the owner-listing cache; cache trouble
	// falls back to the store.
	ListByOwner(ctx context.Context, ownerUUID string) ([]*entity.VideoEntity, error)
	GetByUUID(ctx context.Context, videoUUID string) (*entity.VideoEntity, error)
	// ResolveManifest maps (video, quality label) to the on-disk playlist
	// path. Unknown labels are rejected before any filesystem access.
	ResolveManifest(ctx context.Context, videoUUID, quality string) (string, error)
	// ResolveRaw maps a committed video to its original upload file.
	ResolveRaw(ctx context.Context, videoUUID string) (string, error)
}

type libraryServiceImpl struct {
	videos repo.VideoRepository
	layout gateway.StorageLayout
	cache  gateway.ListingCache
}

func NewLibraryService(videos repo.VideoRepository, layout gateway.StorageLayout, cache gateway.ListingCache) LibraryService {
	return &libraryServiceImpl{videos: videos, layout: layout, cache: cache}
}

func (s *libraryServiceImpl) ListAll(ctx context.Context) ([]*entity.VideoEntity, error) {
	return s.videos.FindAll(ctx)
}

func (s *libraryServiceImpl) ListByOwner(ctx context.Context, ownerUUID string) ([]*entity.VideoEntity, error) {
	if s.cache != nil {
		listing, hit, err := s.cache.GetOwnerListing(ctx, ownerUUID)
		if err != nil {
			logger.Warnf("listing cache read failed owner=%s error=%v", ownerUUID, err)
		} else if hit {
			return fromCachedListing(listing), nil
		}
	}
	return s.videos.FindByOwner(ctx, ownerUUID)
}

func (s *libraryServiceImpl) GetByUUID(ctx context.Context, videoUUID string) (*entity.VideoEntity, error) {
	return s.videos.FindByUUID(ctx, videoUUID)
}

func (s *libraryServiceImpl) ResolveManifest(ctx context.Context, videoUUID, quality string) (string, error) {
	rendition, ok := vo.FindRendition(quality)
	if !ok {
		return "", errno.ErrRenditionUnknown
	}
	if _, err := s.videos.FindByUUID(ctx, videoUUID); err != nil {
		return "", err
	}
	manifest := filepath.Join(s.layout.DirFor(videoUUID), rendition.ManifestName())
	if !s.layout.Exists(manifest) {
		return "", errno.ErrVideoNotFound
	}
	return manifest, nil
}

func (s *libraryServiceImpl) ResolveRaw(ctx context.Context, videoUUID string) (string, error) {
	video, err := s.videos.FindByUUID(ctx, videoUUID)
	if err != nil {
		return "", err
	}
	if !video.IsCommitted() {
		return "", errno.ErrVideoNotReady
	}
	raw := filepath.Join(s.layout.Root(), filepath.FromSlash(*video.URL()))
	if !s.layout.Exists(raw) {
		return "", errno.ErrVideoNotFound
	}
	return raw, nil
}

func fromCachedListing(listing []gateway.CachedVideo) []*entity.VideoEntity {
	videos := make([]*entity.VideoEntity, 0, len(listing))
	for _, c := range listing {
		videos = append(videos, entity.NewVideoEntityWithDetails(
			0, c.VideoUUID, c.Title, c.Description, c.URL, c.Thumbnail, c.OwnerUUID, c.CreatedAt, c.UpdatedAt,
		))
	}
	return videos
}
