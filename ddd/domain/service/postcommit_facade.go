package service

import (
	"context"
	"time"

	"video-ingest-service/ddd/domain/entity"
	"video-ingest-service/ddd/domain/gateway"
	"video-ingest-service/ddd/domain/repo"
	"video-ingest-service/pkg/logger"
)

// PostCommitFacade runs the side effects after a successful commit:
// refresh the owner's listing cache and publish a notification event.
// Both are best-effort; failures here never fail the upload.
type PostCommitFacade struct {
	videos     repo.VideoRepository
	cache      gateway.ListingCache
	events     gateway.EventPublisher
	listingTTL time.Duration
}

func NewPostCommitFacade(videos repo.VideoRepository, cache gateway.ListingCache, events gateway.EventPublisher, listingTTL time.Duration) *PostCommitFacade {
	return &PostCommitFacade{
		videos:     videos,
		cache:      cache,
		events:     events,
		listingTTL: listingTTL,
	}
}

// AfterCommit refreshes the owner listing cache and publishes text.
func (f *PostCommitFacade) AfterCommit(ctx context.Context, video *entity.VideoEntity, text string) {
	f.refreshOwnerListing(ctx, video.OwnerUUID())

	if f.events != nil {
		if err := f.events.Publish(ctx, text); err != nil {
			logger.Warnf("event publish failed video_uuid=%s error=%v", video.VideoUUID(), err)
		}
	}
}

func (f *PostCommitFacade) refreshOwnerListing(ctx context.Context, ownerUUID string) {
	if f.cache == nil {
		return
	}
	listing, err := f.videos.FindByOwner(ctx, ownerUUID)
	if err != nil {
		logger.Warnf("listing cache refresh skipped owner=%s error=%v", ownerUUID, err)
		return
	}
	if err := f.cache.SetOwnerListing(ctx, ownerUUID, toCachedListing(listing), f.listingTTL); err != nil {
		logger.Warnf("listing cache write failed owner=%s error=%v", ownerUUID, err)
	}
}

func toCachedListing(videos []*entity.VideoEntity) []gateway.CachedVideo {
	listing := make([]gateway.CachedVideo, 0, len(videos))
	for _, v := range videos {
		listing = append(listing, gateway.CachedVideo{
			VideoUUID:   v.VideoUUID(),
			Title:       v.Title(),
			Description: v.Description(),
			URL:         v.URL(),
			Thumbnail:   v.Thumbnail(),
			OwnerUUID:   v.OwnerUUID(),
			CreatedAt:   v.CreatedAt(),
			UpdatedAt:   v.UpdatedAt(),
		})
	}
	return listing
}
