package gateway

import (
	"context"
	"time"
)

// CachedVideo is the serializable shape of a video record in the
// owner-listing cache.
type CachedVideo struct {
	VideoUUID   string    `json:"video_uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         *string   `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	OwnerUUID   string    `json:"owner_uuid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListingCache accelerates per-owner listing reads. It is never a
// source of truth: a miss or error only costs latency.
type ListingCache interface {
	SetOwnerListing(ctx context.Context, ownerUUID string, listing []CachedVideo, ttl time.Duration) error
	// GetOwnerListing returns the cached listing and whether it was a hit.
	GetOwnerListing(ctx context.Context, ownerUUID string) ([]CachedVideo, bool, error)
}
