package repo

import (
	"context"

	"video-ingest-service/ddd/domain/entity"
)

// VideoRepository is the metadata store contract. Implementations map
// missing rows to errno.ErrVideoNotFound and infrastructure failures to
// errno.ErrStore.
type VideoRepository interface {
	// CreateVideo persists a new record and assigns its identity.
	CreateVideo(ctx context.Context, video *entity.VideoEntity) (*entity.VideoEntity, error)
	// UpdateVideo overwrites the record unconditionally (last writer wins;
	// only the upload pipeline ever writes a given id).
	UpdateVideo(ctx context.Context, video *entity.VideoEntity) (*entity.VideoEntity, error)
	// FindByUUID loads one record.
	FindByUUID(ctx context.Context, videoUUID string) (*entity.VideoEntity, error)
	// FindByOwner lists an owner's records, newest first.
	FindByOwner(ctx context.Context, ownerUUID string) ([]*entity.VideoEntity, error)
	// FindAll lists every record, newest first.
	FindAll(ctx context.Context) ([]*entity.VideoEntity, error)
	// DeleteByUUID removes one record.
	DeleteByUUID(ctx context.Context, videoUUID string) error
}
