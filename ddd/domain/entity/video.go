package entity

import (
	"time"
)

// VideoEntity is the metadata record of one uploaded video.
type VideoEntity struct {
	id          uint       // database id, 0 until persisted
	videoUUID   string     // assigned by the store on first persist
	title       string     // display title
	description string     // free-form description
	url         *string    // storage-relative playback url, nil until committed
	thumbnail   string     // optional thumbnail url
	ownerUUID   string     // uploading user
	createdAt   time.Time  // first persist time
	updatedAt   time.Time  // last persist time
}

// NewVideoEntity creates an unpersisted record; the store assigns the
// uuid on create.
func NewVideoEntity(title, description, ownerUUID string) *VideoEntity {
	now := time.Now()
	return &VideoEntity{
		title:       title,
		description: description,
		ownerUUID:   ownerUUID,
		createdAt:   now,
		updatedAt:   now,
	}
}

// NewVideoEntityWithDetails rebuilds an entity from persisted state.
func NewVideoEntityWithDetails(
	id uint,
	videoUUID string,
	title string,
	description string,
	url *string,
	thumbnail string,
	ownerUUID string,
	createdAt time.Time,
	updatedAt time.Time,
) *VideoEntity {
	return &VideoEntity{
		id:          id,
		videoUUID:   videoUUID,
		title:       title,
		description: description,
		url:         url,
		thumbnail:   thumbnail,
		ownerUUID:   ownerUUID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (v *VideoEntity) ID() uint             { return v.id }
func (v *VideoEntity) VideoUUID() string    { return v.videoUUID }
func (v *VideoEntity) Title() string        { return v.title }
func (v *VideoEntity) Description() string  { return v.description }
func (v *VideoEntity) URL() *string         { return v.url }
func (v *VideoEntity) Thumbnail() string    { return v.thumbnail }
func (v *VideoEntity) OwnerUUID() string    { return v.ownerUUID }
func (v *VideoEntity) CreatedAt() time.Time { return v.createdAt }
func (v *VideoEntity) UpdatedAt() time.Time { return v.updatedAt }

// IsCommitted reports whether the playback url has been set.
func (v *VideoEntity) IsCommitted() bool {
	return v.url != nil && *v.url != ""
}

// AssignIdentity is called by the store when the record is first
// persisted.
func (v *VideoEntity) AssignIdentity(id uint, videoUUID string) {
	v.id = id
	v.videoUUID = videoUUID
}

// Commit sets the playback url once every rendition exists on disk.
func (v *VideoEntity) Commit(url string) {
	v.url = &url
	v.updatedAt = time.Now()
}

// SetThumbnail updates the optional thumbnail url.
func (v *VideoEntity) SetThumbnail(thumbnail string) {
	v.thumbnail = thumbnail
	v.updatedAt = time.Now()
}
