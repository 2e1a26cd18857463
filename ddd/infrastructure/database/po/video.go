package po

// Video 视频元数据持久化对象
type Video struct {
	BaseModel
	VideoUUID   string  `gorm:"column:video_uuid;type:varchar(36);uniqueIndex" json:"video_uuid"`
	Title       string  `gorm:"column:title;type:varchar(255)" json:"title"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	URL         *string `gorm:"column:url;type:varchar(512)" json:"url"` // nil until the upload commits
	Thumbnail   string  `gorm:"column:thumbnail;type:varchar(512)" json:"thumbnail"`
	OwnerUUID   string  `gorm:"column:owner_uuid;type:varchar(36);index" json:"owner_uuid"`
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}
