package model

// swagger:model ContentResource
type ContentResource struct {
	BaseModel
	Title      string  `gorm:"size:255;not null" json:"title"`
	Type       string  `gorm:"size:20;not null" json:"type"` // video, document, image
	URL        string  `gorm:"size:500" json:"url"`
	ObjectKey  string  `gorm:"size:255" json:"objectKey"`
	MimeType   string  `gorm:"size:100" json:"mimeType"`
	Size       int64   `gorm:"default:0" json:"size"`
	Duration   float64 `gorm:"default:0" json:"duration"` // Seconds, videos only
	Width      int     `gorm:"default:0" json:"width"`
	Height     int     `gorm:"default:0" json:"height"`
	Thumbnail  string  `gorm:"size:500" json:"thumbnail"`
	UploaderID uint    `gorm:"index;type:bigint unsigned" json:"uploaderId"`
}

func (ContentResource) TableName() string {
	return "content_resources"
}
