package inventory

import "time"

type Artwork struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"-"`

	Title   string `gorm:"not null" json:"title"`
	TitleZh string `gorm:"column:title_zh" json:"title_zh,omitempty"`

	Year       string `json:"year,omitempty"`
	Type       string `gorm:"index" json:"type,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	Materials  string `json:"materials,omitempty"`
	Duration   string `json:"duration,omitempty"`

	SourceURL    string `gorm:"column:source_url;index" json:"source_url,omitempty"`
	ThumbnailURL string `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`

	Editions []Edition `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE;" json:"editions,omitempty"`

	// Soft delete. Rows with a non-null marker never surface in reads.
	DeletedAt *time.Time `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
