package artworks

// ---------- requests

type CreateArtworkRequest struct {
	Title        string `json:"title" binding:"required"`
	TitleZh      string `json:"title_zh"`
	Year         string `json:"year"`
	Type         string `json:"type"`
	Dimensions   string `json:"dimensions"`
	Materials    string `json:"materials"`
	Duration     string `json:"duration"`
	SourceURL    string `json:"source_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type UpdateArtworkRequest struct {
	Title        *string `json:"title"`
	TitleZh      *string `json:"title_zh"`
	Year         *string `json:"year"`
	Type         *string `json:"type"`
	Dimensions   *string `json:"dimensions"`
	Materials    *string `json:"materials"`
	Duration     *string `json:"duration"`
	SourceURL    *string `json:"source_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
