package model

type ContentKind string

const (
	ContentChapter   ContentKind = "chapter"
	ContentVideo     ContentKind = "video"
	ContentHomework  ContentKind = "homework"
	ContentPastPaper ContentKind = "pastpaper"
)

// ContentItem is a piece of course material students browse: a chapter
// outline, a video link, a homework sheet or a past paper.
// swagger:model ContentItem
type ContentItem struct {
	UUIDBase
	CourseID string      `gorm:"size:36;index;not null" json:"courseId"`
	Kind     ContentKind `gorm:"type:enum('chapter','video','homework','pastpaper');not null" json:"kind"`
	Title    string      `gorm:"size:255;not null" json:"title"`
	URL      string      `gorm:"size:512;not null" json:"url"`
	Order    int         `gorm:"default:0" json:"order"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
