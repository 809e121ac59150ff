package schema

// ContentMediaTable represents the 'content.media' table
type ContentMediaTable struct {
	Table        string
	ID           string
	Title        string
	Description  string
	Kind         string
	Category     string
	FileURL      string
	FileKey      string
	ThumbnailURL string
	ThumbnailKey string
	Duration     string
	ViewCount    string
	PublishedAt  string
	CreatedAt    string
	UpdatedAt    string
}

// ContentMedia is the schema definition for content.media
var ContentMedia = ContentMediaTable{
	Table:        "content.media",
	ID:           "id",
	Title:        "title",
	Description:  "description",
	Kind:         "kind",
	Category:     "category",
	FileURL:      "fileurl",
	FileKey:      "filekey",
	ThumbnailURL: "thumbnailurl",
	ThumbnailKey: "thumbnailkey",
	Duration:     "duration",
	ViewCount:    "viewcount",
	PublishedAt:  "publishedat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentMediaTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Kind, t.Category,
		t.FileURL, t.FileKey, t.ThumbnailURL, t.ThumbnailKey,
		t.Duration, t.ViewCount, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
