package schema

// ContentTimelineTable represents the 'content.timeline' table
type ContentTimelineTable struct {
	Table          string
	ID             string
	Title          string
	Description    string
	Date           string
	Impact         string
	IsKeyMilestone string
	Gallery        string
	CreatedAt      string
	UpdatedAt      string
}

// ContentTimeline is the schema definition for content.timeline
var ContentTimeline = ContentTimelineTable{
	Table:          "content.timeline",
	ID:             "id",
	Title:          "title",
	Description:    "description",
	Date:           "date",
	Impact:         "impact",
	IsKeyMilestone: "iskeymilestone",
	Gallery:        "gallery",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t ContentTimelineTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Date, t.Impact,
		t.IsKeyMilestone, t.Gallery, t.CreatedAt, t.UpdatedAt,
	}
}
