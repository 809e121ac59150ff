package schema

// ContentInformationGroupTable represents the 'content.informationgroup' table
type ContentInformationGroupTable struct {
	Table      string
	ID         string
	GroupTitle string
	Items      string
	CreatedAt  string
	UpdatedAt  string
}

// ContentInformationGroup is the schema definition for content.informationgroup
var ContentInformationGroup = ContentInformationGroupTable{
	Table:      "content.informationgroup",
	ID:         "id",
	GroupTitle: "grouptitle",
	Items:      "items",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t ContentInformationGroupTable) Columns() []string {
	return []string{t.ID, t.GroupTitle, t.Items, t.CreatedAt, t.UpdatedAt}
}
