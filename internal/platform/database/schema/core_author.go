package schema

// RefAuthorTable represents the 'directory.author' table.
type RefAuthorTable struct {
	Table       string
	Handle      string
	DisplayName string
	AvatarURL   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// RefAuthor is the schema definition for directory.author.
var RefAuthor = RefAuthorTable{
	Table:       "directory.author",
	Handle:      "handle",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t RefAuthorTable) Columns() []string {
	return []string{t.Handle, t.DisplayName, t.AvatarURL, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
