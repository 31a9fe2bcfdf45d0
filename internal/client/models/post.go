package models

// PostInput creates or updates a post. Plate is the plate (board) id.
type PostInput struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Plate   int64    `json:"plate,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// PostSearch filters the post list. Empty fields are not sent.
type PostSearch struct {
	PostID         string `json:"postID,omitempty"`
	Title          string `json:"title,omitempty"`
	Content        string `json:"content,omitempty"`
	AuthorUserID   string `json:"author__userID,omitempty"`
	AuthorUsername string `json:"author__username,omitempty"`
	TagName        string `json:"tags__name,omitempty"`
	PlateID        string `json:"plate__plateID,omitempty"`
	PlateName      string `json:"plate__name,omitempty"`
	IsEssence      *bool  `json:"is_essence,omitempty"`
	Page
}
