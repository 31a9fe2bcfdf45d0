package models

// CommentInput creates a comment; Parent is set for replies.
type CommentInput struct {
	Post    int64  `json:"post"`
	Content string `json:"content"`
	Parent  *int64 `json:"parent,omitempty"`
}

type CommentSearch struct {
	Post    int64  `json:"post"`
	Author  *int64 `json:"author,omitempty"`
	Parent  *int64 `json:"parent,omitempty"`
	ReplyTo *int64 `json:"reply_to,omitempty"`
	Page
}
