package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

// PostComments lists every comment of a post.
func (c *HTTPClient) PostComments(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/post/comment/list/%d/", postID), nil, nil)
}

// SearchComments filters the comments of s.Post by author, parent or
// reply target.
func (c *HTTPClient) SearchComments(ctx context.Context, s models.CommentSearch) (json.RawMessage, error) {
	s.Page = s.Page.Normalize()
	return c.do(ctx, http.MethodPost, idPath("/post/comment/list/%d/", s.Post), nil, s)
}

func (c *HTTPClient) CreateComment(ctx context.Context, in models.CommentInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/comment/create/", nil, in)
}

func (c *HTTPClient) GetComment(ctx context.Context, commentID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/comment/detail/%d/", commentID), nil, nil)
}

func (c *HTTPClient) UpdateComment(ctx context.Context, commentID int64, content string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, idPath("/comment/action/%d/", commentID), nil, map[string]string{"content": content})
}

func (c *HTTPClient) DeleteComment(ctx context.Context, commentID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/comment/action/%d/", commentID), nil, nil)
}

func (c *HTTPClient) LikeComment(ctx context.Context, commentID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/comment/like/%d/", commentID), nil, nil)
}

func (c *HTTPClient) UnlikeComment(ctx context.Context, commentID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/comment/like/%d/", commentID), nil, nil)
}

func (c *HTTPClient) CollectComment(ctx context.Context, commentID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/comment/collect/%d/", commentID), nil, nil)
}

func (c *HTTPClient) UncollectComment(ctx context.Context, commentID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/comment/collect/%d/", commentID), nil, nil)
}
