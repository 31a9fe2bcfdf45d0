package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

func (c *HTTPClient) ListPosts(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/post/list/", p.Query(), nil)
}

func (c *HTTPClient) HotPosts(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/post/hot/list/", p.Query(), nil)
}

// EssencePosts lists featured posts.
func (c *HTTPClient) EssencePosts(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/post/essence/list/", p.Query(), nil)
}

// MyPosts lists posts written by the logged-in user.
func (c *HTTPClient) MyPosts(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/post/my/list/", p.Query(), nil)
}

func (c *HTTPClient) SearchPosts(ctx context.Context, s models.PostSearch) (json.RawMessage, error) {
	s.Page = s.Page.Normalize()
	return c.do(ctx, http.MethodPost, "/post/list/", nil, s)
}

func (c *HTTPClient) GetPost(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/post/detail/%d/", postID), nil, nil)
}

func (c *HTTPClient) CreatePost(ctx context.Context, in models.PostInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/post/create/", nil, in)
}

func (c *HTTPClient) UpdatePost(ctx context.Context, postID int64, in models.PostInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, idPath("/post/action/%d/", postID), nil, in)
}

func (c *HTTPClient) DeletePost(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/post/action/%d/", postID), nil, nil)
}

func (c *HTTPClient) LikePost(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/post/like/%d/", postID), nil, nil)
}

func (c *HTTPClient) UnlikePost(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/post/like/%d/", postID), nil, nil)
}

func (c *HTTPClient) CollectPost(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/post/collect/%d/", postID), nil, nil)
}

func (c *HTTPClient) UncollectPost(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/post/collect/%d/", postID), nil, nil)
}

func (c *HTTPClient) GetPostCover(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/post/coverImg/%d/", postID), nil, nil)
}

// SetPostCover uploads a cover image given as an encoded image string.
func (c *HTTPClient) SetPostCover(ctx context.Context, postID int64, cover string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, idPath("/post/coverImg/%d/", postID), nil, map[string]string{"coverImg": cover})
}

func (c *HTTPClient) DeletePostCover(ctx context.Context, postID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/post/coverImg/%d/", postID), nil, nil)
}
