package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

// Feed selects one of the post lists.
type Feed string

const (
	FeedAll     Feed = "all"
	FeedHot     Feed = "hot"
	FeedEssence Feed = "essence"
	FeedMine    Feed = "mine"
)

// ForumAPI is the part of the backend client the forum service needs.
type ForumAPI interface {
	ListPosts(ctx context.Context, p models.Page) (json.RawMessage, error)
	HotPosts(ctx context.Context, p models.Page) (json.RawMessage, error)
	EssencePosts(ctx context.Context, p models.Page) (json.RawMessage, error)
	MyPosts(ctx context.Context, p models.Page) (json.RawMessage, error)
	SearchPosts(ctx context.Context, s models.PostSearch) (json.RawMessage, error)
	GetPost(ctx context.Context, postID int64) (json.RawMessage, error)
	CreatePost(ctx context.Context, in models.PostInput) (json.RawMessage, error)
	LikePost(ctx context.Context, postID int64) (json.RawMessage, error)
	UnlikePost(ctx context.Context, postID int64) (json.RawMessage, error)
	CollectPost(ctx context.Context, postID int64) (json.RawMessage, error)
	UncollectPost(ctx context.Context, postID int64) (json.RawMessage, error)
	PostComments(ctx context.Context, postID int64) (json.RawMessage, error)
	CreateComment(ctx context.Context, in models.CommentInput) (json.RawMessage, error)
	ListPlates(ctx context.Context, p models.Page) (json.RawMessage, error)
	GetProfile(ctx context.Context, userID int64) (json.RawMessage, error)
}

type ForumService interface {
	Feed(ctx context.Context, feed Feed, page int) (json.RawMessage, error)
	Post(ctx context.Context, postID int64) (json.RawMessage, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Publish(ctx context.Context, in models.PostInput) (json.RawMessage, error)
	Comments(ctx context.Context, postID int64) (json.RawMessage, error)
	Comment(ctx context.Context, postID int64, content string, parent *int64) (json.RawMessage, error)
	Like(ctx context.Context, postID int64, on bool) error
	Collect(ctx context.Context, postID int64, on bool) error
	Plates(ctx context.Context, page int) (json.RawMessage, error)
	Profile(ctx context.Context, userID int64) (json.RawMessage, error)
}

type forumService struct {
	api ForumAPI
}

func NewForumService(api ForumAPI) ForumService {
	return &forumService{api: api}
}

func ParseFeed(s string) (Feed, error) {
	switch f := Feed(strings.ToLower(s)); f {
	case "", FeedAll:
		return FeedAll, nil
	case FeedHot, FeedEssence, FeedMine:
		return f, nil
	default:
		return "", fmt.Errorf("unknown feed %q", s)
	}
}

func (s *forumService) Feed(ctx context.Context, feed Feed, page int) (json.RawMessage, error) {
	p := models.Page{Page: page}
	switch feed {
	case FeedHot:
		return s.api.HotPosts(ctx, p)
	case FeedEssence:
		return s.api.EssencePosts(ctx, p)
	case FeedMine:
		return s.api.MyPosts(ctx, p)
	default:
		return s.api.ListPosts(ctx, p)
	}
}

func (s *forumService) Post(ctx context.Context, postID int64) (json.RawMessage, error) {
	return s.api.GetPost(ctx, postID)
}

// Search accepts either free text, matched against titles, or
// space-separated name=value filters.
func (s *forumService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyField
	}

	search := models.PostSearch{Title: query}
	if strings.Contains(query, "=") {
		var err error
		if search, err = models.ParsePostFilters(strings.Fields(query)); err != nil {
			return nil, err
		}
	}
	return s.api.SearchPosts(ctx, search)
}

func (s *forumService) Publish(ctx context.Context, in models.PostInput) (json.RawMessage, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyField
	}
	return s.api.CreatePost(ctx, in)
}

func (s *forumService) Comments(ctx context.Context, postID int64) (json.RawMessage, error) {
	return s.api.PostComments(ctx, postID)
}

func (s *forumService) Comment(ctx context.Context, postID int64, content string, parent *int64) (json.RawMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyField
	}
	return s.api.CreateComment(ctx, models.CommentInput{Post: postID, Content: content, Parent: parent})
}

func (s *forumService) Like(ctx context.Context, postID int64, on bool) error {
	var err error
	if on {
		_, err = s.api.LikePost(ctx, postID)
	} else {
		_, err = s.api.UnlikePost(ctx, postID)
	}
	return err
}

func (s *forumService) Collect(ctx context.Context, postID int64, on bool) error {
	var err error
	if on {
		_, err = s.api.CollectPost(ctx, postID)
	} else {
		_, err = s.api.UncollectPost(ctx, postID)
	}
	return err
}

func (s *forumService) Plates(ctx context.Context, page int) (json.RawMessage, error) {
	return s.api.ListPlates(ctx, models.Page{Page: page})
}

func (s *forumService) Profile(ctx context.Context, userID int64) (json.RawMessage, error) {
	return s.api.GetProfile(ctx, userID)
}
