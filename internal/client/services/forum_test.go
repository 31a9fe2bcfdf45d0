package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeForumAPI records which method was called and with what argument.
type fakeForumAPI struct {
	calls []string
	args  []any
	err   error
}

func (f *fakeForumAPI) rec(name string, arg any) (json.RawMessage, error) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return json.RawMessage(`{}`), f.err
}

func (f *fakeForumAPI) ListPosts(_ context.Context, p models.Page) (json.RawMessage, error) {
	return f.rec("ListPosts", p)
}
func (f *fakeForumAPI) HotPosts(_ context.Context, p models.Page) (json.RawMessage, error) {
	return f.rec("HotPosts", p)
}
func (f *fakeForumAPI) EssencePosts(_ context.Context, p models.Page) (json.RawMessage, error) {
	return f.rec("EssencePosts", p)
}
func (f *fakeForumAPI) MyPosts(_ context.Context, p models.Page) (json.RawMessage, error) {
	return f.rec("MyPosts", p)
}
func (f *fakeForumAPI) SearchPosts(_ context.Context, s models.PostSearch) (json.RawMessage, error) {
	return f.rec("SearchPosts", s)
}
func (f *fakeForumAPI) GetPost(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("GetPost", id)
}
func (f *fakeForumAPI) CreatePost(_ context.Context, in models.PostInput) (json.RawMessage, error) {
	return f.rec("CreatePost", in)
}
func (f *fakeForumAPI) LikePost(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("LikePost", id)
}
func (f *fakeForumAPI) UnlikePost(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("UnlikePost", id)
}
func (f *fakeForumAPI) CollectPost(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("CollectPost", id)
}
func (f *fakeForumAPI) UncollectPost(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("UncollectPost", id)
}
func (f *fakeForumAPI) PostComments(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("PostComments", id)
}
func (f *fakeForumAPI) CreateComment(_ context.Context, in models.CommentInput) (json.RawMessage, error) {
	return f.rec("CreateComment", in)
}
func (f *fakeForumAPI) ListPlates(_ context.Context, p models.Page) (json.RawMessage, error) {
	return f.rec("ListPlates", p)
}
func (f *fakeForumAPI) GetProfile(_ context.Context, id int64) (json.RawMessage, error) {
	return f.rec("GetProfile", id)
}

func TestParseFeed(t *testing.T) {
	for in, want := range map[string]Feed{"": FeedAll, "all": FeedAll, "HOT": FeedHot, "essence": FeedEssence, "mine": FeedMine} {
		got, err := ParseFeed(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFeed("newest")
	assert.Error(t, err)
}

func TestFeed_RoutesToList(t *testing.T) {
	api := &fakeForumAPI{}
	svc := NewForumService(api)
	ctx := context.Background()

	for _, f := range []Feed{FeedAll, FeedHot, FeedEssence, FeedMine} {
		_, err := svc.Feed(ctx, f, 2)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"ListPosts", "HotPosts", "EssencePosts", "MyPosts"}, api.calls)
	assert.Equal(t, models.Page{Page: 2}, api.args[0])
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("free text", func(t *testing.T) {
		api := &fakeForumAPI{}
		_, err := NewForumService(api).Search(ctx, "  golang tips ")
		require.NoError(t, err)
		if diff := cmp.Diff(models.PostSearch{Title: "golang tips"}, api.args[0]); diff != "" {
			t.Fatalf("search mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("filters", func(t *testing.T) {
		api := &fakeForumAPI{}
		_, err := NewForumService(api).Search(ctx, "plate__name=tech page=3")
		require.NoError(t, err)
		want := models.PostSearch{PlateName: "tech", Page: models.Page{Page: 3}}
		if diff := cmp.Diff(want, api.args[0]); diff != "" {
			t.Fatalf("search mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bad filter", func(t *testing.T) {
		api := &fakeForumAPI{}
		_, err := NewForumService(api).Search(ctx, "colour=red")
		require.Error(t, err)
		assert.Empty(t, api.calls)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewForumService(&fakeForumAPI{}).Search(ctx, " ")
		require.ErrorIs(t, err, ErrEmptyField)
	})
}

func TestPublishAndComment_Validate(t *testing.T) {
	api := &fakeForumAPI{}
	svc := NewForumService(api)
	ctx := context.Background()

	_, err := svc.Publish(ctx, models.PostInput{Title: "t"})
	require.ErrorIs(t, err, ErrEmptyField)
	_, err = svc.Comment(ctx, 1, "  ", nil)
	require.ErrorIs(t, err, ErrEmptyField)
	assert.Empty(t, api.calls)

	_, err = svc.Publish(ctx, models.PostInput{Title: "t", Content: "c", Plate: 3})
	require.NoError(t, err)
	parent := int64(5)
	_, err = svc.Comment(ctx, 1, "hi", &parent)
	require.NoError(t, err)

	assert.Equal(t, []string{"CreatePost", "CreateComment"}, api.calls)
	assert.Equal(t, models.CommentInput{Post: 1, Content: "hi", Parent: &parent}, api.args[1])
}

func TestLikeAndCollect_Toggle(t *testing.T) {
	api := &fakeForumAPI{}
	svc := NewForumService(api)
	ctx := context.Background()

	require.NoError(t, svc.Like(ctx, 1, true))
	require.NoError(t, svc.Like(ctx, 1, false))
	require.NoError(t, svc.Collect(ctx, 1, true))
	require.NoError(t, svc.Collect(ctx, 1, false))

	assert.Equal(t, []string{"LikePost", "UnlikePost", "CollectPost", "UncollectPost"}, api.calls)
}

func TestForumService_PassThrough(t *testing.T) {
	api := &fakeForumAPI{}
	svc := NewForumService(api)
	ctx := context.Background()

	_, _ = svc.Post(ctx, 9)
	_, _ = svc.Comments(ctx, 9)
	_, _ = svc.Plates(ctx, 0)
	_, _ = svc.Profile(ctx, 4)

	assert.Equal(t, []string{"GetPost", "PostComments", "ListPlates", "GetProfile"}, api.calls)
}
