package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForum struct {
	feed     services.Feed
	page     int
	postID   int64
	query    string
	input    models.PostInput
	comment  string
	parent   *int64
	likeOn   *bool
	userID   int64
	response json.RawMessage
	err      error
}

func (f *fakeForum) Feed(_ context.Context, feed services.Feed, page int) (json.RawMessage, error) {
	f.feed, f.page = feed, page
	return f.response, f.err
}
func (f *fakeForum) Post(_ context.Context, id int64) (json.RawMessage, error) {
	f.postID = id
	return f.response, f.err
}
func (f *fakeForum) Search(_ context.Context, q string) (json.RawMessage, error) {
	f.query = q
	return f.response, f.err
}
func (f *fakeForum) Publish(_ context.Context, in models.PostInput) (json.RawMessage, error) {
	f.input = in
	return f.response, f.err
}
func (f *fakeForum) Comments(_ context.Context, id int64) (json.RawMessage, error) {
	f.postID = id
	return f.response, f.err
}
func (f *fakeForum) Comment(_ context.Context, id int64, content string, parent *int64) (json.RawMessage, error) {
	f.postID, f.comment, f.parent = id, content, parent
	return f.response, f.err
}
func (f *fakeForum) Like(_ context.Context, id int64, on bool) error {
	f.postID, f.likeOn = id, &on
	return f.err
}
func (f *fakeForum) Collect(_ context.Context, id int64, on bool) error {
	f.postID, f.likeOn = id, &on
	return f.err
}
func (f *fakeForum) Plates(_ context.Context, page int) (json.RawMessage, error) {
	f.page = page
	return f.response, f.err
}
func (f *fakeForum) Profile(_ context.Context, id int64) (json.RawMessage, error) {
	f.userID = id
	return f.response, f.err
}

func TestPosts_ParsesFeedAndPage(t *testing.T) {
	f := &fakeForum{response: json.RawMessage(`{"results":[]}`)}
	a, out := newTestApp(nil, f)

	require.NoError(t, a.Posts(context.Background(), []string{"essence", "3"}))
	assert.Equal(t, services.FeedEssence, f.feed)
	assert.Equal(t, 3, f.page)
	assert.Contains(t, out.String(), `"results": []`)

	require.NoError(t, a.Posts(context.Background(), nil))
	assert.Equal(t, services.FeedAll, f.feed)
	assert.Equal(t, 0, f.page)

	require.ErrorIs(t, a.Posts(context.Background(), []string{"newest"}), errUsage)
}

func TestPost_Usage(t *testing.T) {
	a, _ := newTestApp(nil, &fakeForum{})

	require.ErrorIs(t, a.Post(context.Background(), nil), errUsage)
	require.ErrorIs(t, a.Post(context.Background(), []string{"abc"}), errUsage)
	require.ErrorIs(t, a.Post(context.Background(), []string{"-1"}), errUsage)
}

func TestSearch_JoinsArgs(t *testing.T) {
	f := &fakeForum{}
	a, out := newTestApp(nil, f)

	require.NoError(t, a.Search(context.Background(), []string{"go", "tips"}))
	assert.Equal(t, "go tips", f.query)
	assert.Contains(t, out.String(), "OK")

	require.ErrorIs(t, a.Search(context.Background(), nil), errUsage)
}

func TestPublish_CollectsInput(t *testing.T) {
	f := &fakeForum{response: json.RawMessage(`{"postID":5}`)}
	a, _ := newTestApp(nil, f)
	stubInputs(t, []string{"Hello", "2"}, nil)

	origML, origList := getMultiline, getList
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return "body text", nil }
	getList = func(*bufio.Reader, string, io.Writer) ([]string, error) { return []string{"go"}, nil }
	t.Cleanup(func() { getMultiline, getList = origML, origList })

	require.NoError(t, a.Publish(context.Background()))
	assert.Equal(t, models.PostInput{Title: "Hello", Content: "body text", Plate: 2, Tags: []string{"go"}}, f.input)
}

func TestComment_WithParent(t *testing.T) {
	f := &fakeForum{}
	a, _ := newTestApp(nil, f)

	origML := getMultiline
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return "nice", nil }
	t.Cleanup(func() { getMultiline = origML })

	require.NoError(t, a.Comment(context.Background(), []string{"7", "3"}))
	assert.Equal(t, int64(7), f.postID)
	assert.Equal(t, "nice", f.comment)
	require.NotNil(t, f.parent)
	assert.Equal(t, int64(3), *f.parent)
}

func TestLikeCollectPlatesProfile(t *testing.T) {
	f := &fakeForum{}
	a, _ := newTestApp(nil, f)
	ctx := context.Background()

	require.NoError(t, a.Like(ctx, []string{"4"}, false))
	require.NotNil(t, f.likeOn)
	assert.False(t, *f.likeOn)

	require.NoError(t, a.Collect(ctx, []string{"4"}, true))
	assert.True(t, *f.likeOn)

	require.NoError(t, a.Plates(ctx, []string{"2"}))
	assert.Equal(t, 2, f.page)

	a.session = &services.Session{UserID: 11}
	require.NoError(t, a.Profile(ctx, nil))
	assert.Equal(t, int64(11), f.userID)
}
