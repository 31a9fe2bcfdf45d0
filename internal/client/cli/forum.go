package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/client/services"
)

var errUsage = errors.New("usage")

func parseID(args []string, what string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing %s", errUsage, what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", errUsage, what, args[0])
	}
	return id, nil
}

func parsePage(arg string) (int, error) {
	page, err := strconv.Atoi(arg)
	if err != nil || page <= 0 {
		return 0, fmt.Errorf("%w: page must be a positive number, got %q", errUsage, arg)
	}
	return page, nil
}

// Posts lists a feed: posts [hot|essence|mine] [page].
func (a *App) Posts(ctx context.Context, args []string) error {
	feed := services.FeedAll
	page := 0

	for _, arg := range args {
		if f, err := services.ParseFeed(arg); err == nil {
			feed = f
			continue
		}
		p, err := parsePage(arg)
		if err != nil {
			return err
		}
		page = p
	}

	raw, err := a.forumService.Feed(ctx, feed, page)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Post(ctx context.Context, args []string) error {
	id, err := parseID(args, "post id")
	if err != nil {
		return err
	}
	raw, err := a.forumService.Post(ctx, id)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: search <text> | search name=value ...", errUsage)
	}
	raw, err := a.forumService.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

// Publish prompts for a new post.
func (a *App) Publish(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	plateText, err := getSimpleText(a.reader, "Plate id", a.out)
	if err != nil {
		return err
	}
	plate, err := parseID([]string{plateText}, "plate id")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	tags, err := getList(a.reader, "Tags", a.out)
	if err != nil {
		return err
	}

	raw, err := a.forumService.Publish(ctx, models.PostInput{Title: title, Content: content, Plate: plate, Tags: tags})
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Comments(ctx context.Context, args []string) error {
	id, err := parseID(args, "post id")
	if err != nil {
		return err
	}
	raw, err := a.forumService.Comments(ctx, id)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

// Comment adds a comment: comment <postID> [parentCommentID].
func (a *App) Comment(ctx context.Context, args []string) error {
	postID, err := parseID(args, "post id")
	if err != nil {
		return err
	}
	var parent *int64
	if len(args) > 1 {
		p, err := parseID(args[1:], "parent comment id")
		if err != nil {
			return err
		}
		parent = &p
	}

	content, err := getMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	raw, err := a.forumService.Comment(ctx, postID, content, parent)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Like(ctx context.Context, args []string, on bool) error {
	id, err := parseID(args, "post id")
	if err != nil {
		return err
	}
	if err := a.forumService.Like(ctx, id, on); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) Collect(ctx context.Context, args []string, on bool) error {
	id, err := parseID(args, "post id")
	if err != nil {
		return err
	}
	if err := a.forumService.Collect(ctx, id, on); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) Plates(ctx context.Context, args []string) error {
	page := 0
	if len(args) > 0 {
		p, err := parsePage(args[0])
		if err != nil {
			return err
		}
		page = p
	}
	raw, err := a.forumService.Plates(ctx, page)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	var id int64
	if len(args) == 0 && a.session != nil {
		id = a.session.UserID
	} else {
		var err error
		if id, err = parseID(args, "user id"); err != nil {
			return err
		}
	}
	raw, err := a.forumService.Profile(ctx, id)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}
