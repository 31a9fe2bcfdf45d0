package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrIncorrectFilter = errors.New("filter must be name=value")

// ParsePostFilters builds a PostSearch from "name=value" items as typed in
// the CLI. Names follow the backend field names (title, content,
// author__username, plate__name, is_essence, page, ...).
func ParsePostFilters(items []string) (PostSearch, error) {
	var s PostSearch
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" {
			return PostSearch{}, fmt.Errorf("%w: %q", ErrIncorrectFilter, item)
		}

		switch name {
		case "postID":
			s.PostID = value
		case "title":
			s.Title = value
		case "content":
			s.Content = value
		case "author__userID":
			s.AuthorUserID = value
		case "author__username":
			s.AuthorUsername = value
		case "tags__name":
			s.TagName = value
		case "plate__plateID":
			s.PlateID = value
		case "plate__name":
			s.PlateName = value
		case "is_essence":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return PostSearch{}, fmt.Errorf("is_essence: %w", err)
			}
			s.IsEssence = &b
		case "page", "page_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return PostSearch{}, fmt.Errorf("%s: %w", name, err)
			}
			if name == "page" {
				s.Page.Page = n
			} else {
				s.PageSize = n
			}
		default:
			return PostSearch{}, fmt.Errorf("unknown filter %q", name)
		}
	}
	return s, nil
}
