package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

func (c *HTTPClient) ListPlates(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/plate/list/", p.Query(), nil)
}

func (c *HTTPClient) SearchPlates(ctx context.Context, s models.PlateSearch) (json.RawMessage, error) {
	s.Page = s.Page.Normalize()
	return c.do(ctx, http.MethodPost, "/plate/list/", nil, s)
}

func (c *HTTPClient) GetPlate(ctx context.Context, plateID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/plate/%d/", plateID), nil, nil)
}

func (c *HTTPClient) CreatePlate(ctx context.Context, in models.PlateInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/plate/create/", nil, in)
}

func (c *HTTPClient) UpdatePlate(ctx context.Context, plateID int64, in models.PlateInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, idPath("/plate/action/%d/", plateID), nil, in)
}

func (c *HTTPClient) DeletePlate(ctx context.Context, plateID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/plate/action/%d/", plateID), nil, nil)
}

// ListModerations lists moderator appointments across plates.
func (c *HTTPClient) ListModerations(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/plate/manage/list/", p.Query(), nil)
}

func (c *HTTPClient) SearchModerations(ctx context.Context, s models.ModerationSearch) (json.RawMessage, error) {
	s.Page = s.Page.Normalize()
	return c.do(ctx, http.MethodPost, "/plate/manage/list/", nil, s)
}

func (c *HTTPClient) GetModeration(ctx context.Context, moderationID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/plate/manage/%d/", moderationID), nil, nil)
}

func (c *HTTPClient) AppointModerator(ctx context.Context, plateID, userID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/plate/manage/create/", nil,
		models.Appointment{Plate: plateID, Moderator: userID})
}

func (c *HTTPClient) CancelModerator(ctx context.Context, moderationID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/plate/manage/%d/", moderationID), nil, nil)
}
