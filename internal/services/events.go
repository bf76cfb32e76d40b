package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// EventInput holds the create/edit event form.
type EventInput struct {
	Title       string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Location    string
	Place       string
	Description string
	Banner      string // path to a local image, optional
}

const requiredFieldsMessage = "Please fill in all required fields."

func (in EventInput) validate() error {
	for _, v := range []string{in.Title, in.Date, in.Time, in.Location, in.Place} {
		if !shared.NotEmpty(v) {
			return &shared.ValidationError{Messages: []string{requiredFieldsMessage}}
		}
	}
	return nil
}

func eventPath(id string, rest ...string) string {
	p := "/event/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

// Events lists all events.
func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := c.Do(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Event fetches one event. A payload whose tickets field is not an array is rejected.
func (c *Client) Event(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := c.Do(ctx, http.MethodGet, eventPath(id), nil, &e); err != nil {
		return nil, err
	}
	if e.Tickets == nil {
		return nil, fmt.Errorf("%w: invalid event data received", shared.ErrUnexpectedResponse)
	}
	return &e, nil
}

// CreateEvent posts the event as a JSON "event" field plus an optional banner.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{
		"title":       in.Title,
		"date":        in.Date + "T" + in.Time,
		"location":    in.Location,
		"place":       in.Place,
		"description": in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	form := NewForm().Set("event", string(payload)).AttachFile("banner", in.Banner)

	var e models.Event
	if err := c.Do(ctx, http.MethodPost, "/event", form, &e); err != nil {
		return nil, err
	}
	if e.EventID == "" {
		return nil, fmt.Errorf("%w: created event has no eventid", shared.ErrUnexpectedResponse)
	}
	return &e, nil
}

// UpdateEvent replaces an event's fields, with an optional new banner.
func (c *Client) UpdateEvent(ctx context.Context, id string, in EventInput) (*models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	form := NewForm().
		Set("title", in.Title).
		Set("date", in.Date).
		Set("time", in.Time).
		Set("place", in.Place).
		Set("location", in.Location).
		Set("description", in.Description).
		AttachFile("event-banner", in.Banner)

	var e models.Event
	if err := c.Do(ctx, http.MethodPut, eventPath(id), form, &e); err != nil {
		return nil, err
	}
	if e.EventID == "" {
		e.EventID = id
	}
	return &e, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, eventPath(id), nil)
	return err
}
