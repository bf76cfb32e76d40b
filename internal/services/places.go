package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// PlaceInput holds the create/edit place form.
type PlaceInput struct {
	Name        string
	Address     string
	Description string
	City        string
	Country     string
	ZipCode     string
	Capacity    int
	Phone       string
	Website     string
	Category    string
	Banner      string // path to a local image, optional
}

func (in PlaceInput) validate() error {
	if !shared.NotEmpty(in.Name) || !shared.NotEmpty(in.Address) {
		return &shared.ValidationError{Messages: []string{requiredFieldsMessage}}
	}
	return nil
}

func (in PlaceInput) form() *Form {
	f := NewForm().
		Set("name", in.Name).
		Set("address", in.Address).
		Set("description", in.Description).
		SetIf("city", in.City).
		SetIf("country", in.Country).
		SetIf("zipCode", in.ZipCode).
		SetIf("phone", in.Phone).
		SetIf("website", in.Website).
		SetIf("category", in.Category).
		AttachFile("banner", in.Banner)
	if in.Capacity > 0 {
		f.Set("capacity", strconv.Itoa(in.Capacity))
	}
	return f
}

func placePath(id string) string { return "/place/" + url.PathEscape(id) }

// Places lists all places.
func (c *Client) Places(ctx context.Context) ([]models.Place, error) {
	var out []models.Place
	if err := c.Do(ctx, http.MethodGet, "/places", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Place fetches one place.
func (c *Client) Place(ctx context.Context, id string) (*models.Place, error) {
	var p models.Place
	if err := c.Do(ctx, http.MethodGet, placePath(id), nil, &p); err != nil {
		return nil, err
	}
	if p.PlaceID == "" {
		return nil, fmt.Errorf("%w: place %s", shared.ErrNotFound, id)
	}
	return &p, nil
}

// CreatePlace posts a new place as multipart.
func (c *Client) CreatePlace(ctx context.Context, in PlaceInput) (*models.Place, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p models.Place
	if err := c.Do(ctx, http.MethodPost, "/place", in.form(), &p); err != nil {
		return nil, err
	}
	if p.PlaceID == "" {
		return nil, fmt.Errorf("%w: created place has no placeid", shared.ErrUnexpectedResponse)
	}
	return &p, nil
}

// UpdatePlace replaces a place's fields.
func (c *Client) UpdatePlace(ctx context.Context, id string, in PlaceInput) (*models.Place, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p models.Place
	if err := c.Do(ctx, http.MethodPut, placePath(id), in.form(), &p); err != nil {
		return nil, err
	}
	if p.PlaceID == "" {
		p.PlaceID = id
	}
	return &p, nil
}

func (c *Client) DeletePlace(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, placePath(id), nil)
	return err
}
