package services

import (
	"context"

	"github.com/desertthunder/evloca/internal/models"
)

// LatestEvents fetches the events list as the current flight of [ClassEvents].
func (c *Client) LatestEvents(ctx context.Context) ([]models.Event, error) {
	fctx, ticket := c.flights.Begin(ctx, ClassEvents)
	defer ticket.Done()

	events, err := c.Events(fctx)
	if err := ticket.Resolve(err); err != nil {
		return nil, err
	}
	return events, nil
}

// LatestPlaces fetches the places list as the current flight of [ClassPlaces].
func (c *Client) LatestPlaces(ctx context.Context) ([]models.Place, error) {
	fctx, ticket := c.flights.Begin(ctx, ClassPlaces)
	defer ticket.Done()

	places, err := c.Places(fctx)
	if err := ticket.Resolve(err); err != nil {
		return nil, err
	}
	return places, nil
}

// LatestLogActivity records an action as the current flight of [ClassActivity].
func (c *Client) LatestLogActivity(ctx context.Context, action string) error {
	fctx, ticket := c.flights.Begin(ctx, ClassActivity)
	defer ticket.Done()

	return ticket.Resolve(c.LogActivity(fctx, action))
}
