package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlacesList prints every place, one per line.
func (r *Runner) PlacesList(ctx context.Context, cmd *cli.Command) error {
	places, err := r.client.LatestPlaces(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, places, func() error {
		if len(places) == 0 {
			return r.writePlain("No places available.\n")
		}
		for _, p := range places {
			r.writePlain("%s\n", formatter.PlaceLine(p))
		}
		return nil
	})
}

// PlacesShow prints one place and caches it.
func (r *Runner) PlacesShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	return r.showPlace(ctx, cmd, id)
}

func (r *Runner) showPlace(ctx context.Context, cmd *cli.Command, id string) error {
	place, err := r.client.Place(ctx, id)
	if err != nil {
		return err
	}
	r.remember(models.KindPlace, place.PlaceID, place.Name, place)

	return r.emit(cmd, place, func() error {
		if !cmd.Bool("render") {
			return r.writeBytes(formatter.PlaceToText(place))
		}
		md, err := formatter.PlaceToMarkdown(place, r.client.AssetURL(services.AssetPlacePic, place.Banner))
		if err != nil {
			return err
		}
		return r.render(md)
	})
}

// placeInput reads the place flags over base, so unset flags keep base's values.
func placeInput(cmd *cli.Command, base models.Place) services.PlaceInput {
	in := services.PlaceInput{
		Name:        base.Name,
		Address:     base.Address,
		Description: base.Description,
		City:        base.City,
		Country:     base.Country,
		ZipCode:     base.ZipCode,
		Capacity:    base.Capacity,
		Phone:       base.Phone,
		Website:     base.Website,
		Category:    base.Category.MainCategory,
		Banner:      cmd.String("banner"),
	}
	for flag, dst := range map[string]*string{
		"name":        &in.Name,
		"address":     &in.Address,
		"description": &in.Description,
		"city":        &in.City,
		"country":     &in.Country,
		"zip":         &in.ZipCode,
		"phone":       &in.Phone,
		"website":     &in.Website,
		"category":    &in.Category,
	} {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}
	if cmd.IsSet("capacity") {
		in.Capacity = int(cmd.Int("capacity"))
	}
	return in
}

func (r *Runner) PlacesCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	place, err := r.client.CreatePlace(ctx, placeInput(cmd, models.Place{}))
	if err != nil {
		return err
	}
	return r.emit(cmd, place, func() error {
		return r.writePlain("✓ Place created successfully! ID: %s\n", place.PlaceID)
	})
}

func (r *Runner) PlacesUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	current, err := r.client.Place(ctx, id)
	if err != nil {
		return err
	}
	place, err := r.client.UpdatePlace(ctx, id, placeInput(cmd, *current))
	if err != nil {
		return err
	}
	return r.emit(cmd, place, func() error {
		return r.writePlain("✓ Place updated successfully!\n")
	})
}

func (r *Runner) PlacesDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to delete place %s", shared.ErrMissingArgument, id)
	}
	if err := r.client.DeletePlace(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Place deleted successfully!\n")
}
