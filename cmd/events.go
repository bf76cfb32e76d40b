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

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := cmd.StringArg(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// EventsList prints every event, one per line.
func (r *Runner) EventsList(ctx context.Context, cmd *cli.Command) error {
	events, err := r.client.LatestEvents(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, events, func() error {
		if len(events) == 0 {
			return r.writePlain("No events available.\n")
		}
		for _, e := range events {
			r.writePlain("%s\n", formatter.EventLine(e))
		}
		return nil
	})
}

// EventsShow prints one event and caches it.
func (r *Runner) EventsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	return r.showEvent(ctx, cmd, id)
}

func (r *Runner) showEvent(ctx context.Context, cmd *cli.Command, id string) error {
	event, err := r.client.Event(ctx, id)
	if err != nil {
		return err
	}
	r.remember(models.KindEvent, event.EventID, event.Title, event)

	return r.emit(cmd, event, func() error {
		if !cmd.Bool("render") {
			return r.writeBytes(formatter.EventToText(event))
		}
		md, err := formatter.EventToMarkdown(event, r.client.AssetURL(services.AssetEventPic, event.BannerImage))
		if err != nil {
			return err
		}
		return r.render(md)
	})
}

// render styles Markdown for the terminal with the configured theme.
func (r *Runner) render(md []byte) error {
	renderer, err := formatter.NewRenderer(r.config.UI.Theme, 100)
	if err != nil {
		return err
	}
	return r.writePlain("%s", renderer.Render(md))
}

func eventInput(cmd *cli.Command) services.EventInput {
	return services.EventInput{
		Title:       cmd.String("title"),
		Date:        cmd.String("date"),
		Time:        cmd.String("time"),
		Location:    cmd.String("location"),
		Place:       cmd.String("place"),
		Description: cmd.String("description"),
		Banner:      cmd.String("banner"),
	}
}

func (r *Runner) EventsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	event, err := r.client.CreateEvent(ctx, eventInput(cmd))
	if err != nil {
		return err
	}
	return r.emit(cmd, event, func() error {
		return r.writePlain("✓ Event created successfully! ID: %s\n", event.EventID)
	})
}

// EventsUpdate sends the full field set; unset flags keep the event's current values.
func (r *Runner) EventsUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	current, err := r.client.Event(ctx, id)
	if err != nil {
		return err
	}

	in := eventInput(cmd)
	date, clock := current.DateParts()
	keep := func(flag string, dst *string, v string) {
		if !cmd.IsSet(flag) {
			*dst = v
		}
	}
	keep("title", &in.Title, current.Title)
	keep("date", &in.Date, date)
	keep("time", &in.Time, clock)
	keep("location", &in.Location, current.Location)
	keep("place", &in.Place, current.Place)
	keep("description", &in.Description, current.Description)

	event, err := r.client.UpdateEvent(ctx, id, in)
	if err != nil {
		return err
	}
	return r.emit(cmd, event, func() error {
		return r.writePlain("✓ Event updated successfully!\n")
	})
}

func (r *Runner) EventsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to delete event %s", shared.ErrMissingArgument, id)
	}
	if err := r.client.DeleteEvent(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Event deleted successfully!\n")
}
