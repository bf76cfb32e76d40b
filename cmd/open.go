package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/evloca/internal/router"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// page prints one client route.
type page func(ctx context.Context, cmd *cli.Command) error

// pages maps client routes onto the CLI's printers.
func (r *Runner) pages(path string) *router.Dispatcher[page] {
	static := func(p page) router.Handler[page] {
		return func(router.Route) page { return p }
	}
	hint := func(text string) router.Handler[page] {
		return static(func(context.Context, *cli.Command) error { return r.writePlain("%s\n", text) })
	}

	return router.NewDispatcher[page](path, func(route router.Route) page {
		return func(context.Context, *cli.Command) error {
			return fmt.Errorf("%w: 404 - Page not found (%s)", shared.ErrNotFound, route.Path)
		}
	}).
		Handle(router.Home, static(r.openHome)).
		Handle(router.ListEvents, static(r.EventsList)).
		Handle(router.ListPlaces, static(r.PlacesList)).
		Handle(router.Profile, static(r.ProfileShow)).
		Handle(router.Login, hint("Log in with: evloca auth login -u <username>")).
		Handle(router.CreateEvent, hint("Create an event with: evloca events create --title ... --date ... --time ... --location ...")).
		Handle(router.CreatePlace, hint("Create a place with: evloca places create --name ... --address ...")).
		Handle(router.EventDetail, func(route router.Route) page {
			return func(ctx context.Context, cmd *cli.Command) error { return r.showEvent(ctx, cmd, route.Param) }
		}).
		Handle(router.PlaceDetail, func(route router.Route) page {
			return func(ctx context.Context, cmd *cli.Command) error { return r.showPlace(ctx, cmd, route.Param) }
		}).
		Handle(router.UserDetail, func(route router.Route) page {
			return func(ctx context.Context, cmd *cli.Command) error { return r.showUser(ctx, cmd, route.Param) }
		})
}

// Open renders the page a client path resolves to.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "path")
	if err != nil {
		return err
	}
	d := r.pages(path)
	if loc := d.Location(); loc.Kind.Parameterized() {
		r.logger.Debug("open", "route", loc.Kind, "param", loc.Param)
	} else {
		r.logger.Debug("open", "route", loc.Kind)
	}
	return d.Render()(ctx, cmd)
}

func (r *Runner) openHome(ctx context.Context, cmd *cli.Command) error {
	name := "Guest"
	if snap := r.session.Snapshot(); snap.Token != "" {
		name = snap.User
		if snap.Profile != nil && snap.Profile.Username != "" {
			name = snap.Profile.Username
		}
	}
	if f := cmd.String("format"); f == "" || f == "text" {
		r.writePlain("Welcome, %s\n\n", name)
	}
	return r.EventsList(ctx, cmd)
}
