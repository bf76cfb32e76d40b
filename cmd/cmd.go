// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func idArg(name string) []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: name}}
}

func eventFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Event title", Required: required},
		&cli.StringFlag{Name: "date", Usage: "Event date (YYYY-MM-DD)", Required: required},
		&cli.StringFlag{Name: "time", Usage: "Start time (HH:MM)", Required: required},
		&cli.StringFlag{Name: "location", Usage: "Location", Required: required},
		&cli.StringFlag{Name: "place", Usage: "Place name or id"},
		&cli.StringFlag{Name: "description", Usage: "Description"},
		&cli.StringFlag{Name: "banner", Usage: "Path to a banner image"},
	}
}

func placeFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Place name", Required: required},
		&cli.StringFlag{Name: "address", Usage: "Street address", Required: required},
		&cli.StringFlag{Name: "description", Usage: "Description"},
		&cli.StringFlag{Name: "city", Usage: "City"},
		&cli.StringFlag{Name: "country", Usage: "Country"},
		&cli.StringFlag{Name: "zip", Usage: "Zip code"},
		&cli.IntFlag{Name: "capacity", Usage: "Capacity"},
		&cli.StringFlag{Name: "phone", Usage: "Phone number"},
		&cli.StringFlag{Name: "website", Usage: "Website"},
		&cli.StringFlag{Name: "category", Usage: "Main category"},
		&cli.StringFlag{Name: "banner", Usage: "Path to a banner image"},
	}
}

func itemFlags(withImage bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "event", Usage: "Event ID", Required: true},
		&cli.StringFlag{Name: "name", Usage: "Item name", Required: true},
		&cli.FloatFlag{Name: "price", Usage: "Price in minor units"},
		&cli.IntFlag{Name: "quantity", Usage: "Quantity available"},
	}
	if withImage {
		flags = append(flags, &cli.StringFlag{Name: "image", Usage: "Path to an image"})
	}
	return flags
}

func eventFlag() cli.Flag {
	return &cli.StringFlag{Name: "event", Usage: "Event ID", Required: true}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip confirmation"}
}

// setupCommand writes the config file and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing and run database migrations",
		Action: r.Setup,
	}
}

// authCommand handles sessions
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed-in session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password", Sources: cli.EnvVars("EVLOCA_PASSWORD")},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "signup",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password", Sources: cli.EnvVars("EVLOCA_PASSWORD")},
				},
				Action: r.AuthSignup,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session",
				Action: r.AuthStatus,
			},
		},
	}
}

// profileCommand handles the signed-in user's profile
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and manage your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "refresh", Usage: "Ignore the cached profile"},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "edit",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "New username"},
					&cli.StringFlag{Name: "email", Usage: "New email"},
					&cli.StringFlag{Name: "bio", Usage: "Bio"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "links", Usage: "Social links as name=url, comma separated"},
					&cli.StringFlag{Name: "picture", Usage: "Path to a profile picture"},
				},
				Action: r.ProfileEdit,
			},
			{
				Name:   "delete",
				Usage:  "Delete your account and log out",
				Flags:  []cli.Flag{yesFlag()},
				Action: r.ProfileDelete,
			},
			{Name: "followers", Usage: "List your followers", Action: r.ProfileFollowers},
			{Name: "following", Usage: "List who you follow", Action: r.ProfileFollowing},
			{Name: "suggestions", Usage: "Suggested users to follow", Action: r.ProfileSuggestions},
		},
	}
}

// userCommand handles other users
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "View and follow other users",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a user's public profile",
				Arguments: idArg("username"),
				Action:    r.UserShow,
			},
			{
				Name:      "follow",
				Usage:     "Follow or unfollow a user",
				Arguments: idArg("username"),
				Action:    r.UserFollow,
			},
		},
	}
}

// eventsCommand handles events
func eventsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "events",
		Aliases: []string{"event"},
		Usage:   "Browse and manage events",
		Commands: []*cli.Command{
			{Name: "list", Usage: "List events", Action: r.EventsList},
			{
				Name:      "show",
				Usage:     "Show an event with tickets, merch and media",
				Arguments: idArg("id"),
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "render", Usage: "Render as styled Markdown"},
				},
				Action: r.EventsShow,
			},
			{
				Name:   "create",
				Usage:  "Create an event",
				Flags:  eventFlags(true),
				Action: r.EventsCreate,
			},
			{
				Name:      "update",
				Usage:     "Update an event",
				Arguments: idArg("id"),
				Flags:     eventFlags(false),
				Action:    r.EventsUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete an event",
				Arguments: idArg("id"),
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.EventsDelete,
			},
		},
	}
}

// placesCommand handles places
func placesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "places",
		Aliases: []string{"place"},
		Usage:   "Browse and manage places",
		Commands: []*cli.Command{
			{Name: "list", Usage: "List places", Action: r.PlacesList},
			{
				Name:      "show",
				Usage:     "Show a place",
				Arguments: idArg("id"),
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "render", Usage: "Render as styled Markdown"},
				},
				Action: r.PlacesShow,
			},
			{
				Name:   "create",
				Usage:  "Create a place",
				Flags:  placeFlags(true),
				Action: r.PlacesCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a place",
				Arguments: idArg("id"),
				Flags:     placeFlags(false),
				Action:    r.PlacesUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a place",
				Arguments: idArg("id"),
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.PlacesDelete,
			},
		},
	}
}

// ticketsCommand handles event tickets
func ticketsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tickets",
		Aliases: []string{"ticket"},
		Usage:   "Manage and buy event tickets",
		Commands: []*cli.Command{
			{Name: "add", Usage: "Add a ticket tier", Flags: itemFlags(false), Action: r.TicketsAdd},
			{Name: "edit", Usage: "Edit a ticket tier", Arguments: idArg("id"), Flags: itemFlags(false), Action: r.TicketsEdit},
			{Name: "buy", Usage: "Buy a ticket", Arguments: idArg("id"), Flags: []cli.Flag{eventFlag()}, Action: r.TicketsBuy},
			{Name: "delete", Usage: "Delete a ticket tier", Arguments: idArg("id"), Flags: []cli.Flag{eventFlag(), yesFlag()}, Action: r.TicketsDelete},
		},
	}
}

// merchCommand handles event merchandise
func merchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "merch",
		Usage: "Manage and buy event merchandise",
		Commands: []*cli.Command{
			{Name: "add", Usage: "Add merchandise", Flags: itemFlags(true), Action: r.MerchAdd},
			{Name: "edit", Usage: "Edit merchandise", Arguments: idArg("id"), Flags: itemFlags(false), Action: r.MerchEdit},
			{Name: "buy", Usage: "Buy merchandise", Arguments: idArg("id"), Flags: []cli.Flag{eventFlag()}, Action: r.MerchBuy},
			{Name: "delete", Usage: "Delete merchandise", Arguments: idArg("id"), Flags: []cli.Flag{eventFlag(), yesFlag()}, Action: r.MerchDelete},
		},
	}
}

// mediaCommand handles event media
func mediaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "media",
		Usage: "Manage event media",
		Commands: []*cli.Command{
			{Name: "list", Usage: "List an event's media", Flags: []cli.Flag{eventFlag()}, Action: r.MediaList},
			{Name: "upload", Usage: "Upload a file", Arguments: idArg("path"), Flags: []cli.Flag{eventFlag()}, Action: r.MediaUpload},
			{Name: "delete", Usage: "Delete a media item", Arguments: idArg("id"), Flags: []cli.Flag{eventFlag(), yesFlag()}, Action: r.MediaDelete},
		},
	}
}

// activityCommand handles the activity feed
func activityCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "activity",
		Usage: "Show or record activity",
		Commands: []*cli.Command{
			{Name: "list", Usage: "Show your activity feed", Action: r.ActivityList},
			{Name: "log", Usage: "Record an activity", Arguments: idArg("action"), Action: r.ActivityLog},
		},
	}
}

// openCommand renders a single route
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Render the page for a client path such as /event/42",
		Arguments: idArg("path"),
		Action:    r.Open,
	}
}

// apiCommand handles raw API calls
func apiCommand(r *Runner) *cli.Command {
	bodyFlag := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON body to send"},
		}
	}
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls, prints the raw response",
		Commands: []*cli.Command{
			{Name: "get", Usage: "Direct GET", Arguments: idArg("path"), Action: r.APIGet},
			{Name: "post", Usage: "Direct POST with JSON body", Arguments: idArg("path"), Flags: bodyFlag(), Action: r.APIPost},
			{Name: "put", Usage: "Direct PUT with JSON body", Arguments: idArg("path"), Flags: bodyFlag(), Action: r.APIPut},
			{Name: "delete", Usage: "Direct DELETE", Arguments: idArg("path"), Action: r.APIDelete},
		},
	}
}

// cacheCommand handles the local resource cache
func cacheCommand(r *Runner) *cli.Command {
	kindFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "Filter by kind: event, place, user or profile"}
	}
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect resources cached by show commands",
		Commands: []*cli.Command{
			{Name: "list", Usage: "List cached resources", Flags: []cli.Flag{kindFlag()}, Action: r.CacheList},
			{Name: "show", Usage: "Print a cached payload", Arguments: idArg("id"), Action: r.CacheShow},
			{Name: "clear", Usage: "Remove cached resources", Flags: []cli.Flag{kindFlag()}, Action: r.CacheClear},
		},
	}
}

// exportCommand handles bulk exports
func exportCommand(r *Runner) *cli.Command {
	flags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "export-format", Aliases: []string{"f"}, Usage: "json, yaml, csv, txt or markdown"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent writers (max 10)"},
			&cli.FloatFlag{Name: "rate", Usage: "Detail requests per second"},
			&cli.StringSliceFlag{Name: "id", Usage: "Export only these IDs"},
			&cli.BoolFlag{Name: "banners", Usage: "Download banner images (markdown only)"},
		}
	}
	return &cli.Command{
		Name:  "export",
		Usage: "Bulk export events or places to files",
		Commands: []*cli.Command{
			{Name: "events", Usage: "Export events", Flags: flags(), Action: r.Export},
			{Name: "places", Usage: "Export places", Flags: flags(), Action: r.Export},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Initial path", Value: "/"},
		},
		Action: r.TUI,
	}
}
