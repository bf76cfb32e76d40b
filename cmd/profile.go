package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the signed-in profile, from the session cache unless --refresh is set.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}

	profile := r.session.Profile()
	if profile == nil || cmd.Bool("refresh") {
		fetched, err := r.client.Profile(ctx)
		if err != nil {
			return err
		}
		if err := r.session.UpdateProfile(fetched); err != nil {
			return err
		}
		profile = fetched
		r.remember(models.KindProfile, profile.UserID, profile.Username, profile)
	}

	return r.emit(cmd, profile, func() error {
		return r.writeBytes(formatter.ProfileToText(profile))
	})
}

// ProfileEdit updates the profile. Flags left unset keep the current value.
func (r *Runner) ProfileEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}

	current := r.session.Profile()
	if current == nil {
		fetched, err := r.client.Profile(ctx)
		if err != nil {
			return err
		}
		current = fetched
	}

	update := services.ProfileUpdate{
		Username:    current.Username,
		Email:       current.Email,
		Bio:         current.Bio,
		PhoneNumber: current.PhoneNumber,
		SocialLinks: current.SocialLinks,
		Picture:     cmd.String("picture"),
	}
	if cmd.IsSet("username") {
		update.Username = cmd.String("username")
	}
	if cmd.IsSet("email") {
		update.Email = cmd.String("email")
	}
	if cmd.IsSet("bio") {
		update.Bio = cmd.String("bio")
	}
	if cmd.IsSet("phone") {
		update.PhoneNumber = cmd.String("phone")
	}
	if cmd.IsSet("links") {
		update.SocialLinks = models.ParseSocialLinks(cmd.String("links"))
	}

	saved, err := r.client.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	if err := r.session.UpdateProfile(saved); err != nil {
		return err
	}
	return r.writePlain("✓ Profile updated successfully!\n")
}

// ProfileDelete removes the account, then clears the session.
func (r *Runner) ProfileDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to delete your account", shared.ErrMissingArgument)
	}
	if err := r.client.DeleteProfile(ctx); err != nil {
		return err
	}
	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Profile deleted. You have been logged out.\n")
}

func (r *Runner) ProfileFollowers(ctx context.Context, cmd *cli.Command) error {
	return r.listUsers(ctx, cmd, "Followers", r.client.Followers)
}

func (r *Runner) ProfileFollowing(ctx context.Context, cmd *cli.Command) error {
	return r.listUsers(ctx, cmd, "Following", r.client.Following)
}

func (r *Runner) ProfileSuggestions(ctx context.Context, cmd *cli.Command) error {
	return r.listUsers(ctx, cmd, "Suggested users", r.client.FollowSuggestions)
}

func (r *Runner) listUsers(ctx context.Context, cmd *cli.Command, title string, fetch func(context.Context) ([]models.User, error)) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	users, err := fetch(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, users, func() error {
		r.writePlain("%s (%d)\n", title, len(users))
		for _, u := range users {
			r.writePlain("  @%s\n", u.Username)
		}
		return nil
	})
}

// UserShow prints a public profile and caches it.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("username")
	if name == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}
	return r.showUser(ctx, cmd, name)
}

func (r *Runner) showUser(ctx context.Context, cmd *cli.Command, name string) error {
	user, err := r.client.User(ctx, name)
	if err != nil {
		return err
	}
	r.remember(models.KindUser, name, user.Username, user)
	return r.emit(cmd, user, func() error {
		return r.writeBytes(formatter.UserToText(user))
	})
}

// UserFollow toggles following for a user looked up by name.
func (r *Runner) UserFollow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	name := cmd.StringArg("username")
	if name == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}
	user, err := r.client.User(ctx, name)
	if err != nil {
		return err
	}
	following, err := r.client.ToggleFollow(ctx, user.UserID)
	if err != nil {
		return err
	}
	if following {
		return r.writePlain("✓ Now following @%s\n", name)
	}
	return r.writePlain("✓ Unfollowed @%s\n", name)
}

// ActivityList prints the activity feed with relative times.
func (r *Runner) ActivityList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	activities, err := r.client.Activities(ctx)
	if err != nil {
		return err
	}
	return r.emit(cmd, activities, func() error {
		return r.writeBytes(formatter.ActivitiesToText(activities, time.Now()))
	})
}

// ActivityLog records an activity through the activity flight.
func (r *Runner) ActivityLog(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	if err := r.client.LatestLogActivity(ctx, cmd.StringArg("action")); err != nil {
		return err
	}
	return r.writePlain("✓ Activity logged.\n")
}
