package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

func itemInput(cmd *cli.Command) services.ItemInput {
	return services.ItemInput{
		Name:     cmd.String("name"),
		Price:    cmd.Float("price"),
		Quantity: int(cmd.Int("quantity")),
		Image:    cmd.String("image"),
	}
}

// confirmDelete checks the session and the --yes flag shared by the commerce deletes.
func (r *Runner) confirmDelete(cmd *cli.Command, what, id string) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to delete %s %s", shared.ErrMissingArgument, what, id)
	}
	return nil
}

func (r *Runner) TicketsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	ticket, err := r.client.CreateTicket(ctx, cmd.String("event"), itemInput(cmd))
	if err != nil {
		return err
	}
	return r.emit(cmd, ticket, func() error {
		return r.writePlain("✓ Ticket added successfully! ID: %s\n", ticket.TicketID)
	})
}

func (r *Runner) TicketsEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	ticket, err := r.client.EditTicket(ctx, cmd.String("event"), id, itemInput(cmd))
	if err != nil {
		return err
	}
	return r.emit(cmd, ticket, func() error {
		return r.writePlain("✓ Ticket updated successfully!\n")
	})
}

func (r *Runner) TicketsBuy(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	resp, err := r.client.BuyTicket(ctx, cmd.String("event"), id)
	if err != nil {
		return err
	}
	return r.purchased(cmd, resp, "Ticket purchased!")
}

func (r *Runner) TicketsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.confirmDelete(cmd, "ticket", id); err != nil {
		return err
	}
	if err := r.client.DeleteTicket(ctx, cmd.String("event"), id); err != nil {
		return err
	}
	return r.writePlain("✓ Ticket deleted successfully!\n")
}

func (r *Runner) MerchAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	merch, err := r.client.CreateMerch(ctx, cmd.String("event"), itemInput(cmd))
	if err != nil {
		return err
	}
	return r.emit(cmd, merch, func() error {
		return r.writePlain("✓ Merchandise added successfully! ID: %s\n", merch.MerchID)
	})
}

func (r *Runner) MerchEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	merch, err := r.client.EditMerch(ctx, cmd.String("event"), id, itemInput(cmd))
	if err != nil {
		return err
	}
	return r.emit(cmd, merch, func() error {
		return r.writePlain("✓ Merchandise updated successfully!\n")
	})
}

func (r *Runner) MerchBuy(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	resp, err := r.client.BuyMerch(ctx, cmd.String("event"), id)
	if err != nil {
		return err
	}
	return r.purchased(cmd, resp, "Merchandise purchased!")
}

func (r *Runner) MerchDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.confirmDelete(cmd, "merchandise", id); err != nil {
		return err
	}
	if err := r.client.DeleteMerch(ctx, cmd.String("event"), id); err != nil {
		return err
	}
	return r.writePlain("✓ Merchandise deleted successfully!\n")
}

func (r *Runner) purchased(cmd *cli.Command, resp *models.SuccessResponse, fallback string) error {
	return r.emit(cmd, resp, func() error {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		return r.writePlain("✓ %s\n", msg)
	})
}

// MediaList prints an event's media with resolved asset URLs.
func (r *Runner) MediaList(ctx context.Context, cmd *cli.Command) error {
	media, err := r.client.EventMedia(ctx, cmd.String("event"))
	if err != nil {
		return err
	}
	return r.emit(cmd, media, func() error {
		if len(media) == 0 {
			return r.writePlain("No media uploaded.\n")
		}
		for _, m := range media {
			r.writePlain("%s  [%s] %s\n    %s\n", m.ID, m.Type, m.Caption, r.client.AssetURL(services.AssetUploads, m.URL))
		}
		return nil
	})
}

func (r *Runner) MediaUpload(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	media, err := r.client.UploadMedia(ctx, cmd.String("event"), cmd.StringArg("path"))
	if err != nil {
		return err
	}
	return r.emit(cmd, media, func() error {
		return r.writePlain("✓ Media uploaded successfully! ID: %s\n", media.ID)
	})
}

func (r *Runner) MediaDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.confirmDelete(cmd, "media", id); err != nil {
		return err
	}
	if err := r.client.DeleteMedia(ctx, cmd.String("event"), id); err != nil {
		return err
	}
	return r.writePlain("✓ Media deleted successfully!\n")
}
