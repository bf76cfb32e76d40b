package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// ItemInput describes a ticket tier or a merch item.
type ItemInput struct {
	Name     string
	Price    float64 // minor units
	Quantity int
	Image    string // merch only, path to a local image
}

func (in ItemInput) validate() error {
	var msgs []string
	if !shared.NotEmpty(in.Name) {
		msgs = append(msgs, "Please enter a name.")
	}
	if in.Price < 0 {
		msgs = append(msgs, "Price cannot be negative.")
	}
	if in.Quantity < 0 {
		msgs = append(msgs, "Quantity cannot be negative.")
	}
	if len(msgs) > 0 {
		return &shared.ValidationError{Messages: msgs}
	}
	return nil
}

func (in ItemInput) form() *Form {
	return NewForm().
		Set("name", in.Name).
		Set("price", strconv.FormatFloat(in.Price, 'f', -1, 64)).
		Set("quantity", strconv.Itoa(in.Quantity))
}

// CreateTicket adds a ticket tier. The response must carry a ticketid.
func (c *Client) CreateTicket(ctx context.Context, eventID string, in ItemInput) (*models.Ticket, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var t models.Ticket
	if err := c.Do(ctx, http.MethodPost, eventPath(eventID, "ticket"), in.form(), &t); err != nil {
		return nil, err
	}
	if t.TicketID == "" {
		return nil, fmt.Errorf("%w: ticket response has no ticketid", shared.ErrUnexpectedResponse)
	}
	return &t, nil
}

// EditTicket updates a ticket tier with a JSON body.
func (c *Client) EditTicket(ctx context.Context, eventID, ticketID string, in ItemInput) (*models.Ticket, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	body := models.Ticket{TicketID: ticketID, EventID: eventID, Name: in.Name, Price: in.Price, Quantity: in.Quantity}
	var t models.Ticket
	if err := c.Do(ctx, http.MethodPut, eventPath(eventID, "ticket", ticketID), body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTicket removes a ticket tier. The response must report success.
func (c *Client) DeleteTicket(ctx context.Context, eventID, ticketID string) error {
	_, err := c.success(ctx, http.MethodDelete, eventPath(eventID, "ticket", ticketID))
	return err
}

// BuyTicket purchases one ticket. The response must report success.
func (c *Client) BuyTicket(ctx context.Context, eventID, ticketID string) (*models.SuccessResponse, error) {
	return c.success(ctx, http.MethodPost, eventPath(eventID, "ticket", ticketID))
}

// CreateMerch adds a merch item with an optional image. The response must carry a merchid.
func (c *Client) CreateMerch(ctx context.Context, eventID string, in ItemInput) (*models.Merch, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var m models.Merch
	if err := c.Do(ctx, http.MethodPost, eventPath(eventID, "merch"), in.form().AttachFile("image", in.Image), &m); err != nil {
		return nil, err
	}
	if m.MerchID == "" {
		return nil, fmt.Errorf("%w: merch response has no merchid", shared.ErrUnexpectedResponse)
	}
	return &m, nil
}

// EditMerch updates a merch item with a JSON body.
func (c *Client) EditMerch(ctx context.Context, eventID, merchID string, in ItemInput) (*models.Merch, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	body := models.Merch{MerchID: merchID, EventID: eventID, Name: in.Name, Price: in.Price, Stock: in.Quantity}
	var m models.Merch
	if err := c.Do(ctx, http.MethodPut, eventPath(eventID, "merch", merchID), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMerch removes a merch item. The API answers with no content.
func (c *Client) DeleteMerch(ctx context.Context, eventID, merchID string) error {
	_, err := c.Request(ctx, http.MethodDelete, eventPath(eventID, "merch", merchID), nil)
	return err
}

// BuyMerch purchases one merch item. The response must report success.
func (c *Client) BuyMerch(ctx context.Context, eventID, merchID string) (*models.SuccessResponse, error) {
	return c.success(ctx, http.MethodPost, eventPath(eventID, "merch", merchID, "buy"))
}

// EventMedia lists the media attached to an event.
func (c *Client) EventMedia(ctx context.Context, eventID string) ([]models.Media, error) {
	var out []models.Media
	if err := c.Do(ctx, http.MethodGet, eventPath(eventID, "media"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadMedia attaches the file at path to an event. The response must carry an id.
func (c *Client) UploadMedia(ctx context.Context, eventID, path string) (*models.Media, error) {
	if !shared.NotEmpty(path) {
		return nil, &shared.ValidationError{Messages: []string{"Please choose a file to upload."}}
	}
	if err := checkUpload(path); err != nil {
		return nil, err
	}
	var m models.Media
	if err := c.Do(ctx, http.MethodPost, eventPath(eventID, "media"), NewForm().AttachFile("media", path), &m); err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, fmt.Errorf("%w: media response has no id", shared.ErrUnexpectedResponse)
	}
	return &m, nil
}

// checkUpload rejects files that are not JPEG, PNG or MP4, then files over [shared.MaxUploadSize].
// The type comes from the extension, falling back to sniffing the first 512 bytes.
func checkUpload(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	mimeType, _, _ := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
	if mimeType == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		mimeType, _, _ = mime.ParseMediaType(http.DetectContentType(head[:n]))
	}

	if !shared.IsUploadType(mimeType) {
		return &shared.ValidationError{Messages: []string{shared.FileTypeMessage}}
	}
	if info.Size() > shared.MaxUploadSize {
		return &shared.ValidationError{Messages: []string{shared.FileSizeMessage}}
	}
	return nil
}

func (c *Client) DeleteMedia(ctx context.Context, eventID, mediaID string) error {
	_, err := c.Request(ctx, http.MethodDelete, eventPath(eventID, "media", mediaID), nil)
	return err
}

func (c *Client) success(ctx context.Context, method, path string) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.Do(ctx, method, path, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s %s did not report success", shared.ErrUnexpectedResponse, method, path)
	}
	return &out, nil
}
