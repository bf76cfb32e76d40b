package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/router"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
)

func (m *Model) loginForm() *form {
	return newForm("Login", false, func(v map[string]string) tea.Cmd {
		if err := shared.ValidateLogin(v["username"], v["password"]); err != nil {
			return m.invalid(err)
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			resp, err := client.Login(ctx, v["username"], v["password"])
			return loggedInMsg{resp: resp, err: err}
		}
	},
		fieldSpec{name: "username", label: "Username"},
		fieldSpec{name: "password", label: "Password", secret: true},
	)
}

func (m *Model) signupForm() *form {
	return newForm("Sign up", false, func(v map[string]string) tea.Cmd {
		if err := shared.ValidateSignup(v["username"], v["email"], v["password"]); err != nil {
			return m.invalid(err)
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			return signedUpMsg{err: client.Register(ctx, v["username"], v["email"], v["password"])}
		}
	},
		fieldSpec{name: "username", label: "Username"},
		fieldSpec{name: "email", label: "Email"},
		fieldSpec{name: "password", label: "Password", secret: true},
	)
}

// invalid shows a local validation failure on the open form without any request.
func (m *Model) invalid(err error) tea.Cmd {
	if m.form != nil {
		m.form.err = describe(err)
	}
	return m.notify(describe(err), true)
}

func eventSpecs(e *models.Event) []fieldSpec {
	var date, clock string
	ev := models.Event{}
	if e != nil {
		ev = *e
		date, clock = e.DateParts()
	}
	return []fieldSpec{
		{name: "title", label: "Title", value: ev.Title},
		{name: "date", label: "Date", value: date, placeholder: "2006-01-02"},
		{name: "time", label: "Time", value: clock, placeholder: "15:04"},
		{name: "location", label: "Location", value: ev.Location},
		{name: "place", label: "Place", value: ev.Place},
		{name: "description", label: "Description", value: ev.Description},
		{name: "banner", label: "Banner image path (optional)"},
	}
}

func eventInput(v map[string]string) services.EventInput {
	return services.EventInput{
		Title:       v["title"],
		Date:        v["date"],
		Time:        v["time"],
		Location:    v["location"],
		Place:       v["place"],
		Description: v["description"],
		Banner:      v["banner"],
	}
}

func (m *Model) createEventForm() *form {
	return newForm("Create Event", false, func(v map[string]string) tea.Cmd {
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			e, err := client.CreateEvent(ctx, eventInput(v))
			if err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{toast: "Event created successfully!", navigate: router.PathFor(router.EventDetail, e.EventID)}
		}
	}, eventSpecs(nil)...)
}

func (m *Model) editEventForm(e *models.Event) *form {
	id := e.EventID
	return newForm("Edit Event", true, func(v map[string]string) tea.Cmd {
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			_, err := client.UpdateEvent(ctx, id, eventInput(v))
			return actionDoneMsg{toast: "Event updated successfully!", reload: true, err: err}
		}
	}, eventSpecs(e)...)
}

func placeSpecs(p *models.Place) []fieldSpec {
	pl := models.Place{}
	if p != nil {
		pl = *p
	}
	capacity := ""
	if pl.Capacity > 0 {
		capacity = strconv.Itoa(pl.Capacity)
	}
	return []fieldSpec{
		{name: "name", label: "Name", value: pl.Name},
		{name: "address", label: "Address", value: pl.Address},
		{name: "description", label: "Description", value: pl.Description},
		{name: "city", label: "City", value: pl.City},
		{name: "country", label: "Country", value: pl.Country},
		{name: "zipCode", label: "Zip code", value: pl.ZipCode},
		{name: "capacity", label: "Capacity", value: capacity},
		{name: "phone", label: "Phone", value: pl.Phone},
		{name: "website", label: "Website", value: pl.Website},
		{name: "category", label: "Category", value: pl.Category.MainCategory},
		{name: "banner", label: "Banner image path (optional)"},
	}
}

func placeInput(v map[string]string) (services.PlaceInput, error) {
	in := services.PlaceInput{
		Name:        v["name"],
		Address:     v["address"],
		Description: v["description"],
		City:        v["city"],
		Country:     v["country"],
		ZipCode:     v["zipCode"],
		Phone:       v["phone"],
		Website:     v["website"],
		Category:    v["category"],
		Banner:      v["banner"],
	}
	if c := v["capacity"]; c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 0 {
			return in, &shared.ValidationError{Messages: []string{"Capacity must be a whole number."}}
		}
		in.Capacity = n
	}
	return in, nil
}

func (m *Model) createPlaceForm() *form {
	return newForm("Create Place", false, func(v map[string]string) tea.Cmd {
		in, err := placeInput(v)
		if err != nil {
			return m.invalid(err)
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			p, err := client.CreatePlace(ctx, in)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{toast: "Place created successfully!", navigate: router.PathFor(router.PlaceDetail, p.PlaceID)}
		}
	}, placeSpecs(nil)...)
}

func (m *Model) editPlaceForm(p *models.Place) *form {
	id := p.PlaceID
	return newForm("Edit Place", true, func(v map[string]string) tea.Cmd {
		in, err := placeInput(v)
		if err != nil {
			return m.invalid(err)
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			_, err := client.UpdatePlace(ctx, id, in)
			return actionDoneMsg{toast: "Place updated successfully!", reload: true, err: err}
		}
	}, placeSpecs(p)...)
}

func itemInput(v map[string]string) (services.ItemInput, error) {
	in := services.ItemInput{Name: v["name"], Image: v["image"]}
	price, err := strconv.ParseFloat(v["price"], 64)
	if err != nil {
		return in, &shared.ValidationError{Messages: []string{"Price must be a number."}}
	}
	qty, err := strconv.Atoi(v["quantity"])
	if err != nil {
		return in, &shared.ValidationError{Messages: []string{"Quantity must be a whole number."}}
	}
	in.Price, in.Quantity = price, qty
	return in, nil
}

func itemSpecs(name string, price float64, qty int, withImage bool) []fieldSpec {
	specs := []fieldSpec{
		{name: "name", label: "Name", value: name},
		{name: "price", label: "Price (minor units)", value: formatNumber(price)},
		{name: "quantity", label: "Quantity", value: formatNumber(float64(qty))},
	}
	if withImage {
		specs = append(specs, fieldSpec{name: "image", label: "Image path (optional)"})
	}
	return specs
}

func formatNumber(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ticketForm adds a ticket when t is nil, else edits it.
func (m *Model) ticketForm(eventID string, t *models.Ticket) *form {
	title, specs := "Add Ticket", itemSpecs("", 0, 0, false)
	if t != nil {
		title, specs = "Edit Ticket", itemSpecs(t.Name, t.Price, t.Quantity, false)
	}
	return newForm(title, true, func(v map[string]string) tea.Cmd {
		in, err := itemInput(v)
		if err != nil {
			return m.invalid(err)
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			if t == nil {
				_, err := client.CreateTicket(ctx, eventID, in)
				return actionDoneMsg{toast: "Ticket added successfully!", reload: true, err: err}
			}
			_, err := client.EditTicket(ctx, eventID, t.TicketID, in)
			return actionDoneMsg{toast: "Ticket updated successfully!", reload: true, err: err}
		}
	}, specs...)
}

// merchForm adds a merch item when mi is nil, else edits it.
func (m *Model) merchForm(eventID string, mi *models.Merch) *form {
	title, specs := "Add Merchandise", itemSpecs("", 0, 0, true)
	if mi != nil {
		title, specs = "Edit Merchandise", itemSpecs(mi.Name, mi.Price, mi.Stock, false)
	}
	return newForm(title, true, func(v map[string]string) tea.Cmd {
		in, err := itemInput(v)
		if err != nil {
			return m.invalid(err)
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			if mi == nil {
				_, err := client.CreateMerch(ctx, eventID, in)
				return actionDoneMsg{toast: "Merchandise added successfully!", reload: true, err: err}
			}
			_, err := client.EditMerch(ctx, eventID, mi.MerchID, in)
			return actionDoneMsg{toast: "Merchandise updated successfully!", reload: true, err: err}
		}
	}, specs...)
}

func (m *Model) uploadForm(eventID string) *form {
	return newForm("Upload Media", true, func(v map[string]string) tea.Cmd {
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			_, err := client.UploadMedia(ctx, eventID, v["path"])
			return actionDoneMsg{toast: "Media uploaded successfully!", reload: true, err: err}
		}
	}, fieldSpec{name: "path", label: "File path"})
}

func (m *Model) profileForm(p *models.Profile) *form {
	var links []string
	for name, url := range p.SocialLinks {
		links = append(links, fmt.Sprintf("%s=%s", name, url))
	}
	return newForm("Edit Profile", true, func(v map[string]string) tea.Cmd {
		update := services.ProfileUpdate{
			Username:    v["username"],
			Email:       v["email"],
			Bio:         v["bio"],
			PhoneNumber: v["phone"],
			SocialLinks: models.ParseSocialLinks(v["links"]),
			Picture:     v["picture"],
		}
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			saved, err := client.UpdateProfile(ctx, update)
			return profileSavedMsg{profile: saved, err: err}
		}
	},
		fieldSpec{name: "username", label: "Username", value: p.Username},
		fieldSpec{name: "email", label: "Email", value: p.Email},
		fieldSpec{name: "bio", label: "Bio", value: p.Bio},
		fieldSpec{name: "phone", label: "Phone", value: p.PhoneNumber},
		fieldSpec{name: "links", label: "Social links (name=url, ...)", value: strings.Join(links, ", ")},
		fieldSpec{name: "picture", label: "Profile picture path (optional)"},
	)
}

func (m *Model) activityForm() *form {
	return newForm("Log Activity", true, func(v map[string]string) tea.Cmd {
		client, ctx := m.client, m.ctx
		return func() tea.Msg {
			err := client.LatestLogActivity(ctx, v["action"])
			return actionDoneMsg{toast: "Activity logged.", reload: true, err: err}
		}
	}, fieldSpec{name: "action", label: "What did you do?"})
}

// run binds fn to the model context.
// logActivity records action in the background. Failures are logged, superseded records dropped.
func (m *Model) logActivity(action string) tea.Cmd {
	client, logger := m.client, m.logger
	return m.run(func(ctx context.Context) tea.Msg {
		if err := client.LatestLogActivity(ctx, action); err != nil && !services.IsAborted(err) {
			logger.Warn("failed to log activity", "action", action, "error", err)
		}
		return nil
	})
}

func (m *Model) run(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg { return fn(ctx) }
}
