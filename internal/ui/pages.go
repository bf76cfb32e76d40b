package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/router"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
)

type rowKind int

const (
	ticketRow rowKind = iota
	merchRow
	mediaRow
	suggestionRow
)

// row is one selectable line under a detail page.
type row struct {
	kind  rowKind
	index int
}

// page is what the content pane shows for the current route.
type page struct {
	route   router.Route
	loading bool
	err     string
	notice  string

	list    list.Model
	hasList bool

	event       *models.Event
	place       *models.Place
	user        *models.UserProfile
	profile     *models.Profile
	activity    []models.Activity
	suggestions []models.User

	body   string
	rows   []row
	cursor int
}

func (m *Model) routes(initial string) *router.Dispatcher[tea.Cmd] {
	return router.NewDispatcher[tea.Cmd](initial, m.showNotFound).
		Handle(router.Home, m.showHome).
		Handle(router.Login, m.showLogin).
		Handle(router.Profile, m.showProfile).
		Handle(router.CreateEvent, m.showCreateEvent).
		Handle(router.CreatePlace, m.showCreatePlace).
		Handle(router.ListEvents, m.showEvents).
		Handle(router.ListPlaces, m.showPlaces).
		Handle(router.UserDetail, m.showUser).
		Handle(router.EventDetail, m.showEvent).
		Handle(router.PlaceDetail, m.showPlace)
}

// enter replaces the page. Results started under an older nav value are dropped on arrival.
func (m *Model) enter(route router.Route) *page {
	m.nav++
	m.view = ContentView
	m.form = nil
	m.confirm = nil
	m.lightbox.Replace(nil)
	m.page = &page{route: route}
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	m.logger.Debug("render", "route", route.Kind, "path", route.Path)
	return m.page
}

func (m *Model) showNotFound(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.err = "404 - Page not found"
	return nil
}

func (m *Model) showHome(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.loading = true
	return m.fetchEvents()
}

func (m *Model) showEvents(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.loading = true
	return m.fetchEvents()
}

func (m *Model) showPlaces(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.loading = true
	return m.fetchPlaces()
}

func (m *Model) showLogin(route router.Route) tea.Cmd {
	m.enter(route)
	return m.openForm(m.loginForm())
}

// requireLogin marks the page when there is no session.
func (m *Model) requireLogin(p *page, what string) bool {
	if m.session.LoggedIn() {
		return true
	}
	p.err = fmt.Sprintf("Please log in to %s.", what)
	return false
}

func (m *Model) showCreateEvent(route router.Route) tea.Cmd {
	p := m.enter(route)
	if !m.requireLogin(p, "create an event") {
		return nil
	}
	return m.openForm(m.createEventForm())
}

func (m *Model) showCreatePlace(route router.Route) tea.Cmd {
	p := m.enter(route)
	if !m.requireLogin(p, "create a place") {
		return nil
	}
	return m.openForm(m.createPlaceForm())
}

func (m *Model) showProfile(route router.Route) tea.Cmd {
	p := m.enter(route)
	if !m.requireLogin(p, "view your profile") {
		return nil
	}
	p.loading = true
	return m.fetchProfile()
}

func (m *Model) showUser(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.loading = true
	nav, client, name := m.nav, m.client, route.Param
	return m.run(func(ctx context.Context) tea.Msg {
		u, err := client.User(ctx, name)
		return userFetchedMsg{nav: nav, user: u, err: err}
	})
}

func (m *Model) showEvent(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.loading = true
	nav, client, id := m.nav, m.client, route.Param
	return m.run(func(ctx context.Context) tea.Msg {
		e, err := client.Event(ctx, id)
		return eventFetchedMsg{nav: nav, event: e, err: err}
	})
}

func (m *Model) showPlace(route router.Route) tea.Cmd {
	p := m.enter(route)
	p.loading = true
	nav, client, id := m.nav, m.client, route.Param
	return m.run(func(ctx context.Context) tea.Msg {
		pl, err := client.Place(ctx, id)
		return placeFetchedMsg{nav: nav, place: pl, err: err}
	})
}

// fetchEvents starts a new events flight. Begin runs here so a quick second navigation
// cancels the first request before either command is scheduled.
func (m *Model) fetchEvents() tea.Cmd {
	nav, client := m.nav, m.client
	ctx, ticket := client.Flights().Begin(m.ctx, services.ClassEvents)
	return func() tea.Msg {
		defer ticket.Done()
		events, err := client.Events(ctx)
		return eventsFetchedMsg{nav: nav, ticket: ticket, events: events, err: err}
	}
}

func (m *Model) fetchPlaces() tea.Cmd {
	nav, client := m.nav, m.client
	ctx, ticket := client.Flights().Begin(m.ctx, services.ClassPlaces)
	return func() tea.Msg {
		defer ticket.Done()
		places, err := client.Places(ctx)
		return placesFetchedMsg{nav: nav, ticket: ticket, places: places, err: err}
	}
}

// fetchProfile serves the cached profile when there is one; activity and suggestions are always fetched.
func (m *Model) fetchProfile() tea.Cmd {
	nav, client, cached := m.nav, m.client, m.session.Profile()
	return m.run(func(ctx context.Context) tea.Msg {
		msg := profileFetchedMsg{nav: nav, profile: cached}
		if msg.profile == nil {
			msg.profile, msg.err = client.Profile(ctx)
			if msg.err != nil {
				return msg
			}
		}
		msg.activity, msg.err = client.Activities(ctx)
		if msg.err != nil {
			return msg
		}
		msg.suggestions, msg.err = client.FollowSuggestions(ctx)
		return msg
	})
}

// reload renders the current entry again without touching history.
func (m *Model) reload() tea.Cmd {
	return m.router.Render()
}

func (m *Model) navigate(path string) tea.Cmd {
	return m.router.Navigate(path)
}

func (m *Model) openForm(f *form) tea.Cmd {
	m.form = f
	m.view = FormView
	return nil
}

func (m *Model) applyEvents(msg eventsFetchedMsg) tea.Cmd {
	if err := msg.ticket.Resolve(msg.err); services.IsAborted(err) || msg.nav != m.nav {
		return nil
	} else if err != nil {
		m.page.loading = false
		m.page.err = describe(err)
		return m.fail(err)
	}
	p := m.page
	p.loading = false
	if p.route.Kind == router.Home {
		name := "Guest"
		if m.session.LoggedIn() {
			name = m.session.User()
			if prof := m.session.Profile(); prof != nil && prof.Username != "" {
				name = prof.Username
			}
		}
		p.notice = fmt.Sprintf("Welcome, %s", name)
	}
	if len(msg.events) == 0 {
		p.body = "No events available."
		m.viewport.SetContent(p.body)
		return nil
	}
	p.list = newResourceList("Events", eventItems(msg.events), m.listWidth(), m.listHeight())
	p.hasList = true
	return nil
}

func (m *Model) applyPlaces(msg placesFetchedMsg) tea.Cmd {
	if err := msg.ticket.Resolve(msg.err); services.IsAborted(err) || msg.nav != m.nav {
		return nil
	} else if err != nil {
		m.page.loading = false
		m.page.err = describe(err)
		return m.fail(err)
	}
	p := m.page
	p.loading = false
	if len(msg.places) == 0 {
		p.body = "No places available."
		m.viewport.SetContent(p.body)
		return nil
	}
	p.list = newResourceList("Places", placeItems(msg.places), m.listWidth(), m.listHeight())
	p.hasList = true
	return nil
}

// settle applies the common part of a detail fetch. It reports whether the result is for the
// current page and succeeded.
func (m *Model) settle(nav uint64, err error) (bool, tea.Cmd) {
	if nav != m.nav || services.IsAborted(err) {
		return false, nil
	}
	m.page.loading = false
	if err != nil {
		m.page.err = describe(err)
		return false, m.fail(err)
	}
	return true, nil
}

func (m *Model) applyEvent(msg eventFetchedMsg) tea.Cmd {
	ok, cmd := m.settle(msg.nav, msg.err)
	if !ok {
		return cmd
	}
	p := m.page
	p.event = msg.event
	p.rows = p.rows[:0]
	for i := range msg.event.Tickets {
		p.rows = append(p.rows, row{kind: ticketRow, index: i})
	}
	for i := range msg.event.Merch {
		p.rows = append(p.rows, row{kind: merchRow, index: i})
	}
	for i := range msg.event.Media {
		p.rows = append(p.rows, row{kind: mediaRow, index: i})
	}
	p.cursor = min(p.cursor, max(len(p.rows)-1, 0))
	m.lightbox.Replace(msg.event.Media)
	m.renderBody()
	return nil
}

func (m *Model) applyPlace(msg placeFetchedMsg) tea.Cmd {
	ok, cmd := m.settle(msg.nav, msg.err)
	if !ok {
		return cmd
	}
	m.page.place = msg.place
	m.renderBody()
	return nil
}

func (m *Model) applyUser(msg userFetchedMsg) tea.Cmd {
	if msg.nav == m.nav && errors.Is(msg.err, shared.ErrNotFound) {
		m.page.loading = false
		m.page.err = "User not found."
		return nil
	}
	ok, cmd := m.settle(msg.nav, msg.err)
	if !ok {
		return cmd
	}
	m.page.user = msg.user
	m.renderBody()
	return nil
}

func (m *Model) applyProfile(msg profileFetchedMsg) tea.Cmd {
	if msg.profile != nil && msg.nav == m.nav && m.session.Profile() == nil {
		if err := m.session.UpdateProfile(msg.profile); err != nil {
			m.logger.Warn("could not cache profile", "error", err)
		}
	}
	ok, cmd := m.settle(msg.nav, msg.err)
	if !ok {
		return cmd
	}
	p := m.page
	p.profile = msg.profile
	p.activity = msg.activity
	p.suggestions = msg.suggestions
	p.rows = p.rows[:0]
	for i := range msg.suggestions {
		p.rows = append(p.rows, row{kind: suggestionRow, index: i})
	}
	m.renderBody()
	return nil
}

// renderBody turns the loaded resource into the viewport content.
func (m *Model) renderBody() {
	p := m.page
	var md []byte
	switch {
	case p.event != nil:
		md, _ = formatter.EventToMarkdown(p.event, "")
		// Rows below the header take over tickets, merch and media.
		if head, _, ok := strings.Cut(string(md), "\n## Tickets"); ok {
			md = []byte(head)
		}
	case p.place != nil:
		md, _ = formatter.PlaceToMarkdown(p.place, "")
	case p.user != nil:
		p.body = string(formatter.UserToText(p.user))
		m.viewport.SetContent(p.body)
		return
	case p.profile != nil:
		var b strings.Builder
		b.Write(formatter.ProfileToText(p.profile))
		b.WriteString("\n" + styles.label.Render("Activity") + "\n")
		b.Write(formatter.ActivitiesToText(p.activity, time.Now()))
		p.body = b.String()
		m.viewport.SetContent(p.body)
		return
	}
	if m.renderer != nil {
		p.body = m.renderer.Render(md)
	} else {
		p.body = string(md)
	}
	m.viewport.SetContent(p.body)
}

func (m *Model) listWidth() int  { return max(m.width-4, 20) }
func (m *Model) listHeight() int { return max(m.height-8, 5) }
