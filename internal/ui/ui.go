package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/gallery"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/router"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/session"
	"github.com/desertthunder/evloca/internal/shared"
)

// ViewState represents what has the keyboard.
type ViewState int

const (
	ContentView ViewState = iota
	FormView
	ConfirmView
	LightboxView
	GotoView
)

// Options configures a [Model].
type Options struct {
	Client        *services.Client
	Session       *session.State
	Loading       *Loading // should also be the client's indicator
	Renderer      *formatter.Renderer
	Logger        *log.Logger
	ToastDuration time.Duration
	OpenURL       func(string) error
	Initial       string
}

type confirmation struct {
	prompt string
	action func() tea.Cmd
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	client   *services.Client
	session  *session.State
	router   *router.Dispatcher[tea.Cmd]
	lightbox *gallery.Lightbox[models.Media]
	renderer *formatter.Renderer
	loading  *Loading
	logger   *log.Logger
	openURL  func(string) error

	spinner   spinner.Model
	viewport  viewport.Model
	help      help.Model
	keys      keyMap
	gotoInput textinput.Model

	toastFor time.Duration
	toast    *toast
	toastSeq int

	nav     uint64
	page    *page
	form    *form
	confirm *confirmation

	width  int
	height int
}

// NewModel creates a TUI model. Nothing is fetched until [Model.Init].
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Loading == nil {
		opts.Loading = &Loading{}
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.Initial == "" {
		opts.Initial = "/"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	in := textinput.New()
	in.Prompt = ": "
	in.Placeholder = "/events"

	m := &Model{
		ctx:       ctx,
		view:      ContentView,
		client:    opts.Client,
		session:   opts.Session,
		lightbox:  gallery.New[models.Media](nil),
		renderer:  opts.Renderer,
		loading:   opts.Loading,
		logger:    opts.Logger,
		openURL:   opts.OpenURL,
		spinner:   sp,
		viewport:  vp,
		help:      help.New(),
		keys:      newKeyMap(),
		gotoInput: in,
		toastFor:  opts.ToastDuration,
		page:      &page{},
	}
	m.router = m.routes(opts.Initial)
	return m
}

// Init renders the initial route.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.router.Render(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-10, 5)
		if m.page.hasList {
			m.page.list.SetSize(m.listWidth(), m.listHeight())
		}
		if m.renderer != nil {
			if err := m.renderer.Resize(m.viewport.Width); err != nil {
				m.logger.Warn("resize renderer", "error", err)
			}
			if m.page.body != "" && (m.page.event != nil || m.page.place != nil) {
				m.renderBody()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case eventsFetchedMsg:
		return m, m.applyEvents(msg)
	case placesFetchedMsg:
		return m, m.applyPlaces(msg)
	case eventFetchedMsg:
		return m, m.applyEvent(msg)
	case placeFetchedMsg:
		return m, m.applyPlace(msg)
	case userFetchedMsg:
		return m, m.applyUser(msg)
	case profileFetchedMsg:
		return m, m.applyProfile(msg)

	case loggedInMsg:
		if msg.err != nil {
			return m, m.formFailed(msg.err)
		}
		if err := m.session.Login(msg.resp.Data.Token, msg.resp.Data.UserID); err != nil {
			return m, m.fail(err)
		}
		return m, tea.Batch(m.notify("Login successful!", false), m.navigate("/"))

	case signedUpMsg:
		if msg.err != nil {
			return m, m.formFailed(msg.err)
		}
		return m, tea.Batch(m.notify("Signup successful! You can now log in.", false), m.showLogin(router.Match("/login")))

	case followToggledMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		if msg.nav == m.nav && m.page.user != nil {
			following := msg.following
			m.page.user.IsFollowing = &following
			m.renderBody()
		}
		text := "Unfollowed."
		if msg.following {
			text = "Now following."
		}
		return m, m.notify(text, false)

	case profileSavedMsg:
		if msg.err != nil {
			return m, m.formFailed(msg.err)
		}
		if err := m.session.UpdateProfile(msg.profile); err != nil {
			return m, m.fail(err)
		}
		return m, tea.Batch(m.notify("Profile updated successfully!", false), m.reload(), m.logActivity("updated profile"))

	case profileDeletedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, tea.Batch(m.notify("Profile deleted.", false), m.logout())

	case actionDoneMsg:
		if msg.err != nil {
			return m, m.formFailed(msg.err)
		}
		cmds := []tea.Cmd{m.notify(msg.toast, false)}
		switch {
		case msg.navigate != "":
			cmds = append(cmds, m.navigate(msg.navigate))
		case msg.reload:
			cmds = append(cmds, m.reload())
		}
		return m, tea.Batch(cmds...)
	}

	return m, m.forward(msg)
}

// formFailed keeps the open form and shows the failure on it as well as in a toast.
func (m *Model) formFailed(err error) tea.Cmd {
	if m.form != nil && !services.IsAborted(err) {
		m.form.err = describe(err)
	}
	return m.fail(err)
}

// forward hands non-key messages to whichever component is focused (cursor blink, list filtering).
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	switch {
	case m.view == FormView && m.form != nil:
		return m.form.update(msg, m.keys)
	case m.view == GotoView:
		var cmd tea.Cmd
		m.gotoInput, cmd = m.gotoInput.Update(msg)
		return cmd
	case m.page.hasList:
		var cmd tea.Cmd
		m.page.list, cmd = m.page.list.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.view {
	case FormView:
		return m.handleFormKeys(msg)
	case ConfirmView:
		return m.handleConfirmKeys(msg)
	case LightboxView:
		return m.handleLightboxKeys(msg)
	case GotoView:
		return m.handleGotoKeys(msg)
	}

	if m.page.hasList && m.page.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.page.list, cmd = m.page.list.Update(msg)
		return cmd
	}
	if cmd, ok := m.handleGlobalKeys(msg); ok {
		return cmd
	}
	return m.handleContentKeys(msg)
}

// handleGlobalKeys covers the chrome: nav items, auth, history and the goto prompt.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	items, auth := router.Chrome(m.session.LoggedIn())
	for _, it := range items {
		if msg.String() == it.Key {
			return m.navigate(it.Path), true
		}
	}
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.auth):
		if auth.Path == "" {
			return tea.Batch(m.notify("Logged out.", false), m.logout()), true
		}
		return m.navigate(auth.Path), true
	case key.Matches(msg, m.keys.prev):
		cmd, _ := m.router.Back()
		return cmd, true
	case key.Matches(msg, m.keys.next):
		cmd, _ := m.router.Forward()
		return cmd, true
	case key.Matches(msg, m.keys.jump):
		m.view = GotoView
		m.gotoInput.SetValue("")
		return m.gotoInput.Focus(), true
	case key.Matches(msg, m.keys.refresh):
		return m.reload(), true
	}
	return nil, false
}

// logout cancels outstanding list fetches, clears the session and returns home.
func (m *Model) logout() tea.Cmd {
	flights := m.client.Flights()
	for _, c := range []services.Class{services.ClassEvents, services.ClassPlaces, services.ClassActivity} {
		flights.Cancel(c)
	}
	if err := m.session.Logout(); err != nil {
		m.logger.Error("logout", "error", err)
	}
	return m.navigate("/")
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch {
	case key.Matches(msg, m.keys.back):
		m.form = nil
		m.view = ContentView
		if f != nil && !f.overlay {
			cmd, ok := m.router.Back()
			if !ok {
				return m.navigate("/")
			}
			return cmd
		}
		return nil
	case key.Matches(msg, m.keys.signup) && m.page.route.Kind == router.Login:
		if f != nil && f.title == "Login" {
			return m.openForm(m.signupForm())
		}
		return m.openForm(m.loginForm())
	}
	if f == nil {
		return nil
	}
	return f.update(msg, m.keys)
}

func (m *Model) ask(prompt string, action func() tea.Cmd) tea.Cmd {
	m.confirm = &confirmation{prompt: prompt, action: action}
	m.view = ConfirmView
	return nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.yes):
		c := m.confirm
		m.confirm = nil
		m.view = ContentView
		if c == nil {
			return nil
		}
		return c.action()
	case key.Matches(msg, m.keys.no):
		m.confirm = nil
		m.view = ContentView
	}
	return nil
}

func (m *Model) handleLightboxKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.left):
		m.lightbox.Step(-1)
	case key.Matches(msg, m.keys.right):
		m.lightbox.Step(1)
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.lightbox.Close()
		m.view = ContentView
	case key.Matches(msg, m.keys.browser):
		media, ok := m.lightbox.Current()
		if !ok {
			return nil
		}
		if err := m.openURL(m.client.AssetURL(services.AssetUploads, media.URL)); err != nil {
			return m.notify(fmt.Sprintf("Could not open browser: %v", err), true)
		}
	}
	return nil
}

func (m *Model) handleGotoKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		m.gotoInput.Blur()
		m.view = ContentView
		return nil
	case key.Matches(msg, m.keys.enter):
		path := strings.TrimSpace(m.gotoInput.Value())
		m.gotoInput.Blur()
		m.view = ContentView
		if path == "" {
			return nil
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return m.navigate(path)
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return cmd
}

func (m *Model) handleContentKeys(msg tea.KeyMsg) tea.Cmd {
	p := m.page
	switch {
	case p.hasList:
		return m.handleListKeys(msg)
	case p.event != nil:
		return m.handleEventKeys(msg)
	case p.place != nil:
		return m.handlePlaceKeys(msg)
	case p.user != nil:
		if key.Matches(msg, m.keys.follow) {
			return m.toggleFollow()
		}
	case p.profile != nil:
		return m.handleProfileKeys(msg)
	}
	if key.Matches(msg, m.keys.back) {
		cmd, _ := m.router.Back()
		return cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.enter) {
		switch it := m.page.list.SelectedItem().(type) {
		case eventItem:
			return m.navigate(router.PathFor(router.EventDetail, it.event.EventID))
		case placeItem:
			return m.navigate(router.PathFor(router.PlaceDetail, it.place.PlaceID))
		}
		return nil
	}
	var cmd tea.Cmd
	m.page.list, cmd = m.page.list.Update(msg)
	return cmd
}

// moveCursor handles up/down over the detail rows.
func (m *Model) moveCursor(msg tea.KeyMsg) bool {
	p := m.page
	switch {
	case key.Matches(msg, m.keys.up):
		if p.cursor > 0 {
			p.cursor--
		}
		return true
	case key.Matches(msg, m.keys.down):
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
		return true
	}
	return false
}

func (m *Model) selected() (row, bool) {
	p := m.page
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return row{}, false
	}
	return p.rows[p.cursor], true
}

func (m *Model) handleEventKeys(msg tea.KeyMsg) tea.Cmd {
	if m.moveCursor(msg) {
		return nil
	}
	e := m.page.event
	owner := e.CreatedBy(m.session.User())
	sel, hasSel := m.selected()

	switch {
	case key.Matches(msg, m.keys.enter) && hasSel:
		switch sel.kind {
		case mediaRow:
			if m.lightbox.Open(sel.index) {
				m.view = LightboxView
			}
		case ticketRow:
			if owner {
				return m.openForm(m.ticketForm(e.EventID, &e.Tickets[sel.index]))
			}
		case merchRow:
			if owner {
				return m.openForm(m.merchForm(e.EventID, &e.Merch[sel.index]))
			}
		}
		return nil
	case key.Matches(msg, m.keys.buy) && hasSel:
		return m.buy(e, sel)
	case key.Matches(msg, m.keys.back):
		cmd, _ := m.router.Back()
		return cmd
	}

	if !owner {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	switch {
	case key.Matches(msg, m.keys.edit):
		return m.openForm(m.editEventForm(e))
	case key.Matches(msg, m.keys.remove):
		id, client := e.EventID, m.client
		return m.ask(fmt.Sprintf("Delete event %q?", e.Title), func() tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				err := client.DeleteEvent(ctx, id)
				return actionDoneMsg{toast: "Event deleted successfully!", navigate: "/", err: err}
			})
		})
	case key.Matches(msg, m.keys.ticket):
		return m.openForm(m.ticketForm(e.EventID, nil))
	case key.Matches(msg, m.keys.merch):
		return m.openForm(m.merchForm(e.EventID, nil))
	case key.Matches(msg, m.keys.upload):
		return m.openForm(m.uploadForm(e.EventID))
	case key.Matches(msg, m.keys.drop) && hasSel:
		return m.dropRow(e, sel)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) buy(e *models.Event, sel row) tea.Cmd {
	if !m.session.LoggedIn() {
		return m.notify("Please log in to make a purchase.", true)
	}
	client, id := m.client, e.EventID
	switch sel.kind {
	case ticketRow:
		t := e.Tickets[sel.index]
		return m.run(func(ctx context.Context) tea.Msg {
			_, err := client.BuyTicket(ctx, id, t.TicketID)
			return actionDoneMsg{toast: fmt.Sprintf("Ticket %q purchased!", t.Name), reload: true, err: err}
		})
	case merchRow:
		mi := e.Merch[sel.index]
		return m.run(func(ctx context.Context) tea.Msg {
			_, err := client.BuyMerch(ctx, id, mi.MerchID)
			return actionDoneMsg{toast: fmt.Sprintf("%q purchased!", mi.Name), reload: true, err: err}
		})
	}
	return nil
}

func (m *Model) dropRow(e *models.Event, sel row) tea.Cmd {
	client, id := m.client, e.EventID
	var prompt, done string
	var del func(ctx context.Context) error
	switch sel.kind {
	case ticketRow:
		t := e.Tickets[sel.index]
		prompt, done = fmt.Sprintf("Delete ticket %q?", t.Name), "Ticket deleted successfully!"
		del = func(ctx context.Context) error { return client.DeleteTicket(ctx, id, t.TicketID) }
	case merchRow:
		mi := e.Merch[sel.index]
		prompt, done = fmt.Sprintf("Delete merchandise %q?", mi.Name), "Merchandise deleted successfully!"
		del = func(ctx context.Context) error { return client.DeleteMerch(ctx, id, mi.MerchID) }
	case mediaRow:
		md := e.Media[sel.index]
		prompt, done = "Delete this media item?", "Media deleted successfully!"
		del = func(ctx context.Context) error { return client.DeleteMedia(ctx, id, md.ID) }
	default:
		return nil
	}
	return m.ask(prompt, func() tea.Cmd {
		return m.run(func(ctx context.Context) tea.Msg {
			return actionDoneMsg{toast: done, reload: true, err: del(ctx)}
		})
	})
}

func (m *Model) handlePlaceKeys(msg tea.KeyMsg) tea.Cmd {
	pl := m.page.place
	owner := pl.CreatedBy != "" && pl.CreatedBy == m.session.User()
	switch {
	case key.Matches(msg, m.keys.back):
		cmd, _ := m.router.Back()
		return cmd
	case owner && key.Matches(msg, m.keys.edit):
		return m.openForm(m.editPlaceForm(pl))
	case owner && key.Matches(msg, m.keys.remove):
		id, client := pl.PlaceID, m.client
		return m.ask(fmt.Sprintf("Delete place %q?", pl.Name), func() tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				err := client.DeletePlace(ctx, id)
				return actionDoneMsg{toast: "Place deleted successfully!", navigate: "/places", err: err}
			})
		})
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) tea.Cmd {
	if m.moveCursor(msg) {
		return nil
	}
	p := m.page
	switch {
	case key.Matches(msg, m.keys.enter):
		if sel, ok := m.selected(); ok && sel.kind == suggestionRow {
			return m.navigate(router.PathFor(router.UserDetail, p.suggestions[sel.index].Username))
		}
		return nil
	case key.Matches(msg, m.keys.edit):
		return m.openForm(m.profileForm(p.profile))
	case key.Matches(msg, m.keys.log):
		return m.openForm(m.activityForm())
	case key.Matches(msg, m.keys.remove):
		client := m.client
		return m.ask("Delete your profile? This cannot be undone.", func() tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				return profileDeletedMsg{err: client.DeleteProfile(ctx)}
			})
		})
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) toggleFollow() tea.Cmd {
	if !m.session.LoggedIn() {
		return m.notify("Please log in to follow users.", true)
	}
	nav, client, id := m.nav, m.client, m.page.user.UserID
	return m.run(func(ctx context.Context) tea.Msg {
		following, err := client.ToggleFollow(ctx, id)
		return followToggledMsg{nav: nav, following: following, err: err}
	})
}

// View renders the chrome, the toast and the focused content.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderChrome())
	b.WriteString("\n")
	if t := m.renderToast(); t != "" {
		b.WriteString(t + "\n")
	}
	b.WriteString("\n")

	switch m.view {
	case FormView:
		if m.form != nil {
			b.WriteString(m.form.view())
		}
	case ConfirmView:
		b.WriteString(m.renderConfirm())
	case LightboxView:
		b.WriteString(m.renderLightbox())
	case GotoView:
		b.WriteString(m.gotoInput.View())
		b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back}))
	default:
		b.WriteString(m.renderContent())
	}
	return b.String()
}

func (m *Model) renderChrome() string {
	items, auth := router.Chrome(m.session.LoggedIn())
	current := m.router.Location().Path
	parts := make([]string, 0, len(items)+2)
	for _, it := range items {
		label := fmt.Sprintf("%s %s", it.Key, it.Label)
		if it.Path == current {
			parts = append(parts, styles.navOn.Render(label))
			continue
		}
		parts = append(parts, styles.nav.Render(label))
	}
	parts = append(parts, styles.nav.Render(fmt.Sprintf("%s %s", auth.Key, auth.Label)))
	if m.loading.Active() {
		parts = append(parts, m.spinner.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderContent() string {
	p := m.page
	var b strings.Builder
	if p.notice != "" {
		b.WriteString(styles.title.Render(p.notice) + "\n")
	}
	switch {
	case p.loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case p.err != "":
		b.WriteString(styles.err.Render(p.err))
	case p.hasList:
		b.WriteString(p.list.View())
	default:
		b.WriteString(m.viewport.View())
		if rows := m.renderRows(); rows != "" {
			b.WriteString("\n" + rows)
		}
	}
	b.WriteString("\n\n" + m.help.ShortHelpView(m.contextKeys()))
	return b.String()
}

func (m *Model) renderRows() string {
	p := m.page
	if len(p.rows) == 0 {
		return ""
	}
	var b strings.Builder
	var section rowKind = -1
	for i, r := range p.rows {
		if r.kind != section {
			section = r.kind
			b.WriteString("\n" + styles.label.Render(sectionTitle(section)) + "\n")
		}
		line := "  " + m.rowLabel(r)
		if i == p.cursor {
			line = styles.cursor.Render("> " + m.rowLabel(r))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func sectionTitle(k rowKind) string {
	switch k {
	case ticketRow:
		return "Tickets"
	case merchRow:
		return "Merchandise"
	case mediaRow:
		return "Media"
	case suggestionRow:
		return "Who to follow"
	}
	return ""
}

func (m *Model) rowLabel(r row) string {
	p := m.page
	switch r.kind {
	case ticketRow:
		t := p.event.Tickets[r.index]
		return fmt.Sprintf("%s  %s  (%d left)", t.Name, models.FormatPrice(t.Price), t.Quantity)
	case merchRow:
		mi := p.event.Merch[r.index]
		return fmt.Sprintf("%s  %s  (%d in stock)", mi.Name, models.FormatPrice(mi.Price), mi.Stock)
	case mediaRow:
		md := p.event.Media[r.index]
		label := md.Caption
		if label == "" {
			label = md.URL
		}
		return fmt.Sprintf("[%s] %s", md.Type, label)
	case suggestionRow:
		return "@" + p.suggestions[r.index].Username
	}
	return ""
}

// contextKeys lists the bindings that apply to the current page.
func (m *Model) contextKeys() []key.Binding {
	p := m.page
	keys := []key.Binding{}
	switch {
	case p.hasList:
		keys = append(keys, m.keys.up, m.keys.down, m.keys.enter)
	case p.event != nil:
		keys = append(keys, m.keys.enter, m.keys.buy)
		if p.event.CreatedBy(m.session.User()) {
			keys = append(keys, m.keys.edit, m.keys.remove, m.keys.ticket, m.keys.merch, m.keys.upload, m.keys.drop)
		}
	case p.place != nil:
		if p.place.CreatedBy != "" && p.place.CreatedBy == m.session.User() {
			keys = append(keys, m.keys.edit, m.keys.remove)
		}
	case p.user != nil:
		keys = append(keys, m.keys.follow)
	case p.profile != nil:
		keys = append(keys, m.keys.edit, m.keys.log, m.keys.remove)
	}
	return append(keys, m.keys.ShortHelp()...)
}

func (m *Model) renderConfirm() string {
	if m.confirm == nil {
		return ""
	}
	title := styles.warn.Render(m.confirm.prompt)
	return fmt.Sprintf("%s\n\n%s", title, m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no}))
}

func (m *Model) renderLightbox() string {
	media, ok := m.lightbox.Current()
	if !ok {
		return styles.err.Render("Nothing to show.")
	}
	url := m.client.AssetURL(services.AssetUploads, media.URL)
	body := fmt.Sprintf("%s\n\n%s\n%s\n\n%d / %d",
		styles.title.Render(media.Caption),
		styles.label.Render(media.Type),
		url,
		m.lightbox.Index()+1, m.lightbox.Len(),
	)
	if media.Description != "" {
		body += "\n\n" + media.Description
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.left, m.keys.right, m.keys.browser, m.keys.back})
	return fmt.Sprintf("%s\n\n%s", styles.frame.Render(body), helpView)
}

