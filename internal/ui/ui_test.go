package ui

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/router"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/session"
	"github.com/desertthunder/evloca/internal/shared"
	tu "github.com/desertthunder/evloca/internal/testing"
)

type harness struct {
	model   *Model
	session *session.State
	opened  []string
}

func newHarness(t *testing.T, api *tu.FakeAPI, initial, user string) *harness {
	t.Helper()
	state, err := session.Bootstrap(session.NewMemoryStorage(), nil)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if user != "" {
		if err := state.Login("tok", user); err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	loading := &Loading{}
	client := services.NewClient(services.ClientOpts{
		BaseURL:  api.URL + "/api",
		AssetURL: "http://assets.test",
		Tokens:   state,
		Loading:  loading,
	})
	h := &harness{session: state}
	h.model = NewModel(context.Background(), Options{
		Client:        client,
		Session:       state,
		Loading:       loading,
		ToastDuration: time.Hour,
		OpenURL: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
		Initial: initial,
	})
	h.drain(t, h.model.Init())
	return h
}

// exec runs cmd, giving up on commands that wait (ticks, cursor blinks).
func exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(150 * time.Millisecond):
		return nil
	}
}

// drain feeds cmd and everything it produces back through Update.
func (h *harness) drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("message loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := exec(next).(type) {
		case nil, spinner.TickMsg, toastExpiredMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, c := h.model.Update(msg)
			queue = append(queue, c)
		}
	}
}

func (h *harness) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := h.model.Update(keyMsg(k))
		h.drain(t, cmd)
	}
}

func (h *harness) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		h.press(t, string(r))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) toastText() string {
	if h.model.toast == nil {
		return ""
	}
	return h.model.toast.text
}

func sampleEvent() models.Event {
	return models.Event{
		EventID:   "e1",
		Title:     "Launch Party",
		Date:      "2025-06-01T18:30",
		Location:  "Hall A",
		CreatorID: "u1",
		Tickets:   []models.Ticket{{TicketID: "t1", Name: "General", Price: 1500, Quantity: 10}},
		Merch:     []models.Merch{{MerchID: "m1", Name: "Shirt", Price: 2000, Stock: 3}},
		Media: []models.Media{
			{ID: "md1", Type: "image", URL: "one.jpg", Caption: "Stage"},
			{ID: "md2", Type: "image", URL: "two.jpg", Caption: "Crowd"},
		},
	}
}

func TestNavigation(t *testing.T) {
	t.Run("Home Welcomes Guest", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{sampleEvent()})
		h := newHarness(t, api, "/", "")

		if h.model.page.notice != "Welcome, Guest" {
			t.Errorf("unexpected notice %q", h.model.page.notice)
		}
		if !h.model.page.hasList {
			t.Fatal("expected the events list")
		}
		if view := h.model.View(); !strings.Contains(view, "Launch Party") {
			t.Errorf("expected event title in view:\n%s", view)
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/places", http.StatusOK, []models.Place{})
		h := newHarness(t, api, "/places", "")

		if view := h.model.View(); !strings.Contains(view, "No places available.") {
			t.Errorf("expected empty message in view:\n%s", view)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		h := newHarness(t, api, "/nowhere", "")

		if view := h.model.View(); !strings.Contains(view, "404 - Page not found") {
			t.Errorf("expected not found page:\n%s", view)
		}
		if len(api.Requests()) != 0 {
			t.Errorf("expected no requests, got %d", len(api.Requests()))
		}
	})

	t.Run("Nav Keys And History", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{})
		api.JSON(http.MethodGet, "/api/places", http.StatusOK, []models.Place{})
		h := newHarness(t, api, "/", "")

		h.press(t, "3")
		if got := h.model.router.Location().Kind; got != router.ListPlaces {
			t.Fatalf("expected places, got %s", got)
		}
		h.press(t, "[")
		if got := h.model.router.Location().Kind; got != router.Home {
			t.Fatalf("expected home after back, got %s", got)
		}
		h.press(t, "]")
		if got := h.model.router.Location().Kind; got != router.ListPlaces {
			t.Fatalf("expected places after forward, got %s", got)
		}
		if h.model.page.route.Kind != router.ListPlaces {
			t.Errorf("expected page to follow history, got %s", h.model.page.route.Kind)
		}
	})

	t.Run("Logged Out Chrome Hides Private Items", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{})
		h := newHarness(t, api, "/", "")

		h.press(t, "5")
		if got := h.model.router.Location().Kind; got != router.Home {
			t.Errorf("expected key 5 to be inactive when logged out, got %s", got)
		}
		if view := h.model.View(); strings.Contains(view, "Create Event") || !strings.Contains(view, "Login") {
			t.Errorf("unexpected chrome:\n%s", view)
		}
	})

	t.Run("Goto Prompt", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{})
		h := newHarness(t, api, "/", "")

		h.press(t, ":")
		if h.model.view != GotoView {
			t.Fatal("expected goto prompt")
		}
		h.typeText(t, "missing")
		h.press(t, "enter")
		if got := h.model.router.Location().Path; got != "/missing" {
			t.Errorf("expected /missing, got %s", got)
		}
		if h.model.page.err != "404 - Page not found" {
			t.Errorf("unexpected page error %q", h.model.page.err)
		}
	})

	t.Run("Profile Requires Login", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		h := newHarness(t, api, "/profile", "")

		if h.model.page.err != "Please log in to view your profile." {
			t.Errorf("unexpected error %q", h.model.page.err)
		}
	})
}

func TestStaleResults(t *testing.T) {
	t.Run("Result For A Left Page Is Dropped", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{sampleEvent()})
		api.JSON(http.MethodGet, "/api/places", http.StatusOK, []models.Place{})
		h := newHarness(t, api, "/404", "")

		slow := h.model.navigate("/events")
		fast := h.model.navigate("/places")
		h.drain(t, slow)

		if h.model.page.route.Kind != router.ListPlaces || h.model.page.hasList {
			t.Fatal("events result leaked onto the places page")
		}
		h.drain(t, fast)
		if !strings.Contains(h.model.View(), "No places available.") {
			t.Error("expected places result to apply")
		}
	})

	t.Run("Superseded Flight Is Silent", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{sampleEvent()})
		h := newHarness(t, api, "/404", "")

		first := h.model.navigate("/events")
		second := h.model.navigate("/")
		h.drain(t, first)
		if h.toastText() != "" {
			t.Errorf("aborted flight raised a toast: %q", h.toastText())
		}
		h.drain(t, second)
		if !h.model.page.hasList {
			t.Error("expected latest flight to populate the list")
		}
	})
}

func TestAuthFlow(t *testing.T) {
	t.Run("Login", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodPost, "/api/login", http.StatusOK, map[string]any{
			"status": 200,
			"data":   map[string]string{"token": "tok-1", "userid": "u9"},
		})
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{})
		h := newHarness(t, api, "/login", "")

		if h.model.view != FormView {
			t.Fatal("expected login form")
		}
		h.typeText(t, "alice")
		h.press(t, "tab")
		h.typeText(t, "secret1")
		h.press(t, "enter")

		if h.session.Token() != "tok-1" || h.session.User() != "u9" {
			t.Errorf("session not stored: %q %q", h.session.Token(), h.session.User())
		}
		if h.toastText() != "Login successful!" {
			t.Errorf("unexpected toast %q", h.toastText())
		}
		if got := h.model.router.Location().Kind; got != router.Home {
			t.Errorf("expected home, got %s", got)
		}
		if !strings.Contains(h.model.View(), "Logout") {
			t.Error("expected chrome to offer logout")
		}
	})

	t.Run("Short Username Rejected Locally", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		h := newHarness(t, api, "/login", "")

		h.typeText(t, "abc")
		h.press(t, "tab")
		h.typeText(t, "secret1")
		h.press(t, "ctrl+s")

		if !strings.Contains(h.model.form.err, "Username must be between 3 and 20 characters.") {
			t.Errorf("unexpected form error %q", h.model.form.err)
		}
		if n := len(api.Requests()); n != 0 {
			t.Errorf("expected no requests, got %d", n)
		}
	})

	t.Run("Server Error Stays On Form", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodPost, "/api/login", http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		h := newHarness(t, api, "/login", "")

		h.typeText(t, "alice")
		h.press(t, "tab")
		h.typeText(t, "wrongpw")
		h.press(t, "enter")

		if h.session.LoggedIn() {
			t.Error("expected no session")
		}
		if h.toastText() != "Invalid credentials" || h.model.form.err != "Invalid credentials" {
			t.Errorf("unexpected feedback: toast %q form %q", h.toastText(), h.model.form.err)
		}
	})

	t.Run("Signup Toggle", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodPost, "/api/register", http.StatusCreated, map[string]string{"message": "ok"})
		h := newHarness(t, api, "/login", "")

		h.press(t, "ctrl+r")
		if h.model.form.title != "Sign up" {
			t.Fatalf("expected signup form, got %q", h.model.form.title)
		}
		h.typeText(t, "alice")
		h.press(t, "tab")
		h.typeText(t, "alice@example.com")
		h.press(t, "tab")
		h.typeText(t, "secret1")
		h.press(t, "enter")

		if h.toastText() != "Signup successful! You can now log in." {
			t.Errorf("unexpected toast %q", h.toastText())
		}
		if h.model.form == nil || h.model.form.title != "Login" {
			t.Error("expected to land on the login form")
		}
	})

	t.Run("Logout Clears Session", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{})
		h := newHarness(t, api, "/", "u1")

		h.press(t, "L")
		if h.session.LoggedIn() || h.session.Profile() != nil {
			t.Error("expected session to be cleared")
		}
		if got := h.model.router.Location().Path; got != "/" {
			t.Errorf("expected home, got %s", got)
		}
		if view := h.model.View(); strings.Contains(view, "Profile") {
			t.Errorf("expected private items to disappear:\n%s", view)
		}
	})
}

func TestEventDetail(t *testing.T) {
	setup := func(t *testing.T, user string) (*tu.FakeAPI, *harness) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/event/e1", http.StatusOK, sampleEvent())
		api.JSON(http.MethodGet, "/api/events", http.StatusOK, []models.Event{})
		return api, newHarness(t, api, "/event/e1", user)
	}

	t.Run("Rows", func(t *testing.T) {
		_, h := setup(t, "")
		if n := len(h.model.page.rows); n != 4 {
			t.Fatalf("expected 4 rows, got %d", n)
		}
		view := h.model.View()
		for _, want := range []string{"General", "15.00", "Shirt", "Stage", "Crowd"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in view", want)
			}
		}
		if h.model.lightbox.Len() != 2 {
			t.Errorf("expected gallery of 2, got %d", h.model.lightbox.Len())
		}
	})

	t.Run("Lightbox", func(t *testing.T) {
		_, h := setup(t, "")
		h.press(t, "down", "down", "enter")
		if h.model.view != LightboxView || h.model.lightbox.Index() != 0 {
			t.Fatalf("expected lightbox at 0, view %d index %d", h.model.view, h.model.lightbox.Index())
		}
		h.press(t, "right")
		if h.model.lightbox.Index() != 1 {
			t.Errorf("expected index 1, got %d", h.model.lightbox.Index())
		}
		h.press(t, "right")
		if h.model.lightbox.Index() != 0 {
			t.Errorf("expected wrap to 0, got %d", h.model.lightbox.Index())
		}
		h.press(t, "left")
		if h.model.lightbox.Index() != 1 {
			t.Errorf("expected wrap to 1, got %d", h.model.lightbox.Index())
		}
		h.press(t, "o")
		if len(h.opened) != 1 || h.opened[0] != "http://assets.test/uploads/two.jpg" {
			t.Errorf("unexpected opened urls %v", h.opened)
		}
		h.press(t, "esc")
		if h.model.view != ContentView || h.model.lightbox.Visible() {
			t.Error("expected lightbox to close")
		}
	})

	t.Run("Owner Deletes Event", func(t *testing.T) {
		api, h := setup(t, "u1")
		api.JSON(http.MethodDelete, "/api/event/e1", http.StatusNoContent, nil)

		h.press(t, "d")
		if h.model.view != ConfirmView {
			t.Fatal("expected confirmation")
		}
		h.press(t, "y")
		if h.toastText() != "Event deleted successfully!" {
			t.Errorf("unexpected toast %q", h.toastText())
		}
		if got := h.model.router.Location().Kind; got != router.Home {
			t.Errorf("expected home, got %s", got)
		}
	})

	t.Run("Cancel Delete", func(t *testing.T) {
		api, h := setup(t, "u1")
		h.press(t, "d", "n")
		if h.model.view != ContentView {
			t.Error("expected to return to content")
		}
		for _, r := range api.Requests() {
			if r.Method == http.MethodDelete {
				t.Error("unexpected delete request")
			}
		}
	})

	t.Run("Visitor Has No Creator Keys", func(t *testing.T) {
		_, h := setup(t, "u2")
		h.press(t, "d")
		if h.model.view != ContentView {
			t.Error("expected delete to be unavailable")
		}
		h.press(t, "t")
		if h.model.form != nil {
			t.Error("expected add ticket to be unavailable")
		}
	})

	t.Run("Buy Ticket", func(t *testing.T) {
		api, h := setup(t, "u2")
		api.JSON(http.MethodPost, "/api/event/e1/ticket/t1", http.StatusOK, map[string]any{"success": true})

		h.press(t, "b")
		if h.toastText() != `Ticket "General" purchased!` {
			t.Errorf("unexpected toast %q", h.toastText())
		}
	})

	t.Run("Buy Requires Login", func(t *testing.T) {
		_, h := setup(t, "")
		h.press(t, "b")
		if h.toastText() != "Please log in to make a purchase." {
			t.Errorf("unexpected toast %q", h.toastText())
		}
	})

	t.Run("Fetch Error", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/event/gone", http.StatusNotFound, map[string]string{"message": "Event not found"})
		h := newHarness(t, api, "/event/gone", "")

		if h.model.page.err != "Event not found" || h.toastText() != "Event not found" {
			t.Errorf("unexpected error state: page %q toast %q", h.model.page.err, h.toastText())
		}
	})
}

func TestUserPage(t *testing.T) {
	t.Run("Invalid Payload", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/user/ghost", http.StatusOK, map[string]string{"username": "ghost"})
		h := newHarness(t, api, "/user/ghost", "")

		if h.model.page.err != "User not found." {
			t.Errorf("unexpected error %q", h.model.page.err)
		}
	})

	t.Run("Follow Toggle", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.JSON(http.MethodGet, "/api/user/bob", http.StatusOK, map[string]any{"userid": "u2", "username": "bob", "is_following": false})
		api.JSON(http.MethodPost, "/api/follows/u2", http.StatusOK, map[string]any{"isFollowing": true})
		h := newHarness(t, api, "/user/bob", "u1")

		h.press(t, "f")
		if !h.model.page.user.Following() {
			t.Error("expected following after toggle")
		}
		if h.toastText() != "Now following." {
			t.Errorf("unexpected toast %q", h.toastText())
		}
	})
}

func TestProfilePage(t *testing.T) {
	api := tu.NewFakeAPI(t)
	api.JSON(http.MethodGet, "/api/profile", http.StatusOK, models.Profile{UserID: "u1", Username: "alice", Email: "a@example.com"})
	api.JSON(http.MethodGet, "/api/activity", http.StatusOK, []models.Activity{})
	api.JSON(http.MethodGet, "/api/follow/suggestions", http.StatusOK, []models.User{{UserID: "u2", Username: "bob"}})
	api.JSON(http.MethodGet, "/api/user/bob", http.StatusOK, map[string]any{"userid": "u2", "username": "bob", "is_following": false})
	h := newHarness(t, api, "/profile", "u1")

	if p := h.session.Profile(); p == nil || p.Username != "alice" {
		t.Fatalf("expected profile to be cached, got %+v", p)
	}
	view := h.model.View()
	for _, want := range []string{"Username: alice", "No activity yet.", "@bob"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}

	h.press(t, "enter")
	if got := h.model.router.Location().Path; got != "/user/bob" {
		t.Errorf("expected suggestion to open the user page, got %s", got)
	}
}

func TestProfileSaveLogsActivity(t *testing.T) {
	api := tu.NewFakeAPI(t)
	api.JSON(http.MethodGet, "/api/profile", http.StatusOK, models.Profile{UserID: "u1", Username: "alice"})
	api.JSON(http.MethodGet, "/api/activity", http.StatusOK, []models.Activity{})
	api.JSON(http.MethodGet, "/api/follow/suggestions", http.StatusOK, []models.User{})
	api.JSON(http.MethodPost, "/api/activity", http.StatusCreated, map[string]string{"message": "ok"})
	h := newHarness(t, api, "/profile", "u1")

	_, cmd := h.model.Update(profileSavedMsg{profile: &models.Profile{UserID: "u1", Username: "alice", Bio: "hi"}})
	h.drain(t, cmd)

	if h.toastText() != "Profile updated successfully!" {
		t.Errorf("expected success toast, got %q", h.toastText())
	}

	var logged []tu.RecordedRequest
	for _, r := range api.Requests() {
		if r.Method == http.MethodPost && r.Path == "/api/activity" {
			logged = append(logged, r)
		}
	}
	if len(logged) != 1 {
		t.Fatalf("expected one activity record, got %d", len(logged))
	}
	if !strings.Contains(string(logged[0].Body), `"action":"updated profile"`) {
		t.Errorf("unexpected activity body %s", logged[0].Body)
	}
}

func TestToast(t *testing.T) {
	api := tu.NewFakeAPI(t)
	h := newHarness(t, api, "/404", "")

	h.model.notify("first", false)
	h.model.notify("second", true)
	h.model.Update(toastExpiredMsg{id: 1})
	if h.toastText() != "second" {
		t.Errorf("stale expiry removed the current toast: %q", h.toastText())
	}
	h.model.Update(toastExpiredMsg{id: 2})
	if h.model.toast != nil {
		t.Error("expected toast to be dismissed")
	}
	if cmd := h.model.fail(shared.ErrAborted); cmd != nil {
		t.Error("expected aborted errors to stay silent")
	}
}
