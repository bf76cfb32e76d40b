package ui

import (
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/services"
)

// Fetch results carry the navigation sequence they were started under; results for a page
// the user has already left are dropped. List fetches also carry their flight ticket.

type eventsFetchedMsg struct {
	nav    uint64
	ticket *services.Ticket
	events []models.Event
	err    error
}

type placesFetchedMsg struct {
	nav    uint64
	ticket *services.Ticket
	places []models.Place
	err    error
}

type eventFetchedMsg struct {
	nav   uint64
	event *models.Event
	err   error
}

type placeFetchedMsg struct {
	nav   uint64
	place *models.Place
	err   error
}

type userFetchedMsg struct {
	nav  uint64
	user *models.UserProfile
	err  error
}

type profileFetchedMsg struct {
	nav         uint64
	profile     *models.Profile
	activity    []models.Activity
	suggestions []models.User
	err         error
}

// actionDoneMsg reports a write. toast is shown on success, then navigate is followed when set,
// else the current page is reloaded when reload is set.
type actionDoneMsg struct {
	toast    string
	navigate string
	reload   bool
	err      error
}

type loggedInMsg struct {
	resp *models.LoginResponse
	err  error
}

type signedUpMsg struct {
	err error
}

type followToggledMsg struct {
	nav       uint64
	following bool
	err       error
}

type toastExpiredMsg struct {
	id int
}

type profileSavedMsg struct {
	profile *models.Profile
	err     error
}

type profileDeletedMsg struct {
	err error
}
