package router

// NavItem is one entry of the navigation chrome.
type NavItem struct {
	Label string
	Path  string
	Key   string
}

// Chrome returns the navigation items and the auth action for the session state.
// The auth action has an empty Path when it is Logout.
func Chrome(loggedIn bool) ([]NavItem, NavItem) {
	items := []NavItem{
		{Label: "Home", Path: "/", Key: "1"},
		{Label: "Events", Path: "/events", Key: "2"},
		{Label: "Places", Path: "/places", Key: "3"},
	}
	if loggedIn {
		items = append(items,
			NavItem{Label: "Profile", Path: "/profile", Key: "4"},
			NavItem{Label: "Create Event", Path: "/create", Key: "5"},
			NavItem{Label: "Create Place", Path: "/place", Key: "6"},
		)
		return items, NavItem{Label: "Logout", Key: "L"}
	}
	return items, NavItem{Label: "Login", Path: "/login", Key: "L"}
}
