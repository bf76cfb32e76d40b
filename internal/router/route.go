package router

import "strings"

// Kind is a page kind.
type Kind int

const (
	NotFound Kind = iota
	Home
	Login
	Profile
	CreateEvent
	CreatePlace
	ListPlaces
	ListEvents
	UserDetail
	EventDetail
	PlaceDetail
)

var kindNames = map[Kind]string{
	NotFound:    "not-found",
	Home:        "home",
	Login:       "login",
	Profile:     "profile",
	CreateEvent: "create-event",
	CreatePlace: "create-place",
	ListPlaces:  "places",
	ListEvents:  "events",
	UserDetail:  "user",
	EventDetail: "event",
	PlaceDetail: "place",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Parameterized reports whether the kind carries a path parameter.
func (k Kind) Parameterized() bool {
	return k == UserDetail || k == EventDetail || k == PlaceDetail
}

// Route is a matched path.
type Route struct {
	Kind  Kind
	Path  string
	Param string
}

var static = map[string]Kind{
	"/":        Home,
	"/login":   Login,
	"/profile": Profile,
	"/create":  CreateEvent,
	"/place":   CreatePlace,
	"/places":  ListPlaces,
	"/events":  ListEvents,
}

var prefixes = []struct {
	prefix string
	kind   Kind
}{
	{"/user/", UserDetail},
	{"/event/", EventDetail},
	{"/place/", PlaceDetail},
}

// Match resolves path against the static table, then the prefix families in order.
func Match(path string) Route {
	if path == "" {
		path = "/"
	}
	if kind, ok := static[path]; ok {
		return Route{Kind: kind, Path: path}
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(path, p.prefix)
		if !ok {
			continue
		}
		param, _, _ := strings.Cut(rest, "/")
		if param == "" {
			break
		}
		return Route{Kind: p.kind, Path: path, Param: param}
	}
	return Route{Kind: NotFound, Path: path}
}

// PathFor builds the path of a parameterized kind, or the static path of any other.
func PathFor(kind Kind, param string) string {
	switch kind {
	case UserDetail:
		return "/user/" + param
	case EventDetail:
		return "/event/" + param
	case PlaceDetail:
		return "/place/" + param
	}
	for path, k := range static {
		if k == kind {
			return path
		}
	}
	return "/404"
}
