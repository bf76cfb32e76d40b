package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/evloca/internal/models"
)

var (
	_ list.Item = eventItem{}
	_ list.Item = placeItem{}
)

// eventItem wraps [models.Event] to implement [list.Item].
type eventItem struct {
	event models.Event
}

func (i eventItem) FilterValue() string { return i.event.Title }
func (i eventItem) Title() string       { return i.event.Title }
func (i eventItem) Description() string {
	desc := i.event.DisplayDate()
	if i.event.Location != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.event.Location)
	}
	return desc
}

// placeItem wraps [models.Place] to implement [list.Item].
type placeItem struct {
	place models.Place
}

func (i placeItem) FilterValue() string { return i.place.Name }
func (i placeItem) Title() string       { return i.place.Name }
func (i placeItem) Description() string {
	desc := i.place.Address
	if i.place.City != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.place.City)
	}
	if i.place.Capacity > 0 {
		desc = fmt.Sprintf("%s • %d capacity", desc, i.place.Capacity)
	}
	return desc
}

func newResourceList(title string, items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func eventItems(events []models.Event) []list.Item {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = eventItem{event: e}
	}
	return items
}

func placeItems(places []models.Place) []list.Item {
	items := make([]list.Item, len(places))
	for i, p := range places {
		items[i] = placeItem{place: p}
	}
	return items
}
