// Package ui implements the interactive client using bubbletea's Elm architecture.
//
// Every page is a route resolved by a [router.Dispatcher] whose handlers return the
// [tea.Cmd] that loads the page. A chrome row of numbered nav items sits above the content:
//
//   - lists of events and places, backed by charmbracelet/bubbles/list
//   - detail pages rendered from Markdown with glamour, with a cursor over tickets, merch and media
//   - forms built from textinput fields for login, signup and every create or edit action
//   - a lightbox over the event's media, opened with enter on a media row
//
// Results of a fetch carry the navigation sequence they were started under and are dropped
// once the user has moved on. List fetches are also single-flighted per class through
// [services.Flights], so only the latest one ever reaches the screen.
//
// Toasts dismiss themselves after a configurable delay; aborted requests never raise one.
package ui
