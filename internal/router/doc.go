// Package router maps location paths onto page kinds and keeps a navigation history.
//
// Static paths are matched exactly first. Otherwise the parameterized families are
// tried in order: /user/:username, /event/:id, /place/:id. Anything else is [NotFound].
//
// [Dispatcher] mirrors a browser's history API: [Dispatcher.Navigate] pushes a path
// and renders it, while [Dispatcher.Back] and [Dispatcher.Forward] render the
// now-current entry without pushing.
package router
