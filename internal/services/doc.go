// Package services talks to the events platform API.
//
// # Request Client
//
// [Client.Request] is the single entry point for outbound calls. It attaches the session's
// bearer token, encodes JSON or multipart ([Form]) bodies, and classifies every outcome:
//   - 2xx with an empty body : nil result, nil error
//   - 2xx with a JSON body : the raw JSON
//   - non-2xx : [*APIError] carrying the raw response text
//   - network failure : [shared.ErrTransport]
//   - context cancelled : [shared.ErrAborted], even when a response already arrived
//
// An optional [Indicator] is shown before dispatch and hidden when the call returns,
// whatever the outcome.
//
// # Single-flight Classes
//
// [Flights] keeps one current request per [Class]. Starting a new flight cancels the
// previous one of the same class and leaves other classes alone. A superseded caller's
// result resolves to [shared.ErrAborted] through [Ticket.Resolve] and must be dropped silently.
//
// # Endpoints
//
// Typed methods wrap each platform route and apply strict success checks: a created
// ticket must carry ticketid, media must carry id, merch must carry merchid, and
// purchases must report success.
package services
