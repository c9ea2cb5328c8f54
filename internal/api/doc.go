// Package api exposes the authoritative todo list over HTTP/JSON. It is
// the server half of the transport: a gorilla/mux router in front of thin
// handlers that translate between the wire contract and the store.
//
// # Overview
//
// Handlers hold no list state of their own. Every request is served from
// the storage.ListStore, so two clients talking to the same server always
// reconcile against the same list.
//
// # Routes
//
//	GET    /health                 liveness probe, empty 200
//	GET    /stats                  item counts plus served op counters
//	GET    /todos                  full list, insertion order
//	POST   /todos                  create, returns 201 + the stored item
//	GET    /todos/{id}             single item
//	PATCH  /todos/{id}             partial update (title and/or completed)
//	POST   /todos/{id}/toggle      flip one item
//	DELETE /todos/{id}             remove one item, 204
//	DELETE /todos/completed        remove every completed item
//	POST   /todos/toggle_all       force the whole list to a given state
//
// Mutating routes respond with the resulting server state (the stored
// item, or the full list for bulk operations) so a client can reconcile
// its cache from the response alone without a follow-up fetch.
//
// # Status Mapping
//
// Store errors map onto three statuses:
//
//   - 400: the request can never succeed as written (invalid title,
//     malformed body, missing toggle_all target)
//   - 404: the id names no item; for mutations this tells the client the
//     item is gone rather than the operation failed
//   - 500: anything else
//
// Every non-2xx body is the {"error": "..."} envelope.
//
// # See Also
//
// Related packages:
//   - internal/storage: The store these handlers front
//   - internal/todo: Wire types and the error taxonomy
//   - internal/client: The gateway that consumes this surface
package api
