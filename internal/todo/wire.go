package todo

// Wire envelopes shared by the HTTP handlers and the client gateway.
// Single-item responses are a bare Item; everything else is one of the
// structs below.

// CreateRequest is the body of POST /todos.
type CreateRequest struct {
	Title string `json:"title"`
}

// ToggleAllRequest is the body of POST /todos/toggle_all. Completed is a
// pointer so the handler can distinguish a missing field (400) from an
// explicit false.
type ToggleAllRequest struct {
	Completed *bool `json:"completed"`
}

// ListResponse carries an ordered snapshot of the full list.
type ListResponse struct {
	Todos []Item `json:"todos"`
	Count int    `json:"count"`
}

// DeleteCompletedResponse reports how many items a clear-completed removed.
type DeleteCompletedResponse struct {
	Removed int `json:"removed"`
}

// Stats counts items by completion state. The server derives it under the
// store lock; the client derives the same shape from its local cache.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// OpCounts reports how many operations of each kind the server has served.
type OpCounts struct {
	Creates uint64 `json:"creates"`
	Updates uint64 `json:"updates"`
	Toggles uint64 `json:"toggles"`
	Deletes uint64 `json:"deletes"`
	Bulk    uint64 `json:"bulk"`
}

// StatsResponse is the body of GET /stats: item counts plus the served
// operation counters.
type StatsResponse struct {
	Stats
	Ops OpCounts `json:"ops"`
}

// ErrorResponse is the JSON envelope for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
