package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dreamware/ticklist/internal/todo"
)

// Gateway talks to the server's HTTP surface and maps every response
// onto the shared error taxonomy: 404 becomes todo.ErrNotFound, other
// 4xx become *todo.ValidationError, and network failures and 5xx become
// *TransientError.
//
// Transient failures on retryable calls are retried with a doubling
// backoff. Create is the exception: it is sent exactly once, because a
// retried create whose first attempt actually landed would duplicate
// the item.
type Gateway struct {
	BaseURL  string        // Server base URL, no trailing slash
	Client   *http.Client  // HTTP client, carries the per-request timeout
	Attempts int           // Attempt budget for retryable calls
	Backoff  time.Duration // Delay before the first retry, doubled each retry
}

// NewGateway creates a gateway with the default timeout and retry budget
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Client:   &http.Client{Timeout: 5 * time.Second},
		Attempts: 3,
		Backoff:  100 * time.Millisecond,
	}
}

// List fetches the full list in insertion order
func (g *Gateway) List(ctx context.Context) ([]todo.Item, error) {
	var resp todo.ListResponse
	if err := g.do(ctx, "list", http.MethodGet, "/todos", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Todos, nil
}

// Create adds an item and returns it with its server-assigned id.
// Sent exactly once, never retried.
func (g *Gateway) Create(ctx context.Context, title string) (todo.Item, error) {
	var item todo.Item
	err := g.do(ctx, "create", http.MethodPost, "/todos", todo.CreateRequest{Title: title}, &item, false)
	return item, err
}

// Update applies a partial update and returns the resulting item
func (g *Gateway) Update(ctx context.Context, id int64, patch todo.Patch) (todo.Item, error) {
	var item todo.Item
	err := g.do(ctx, "update", http.MethodPatch, fmt.Sprintf("/todos/%d", id), patch, &item, true)
	return item, err
}

// Toggle flips one item and returns the resulting item
func (g *Gateway) Toggle(ctx context.Context, id int64) (todo.Item, error) {
	var item todo.Item
	err := g.do(ctx, "toggle", http.MethodPost, fmt.Sprintf("/todos/%d/toggle", id), nil, &item, true)
	return item, err
}

// Delete removes one item
func (g *Gateway) Delete(ctx context.Context, id int64) error {
	return g.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil, nil, true)
}

// DeleteCompleted removes every completed item and reports the count
func (g *Gateway) DeleteCompleted(ctx context.Context) (int, error) {
	var resp todo.DeleteCompletedResponse
	err := g.do(ctx, "delete_completed", http.MethodDelete, "/todos/completed", nil, &resp, true)
	return resp.Removed, err
}

// ToggleAll forces the whole list to the given state and returns it
func (g *Gateway) ToggleAll(ctx context.Context, completed bool) ([]todo.Item, error) {
	var resp todo.ListResponse
	req := todo.ToggleAllRequest{Completed: &completed}
	if err := g.do(ctx, "toggle_all", http.MethodPost, "/todos/toggle_all", req, &resp, true); err != nil {
		return nil, err
	}
	return resp.Todos, nil
}

// Stats fetches server-side item counts and operation counters
func (g *Gateway) Stats(ctx context.Context) (todo.StatsResponse, error) {
	var resp todo.StatsResponse
	err := g.do(ctx, "stats", http.MethodGet, "/stats", nil, &resp, true)
	return resp, err
}

// Health probes the server
func (g *Gateway) Health(ctx context.Context) error {
	return g.do(ctx, "health", http.MethodGet, "/health", nil, nil, true)
}

// do sends one JSON request. With retry, transient failures are re-sent
// with a doubling backoff until the attempt budget runs out; definitive
// rejections return immediately.
func (g *Gateway) do(ctx context.Context, op, method, path string, body, out any, retry bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	attempts := g.Attempts
	if !retry || attempts < 1 {
		attempts = 1
	}
	backoff := g.Backoff

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return lastErr
			}
			backoff *= 2
		}

		err := g.send(ctx, op, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsTransient(err) {
			return err
		}
	}
	return lastErr
}

// send performs a single request/response exchange
func (g *Gateway) send(ctx context.Context, op, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return &TransientError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	reason := readErrorReason(resp.Body)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, todo.ErrNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &todo.ValidationError{Field: "request", Reason: reason}
	default:
		return &TransientError{Op: op, Cause: fmt.Errorf("http %d: %s", resp.StatusCode, reason)}
	}
}

// readErrorReason pulls the reason out of an error envelope, falling
// back to the raw body
func readErrorReason(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}

	var envelope todo.ErrorResponse
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(raw))
}
