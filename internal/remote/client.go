package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

// DefaultTimeout bounds a single request when Client.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string // e.g. "401 Unauthorized"
	Message    string // server-supplied message, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s %s: %s: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %s %s: %s", e.Method, e.Path, e.Status)
}

// Client talks JSON over HTTP to the item API.
type Client struct {
	Base    string
	HTTP    *http.Client
	Timeout time.Duration
}

// New returns a Client for the API rooted at base.
func New(base string, timeout time.Duration) *Client {
	return &Client{
		Base:    strings.TrimRight(base, "/"),
		HTTP:    http.DefaultClient,
		Timeout: timeout,
	}
}

var _ inventory.Upstream = (*Client)(nil)

// BulkAdd submits drafts in one request and returns the created items in
// the order the API lists them.
func (c *Client) BulkAdd(ctx context.Context, sess inventory.Session, drafts []inventory.ItemDraft) ([]inventory.Item, error) {
	var out []wireItem
	if err := c.do(ctx, http.MethodPost, "/items/bulk", sess, toWireDrafts(drafts), &out); err != nil {
		return nil, err
	}
	return toItems(out), nil
}

// List returns every item of the session's household.
func (c *Client) List(ctx context.Context, sess inventory.Session) ([]inventory.Item, error) {
	var out []wireItem
	if err := c.do(ctx, http.MethodGet, "/items", sess, nil, &out); err != nil {
		return nil, err
	}
	return toItems(out), nil
}

// Delete asks the API to delete id. The API decides whether that removes
// the item or decrements its quantity.
func (c *Client) Delete(ctx context.Context, sess inventory.Session, id string) (inventory.MutationResponse, error) {
	var out wireMutation
	if err := c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), sess, nil, &out); err != nil {
		return inventory.MutationResponse{}, err
	}
	return out.toResponse(inventory.OutcomeDecremented), nil
}

// Update replaces id's name and quantity.
func (c *Client) Update(ctx context.Context, sess inventory.Session, id string, draft inventory.ItemDraft) (inventory.MutationResponse, error) {
	var out wireMutation
	body := wireDraft{Name: draft.Name, Quantity: draft.Quantity}
	if err := c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id), sess, body, &out); err != nil {
		return inventory.MutationResponse{}, err
	}
	return out.toResponse(inventory.OutcomeUpdated), nil
}

func (c *Client) do(ctx context.Context, method, path string, sess inventory.Session, in, out any) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	if sess.Address != "" {
		req.Header.Set("X-Household-Address", sess.Address)
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream %s %s: decode response: %w", method, path, err)
	}
	return nil
}

func statusError(method, path string, resp *http.Response) *StatusError {
	se := &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		se.Message = payload.Message
		if se.Message == "" {
			se.Message = payload.Error
		}
	}
	return se
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
