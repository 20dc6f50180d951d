package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/huaci"
)

// AnkiConnectVersion is the AnkiConnect API version requests are sent with.
const AnkiConnectVersion = 6

// DefaultAnkiTimeout is the default timeout for AnkiConnect requests.
const DefaultAnkiTimeout = 10 * time.Second

// Ensure AnkiClient implements huaci.AnkiService at compile time.
var _ huaci.AnkiService = (*AnkiClient)(nil)

// AnkiClient calls the AnkiConnect add-on over HTTP.
type AnkiClient struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// AnkiOption configures an AnkiClient.
type AnkiOption func(*AnkiClient)

// WithAnkiTimeout sets the timeout for AnkiConnect requests.
// Defaults to DefaultAnkiTimeout if not specified.
func WithAnkiTimeout(d time.Duration) AnkiOption {
	return func(c *AnkiClient) {
		c.timeout = d
	}
}

// NewAnkiClient creates a new AnkiClient for the AnkiConnect endpoint at url.
func NewAnkiClient(url string, opts ...AnkiOption) *AnkiClient {
	c := &AnkiClient{
		url:     url,
		timeout: DefaultAnkiTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// Version returns the AnkiConnect API version.
func (c *AnkiClient) Version(ctx context.Context) (int, error) {
	var v int
	err := c.invoke(ctx, "version", nil, &v)
	return v, err
}

// DeckNames returns the names of all decks.
func (c *AnkiClient) DeckNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.invoke(ctx, "deckNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// ModelNames returns the names of all note types.
func (c *AnkiClient) ModelNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.invoke(ctx, "modelNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

type ankiRequest struct {
	Action  string         `json:"action"`
	Params  map[string]any `json:"params,omitempty"`
	Version int            `json:"version"`
}

// invoke posts action and decodes the result field into dst.
func (c *AnkiClient) invoke(ctx context.Context, action string, params map[string]any, dst any) error {
	body, err := json.Marshal(ankiRequest{Action: action, Params: params, Version: AnkiConnectVersion})
	if err != nil {
		return huaci.Errorf(huaci.EINTERNAL, "failed to encode %s request: %v", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return huaci.Errorf(huaci.EINVALID, "invalid AnkiConnect URL %q: %v", c.url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return huaci.Errorf(huaci.EIO, "failed to reach AnkiConnect at %s: %v", c.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return huaci.Errorf(huaci.EIO, "failed to read AnkiConnect response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return huaci.Errorf(huaci.EIO, "AnkiConnect returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return huaci.Errorf(huaci.EPARSE, "expected a JSON object from AnkiConnect: %v", err)
	}
	rawErr, ok := fields["error"]
	if !ok {
		return huaci.Errorf(huaci.EPARSE, "response is missing required error field")
	}
	rawResult, ok := fields["result"]
	if !ok {
		return huaci.Errorf(huaci.EPARSE, "response is missing required result field")
	}

	var msg *string
	if err := json.Unmarshal(rawErr, &msg); err != nil {
		return huaci.Errorf(huaci.EPARSE, "invalid error field: %v", err)
	}
	if msg != nil {
		return huaci.Errorf(huaci.EINVALID, "AnkiConnect %s: %s", action, *msg)
	}

	if err := json.Unmarshal(rawResult, dst); err != nil {
		return huaci.Errorf(huaci.EPARSE, "invalid %s result: %v", action, err)
	}
	return nil
}
