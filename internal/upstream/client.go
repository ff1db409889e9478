// Package upstream is the client for the placement backend REST API. The
// backend owns all persistence; this service only reads its catalogs and
// submits assembled drives and jobs.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Shivaram-9/HireSphereX-sub000/pkg/normalize"
)

type Client struct {
	base  string
	token string
	http  *http.Client
}

// NewClient builds a client for the backend at base. The timeout bounds every
// call so a hung backend cannot wedge a wizard session in Submitting forever.
func NewClient(base, token string, timeout time.Duration) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes the request and returns the raw body of a 2xx response. Any
// other status becomes an *APIError carrying the extracted backend message.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) getList(ctx context.Context, path string, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeInto(normalize.ListFromBody(body), dest)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// decodeInto re-marshals a normalized value into a typed destination.
func decodeInto(v any, dest any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("re-encode normalized value: %w", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("decode normalized value: %w", err)
	}
	return nil
}

// createdID pulls the server-assigned id out of a create response.
func createdID(body []byte) (int, error) {
	obj := normalize.Object(mustDecode(body))
	id, ok := obj["id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("create response missing id")
	}
	return int(id), nil
}

func mustDecode(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return v
}
