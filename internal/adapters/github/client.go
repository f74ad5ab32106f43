// Package github talks to the GitHub GraphQL API to enumerate an organization's
// repositories and probe their default branches for readiness signals.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/pkg/logger"
)

// Client defaults.
const (
	DefaultEndpoint = "https://api.github.com/graphql"

	defaultPageSize = 100
	maxPageSize     = 100
	defaultMinStars = 100
	defaultTimeout  = 30 * time.Second

	// maxErrorBody caps how much of a failed response is echoed into errors.
	maxErrorBody = 512
)

// Client is a minimal GraphQL client for the queries this service needs.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	timeout  time.Duration
	pageSize int
	minStars int
	catalog  *catalog.Catalog
	logger   logger.Logger
}

// NewClient creates a Client with options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     http.DefaultClient,
		timeout:  defaultTimeout,
		pageSize: defaultPageSize,
		minStars: defaultMinStars,
		catalog:  catalog.New(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// do posts one GraphQL document and returns the raw response body. Responses
// carrying both data and errors are returned as is; only a response without
// data is an error.
func (c *Client) do(ctx context.Context, query string, vars map[string]any) (gjson.Result, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: encode request: %w", ErrGraphQL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrGraphQL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrGraphQL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug(ctx, "failed to close response body", logger.Error(cerr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: read body: %w", ErrGraphQL, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return gjson.Result{}, permanentError{ErrUnauthorized}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return gjson.Result{}, fmt.Errorf("%w: status %d: %s", ErrGraphQL, resp.StatusCode, truncate(body))
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	res := gjson.ParseBytes(body)

	data := res.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		if msgs := errorMessages(res); len(msgs) > 0 {
			return gjson.Result{}, fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
		}
		return gjson.Result{}, fmt.Errorf("%w: no data", ErrMalformedResponse)
	}

	if msgs := errorMessages(res); len(msgs) > 0 {
		c.logger.Debug(ctx, "graphql partial errors", logger.Strings("errors", msgs))
	}
	return data, nil
}

func errorMessages(res gjson.Result) []string {
	var msgs []string
	res.Get("errors.#.message").ForEach(func(_, v gjson.Result) bool {
		msgs = append(msgs, v.String())
		return true
	})
	return msgs
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
