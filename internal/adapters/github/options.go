package github

import (
	"net/http"
	"time"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithEndpoint sets the GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds a single request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPageSize sets the number of repositories requested per listing page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxPageSize {
			c.pageSize = n
		}
	}
}

// WithMinStars sets the enumeration cut-off.
func WithMinStars(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.minStars = n
		}
	}
}

// WithCatalog sets the catalog whose file paths are probed.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Client) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
