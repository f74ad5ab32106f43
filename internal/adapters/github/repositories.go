package github

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/okian/aiready/internal/domain/dedupe"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/pkg/logger"
)

const listRepositoriesQuery = `query($org: String!, $first: Int!, $cursor: String) {
  organization(login: $org) {
    repositories(first: $first, after: $cursor, privacy: PUBLIC, orderBy: {field: STARGAZERS, direction: DESC}) {
      pageInfo { hasNextPage endCursor }
      nodes {
        name
        description
        url
        stargazerCount
        primaryLanguage { name }
      }
    }
  }
}`

// ListRepositories returns the organization's public repositories ordered by
// stars descending. Enumeration stops at the first repository below the
// minimum star count.
func (c *Client) ListRepositories(ctx context.Context, org string) ([]model.RepoMeta, error) {
	var (
		repos  []model.RepoMeta
		cursor any
	)
	// Star counts can change between page requests and shift a repository
	// onto the next page.
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(c.pageSize), dedupe.WithCaseFolding())

	for {
		data, err := c.do(ctx, listRepositoriesQuery, map[string]any{
			"org":    org,
			"first":  c.pageSize,
			"cursor": cursor,
		})
		if err != nil {
			return nil, err
		}

		orgNode := data.Get("organization")
		if !orgNode.Exists() || orgNode.Type == gjson.Null {
			return nil, fmt.Errorf("%w: %s", ErrOrgNotFound, org)
		}
		conn := orgNode.Get("repositories")
		if !conn.IsObject() {
			return nil, fmt.Errorf("%w: missing repositories connection", ErrMalformedResponse)
		}

		done := false
		for _, node := range conn.Get("nodes").Array() {
			meta := model.RepoMeta{
				Name:        node.Get("name").String(),
				Description: node.Get("description").String(),
				URL:         node.Get("url").String(),
				Stars:       int(node.Get("stargazerCount").Int()),
				Language:    node.Get("primaryLanguage.name").String(),
			}
			if meta.Name == "" {
				return nil, fmt.Errorf("%w: repository without name", ErrMalformedResponse)
			}
			if meta.Stars < c.minStars {
				done = true
				break
			}
			if seen.SeenAndRecord(ctx, meta.Name) {
				continue
			}
			repos = append(repos, meta)
		}

		c.logger.Debug(ctx, "listed repositories page",
			logger.String("org", org),
			logger.Int("total", len(repos)),
		)

		if done || !conn.Get("pageInfo.hasNextPage").Bool() {
			break
		}
		next := conn.Get("pageInfo.endCursor").String()
		if next == "" {
			return nil, fmt.Errorf("%w: next page without cursor", ErrMalformedResponse)
		}
		cursor = next
	}

	if repos == nil {
		repos = []model.RepoMeta{}
	}
	return repos, nil
}
