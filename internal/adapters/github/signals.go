package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/signals"
	"github.com/okian/aiready/pkg/logger"
)

// Tree entry types as reported by the API.
const (
	treeEntryBlob = "blob"
	treeEntryTree = "tree"
)

const treeSelection = `... on Tree { entries { name type } }`

// FetchSignals probes every repository of the batch in one aliased query.
// A transport or top-level failure is returned as an error; a repository the
// response has no data for is reported as signals.FetchFailed.
func (c *Client) FetchSignals(ctx context.Context, org string, batch []model.RepoMeta) (map[string]signals.Result, error) {
	results := make(map[string]signals.Result, len(batch))
	if len(batch) == 0 {
		return results, nil
	}

	paths := c.probePaths()
	query, vars := buildSignalsQuery(org, batch, paths)

	data, err := c.do(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	for i, repo := range batch {
		node := data.Get(repoAlias(i))
		switch {
		case !node.Exists():
			results[repo.Name] = signals.FetchFailed{Err: fmt.Errorf("%w: no alias for %s", ErrMalformedResponse, repo.Name)}
		case node.Type == gjson.Null:
			results[repo.Name] = signals.FetchFailed{Err: fmt.Errorf("%w: %s", ErrRepositoryUnavailable, repo.Name)}
		default:
			results[repo.Name] = parseSignals(node, paths)
		}
	}

	c.logger.Debug(ctx, "fetched batch signals",
		logger.String("org", org),
		logger.Int("repos", len(batch)),
		logger.Int("paths", len(paths)),
	)
	return results, nil
}

// probePaths lists the distinct candidate paths of all path-based skills in
// catalog order.
func (c *Client) probePaths() []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, def := range c.catalog.ListSkills() {
		for _, p := range def.FilePaths {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	return paths
}

func buildSignalsQuery(org string, batch []model.RepoMeta, paths []string) (string, map[string]any) {
	vars := map[string]any{"owner": org}

	var b strings.Builder
	b.WriteString("query($owner: String!")
	for i, repo := range batch {
		name := nameVar(i)
		vars[name] = repo.Name
		fmt.Fprintf(&b, ", $%s: String!", name)
	}
	b.WriteString(") {\n")

	for i := range batch {
		fmt.Fprintf(&b, "  %s: repository(owner: $owner, name: $%s) {\n", repoAlias(i), nameVar(i))
		for j, p := range paths {
			fmt.Fprintf(&b, "    %s: object(expression: %s) { __typename }\n", pathAlias(j), strconv.Quote("HEAD:"+p))
		}
		fmt.Fprintf(&b, "    root: object(expression: %q) { %s }\n", "HEAD:", treeSelection)
		fmt.Fprintf(&b, "    docs: object(expression: %q) { %s }\n", "HEAD:docs", treeSelection)
		b.WriteString("  }\n")
	}
	b.WriteString("}")

	return b.String(), vars
}

func parseSignals(node gjson.Result, paths []string) signals.Signals {
	s := signals.Signals{Exists: make(map[string]bool, len(paths))}
	for j, p := range paths {
		s.Exists[p] = node.Get(pathAlias(j)).IsObject()
	}
	s.Root = parseEntries(node.Get("root"))
	s.Docs = parseEntries(node.Get("docs"))
	return s
}

// parseEntries returns nil when the object is absent or not a tree.
func parseEntries(obj gjson.Result) []signals.Entry {
	entries := obj.Get("entries")
	if !entries.IsArray() {
		return nil
	}
	out := make([]signals.Entry, 0, len(entries.Array()))
	for _, e := range entries.Array() {
		entry := signals.Entry{Name: e.Get("name").String()}
		switch e.Get("type").String() {
		case treeEntryBlob:
			entry.Type = signals.EntryFile
		case treeEntryTree:
			entry.Type = signals.EntryDirectory
		default:
			// submodules and anything else are neither files nor directories we inspect
			continue
		}
		out = append(out, entry)
	}
	return out
}

func repoAlias(i int) string { return "r" + strconv.Itoa(i) }
func pathAlias(j int) string { return "p" + strconv.Itoa(j) }
func nameVar(i int) string   { return "n" + strconv.Itoa(i) }
