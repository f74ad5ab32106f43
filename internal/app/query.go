package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/okian/aiready/internal/domain/model"
)

// Sort keys accepted by Query.
const (
	SortSkillCount = "skillCount"
	SortStars      = "stars"
	SortName       = "name"
	SortLevel      = "level"
)

// DefaultPageSize is the number of rows per leaderboard page.
const DefaultPageSize = 25

// Query filters, orders and pages the leaderboard.
type Query struct {
	// Search matches name or description, case-insensitively.
	Search   string
	Level    model.Level
	Language string
	SortBy   string
	Page     int
	PageSize int
}

// Page is one page of a filtered leaderboard.
type Page struct {
	Items      []model.Repository `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	// StartRank is the 1-based rank of the first item.
	StartRank int `json:"startRank"`
}

// ParseLevel returns the level named s in any case, e.g. "elite" for Elite.
// Unknown names are returned trimmed and unchanged so Validate rejects them.
func ParseLevel(s string) model.Level {
	s = strings.TrimSpace(s)
	for _, l := range model.Levels() {
		if strings.EqualFold(string(l), s) {
			return l
		}
	}
	return model.Level(s)
}

// Validate rejects unknown levels and sort keys and negative paging.
func (q Query) Validate() error {
	levels := make([]any, 0, len(model.Levels()))
	for _, l := range model.Levels() {
		levels = append(levels, l)
	}
	err := validation.ValidateStruct(&q,
		validation.Field(&q.Level, validation.In(levels...)),
		validation.Field(&q.SortBy, validation.In(SortSkillCount, SortStars, SortName, SortLevel)),
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.PageSize, validation.Min(0), validation.Max(500)),
	)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}

// Filter applies q to repos. The input is not modified. An out-of-range page
// is clamped to the last page.
func Filter(repos []model.Repository, q Query) Page {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		if q.Level != "" && r.Level != q.Level {
			continue
		}
		if q.Language != "" && r.Language != q.Language {
			continue
		}
		out = append(out, r)
	}

	switch q.SortBy {
	case SortStars:
		slices.SortStableFunc(out, func(a, b model.Repository) int { return cmp.Compare(b.Stars, a.Stars) })
	case SortName:
		slices.SortStableFunc(out, func(a, b model.Repository) int { return cmp.Compare(a.Name, b.Name) })
	case SortLevel:
		slices.SortStableFunc(out, func(a, b model.Repository) int { return cmp.Compare(b.Level.Rank(), a.Level.Rank()) })
	default:
		SortRepositories(out)
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := max(1, (len(out)+size-1)/size)
	page := min(max(q.Page, 1), totalPages)

	start := (page - 1) * size
	end := min(start+size, len(out))

	return Page{
		Items:      out[start:end],
		Total:      len(out),
		Page:       page,
		TotalPages: totalPages,
		StartRank:  start + 1,
	}
}

// Languages lists the distinct primary languages of repos, sorted.
func Languages(repos []model.Repository) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if _, ok := seen[r.Language]; ok {
			continue
		}
		seen[r.Language] = struct{}{}
		out = append(out, r.Language)
	}
	slices.Sort(out)
	return out
}
