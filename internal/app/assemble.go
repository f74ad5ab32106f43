package service

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/scoring"
	"github.com/okian/aiready/internal/domain/signals"
)

// Assemble turns listed repositories and their fetch results into a sorted
// Snapshot stamped with now. A repository without a result scores as if its
// fetch had failed.
func Assemble(
	c *catalog.Catalog,
	scorer *scoring.Scorer,
	org string,
	metas []model.RepoMeta,
	results map[string]signals.Result,
	now time.Time,
) model.Snapshot {
	repos := make([]model.Repository, 0, len(metas))
	for _, meta := range metas {
		res, ok := results[meta.Name]
		if !ok {
			res = signals.FetchFailed{}
		}
		skills, files := signals.Aggregate(c, res)
		score := scorer.Score(skills)

		repos = append(repos, model.Repository{
			Name:           meta.Name,
			Slug:           Slug(meta.Name),
			Description:    meta.Description,
			URL:            meta.URL,
			Stars:          meta.Stars,
			Language:       meta.Language,
			Skills:         skills,
			SkillCount:     score.SkillCount,
			CategoryScores: score.CategoryScores,
			Level:          score.Level,
			MarkdownFiles:  files,
		})
	}

	SortRepositories(repos)

	return model.Snapshot{
		LastUpdated:  now.UTC(),
		OrgName:      org,
		Repositories: repos,
	}
}

// SortRepositories orders by skill count desc, then stars desc, then name asc.
func SortRepositories(repos []model.Repository) {
	slices.SortStableFunc(repos, func(a, b model.Repository) int {
		if c := cmp.Compare(b.SkillCount, a.SkillCount); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Stars, a.Stars); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Slug is the lookup key of a repository name.
func Slug(name string) string {
	return strings.ToLower(name)
}
