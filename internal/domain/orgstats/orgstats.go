// Package orgstats derives organization-wide statistics from scored repositories.
package orgstats

import (
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
)

// Aggregate computes OrgStats over repos. Every level, skill and category of
// the catalog is present in the result, zero-filled when unused.
func Aggregate(c *catalog.Catalog, repos []model.Repository) model.OrgStats {
	stats := model.OrgStats{
		TotalRepos:        len(repos),
		LevelDistribution: make(map[model.Level]int, len(model.Levels())),
		SkillPopularity:   make(map[catalog.SkillKey]int, c.TotalSkillCount()),
		CategoryAverages:  make(map[catalog.CategoryID]float64, len(catalog.CategoryIDs())),
	}
	for _, l := range model.Levels() {
		stats.LevelDistribution[l] = 0
	}

	skills := c.ListSkills()
	for _, def := range skills {
		stats.SkillPopularity[def.Key] = 0
	}

	earned := make(map[catalog.CategoryID]int, len(catalog.CategoryIDs()))
	totalSkills := 0

	for i := range repos {
		r := &repos[i]
		totalSkills += r.SkillCount
		if r.SkillCount > 0 {
			stats.ReposWithAnySkill++
		}
		if r.Level == model.Legendary {
			stats.LegendaryCount++
		}
		stats.LevelDistribution[r.Level]++
		for _, def := range skills {
			if r.Skills.Get(def.Key) {
				stats.SkillPopularity[def.Key]++
			}
		}
		for _, id := range catalog.CategoryIDs() {
			earned[id] += r.CategoryScores[id].Earned
		}
	}

	for _, id := range catalog.CategoryIDs() {
		stats.CategoryAverages[id] = mean(earned[id], len(repos))
	}
	stats.AverageSkillCount = mean(totalSkills, len(repos))

	return stats
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
