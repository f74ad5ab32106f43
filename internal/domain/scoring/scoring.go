// Package scoring computes skill counts, category scores and levels from a SkillSet.
package scoring

import (
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
)

// Band maps an inclusive skill-count range to a level.
type Band struct {
	Min   int
	Max   int
	Level model.Level
}

// DefaultBands are the level thresholds for the 15-skill catalog.
func DefaultBands() []Band {
	return []Band{
		{Min: 0, Max: 2, Level: model.Novice},
		{Min: 3, Max: 5, Level: model.Apprentice},
		{Min: 6, Max: 8, Level: model.Veteran},
		{Min: 9, Max: 11, Level: model.Elite},
		{Min: 12, Max: 13, Level: model.Heroic},
		{Min: 14, Max: 15, Level: model.Legendary},
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithBands replaces the level bands. Bands that do not cover
// [0, total skills] contiguously are ignored.
func WithBands(bands []Band) Option {
	return func(s *Scorer) {
		if ValidBands(bands, s.catalog.TotalSkillCount()) {
			s.bands = append([]Band(nil), bands...)
		}
	}
}

// Result is the derived score of one SkillSet.
type Result struct {
	SkillCount     int
	CategoryScores map[catalog.CategoryID]model.CategoryScore
	Level          model.Level
}

// Scorer scores SkillSets against a catalog.
type Scorer struct {
	catalog *catalog.Catalog
	bands   []Band
}

// NewScorer creates a scorer for the given catalog.
func NewScorer(c *catalog.Catalog, opts ...Option) *Scorer {
	s := &Scorer{
		catalog: c,
		bands:   DefaultBands(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the skill count, per-category scores and level.
func (s *Scorer) Score(set model.SkillSet) Result {
	scores := make(map[catalog.CategoryID]model.CategoryScore, len(catalog.CategoryIDs()))
	for _, id := range catalog.CategoryIDs() {
		scores[id] = model.CategoryScore{
			Earned: set.Earned(id),
			Total:  s.catalog.CategoryTotal(id),
		}
	}

	n := set.Count()
	return Result{
		SkillCount:     n,
		CategoryScores: scores,
		Level:          s.LevelFor(n),
	}
}

// LevelFor looks up the level of a skill count. Counts outside every band
// fall back to Novice.
func (s *Scorer) LevelFor(skillCount int) model.Level {
	for _, b := range s.bands {
		if skillCount >= b.Min && skillCount <= b.Max {
			return b.Level
		}
	}
	return model.Novice
}

// Bands returns a copy of the configured bands.
func (s *Scorer) Bands() []Band {
	return append([]Band(nil), s.bands...)
}

// ValidBands reports whether bands are ordered, contiguous, non-overlapping,
// cover [0, total] and end at Legendary.
func ValidBands(bands []Band, total int) bool {
	if len(bands) == 0 || bands[0].Min != 0 {
		return false
	}
	for i, b := range bands {
		if b.Max < b.Min {
			return false
		}
		if i > 0 && b.Min != bands[i-1].Max+1 {
			return false
		}
	}
	last := bands[len(bands)-1]
	return last.Max == total && last.Level == model.Legendary
}
