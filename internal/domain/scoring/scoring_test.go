package scoring_test

import (
	"testing"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
	scoring "github.com/okian/aiready/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func setWith(keys ...catalog.SkillKey) model.SkillSet {
	var s model.SkillSet
	for _, k := range keys {
		s.Set(k, true)
	}
	return s
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a new scorer", t, func() {
		c := catalog.New()
		scorer := scoring.NewScorer(c)

		Convey("When scoring an empty SkillSet", func() {
			res := scorer.Score(model.SkillSet{})

			Convey("Then it should be a Novice with nothing earned", func() {
				So(res.SkillCount, ShouldEqual, 0)
				So(res.Level, ShouldEqual, model.Novice)
				for _, id := range catalog.CategoryIDs() {
					So(res.CategoryScores[id].Earned, ShouldEqual, 0)
					So(res.CategoryScores[id].Total, ShouldEqual, c.CategoryTotal(id))
				}
			})
		})

		Convey("When scoring a mixed SkillSet", func() {
			res := scorer.Score(setWith(
				catalog.ClaudeMd, catalog.AgentsMd,
				catalog.CIWorkflows,
				catalog.Readme, catalog.AdditionalDocs,
				catalog.Linter,
			))

			Convey("Then the count sums every category", func() {
				So(res.SkillCount, ShouldEqual, 6)
				sum := 0
				for _, cs := range res.CategoryScores {
					sum += cs.Earned
				}
				So(sum, ShouldEqual, res.SkillCount)
			})

			Convey("And categories are scored independently", func() {
				So(res.CategoryScores[catalog.AIConfig], ShouldResemble, model.CategoryScore{Earned: 2, Total: 5})
				So(res.CategoryScores[catalog.BuildVerify], ShouldResemble, model.CategoryScore{Earned: 1, Total: 2})
				So(res.CategoryScores[catalog.Documentation], ShouldResemble, model.CategoryScore{Earned: 2, Total: 3})
				So(res.CategoryScores[catalog.CodeQuality], ShouldResemble, model.CategoryScore{Earned: 1, Total: 5})
			})

			Convey("And the level is Veteran", func() {
				So(res.Level, ShouldEqual, model.Veteran)
			})
		})

		Convey("When scoring a full SkillSet", func() {
			var keys []catalog.SkillKey
			for _, def := range c.ListSkills() {
				keys = append(keys, def.Key)
			}
			res := scorer.Score(setWith(keys...))

			So(res.SkillCount, ShouldEqual, 15)
			So(res.Level, ShouldEqual, model.Legendary)
		})
	})
}

func TestScorer_LevelFor(t *testing.T) {
	Convey("Given the default bands", t, func() {
		scorer := scoring.NewScorer(catalog.New())

		Convey("Then each boundary maps to the expected level", func() {
			expected := map[int]model.Level{
				0: model.Novice, 2: model.Novice,
				3: model.Apprentice, 5: model.Apprentice,
				6: model.Veteran, 8: model.Veteran,
				9: model.Elite, 11: model.Elite,
				12: model.Heroic, 13: model.Heroic,
				14: model.Legendary, 15: model.Legendary,
			}
			for n, lvl := range expected {
				So(scorer.LevelFor(n), ShouldEqual, lvl)
			}
		})

		Convey("And levels never decrease as the count grows", func() {
			prev := -1
			for n := 0; n <= 15; n++ {
				r := scorer.LevelFor(n).Rank()
				So(r, ShouldBeGreaterThanOrEqualTo, prev)
				prev = r
			}
		})

		Convey("And out-of-range counts fall back to Novice", func() {
			So(scorer.LevelFor(-1), ShouldEqual, model.Novice)
			So(scorer.LevelFor(16), ShouldEqual, model.Novice)
		})
	})
}

func TestValidBands(t *testing.T) {
	Convey("Given band tables", t, func() {
		So(scoring.ValidBands(scoring.DefaultBands(), 15), ShouldBeTrue)
		So(scoring.ValidBands(scoring.DefaultBands(), 16), ShouldBeFalse)
		So(scoring.ValidBands(nil, 15), ShouldBeFalse)

		gap := []scoring.Band{
			{Min: 0, Max: 5, Level: model.Novice},
			{Min: 7, Max: 15, Level: model.Legendary},
		}
		So(scoring.ValidBands(gap, 15), ShouldBeFalse)

		overlap := []scoring.Band{
			{Min: 0, Max: 8, Level: model.Novice},
			{Min: 8, Max: 15, Level: model.Legendary},
		}
		So(scoring.ValidBands(overlap, 15), ShouldBeFalse)

		Convey("When an invalid table is passed as an option", func() {
			scorer := scoring.NewScorer(catalog.New(), scoring.WithBands(gap))

			Convey("Then the defaults are kept", func() {
				So(scorer.Bands(), ShouldResemble, scoring.DefaultBands())
			})
		})

		Convey("When a valid table is passed as an option", func() {
			coarse := []scoring.Band{
				{Min: 0, Max: 7, Level: model.Novice},
				{Min: 8, Max: 15, Level: model.Legendary},
			}
			scorer := scoring.NewScorer(catalog.New(), scoring.WithBands(coarse))
			So(scorer.LevelFor(8), ShouldEqual, model.Legendary)
		})
	})
}
