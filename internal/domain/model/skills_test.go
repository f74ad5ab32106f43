package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/aiready/internal/domain/catalog"
	model "github.com/okian/aiready/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSkillSet(t *testing.T) {
	convey.Convey("Given an empty SkillSet", t, func() {
		var s model.SkillSet
		c := catalog.New()

		convey.Convey("Then every catalog skill reads false", func() {
			for _, def := range c.ListSkills() {
				convey.So(s.Get(def.Key), convey.ShouldBeFalse)
			}
			convey.So(s.Count(), convey.ShouldEqual, 0)
		})

		convey.Convey("When every catalog skill is set", func() {
			for _, def := range c.ListSkills() {
				convey.So(s.Set(def.Key, true), convey.ShouldBeTrue)
			}

			convey.Convey("Then the count equals the catalog size", func() {
				convey.So(s.Count(), convey.ShouldEqual, c.TotalSkillCount())
			})

			convey.Convey("And each category earns its full total", func() {
				for _, id := range catalog.CategoryIDs() {
					convey.So(s.Earned(id), convey.ShouldEqual, c.CategoryTotal(id))
				}
			})
		})

		convey.Convey("When setting an unknown key", func() {
			convey.So(s.Set("noSuchSkill", true), convey.ShouldBeFalse)
			convey.So(s.Count(), convey.ShouldEqual, 0)
		})

		convey.Convey("When a single skill is set", func() {
			s.Set(catalog.Makefile, true)

			convey.So(s.BuildVerify.Makefile, convey.ShouldBeTrue)
			convey.So(s.Earned(catalog.BuildVerify), convey.ShouldEqual, 1)
			convey.So(s.Earned(catalog.AIConfig), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given a SkillSet encoded as JSON", t, func() {
		var s model.SkillSet
		s.Set(catalog.ClaudeMd, true)
		data, err := json.Marshal(s)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then skills are grouped under category ids", func() {
			var raw map[string]map[string]bool
			convey.So(json.Unmarshal(data, &raw), convey.ShouldBeNil)
			convey.So(raw["ai-config"]["claudeMd"], convey.ShouldBeTrue)
			convey.So(len(raw["code-quality"]), convey.ShouldEqual, 5)
		})
	})
}

func TestLevel(t *testing.T) {
	convey.Convey("Given the level enumeration", t, func() {
		levels := model.Levels()

		convey.Convey("Then ranks follow declaration order", func() {
			for i, l := range levels {
				convey.So(l.Rank(), convey.ShouldEqual, i)
			}
			convey.So(model.Level("Unknown").Rank(), convey.ShouldEqual, -1)
		})

		convey.Convey("And Legendary is the highest level", func() {
			convey.So(levels[len(levels)-1], convey.ShouldEqual, model.Legendary)
			convey.So(model.Legendary.Color(), convey.ShouldEqual, "#eab308")
			convey.So(model.Novice.Color(), convey.ShouldEqual, "#6b7280")
		})
	})
}
