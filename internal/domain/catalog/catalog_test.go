package catalog_test

import (
	"testing"

	"github.com/okian/aiready/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		c := catalog.New()

		Convey("Then it defines 15 skills", func() {
			So(c.TotalSkillCount(), ShouldEqual, 15)
			So(len(c.ListSkills()), ShouldEqual, 15)
		})

		Convey("And every skill key is unique", func() {
			seen := map[catalog.SkillKey]bool{}
			for _, s := range c.ListSkills() {
				So(seen[s.Key], ShouldBeFalse)
				seen[s.Key] = true
			}
		})

		Convey("And the categories partition the skills", func() {
			sum := 0
			for _, id := range catalog.CategoryIDs() {
				n := len(c.SkillsByCategory(id))
				So(n, ShouldBeGreaterThan, 0)
				So(c.CategoryTotal(id), ShouldEqual, n)
				sum += n
			}
			So(sum, ShouldEqual, c.TotalSkillCount())
			So(c.CategoryTotal(catalog.AIConfig), ShouldEqual, 5)
			So(c.CategoryTotal(catalog.BuildVerify), ShouldEqual, 2)
			So(c.CategoryTotal(catalog.Documentation), ShouldEqual, 3)
			So(c.CategoryTotal(catalog.CodeQuality), ShouldEqual, 5)
		})

		Convey("And exactly one skill is derived", func() {
			var derived []catalog.SkillKey
			for _, s := range c.ListSkills() {
				if s.Derived() {
					derived = append(derived, s.Key)
				}
			}
			So(derived, ShouldResemble, []catalog.SkillKey{catalog.AdditionalDocs})
		})

		Convey("When looking up a skill's category", func() {
			cat, ok := c.CategoryForSkill(catalog.Linter)
			So(ok, ShouldBeTrue)
			So(cat.ID, ShouldEqual, catalog.CodeQuality)
			So(cat.ShortLabel, ShouldEqual, "Quality")

			_, ok = c.CategoryForSkill("unknown")
			So(ok, ShouldBeFalse)
		})

		Convey("When a caller mutates a returned slice", func() {
			skills := c.ListSkills()
			skills[0].Label = "changed"

			Convey("Then the catalog is unaffected", func() {
				s, ok := c.Skill(catalog.AgentsMd)
				So(ok, ShouldBeTrue)
				So(s.Label, ShouldEqual, "AGENTS.md")
			})
		})
	})
}
