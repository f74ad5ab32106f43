package service_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/aiready/internal/app"
	"github.com/okian/aiready/internal/domain/model"
)

func leaderboard() []model.Repository {
	return []model.Repository{
		{Name: "sentry", Description: "Error tracking", Stars: 400, Language: "Python", SkillCount: 12, Level: model.Heroic},
		{Name: "relay", Description: "Event ingestion", Stars: 300, Language: "Rust", SkillCount: 9, Level: model.Elite},
		{Name: "arroyo", Description: "Kafka helpers", Stars: 500, Language: "Python", SkillCount: 4, Level: model.Apprentice},
		{Name: "bare", Stars: 100, SkillCount: 0, Level: model.Novice},
	}
}

func names(repos []model.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	convey.Convey("Given a leaderboard", t, func() {
		repos := leaderboard()

		convey.Convey("When no filter is set", func() {
			p := service.Filter(repos, service.Query{})

			convey.So(names(p.Items), convey.ShouldResemble, []string{"sentry", "relay", "arroyo", "bare"})
			convey.So(p.Total, convey.ShouldEqual, 4)
			convey.So(p.TotalPages, convey.ShouldEqual, 1)
			convey.So(p.StartRank, convey.ShouldEqual, 1)
		})

		convey.Convey("When searching the description", func() {
			p := service.Filter(repos, service.Query{Search: "KAFKA"})
			convey.So(names(p.Items), convey.ShouldResemble, []string{"arroyo"})
		})

		convey.Convey("When filtering by language and sorting by stars", func() {
			p := service.Filter(repos, service.Query{Language: "Python", SortBy: service.SortStars})
			convey.So(names(p.Items), convey.ShouldResemble, []string{"arroyo", "sentry"})
		})

		convey.Convey("When filtering by level", func() {
			p := service.Filter(repos, service.Query{Level: model.Elite})
			convey.So(names(p.Items), convey.ShouldResemble, []string{"relay"})
		})

		convey.Convey("When sorting by name", func() {
			p := service.Filter(repos, service.Query{SortBy: service.SortName})
			convey.So(names(p.Items), convey.ShouldResemble, []string{"arroyo", "bare", "relay", "sentry"})
		})

		convey.Convey("When paging past the end", func() {
			p := service.Filter(repos, service.Query{Page: 9, PageSize: 3})

			convey.So(p.Page, convey.ShouldEqual, 2)
			convey.So(p.TotalPages, convey.ShouldEqual, 2)
			convey.So(p.StartRank, convey.ShouldEqual, 4)
			convey.So(names(p.Items), convey.ShouldResemble, []string{"bare"})
		})

		convey.Convey("When nothing matches", func() {
			p := service.Filter(repos, service.Query{Search: "zzz"})
			convey.So(len(p.Items), convey.ShouldEqual, 0)
			convey.So(p.TotalPages, convey.ShouldEqual, 1)
		})

		convey.Convey("Then the input order is untouched", func() {
			service.Filter(repos, service.Query{SortBy: service.SortName})
			convey.So(repos[0].Name, convey.ShouldEqual, "sentry")
		})
	})
}

func TestQueryValidate(t *testing.T) {
	convey.Convey("Given queries", t, func() {
		convey.So(service.Query{}.Validate(), convey.ShouldBeNil)
		convey.So(service.Query{Level: model.Legendary, SortBy: service.SortLevel}.Validate(), convey.ShouldBeNil)
		convey.So(service.Query{Level: "Wizard"}.Validate(), convey.ShouldNotBeNil)
		convey.So(service.Query{SortBy: "random"}.Validate(), convey.ShouldNotBeNil)
		convey.So(service.Query{Page: -1}.Validate(), convey.ShouldNotBeNil)
	})
}

func TestLanguages(t *testing.T) {
	convey.Convey("Given repositories with repeated and missing languages", t, func() {
		convey.So(service.Languages(leaderboard()), convey.ShouldResemble, []string{"Python", "Rust"})
	})
}

func TestParseLevel(t *testing.T) {
	convey.Convey("Given level names in any case", t, func() {
		convey.So(service.ParseLevel("elite"), convey.ShouldEqual, model.Elite)
		convey.So(service.ParseLevel(" LEGENDARY "), convey.ShouldEqual, model.Legendary)
		convey.So(service.ParseLevel(""), convey.ShouldEqual, model.Level(""))

		convey.Convey("Then unknown names still fail validation", func() {
			lvl := service.ParseLevel("wizard")
			convey.So(lvl, convey.ShouldEqual, model.Level("wizard"))
			convey.So(service.Query{Level: lvl}.Validate(), convey.ShouldNotBeNil)
		})
	})
}
