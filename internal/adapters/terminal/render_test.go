package terminal_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/aiready/internal/app"
	"github.com/okian/aiready/internal/adapters/terminal"
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/orgstats"
	"github.com/okian/aiready/internal/domain/scoring"
	"github.com/okian/aiready/internal/domain/signals"
)

var updated = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func snapshot(c *catalog.Catalog) model.Snapshot {
	metas := []model.RepoMeta{
		{Name: "sentry", Stars: 400, Language: "Python", Description: "Error tracking"},
		{Name: "relay", Stars: 300},
	}
	results := map[string]signals.Result{
		"sentry": signals.Signals{
			Exists: map[string]bool{"AGENTS.md": true, "Makefile": true},
			Root:   []signals.Entry{{Name: "DEVELOPMENT.md", Type: signals.EntryFile}},
		},
	}
	return service.Assemble(c, scoring.NewScorer(c), "getsentry", metas, results, updated)
}

func TestRenderer(t *testing.T) {
	convey.Convey("Given a renderer over a snapshot", t, func() {
		c := catalog.New()
		snap := snapshot(c)
		var buf bytes.Buffer
		r := terminal.New(&buf, c)

		convey.Convey("When rendering the leaderboard", func() {
			err := r.Leaderboard(snap.OrgName, snap.LastUpdated, service.Filter(snap.Repositories, service.Query{}))
			out := buf.String()

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "getsentry AI readiness leaderboard")
			convey.So(out, convey.ShouldContainSubstring, "sentry")
			convey.So(out, convey.ShouldContainSubstring, "3/15")
			convey.So(out, convey.ShouldContainSubstring, "page 1/1, 2 repositories")
			convey.So(strings.Index(out, "sentry"), convey.ShouldBeLessThan, strings.Index(out, "relay"))
		})

		convey.Convey("When rendering one repository", func() {
			convey.So(r.Repository(snap.Repositories[0]), convey.ShouldBeNil)
			out := buf.String()

			convey.So(out, convey.ShouldContainSubstring, "[x] AGENTS.md")
			convey.So(out, convey.ShouldContainSubstring, "DEVELOPMENT.md")
			convey.So(out, convey.ShouldContainSubstring, "Error tracking")
		})

		convey.Convey("When rendering org stats", func() {
			stats := orgstats.Aggregate(c, snap.Repositories)
			convey.So(r.Stats(snap.OrgName, snap.LastUpdated, stats), convey.ShouldBeNil)
			out := buf.String()

			convey.So(out, convey.ShouldContainSubstring, "repositories: 2")
			convey.So(out, convey.ShouldContainSubstring, "Legendary")
			convey.So(out, convey.ShouldContainSubstring, "average skills: 1.50")
		})
	})
}
