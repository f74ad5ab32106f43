package markdown_test

import (
	"testing"

	"github.com/okian/aiready/internal/domain/markdown"
	"github.com/okian/aiready/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given the markdown classifier", t, func() {
		Convey("When the file name starts with readme", func() {
			So(markdown.Classify("README.md"), ShouldEqual, model.ClassReadme)
			So(markdown.Classify("readme.zh-CN.md"), ShouldEqual, model.ClassReadme)

			Convey("Then it wins over the docs directory rules", func() {
				So(markdown.Classify("docs/README.md"), ShouldEqual, model.ClassReadme)
			})
		})

		Convey("When the file name starts with contributing", func() {
			So(markdown.Classify("CONTRIBUTING.md"), ShouldEqual, model.ClassContributing)
			So(markdown.Classify("docs/Contributing-Guide.md"), ShouldEqual, model.ClassContributing)
		})

		Convey("When the file is an agent instruction file", func() {
			So(markdown.Classify("AGENTS.md"), ShouldEqual, model.ClassAIConfig)
			So(markdown.Classify("CLAUDE.md"), ShouldEqual, model.ClassAIConfig)
			So(markdown.Classify("claude.local.md"), ShouldEqual, model.ClassAIConfig)
			So(markdown.Classify("docs/claude.md"), ShouldEqual, model.ClassAIConfig)

			Convey("Then only exact names match", func() {
				So(markdown.Classify("CLAUDE-notes.md"), ShouldEqual, model.ClassDocs)
			})
		})

		Convey("When the path strongly indicates documentation", func() {
			for _, p := range []string{
				"ARCHITECTURE.md", "design-doc.md", "DEVELOPMENT.md", "setup.md",
				"MIGRATION.md", "UPGRADING.md", "troubleshooting.md", "deployment.md",
				"configuration.md", "GUIDE.md", "tutorial.md", "FAQ.md",
				"getting-started.md", "GETTING_STARTED.md", "how-to-release.md",
			} {
				So(markdown.Classify(p), ShouldEqual, model.ClassDocs)
			}
		})

		Convey("When the file lives under docs/", func() {
			So(markdown.Classify("docs/CHANGELOG.md"), ShouldEqual, model.ClassDocs)
			So(markdown.Classify("docs/api.md"), ShouldEqual, model.ClassDocs)
		})

		Convey("When no pattern matches", func() {
			Convey("Then the file defaults to docs", func() {
				So(markdown.Classify("notes.md"), ShouldEqual, model.ClassDocs)
				So(markdown.Classify("BENCHMARKS.md"), ShouldEqual, model.ClassDocs)
			})
		})

		Convey("When the file is known boilerplate", func() {
			So(markdown.Classify("CHANGELOG.md"), ShouldEqual, model.ClassOther)
			So(markdown.Classify("LICENSE.md"), ShouldEqual, model.ClassOther)
			So(markdown.Classify("CODE_OF_CONDUCT.md"), ShouldEqual, model.ClassOther)
			So(markdown.Classify("SECURITY.md"), ShouldEqual, model.ClassOther)
			So(markdown.Classify("PULL_REQUEST_TEMPLATE.md"), ShouldEqual, model.ClassOther)
			So(markdown.Classify(".github/ISSUE_TEMPLATE.md"), ShouldEqual, model.ClassOther)
			So(markdown.Classify(".github/FUNDING.md"), ShouldEqual, model.ClassOther)
		})
	})
}

func TestIsMarkdown(t *testing.T) {
	Convey("Given file names", t, func() {
		So(markdown.IsMarkdown("README.md"), ShouldBeTrue)
		So(markdown.IsMarkdown("GUIDE.MD"), ShouldBeTrue)
		So(markdown.IsMarkdown("README"), ShouldBeFalse)
		So(markdown.IsMarkdown("notes.mdx"), ShouldBeFalse)
	})
}
