// Package markdown classifies markdown files found in a repository tree.
//
// Rules are evaluated in order and the first match wins. Anything that is not
// recognized as a non-documentation file is treated as documentation.
package markdown

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/okian/aiready/internal/domain/model"
)

// Patterns are matched against lower-cased input and compiled without
// separators, so '*' also spans '/'.
var (
	readmePatterns       = compile("readme*")
	contributingPatterns = compile("contributing*")
	aiConfigPatterns     = compile("agents.md", "claude.md", "claude.local.md")

	// docPatterns strongly indicate documentation.
	docPatterns = compile(
		"architecture*",
		"design*",
		"development*",
		"setup*",
		"migration*",
		"upgrading*",
		"troubleshoot*",
		"deployment*",
		"configuration*",
		"guide*",
		"tutorial*",
		"faq*",
		"getting?started*",
		"how?to*",
		docsDir+"*",
	)

	// nonDocPatterns are markdown files that are boilerplate, templates or agent config.
	nonDocPatterns = compile(
		"readme*",
		"contributing*",
		"agents.md",
		"claude.md",
		"claude.local.md",
		"changelog*",
		"license*",
		"code?of?conduct*",
		"security.md",
		"*pull?request?template*",
		"*issue?template*",
		".github/*",
	)
)

const docsDir = "docs/"

// Classify assigns a classification to a repository-relative markdown path.
func Classify(path string) model.Classification {
	lower := strings.ToLower(path)
	name := lower
	if i := strings.LastIndex(lower, "/"); i >= 0 {
		name = lower[i+1:]
	}

	switch {
	case matchAny(readmePatterns, name):
		return model.ClassReadme
	case matchAny(contributingPatterns, name):
		return model.ClassContributing
	case matchAny(aiConfigPatterns, name):
		return model.ClassAIConfig
	case matchAny(docPatterns, lower):
		return model.ClassDocs
	case strings.HasPrefix(lower, docsDir):
		return model.ClassDocs
	case !matchAny(nonDocPatterns, lower):
		return model.ClassDocs
	default:
		return model.ClassOther
	}
}

// IsMarkdown reports whether a file name has a .md extension (any case).
func IsMarkdown(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

func compile(patterns ...string) []glob.Glob {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, glob.MustCompile(p))
	}
	return out
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
