// Package signals turns raw per-repository tree signals into a SkillSet and the
// list of classified markdown files.
package signals

import (
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/markdown"
	"github.com/okian/aiready/internal/domain/model"
)

// EntryType distinguishes files from directories in a tree listing.
type EntryType int

// Entry types.
const (
	EntryFile EntryType = iota
	EntryDirectory
)

// Entry is one item of a flat directory listing.
type Entry struct {
	Name string
	Type EntryType
}

// Result is what the provider returned for one repository: either Signals or
// FetchFailed.
type Result interface {
	isResult()
}

// Signals are the raw observations for one repository.
type Signals struct {
	// Exists maps a candidate path to whether an object exists there on the
	// default branch. Missing paths count as absent.
	Exists map[string]bool
	// Root is the listing of the repository root.
	Root []Entry
	// Docs is the listing of docs/, nil when the directory does not exist.
	Docs []Entry
}

// FetchFailed marks a repository whose signals could not be retrieved.
type FetchFailed struct {
	Err error
}

func (Signals) isResult()     {}
func (FetchFailed) isResult() {}

// Aggregate builds the SkillSet and markdown file list for one repository.
// A failed or missing result yields the all-false SkillSet and no files.
func Aggregate(c *catalog.Catalog, r Result) (model.SkillSet, []model.MarkdownFile) {
	switch v := r.(type) {
	case Signals:
		return aggregate(c, v)
	case *Signals:
		if v != nil {
			return aggregate(c, *v)
		}
	}
	return Empty(), []model.MarkdownFile{}
}

// Empty is the SkillSet of a repository with no detected skills.
func Empty() model.SkillSet {
	return model.SkillSet{}
}

func aggregate(c *catalog.Catalog, s Signals) (model.SkillSet, []model.MarkdownFile) {
	var set model.SkillSet

	for _, def := range c.ListSkills() {
		if def.Derived() {
			continue
		}
		found := false
		for _, p := range def.FilePaths {
			if s.Exists[p] {
				found = true
				break
			}
		}
		set.Set(def.Key, found)
	}

	files := make([]model.MarkdownFile, 0, len(s.Root)+len(s.Docs))
	files = appendMarkdown(files, "", s.Root)
	files = appendMarkdown(files, "docs/", s.Docs)

	hasDocs := false
	for _, f := range files {
		if f.Classification == model.ClassDocs {
			hasDocs = true
			break
		}
	}
	set.Set(catalog.AdditionalDocs, hasDocs)

	return set, files
}

func appendMarkdown(dst []model.MarkdownFile, prefix string, entries []Entry) []model.MarkdownFile {
	for _, e := range entries {
		if e.Type != EntryFile || !markdown.IsMarkdown(e.Name) {
			continue
		}
		path := prefix + e.Name
		dst = append(dst, model.MarkdownFile{
			Path:           path,
			Classification: markdown.Classify(path),
		})
	}
	return dst
}
