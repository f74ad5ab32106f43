// Package model contains domain models passed between layers.
package model

import "github.com/okian/aiready/internal/domain/catalog"

// AIConfigSkills are the agent-instruction skills.
type AIConfigSkills struct {
	AgentsMd       bool `json:"agentsMd"`
	ClaudeMd       bool `json:"claudeMd"`
	ClaudeDir      bool `json:"claudeDir"`
	CursorRulesDir bool `json:"cursorRulesDir"`
	Cursorignore   bool `json:"cursorignore"`
}

// Earned counts the unlocked skills.
func (s AIConfigSkills) Earned() int {
	return count(s.AgentsMd, s.ClaudeMd, s.ClaudeDir, s.CursorRulesDir, s.Cursorignore)
}

// BuildVerifySkills are the build automation skills.
type BuildVerifySkills struct {
	Makefile    bool `json:"makefile"`
	CIWorkflows bool `json:"ciWorkflows"`
}

// Earned counts the unlocked skills.
func (s BuildVerifySkills) Earned() int {
	return count(s.Makefile, s.CIWorkflows)
}

// DocumentationSkills are the documentation skills.
type DocumentationSkills struct {
	Readme         bool `json:"readme"`
	Contributing   bool `json:"contributing"`
	AdditionalDocs bool `json:"additionalDocs"`
}

// Earned counts the unlocked skills.
func (s DocumentationSkills) Earned() int {
	return count(s.Readme, s.Contributing, s.AdditionalDocs)
}

// CodeQualitySkills are the static analysis and testing skills.
type CodeQualitySkills struct {
	TypeChecking   bool `json:"typeChecking"`
	Linter         bool `json:"linter"`
	Formatter      bool `json:"formatter"`
	PreCommitHooks bool `json:"preCommitHooks"`
	TestInfra      bool `json:"testInfra"`
}

// Earned counts the unlocked skills.
func (s CodeQualitySkills) Earned() int {
	return count(s.TypeChecking, s.Linter, s.Formatter, s.PreCommitHooks, s.TestInfra)
}

// SkillSet holds every catalog skill for one repository. The zero value is the
// all-false set.
type SkillSet struct {
	AIConfig      AIConfigSkills      `json:"ai-config"`
	BuildVerify   BuildVerifySkills   `json:"build-verify"`
	Documentation DocumentationSkills `json:"documentation"`
	CodeQuality   CodeQualitySkills   `json:"code-quality"`
}

// Get returns the value of a skill. Unknown keys are false.
func (s SkillSet) Get(key catalog.SkillKey) bool {
	if p := s.field(key); p != nil {
		return *p
	}
	return false
}

// Set assigns a skill and reports whether the key is known.
func (s *SkillSet) Set(key catalog.SkillKey, v bool) bool {
	p := s.field(key)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Earned counts the unlocked skills of one category.
func (s SkillSet) Earned(id catalog.CategoryID) int {
	switch id {
	case catalog.AIConfig:
		return s.AIConfig.Earned()
	case catalog.BuildVerify:
		return s.BuildVerify.Earned()
	case catalog.Documentation:
		return s.Documentation.Earned()
	case catalog.CodeQuality:
		return s.CodeQuality.Earned()
	}
	return 0
}

// Count is the total number of unlocked skills across all categories.
func (s SkillSet) Count() int {
	return s.AIConfig.Earned() + s.BuildVerify.Earned() + s.Documentation.Earned() + s.CodeQuality.Earned()
}

func (s *SkillSet) field(key catalog.SkillKey) *bool {
	switch key {
	case catalog.AgentsMd:
		return &s.AIConfig.AgentsMd
	case catalog.ClaudeMd:
		return &s.AIConfig.ClaudeMd
	case catalog.ClaudeDir:
		return &s.AIConfig.ClaudeDir
	case catalog.CursorRulesDir:
		return &s.AIConfig.CursorRulesDir
	case catalog.Cursorignore:
		return &s.AIConfig.Cursorignore
	case catalog.Makefile:
		return &s.BuildVerify.Makefile
	case catalog.CIWorkflows:
		return &s.BuildVerify.CIWorkflows
	case catalog.Readme:
		return &s.Documentation.Readme
	case catalog.Contributing:
		return &s.Documentation.Contributing
	case catalog.AdditionalDocs:
		return &s.Documentation.AdditionalDocs
	case catalog.TypeChecking:
		return &s.CodeQuality.TypeChecking
	case catalog.Linter:
		return &s.CodeQuality.Linter
	case catalog.Formatter:
		return &s.CodeQuality.Formatter
	case catalog.PreCommitHooks:
		return &s.CodeQuality.PreCommitHooks
	case catalog.TestInfra:
		return &s.CodeQuality.TestInfra
	}
	return nil
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
