// Package catalog holds the read-only registry of skills and categories that
// every scoring component is built against.
package catalog

// CategoryID identifies one of the four fixed skill categories.
type CategoryID string

// Category identifiers.
const (
	AIConfig      CategoryID = "ai-config"
	BuildVerify   CategoryID = "build-verify"
	Documentation CategoryID = "documentation"
	CodeQuality   CategoryID = "code-quality"
)

// SkillKey identifies a single skill. Keys are stable across runs.
type SkillKey string

// Skill keys, grouped by category.
const (
	AgentsMd       SkillKey = "agentsMd"
	ClaudeMd       SkillKey = "claudeMd"
	ClaudeDir      SkillKey = "claudeDir"
	CursorRulesDir SkillKey = "cursorRulesDir"
	Cursorignore   SkillKey = "cursorignore"

	Makefile    SkillKey = "makefile"
	CIWorkflows SkillKey = "ciWorkflows"

	Readme         SkillKey = "readme"
	Contributing   SkillKey = "contributing"
	AdditionalDocs SkillKey = "additionalDocs"

	TypeChecking   SkillKey = "typeChecking"
	Linter         SkillKey = "linter"
	Formatter      SkillKey = "formatter"
	PreCommitHooks SkillKey = "preCommitHooks"
	TestInfra      SkillKey = "testInfra"
)

// SkillDefinition describes one skill. An empty FilePaths means the skill is
// derived rather than checked against the repository tree.
type SkillDefinition struct {
	Key         SkillKey   `json:"key"`
	Category    CategoryID `json:"category"`
	Label       string     `json:"label"`
	FilePaths   []string   `json:"filePaths"`
	Description string     `json:"description"`
}

// Derived reports whether the skill is computed from other signals.
func (d SkillDefinition) Derived() bool {
	return len(d.FilePaths) == 0
}

// CategoryDefinition describes one category.
type CategoryDefinition struct {
	ID          CategoryID `json:"id"`
	Label       string     `json:"label"`
	ShortLabel  string     `json:"shortLabel"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
}

// Catalog is an immutable registry. Construct it once with New and share it.
type Catalog struct {
	categories []CategoryDefinition
	skills     []SkillDefinition

	skillIndex    map[SkillKey]int
	categoryIndex map[CategoryID]int
	byCategory    map[CategoryID][]SkillDefinition
}

// New builds the catalog from the built-in definitions.
func New() *Catalog {
	return build(defaultCategories(), defaultSkills())
}

func build(categories []CategoryDefinition, skills []SkillDefinition) *Catalog {
	c := &Catalog{
		categories:    categories,
		skills:        skills,
		skillIndex:    make(map[SkillKey]int, len(skills)),
		categoryIndex: make(map[CategoryID]int, len(categories)),
		byCategory:    make(map[CategoryID][]SkillDefinition, len(categories)),
	}
	for i, cat := range categories {
		c.categoryIndex[cat.ID] = i
	}
	for i, s := range skills {
		c.skillIndex[s.Key] = i
		c.byCategory[s.Category] = append(c.byCategory[s.Category], s)
	}
	return c
}

// ListSkills returns every skill in display order.
func (c *Catalog) ListSkills() []SkillDefinition {
	out := make([]SkillDefinition, len(c.skills))
	copy(out, c.skills)
	return out
}

// SkillsByCategory returns the skills of a category in display order.
func (c *Catalog) SkillsByCategory(id CategoryID) []SkillDefinition {
	src := c.byCategory[id]
	out := make([]SkillDefinition, len(src))
	copy(out, src)
	return out
}

// TotalSkillCount is the catalog size.
func (c *Catalog) TotalSkillCount() int {
	return len(c.skills)
}

// CategoryTotal is the number of skills in a category.
func (c *Catalog) CategoryTotal(id CategoryID) int {
	return len(c.byCategory[id])
}

// Categories returns the categories in display order.
func (c *Catalog) Categories() []CategoryDefinition {
	out := make([]CategoryDefinition, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id CategoryID) (CategoryDefinition, bool) {
	i, ok := c.categoryIndex[id]
	if !ok {
		return CategoryDefinition{}, false
	}
	return c.categories[i], true
}

// Skill looks up a skill by key.
func (c *Catalog) Skill(key SkillKey) (SkillDefinition, bool) {
	i, ok := c.skillIndex[key]
	if !ok {
		return SkillDefinition{}, false
	}
	return c.skills[i], true
}

// CategoryForSkill returns the category a skill belongs to.
func (c *Catalog) CategoryForSkill(key SkillKey) (CategoryDefinition, bool) {
	s, ok := c.Skill(key)
	if !ok {
		return CategoryDefinition{}, false
	}
	return c.Category(s.Category)
}

// CategoryIDs lists the fixed category identifiers in display order.
func CategoryIDs() []CategoryID {
	return []CategoryID{AIConfig, BuildVerify, Documentation, CodeQuality}
}
