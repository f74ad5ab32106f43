package model

import (
	"time"

	"github.com/okian/aiready/internal/domain/catalog"
)

// Level is a readiness tier derived from the total skill count.
type Level string

// Levels in ascending order.
const (
	Novice     Level = "Novice"
	Apprentice Level = "Apprentice"
	Veteran    Level = "Veteran"
	Elite      Level = "Elite"
	Heroic     Level = "Heroic"
	Legendary  Level = "Legendary"
)

// Levels returns every level from lowest to highest.
func Levels() []Level {
	return []Level{Novice, Apprentice, Veteran, Elite, Heroic, Legendary}
}

// Rank is the zero-based position of l in Levels, or -1 if l is unknown.
func (l Level) Rank() int {
	for i, v := range Levels() {
		if v == l {
			return i
		}
	}
	return -1
}

// Color is the display color of the level badge.
func (l Level) Color() string {
	switch l {
	case Apprentice:
		return "#22c55e"
	case Veteran:
		return "#3b82f6"
	case Elite:
		return "#a855f7"
	case Heroic:
		return "#f97316"
	case Legendary:
		return "#eab308"
	default:
		return "#6b7280"
	}
}

// Classification buckets a markdown file.
type Classification string

// Markdown classifications.
const (
	ClassReadme       Classification = "readme"
	ClassContributing Classification = "contributing"
	ClassAIConfig     Classification = "ai-config"
	ClassDocs         Classification = "docs"
	ClassOther        Classification = "other"
)

// MarkdownFile is a markdown file found at the repository root or under docs/.
type MarkdownFile struct {
	Path           string         `json:"path"`
	Classification Classification `json:"classification"`
}

// CategoryScore is the earned/total pair of one category.
type CategoryScore struct {
	Earned int `json:"earned"`
	Total  int `json:"total"`
}

// RepoMeta is the provider metadata of a listed repository.
type RepoMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
}

// Repository is the computed record of one repository in a snapshot.
type Repository struct {
	Name           string                               `json:"name"`
	Slug           string                               `json:"slug"`
	Description    string                               `json:"description"`
	URL            string                               `json:"url"`
	Stars          int                                  `json:"stars"`
	Language       string                               `json:"language"`
	Skills         SkillSet                             `json:"skills"`
	SkillCount     int                                  `json:"skillCount"`
	CategoryScores map[catalog.CategoryID]CategoryScore `json:"categoryScores"`
	Level          Level                                `json:"level"`
	MarkdownFiles  []MarkdownFile                       `json:"markdownFiles"`
}

// Snapshot is the persisted result of one run.
type Snapshot struct {
	LastUpdated  time.Time    `json:"lastUpdated"`
	OrgName      string       `json:"orgName"`
	Repositories []Repository `json:"repositories"`
}

// OrgStats are organization-wide statistics derived from a snapshot.
type OrgStats struct {
	TotalRepos        int                            `json:"totalRepos"`
	ReposWithAnySkill int                            `json:"reposWithAnySkill"`
	AverageSkillCount float64                        `json:"averageSkillCount"`
	LegendaryCount    int                            `json:"legendaryCount"`
	LevelDistribution map[Level]int                  `json:"levelDistribution"`
	SkillPopularity   map[catalog.SkillKey]int       `json:"skillPopularity"`
	CategoryAverages  map[catalog.CategoryID]float64 `json:"categoryAverages"`
}
