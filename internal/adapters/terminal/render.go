// Package terminal renders the leaderboard, a repository's skill tree and
// org statistics for a terminal.
package terminal

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	service "github.com/okian/aiready/internal/app"
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
)

const barWidth = 30

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#eab308"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	earnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// Renderer writes styled output for a catalog.
type Renderer struct {
	w       io.Writer
	catalog *catalog.Catalog
}

// New creates a Renderer writing to w.
func New(w io.Writer, c *catalog.Catalog) *Renderer {
	return &Renderer{w: w, catalog: c}
}

// Leaderboard renders one page of the leaderboard as a table.
func (r *Renderer) Leaderboard(org string, updated time.Time, page service.Page) error {
	cats := r.catalog.Categories()

	headers := []string{"#", "Repository", "Level", "Skills", "Stars", "Language"}
	for _, c := range cats {
		headers = append(headers, c.ShortLabel)
	}

	rows := make([][]string, 0, len(page.Items))
	levels := make([]model.Level, 0, len(page.Items))
	for i, repo := range page.Items {
		row := []string{
			strconv.Itoa(page.StartRank + i),
			repo.Name,
			string(repo.Level),
			fmt.Sprintf("%d/%d", repo.SkillCount, r.catalog.TotalSkillCount()),
			strconv.Itoa(repo.Stars),
			orDash(repo.Language),
		}
		for _, c := range cats {
			s := repo.CategoryScores[c.ID]
			row = append(row, fmt.Sprintf("%d/%d", s.Earned, s.Total))
		}
		rows = append(rows, row)
		levels = append(levels, repo.Level)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(levels) {
				return cellStyle.Foreground(lipgloss.Color(levels[row].Color()))
			}
			return cellStyle
		})

	title := titleStyle.Render(fmt.Sprintf("%s AI readiness leaderboard", org))
	footer := mutedStyle.Render(fmt.Sprintf("page %d/%d, %d repositories, updated %s",
		page.Page, page.TotalPages, page.Total, updated.Format(time.RFC3339)))

	_, err := fmt.Fprintln(r.w, lipgloss.JoinVertical(lipgloss.Left, title, t.String(), footer))
	return err
}

// Repository renders the skill tree of one repository.
func (r *Renderer) Repository(repo model.Repository) error {
	var b strings.Builder

	levelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(repo.Level.Color()))
	fmt.Fprintf(&b, "%s  %s  %s\n",
		titleStyle.Render(repo.Name),
		levelStyle.Render(string(repo.Level)),
		mutedStyle.Render(fmt.Sprintf("%d/%d skills, %d stars", repo.SkillCount, r.catalog.TotalSkillCount(), repo.Stars)))
	if repo.Description != "" {
		fmt.Fprintln(&b, mutedStyle.Render(repo.Description))
	}

	for _, c := range r.catalog.Categories() {
		s := repo.CategoryScores[c.ID]
		catStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Color))
		fmt.Fprintf(&b, "\n%s %s\n", catStyle.Render(c.Label), mutedStyle.Render(fmt.Sprintf("%d/%d", s.Earned, s.Total)))
		for _, def := range r.catalog.SkillsByCategory(c.ID) {
			if repo.Skills.Get(def.Key) {
				fmt.Fprintf(&b, "  %s %s\n", earnedStyle.Render("[x]"), def.Label)
				continue
			}
			fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("[ ]"), mutedStyle.Render(def.Label))
		}
	}

	if len(repo.MarkdownFiles) > 0 {
		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Markdown files"))
		for _, f := range repo.MarkdownFiles {
			fmt.Fprintf(&b, "  %-40s %s\n", f.Path, mutedStyle.Render(string(f.Classification)))
		}
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Stats renders organization-wide statistics.
func (r *Renderer) Stats(org string, updated time.Time, stats model.OrgStats) error {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("%s org statistics", org)))
	fmt.Fprintf(&b, "repositories: %d  with any skill: %d  legendary: %d  average skills: %.2f\n",
		stats.TotalRepos, stats.ReposWithAnySkill, stats.LegendaryCount, stats.AverageSkillCount)
	fmt.Fprintln(&b, mutedStyle.Render("updated "+updated.Format(time.RFC3339)))

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Level distribution"))
	for _, l := range model.Levels() {
		n := stats.LevelDistribution[l]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color()))
		fmt.Fprintf(&b, "  %-10s %s %d\n", l, style.Render(bar(n, stats.TotalRepos)), n)
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Category averages"))
	for _, c := range r.catalog.Categories() {
		avg := stats.CategoryAverages[c.ID]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
		fmt.Fprintf(&b, "  %-14s %s %.2f/%d\n", c.Label,
			style.Render(barFloat(avg, float64(r.catalog.CategoryTotal(c.ID)))), avg, r.catalog.CategoryTotal(c.ID))
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Skill popularity"))
	skills := r.catalog.ListSkills()
	slices.SortStableFunc(skills, func(a, b catalog.SkillDefinition) int {
		return stats.SkillPopularity[b.Key] - stats.SkillPopularity[a.Key]
	})
	for _, def := range skills {
		n := stats.SkillPopularity[def.Key]
		fmt.Fprintf(&b, "  %-22s %s %d\n", def.Label, earnedStyle.Render(bar(n, stats.TotalRepos)), n)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func bar(n, total int) string {
	return barFloat(float64(n), float64(total))
}

func barFloat(v, total float64) string {
	filled := 0
	if total > 0 {
		filled = int(v / total * barWidth)
	}
	filled = min(max(filled, 0), barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
