// Package mcpserver exposes the leaderboard to LLM clients as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	service "github.com/okian/aiready/internal/app"
	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
)

// Reader is the read-only view the tools answer from.
type Reader interface {
	All() []model.Repository
	BySlug(slug string) (model.Repository, error)
	LastUpdated() time.Time
	OrgName() string
	OrgStats() model.OrgStats
}

// Server wraps the MCP server with leaderboard tools.
type Server struct {
	mcp     *server.MCPServer
	reader  Reader
	catalog *catalog.Catalog
}

// New creates a new MCP server with all tools registered.
func New(reader Reader, c *catalog.Catalog, version string) *Server {
	s := &Server{reader: reader, catalog: c}

	s.mcp = server.NewMCPServer(
		"aiready",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_repositories",
		mcp.WithDescription("List scored repositories in leaderboard order, optionally filtered."),
		mcp.WithString("query", mcp.Description("Case-insensitive match on name or description")),
		mcp.WithString("level", mcp.Description("Only repositories at this level, e.g. Elite")),
		mcp.WithString("language", mcp.Description("Only repositories with this primary language")),
		mcp.WithString("sort", mcp.Description("skillCount (default), stars, name or level")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Rows per page, default 25")),
	), s.listRepositories)

	s.mcp.AddTool(mcp.NewTool("get_repository",
		mcp.WithDescription("Get the full readiness record of one repository: skills, category scores, level and markdown files."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Lowercased repository name")),
	), s.getRepository)

	s.mcp.AddTool(mcp.NewTool("get_org_stats",
		mcp.WithDescription("Organization-wide statistics: level distribution, skill popularity and category averages."),
	), s.getOrgStats)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List the skill catalog grouped by category, with the file paths each skill checks."),
	), s.listSkills)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listRepositories(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := service.Query{
		Search:   req.GetString("query", ""),
		Level:    service.ParseLevel(req.GetString("level", "")),
		Language: req.GetString("language", ""),
		SortBy:   req.GetString("sort", ""),
		Page:     req.GetInt("page", 1),
		PageSize: req.GetInt("page_size", service.DefaultPageSize),
	}
	if err := q.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(service.Filter(s.reader.All(), q))
}

func (s *Server) getRepository(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repo, err := s.reader.BySlug(slug)
	if errors.Is(err, service.ErrRepositoryNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(repo)
}

type orgStatsResult struct {
	OrgName     string    `json:"orgName"`
	LastUpdated time.Time `json:"lastUpdated"`
	model.OrgStats
}

func (s *Server) getOrgStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(orgStatsResult{
		OrgName:     s.reader.OrgName(),
		LastUpdated: s.reader.LastUpdated(),
		OrgStats:    s.reader.OrgStats(),
	})
}

type categorySkills struct {
	catalog.CategoryDefinition
	Skills []catalog.SkillDefinition `json:"skills"`
}

func (s *Server) listSkills(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := make([]categorySkills, 0, len(catalog.CategoryIDs()))
	for _, cat := range s.catalog.Categories() {
		out = append(out, categorySkills{CategoryDefinition: cat, Skills: s.catalog.SkillsByCategory(cat.ID)})
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
