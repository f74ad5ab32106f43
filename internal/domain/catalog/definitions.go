package catalog

func defaultCategories() []CategoryDefinition {
	return []CategoryDefinition{
		{
			ID:          AIConfig,
			Label:       "AI Config",
			ShortLabel:  "AI",
			Color:       "#818cf8",
			Icon:        "brain",
			Description: "AI agent instruction files",
		},
		{
			ID:          BuildVerify,
			Label:       "Build & Verify",
			ShortLabel:  "Build",
			Color:       "#f472b6",
			Icon:        "hammer",
			Description: "Build tools and verification infrastructure",
		},
		{
			ID:          Documentation,
			Label:       "Documentation",
			ShortLabel:  "Docs",
			Color:       "#34d399",
			Icon:        "book",
			Description: "Project documentation",
		},
		{
			ID:          CodeQuality,
			Label:       "Code Quality",
			ShortLabel:  "Quality",
			Color:       "#fbbf24",
			Icon:        "shield",
			Description: "Type safety, linting, testing",
		},
	}
}

func defaultSkills() []SkillDefinition {
	return []SkillDefinition{
		{
			Key:         AgentsMd,
			Category:    AIConfig,
			Label:       "AGENTS.md",
			FilePaths:   []string{"AGENTS.md"},
			Description: "Vendor-neutral agent instructions",
		},
		{
			Key:         ClaudeMd,
			Category:    AIConfig,
			Label:       "CLAUDE.md",
			FilePaths:   []string{"CLAUDE.md"},
			Description: "Claude Code instructions",
		},
		{
			Key:         ClaudeDir,
			Category:    AIConfig,
			Label:       ".claude/",
			FilePaths:   []string{".claude"},
			Description: "Claude config directory",
		},
		{
			Key:         CursorRulesDir,
			Category:    AIConfig,
			Label:       ".cursor/rules/",
			FilePaths:   []string{".cursor/rules"},
			Description: "Cursor rules directory",
		},
		{
			Key:         Cursorignore,
			Category:    AIConfig,
			Label:       ".cursorignore",
			FilePaths:   []string{".cursorignore"},
			Description: "Cursor ignore file",
		},

		{
			Key:         Makefile,
			Category:    BuildVerify,
			Label:       "Makefile",
			FilePaths:   []string{"Makefile"},
			Description: "Build automation (make test, make lint)",
		},
		{
			Key:         CIWorkflows,
			Category:    BuildVerify,
			Label:       "CI/CD",
			FilePaths:   []string{".github/workflows"},
			Description: "Continuous integration workflows",
		},

		{
			Key:         Readme,
			Category:    Documentation,
			Label:       "README",
			FilePaths:   []string{"README.md", "README.rst", "README"},
			Description: "Project overview and getting started",
		},
		{
			Key:         Contributing,
			Category:    Documentation,
			Label:       "CONTRIBUTING",
			FilePaths:   []string{"CONTRIBUTING.md", "CONTRIBUTING.rst", ".github/CONTRIBUTING.md"},
			Description: "Contribution guidelines and code style",
		},
		{
			// Set from markdown scanning, see signals.Aggregate.
			Key:         AdditionalDocs,
			Category:    Documentation,
			Label:       "Additional Docs",
			FilePaths:   nil,
			Description: "Extra documentation (guides, architecture, design docs)",
		},

		{
			Key:         TypeChecking,
			Category:    CodeQuality,
			Label:       "Type Checking",
			FilePaths:   []string{"tsconfig.json", "mypy.ini", ".mypy.ini", "pyrightconfig.json", ".swiftlint.yml"},
			Description: "Static type checking configuration",
		},
		{
			Key:      Linter,
			Category: CodeQuality,
			Label:    "Linter",
			FilePaths: []string{
				"eslint.config.mjs", "eslint.config.js", "eslint.config.ts",
				".eslintrc.json", ".eslintrc.js", ".eslintrc.yml",
				".pylintrc", ".flake8", "golangci.yml", ".golangci.yml",
				"ruff.toml",
			},
			Description: "Code linting configuration",
		},
		{
			Key:      Formatter,
			Category: CodeQuality,
			Label:    "Formatter",
			FilePaths: []string{
				".prettierrc", ".prettierrc.json", ".prettierrc.js", ".prettierrc.yml",
				"prettier.config.js", "prettier.config.mjs", "prettier.config.ts",
				"biome.json", "biome.jsonc",
				"rustfmt.toml", ".clang-format", ".editorconfig",
			},
			Description: "Code formatting configuration",
		},
		{
			Key:         PreCommitHooks,
			Category:    CodeQuality,
			Label:       "Pre-commit",
			FilePaths:   []string{".pre-commit-config.yaml", ".husky", ".githooks"},
			Description: "Pre-commit quality gates",
		},
		{
			Key:      TestInfra,
			Category: CodeQuality,
			Label:    "Tests",
			FilePaths: []string{
				"jest.config.js", "jest.config.ts", "vitest.config.ts", "vitest.config.js",
				"pytest.ini", "setup.cfg", "conftest.py",
				"phpunit.xml", ".rspec",
			},
			Description: "Test infrastructure and configuration",
		},
	}
}
