package lexdoc

// Selectors holds the CSS selectors used to locate a source's content
// region and follow-up links. They are static configuration, never derived.
type Selectors struct {
	Content string `json:"content"`
	Links   string `json:"links"`
}

// SourceDescriptor is the immutable configuration for one crawlable
// documentation site: where to start, how to extract, and how far to go.
type SourceDescriptor struct {
	Technology string   `json:"technology"`
	Category   string   `json:"category"`
	BaseURL    string   `json:"baseUrl"`
	SeedURLs   []string `json:"seedUrls"`

	Selectors Selectors `json:"selectors"`

	// ValidPaths restricts traversal to URLs whose path contains one of
	// these fragments. Empty means any path on the base host.
	ValidPaths []string `json:"validPaths,omitempty"`

	// MaxDepth bounds link-following from the seeds (0 = seeds only).
	MaxDepth int `json:"maxDepth"`

	// MaxPages bounds the total number of documents for this source.
	MaxPages int `json:"maxPages"`

	// UseSitemap opts into sitemap-based seed expansion before crawling.
	UseSitemap bool `json:"useSitemap,omitempty"`
}

// Validate returns an error if the descriptor cannot drive a crawl.
func (d *SourceDescriptor) Validate() error {
	if d.Technology == "" {
		return Errorf(EINVALID, "source technology required")
	}
	if d.BaseURL == "" {
		return Errorf(EINVALID, "source base URL required")
	}
	if len(d.SeedURLs) == 0 {
		return Errorf(EINVALID, "source seed URLs required")
	}
	if d.Selectors.Content == "" {
		return Errorf(EINVALID, "source content selector required")
	}
	return nil
}

// RepoDescriptor is the immutable configuration for one GitHub repository
// source: which paths to fetch and how deep to descend.
type RepoDescriptor struct {
	Owner      string   `json:"owner"`
	Repo       string   `json:"repo"`
	Technology string   `json:"technology"`
	Category   string   `json:"category"`

	// Paths lists targets within the repository. A trailing slash means a
	// directory to walk; a leading "*." means a filename-suffix pattern
	// against the repository root; anything else is a single file.
	Paths []string `json:"paths"`

	// MaxDepth bounds subdirectory recursion when walking directories.
	MaxDepth int `json:"maxDepth"`
}

// Validate returns an error if the descriptor cannot drive a fetch.
func (d *RepoDescriptor) Validate() error {
	if d.Owner == "" || d.Repo == "" {
		return Errorf(EINVALID, "repo owner and name required")
	}
	if d.Technology == "" {
		return Errorf(EINVALID, "repo technology required")
	}
	if len(d.Paths) == 0 {
		return Errorf(EINVALID, "repo paths required")
	}
	return nil
}

// FullName returns the owner/name pair.
func (d *RepoDescriptor) FullName() string {
	return d.Owner + "/" + d.Repo
}

// DefaultSources returns the built-in documentation site table. The many
// per-technology blocks of configuration collapse into this one data table;
// the crawler consumes descriptors generically.
func DefaultSources() []SourceDescriptor {
	return []SourceDescriptor{
		{
			Technology: "python",
			Category:   "programming_languages",
			BaseURL:    "https://docs.python.org/3/",
			SeedURLs: []string{
				"https://docs.python.org/3/tutorial/index.html",
				"https://docs.python.org/3/howto/index.html",
			},
			Selectors:  Selectors{Content: ".body", Links: ".sphinxsidebar a.reference"},
			ValidPaths: []string{"/tutorial/", "/library/", "/howto/", "/reference/"},
			MaxDepth:   2,
			MaxPages:   20,
		},
		{
			Technology: "go",
			Category:   "programming_languages",
			BaseURL:    "https://go.dev/doc/",
			SeedURLs: []string{
				"https://go.dev/doc/tutorial/getting-started",
				"https://go.dev/doc/effective_go",
			},
			Selectors:  Selectors{Content: ".Documentation, main, article", Links: ".Navigation a, nav a"},
			ValidPaths: []string{"/doc/", "/tutorial/"},
			MaxDepth:   2,
			MaxPages:   20,
		},
		{
			Technology: "react",
			Category:   "frameworks",
			BaseURL:    "https://react.dev/",
			SeedURLs: []string{
				"https://react.dev/learn",
				"https://react.dev/reference/react",
			},
			Selectors:  Selectors{Content: "article, main", Links: "nav a[href^='/'], .sidebar a"},
			ValidPaths: []string{"/learn/", "/reference/"},
			MaxDepth:   2,
			MaxPages:   20,
		},
		{
			Technology: "django",
			Category:   "frameworks",
			BaseURL:    "https://docs.djangoproject.com/en/stable",
			SeedURLs: []string{
				"https://docs.djangoproject.com/en/stable/intro/tutorial01/",
				"https://docs.djangoproject.com/en/stable/topics/db/models/",
			},
			Selectors:  Selectors{Content: "article", Links: "a.reference.internal"},
			ValidPaths: []string{"/intro/", "/topics/", "/ref/", "/howto/"},
			MaxDepth:   2,
			MaxPages:   20,
		},
		{
			Technology: "docker",
			Category:   "devops_cloud",
			BaseURL:    "https://docs.docker.com/",
			SeedURLs: []string{
				"https://docs.docker.com/get-started/",
				"https://docs.docker.com/compose/",
			},
			Selectors:  Selectors{Content: "main, article, .content", Links: ".sidebar a, nav a"},
			ValidPaths: []string{"/get-started/", "/engine/", "/compose/", "/reference/"},
			MaxDepth:   2,
			MaxPages:   20,
		},
		{
			Technology: "kubernetes",
			Category:   "devops_cloud",
			BaseURL:    "https://kubernetes.io/docs/",
			SeedURLs: []string{
				"https://kubernetes.io/docs/concepts/",
				"https://kubernetes.io/docs/tutorials/",
			},
			Selectors:  Selectors{Content: ".content, main", Links: ".docs-sidebar a, nav a[href*='/docs/']"},
			ValidPaths: []string{"/concepts/", "/tutorials/", "/tasks/"},
			MaxDepth:   2,
			MaxPages:   20,
			UseSitemap: true,
		},
		{
			Technology: "git",
			Category:   "tools_platforms",
			BaseURL:    "https://git-scm.com/docs/",
			SeedURLs:   []string{"https://git-scm.com/docs/gittutorial"},
			Selectors:  Selectors{Content: "#main", Links: ".sidebar a"},
			MaxDepth:   1,
			MaxPages:   20,
		},
		{
			Technology: "postgresql",
			Category:   "database_technologies",
			BaseURL:    "https://www.postgresql.org/docs/",
			SeedURLs: []string{
				"https://www.postgresql.org/docs/current/tutorial-start.html",
			},
			Selectors:  Selectors{Content: "#docContent, main", Links: ".sidebar a"},
			ValidPaths: []string{"/tutorial-", "/sql-"},
			MaxDepth:   2,
			MaxPages:   20,
		},
	}
}

// DefaultRepos returns the built-in GitHub repository table.
func DefaultRepos() []RepoDescriptor {
	return []RepoDescriptor{
		{
			Owner:      "facebook",
			Repo:       "react",
			Technology: "react",
			Category:   "frontend",
			Paths: []string{
				"README.md",
				"docs/",
				"packages/react/README.md",
				"packages/react-dom/README.md",
			},
			MaxDepth: 1,
		},
		{
			Owner:      "microsoft",
			Repo:       "TypeScript",
			Technology: "typescript",
			Category:   "programming_language",
			Paths:      []string{"README.md", "doc/"},
			MaxDepth:   1,
		},
		{
			Owner:      "docker",
			Repo:       "docs",
			Technology: "docker",
			Category:   "devops",
			Paths:      []string{"README.md", "content/get-started/", "content/guides/"},
			MaxDepth:   1,
		},
		{
			Owner:      "github",
			Repo:       "gitignore",
			Technology: "gitignore",
			Category:   "tools",
			Paths:      []string{"README.md", "*.gitignore"},
			MaxDepth:   1,
		},
	}
}
