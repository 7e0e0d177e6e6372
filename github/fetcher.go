package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/bloom"
	gh "github.com/google/go-github/v80/github"
)

// File budgets per repository descriptor.
const (
	maxFilesNormal     = 20
	maxFilesAggressive = 50
)

// Directory fan-out: how many entries of one directory listing are acted on.
const (
	dirFanoutNormal     = 8
	dirFanoutAggressive = 15
)

// minFileLength rejects effectively-empty files.
const minFileLength = 10

// docExtensions are file extensions treated as documentation.
var docExtensions = map[string]struct{}{
	".md": {}, ".rst": {}, ".txt": {}, ".adoc": {}, ".asciidoc": {},
}

// configFilenames are exact filenames treated as valuable configuration.
var configFilenames = map[string]struct{}{
	"dockerfile":         {},
	"docker-compose.yml": {},
	"package.json":       {},
	"tsconfig.json":      {},
}

// docKeywords mark a filename as documentation-related regardless of extension.
var docKeywords = []string{
	"readme", "license", "contributing", "docs", "guide", "tutorial",
	"getting-started", "quickstart", "api", "reference", "manual",
}

// RepoFetcher fetches documentation files from GitHub repositories. Each
// FetchRepo call is one bounded traversal: its own visited set, its own
// file budget, shared quota through Budget.
type RepoFetcher struct {
	Client *gh.Client
	Budget *RateBudget

	// Aggressive raises the file budget and directory fan-out.
	Aggressive bool

	// Downloader fetches raw file content when the contents API returns
	// none inline. Defaults to http.DefaultClient.
	Downloader *http.Client

	Logger *slog.Logger
}

// walkState is the per-traversal bookkeeping: produced documents, visited
// paths, and the running file count against the budget.
type walkState struct {
	docs    []*lexdoc.Document
	seen    *bloom.Filter
	fetched int
}

// FetchRepo fetches the descriptor's target paths and returns the
// documents produced. Single-file failures are logged and skipped; only an
// invalid descriptor returns an error.
func (f *RepoFetcher) FetchRepo(ctx context.Context, desc lexdoc.RepoDescriptor) ([]*lexdoc.Document, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	state := &walkState{seen: bloom.NewFilter(10000, 0.01)}

	for _, target := range desc.Paths {
		if ctx.Err() != nil {
			break
		}
		if state.fetched >= f.maxFiles() {
			break
		}
		switch {
		case strings.HasPrefix(target, "*."):
			f.fetchPattern(ctx, desc, target, state, logger)
		case strings.HasSuffix(target, "/"):
			f.walkDirectory(ctx, desc, strings.TrimSuffix(target, "/"), 0, state, logger)
		default:
			f.fetchFile(ctx, desc, target, state, logger)
		}
	}

	logger.Info("repo fetch finished", "repo", desc.FullName(), "documents", len(state.docs))
	return state.docs, nil
}

func (f *RepoFetcher) maxFiles() int {
	if f.Aggressive {
		return maxFilesAggressive
	}
	return maxFilesNormal
}

func (f *RepoFetcher) dirFanout() int {
	if f.Aggressive {
		return dirFanoutAggressive
	}
	return dirFanoutNormal
}

// pace pauses before an API call when the remaining quota is low.
func (f *RepoFetcher) pace(ctx context.Context, logger *slog.Logger) {
	if f.Budget == nil {
		return
	}
	if !f.Budget.Check(ctx) {
		backoff := f.Budget.Backoff()
		logger.Warn("quota low, cooling down", "backoff", backoff)
		_ = f.Budget.CoolDown(ctx, backoff)
	}
}

// fetchFile fetches one file and appends its document to the state.
func (f *RepoFetcher) fetchFile(ctx context.Context, desc lexdoc.RepoDescriptor, filePath string, state *walkState, logger *slog.Logger) {
	if state.fetched >= f.maxFiles() {
		return
	}
	if state.seen.TestAndAdd(desc.FullName() + "/" + filePath) {
		return
	}

	f.pace(ctx, logger)

	fileContent, _, _, err := f.Client.Repositories.GetContents(ctx, desc.Owner, desc.Repo, filePath, nil)
	if err != nil {
		f.handleFetchError(ctx, mapError(err), filePath, logger)
		return
	}
	if fileContent == nil {
		// Path turned out to be a directory.
		return
	}

	content, err := fileContent.GetContent()
	if err != nil || content == "" {
		content = f.download(ctx, fileContent.GetDownloadURL())
	}
	if len(content) < minFileLength {
		return
	}

	state.fetched++
	state.docs = append(state.docs, f.buildDocument(desc, fileContent, content))
}

// walkDirectory lists one directory and acts on up to dirFanout entries:
// valuable files are fetched, subdirectories recursed while depth allows.
func (f *RepoFetcher) walkDirectory(ctx context.Context, desc lexdoc.RepoDescriptor, dirPath string, depth int, state *walkState, logger *slog.Logger) {
	if ctx.Err() != nil || state.fetched >= f.maxFiles() {
		return
	}

	f.pace(ctx, logger)

	_, entries, _, err := f.Client.Repositories.GetContents(ctx, desc.Owner, desc.Repo, dirPath, nil)
	if err != nil {
		f.handleFetchError(ctx, mapError(err), dirPath, logger)
		return
	}

	acted := 0
	for _, entry := range entries {
		if acted >= f.dirFanout() || state.fetched >= f.maxFiles() || ctx.Err() != nil {
			break
		}
		switch entry.GetType() {
		case "file":
			if !ValuableFile(entry.GetName()) {
				continue
			}
			f.fetchFile(ctx, desc, entry.GetPath(), state, logger)
			acted++
		case "dir":
			if depth >= desc.MaxDepth {
				continue
			}
			f.walkDirectory(ctx, desc, entry.GetPath(), depth+1, state, logger)
			acted++
		}
	}
}

// fetchPattern fetches root-level files whose name matches a *.suffix pattern.
func (f *RepoFetcher) fetchPattern(ctx context.Context, desc lexdoc.RepoDescriptor, pattern string, state *walkState, logger *slog.Logger) {
	suffix := strings.TrimPrefix(pattern, "*")

	f.pace(ctx, logger)

	_, entries, _, err := f.Client.Repositories.GetContents(ctx, desc.Owner, desc.Repo, "", nil)
	if err != nil {
		f.handleFetchError(ctx, mapError(err), pattern, logger)
		return
	}

	for _, entry := range entries {
		if state.fetched >= f.maxFiles() || ctx.Err() != nil {
			break
		}
		if entry.GetType() != "file" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.GetName()), suffix) {
			continue
		}
		f.fetchFile(ctx, desc, entry.GetPath(), state, logger)
	}
}

// handleFetchError logs a failed fetch and serves any owed cooldown.
// Validation-style responses (not found, forbidden) are skipped quietly.
func (f *RepoFetcher) handleFetchError(ctx context.Context, err error, target string, logger *slog.Logger) {
	switch lexdoc.ErrorCode(err) {
	case lexdoc.ENOTFOUND, lexdoc.EFORBIDDEN:
		logger.Debug("skipping target", "target", target, "err", err)
	default:
		logger.Warn("fetch failed", "target", target, "err", err)
	}
	if f.Budget != nil {
		if penalty := f.Budget.Penalty(err); penalty > 0 {
			_ = f.Budget.CoolDown(ctx, penalty)
		}
	}
}

// download fetches raw file content from a download URL. Returns an empty
// string on any failure; the caller's length check rejects it.
func (f *RepoFetcher) download(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}

	client := f.Downloader
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(body)
}

// buildDocument turns one fetched file into a tagged document.
func (f *RepoFetcher) buildDocument(desc lexdoc.RepoDescriptor, fc *gh.RepositoryContent, content string) *lexdoc.Document {
	name := fc.GetName()

	sourceURL := fc.GetHTMLURL()
	if sourceURL == "" {
		sourceURL = fc.GetDownloadURL()
	}
	if sourceURL == "" {
		sourceURL = fmt.Sprintf("https://github.com/%s/blob/HEAD/%s", desc.FullName(), fc.GetPath())
	}

	return &lexdoc.Document{
		Title:               name,
		SourceURL:           sourceURL,
		FilePath:            fc.GetPath(),
		Repo:                desc.FullName(),
		Technology:          desc.Technology,
		Category:            desc.Category,
		ProfessionalContext: lexdoc.ClassifyContext(content, lexdoc.RepoContextTaxonomy),
		ProficiencyLevel:    lexdoc.EstimateLevelTechnical(content),
		ContentType:         lexdoc.ContentRepoDoc,
		Format:              FormatForFile(name),
		Content:             content,
		ContentHash:         fmt.Sprintf("%x", xxhash.Sum64String(content)),
		WordCount:           len(strings.Fields(content)),
		KeyTerms:            lexdoc.ExtractKeyTerms(content, lexdoc.RepoKeyTerms, 15),
		FetchedAt:           time.Now().UTC(),
	}
}

// ValuableFile reports whether a repository file is worth fetching: a
// documentation extension, a known configuration filename, or a
// documentation keyword in the name.
func ValuableFile(name string) bool {
	lower := strings.ToLower(name)

	if _, ok := docExtensions[path.Ext(lower)]; ok {
		return true
	}
	if _, ok := configFilenames[lower]; ok {
		return true
	}
	for _, kw := range docKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FormatForFile maps a filename to the document format driving chunking.
func FormatForFile(name string) lexdoc.Format {
	lower := strings.ToLower(name)
	if _, ok := configFilenames[lower]; ok {
		return lexdoc.FormatConfig
	}

	switch path.Ext(lower) {
	case ".md", ".rst", ".adoc", ".asciidoc":
		return lexdoc.FormatMarkdown
	case ".js", ".jsx", ".ts", ".tsx", ".py", ".go", ".java", ".rb", ".c", ".cpp":
		return lexdoc.FormatCode
	case ".yml", ".yaml", ".json", ".toml", ".ini":
		return lexdoc.FormatConfig
	default:
		return lexdoc.FormatPlain
	}
}

// mapError converts a go-github error into an application error.
func mapError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return lexdoc.Errorf(lexdoc.ERATELIMIT, "rate limited until %s", rateErr.Rate.Reset.Format(time.RFC3339))
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return lexdoc.Errorf(lexdoc.ERATELIMIT, "secondary rate limit: %v", err)
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return lexdoc.Errorf(lexdoc.ENOTFOUND, "not found: %s", respErr.Message)
		case http.StatusForbidden:
			return lexdoc.Errorf(lexdoc.EFORBIDDEN, "forbidden: %s", respErr.Message)
		case http.StatusTooManyRequests:
			return lexdoc.Errorf(lexdoc.ERATELIMIT, "rate limited: %s", respErr.Message)
		}
	}
	return lexdoc.Errorf(lexdoc.EUNAVAILABLE, "github api: %v", err)
}
