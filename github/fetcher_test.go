package github_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/lexdoc"
	lexgithub "github.com/fwojciec/lexdoc/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readmeText = "Getting started: install the package, then follow the quickstart guide to configure the service."

func fileJSON(name, path, content string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	return fmt.Sprintf(`{"type":"file","name":%q,"path":%q,"encoding":"base64","content":%q,"html_url":"https://github.com/o/r/blob/main/%s"}`,
		name, path, encoded, path)
}

func entryJSON(typ, name, path string) string {
	return fmt.Sprintf(`{"type":%q,"name":%q,"path":%q}`, typ, name, path)
}

func testRepoDescriptor(paths ...string) lexdoc.RepoDescriptor {
	return lexdoc.RepoDescriptor{
		Owner:      "o",
		Repo:       "r",
		Technology: "react",
		Category:   "frontend",
		Paths:      paths,
		MaxDepth:   1,
	}
}

func TestRepoFetcher_FetchRepo(t *testing.T) {
	t.Parallel()

	t.Run("fetches a single file into a tagged document", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("README.md", "README.md", readmeText))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("README.md"))
		require.NoError(t, err)

		require.Len(t, docs, 1)
		doc := docs[0]
		assert.Equal(t, "README.md", doc.Title)
		assert.Equal(t, "README.md", doc.FilePath)
		assert.Equal(t, "o/r", doc.Repo)
		assert.Equal(t, readmeText, doc.Content)
		assert.Equal(t, lexdoc.ContentRepoDoc, doc.ContentType)
		assert.Equal(t, lexdoc.FormatMarkdown, doc.Format)
		assert.Equal(t, "getting_started", doc.ProfessionalContext)
		assert.NotEmpty(t, doc.ProficiencyLevel)
		assert.NotEmpty(t, doc.ContentHash)
	})

	t.Run("walks a directory fetching only valuable files", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/docs", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "[%s,%s]",
				entryJSON("file", "intro.md", "docs/intro.md"),
				entryJSON("file", "bundle.min.js", "docs/bundle.min.js"))
		})
		mux.HandleFunc("/repos/o/r/contents/docs/intro.md", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("intro.md", "docs/intro.md", readmeText))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("docs/"))
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "docs/intro.md", docs[0].FilePath)
	})

	t.Run("recurses into subdirectories up to max depth", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/docs", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "[%s]", entryJSON("dir", "advanced", "docs/advanced"))
		})
		mux.HandleFunc("/repos/o/r/contents/docs/advanced", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "[%s,%s]",
				entryJSON("file", "tuning.md", "docs/advanced/tuning.md"),
				entryJSON("dir", "deeper", "docs/advanced/deeper"))
		})
		mux.HandleFunc("/repos/o/r/contents/docs/advanced/tuning.md", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("tuning.md", "docs/advanced/tuning.md", readmeText))
		})
		mux.HandleFunc("/repos/o/r/contents/docs/advanced/deeper", func(w http.ResponseWriter, r *http.Request) {
			t.Error("deeper directory is beyond maxDepth and must not be listed")
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("docs/"))
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "docs/advanced/tuning.md", docs[0].FilePath)
	})

	t.Run("fetches root files matching a suffix pattern", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "[%s,%s,%s]",
				entryJSON("file", "Go.gitignore", "Go.gitignore"),
				entryJSON("file", "Node.gitignore", "Node.gitignore"),
				entryJSON("file", "unrelated.xyz", "unrelated.xyz"))
		})
		mux.HandleFunc("/repos/o/r/contents/Go.gitignore", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("Go.gitignore", "Go.gitignore", "bin/\nvendor/\n*.test\n"))
		})
		mux.HandleFunc("/repos/o/r/contents/Node.gitignore", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("Node.gitignore", "Node.gitignore", "node_modules/\ndist/\n"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("*.gitignore"))
		require.NoError(t, err)

		require.Len(t, docs, 2)
		assert.Equal(t, "Go.gitignore", docs[0].FilePath)
		assert.Equal(t, "Node.gitignore", docs[1].FilePath)
	})

	t.Run("skips missing files without failing the traversal", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/missing.md", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		})
		mux.HandleFunc("/repos/o/r/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("README.md", "README.md", readmeText))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("missing.md", "README.md"))
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "README.md", docs[0].FilePath)
	})

	t.Run("rejects near-empty files", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/empty.md", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fileJSON("empty.md", "empty.md", "stub"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("empty.md"))
		require.NoError(t, err)

		assert.Empty(t, docs)
	})

	t.Run("does not fetch the same path twice", func(t *testing.T) {
		t.Parallel()

		calls := 0
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/o/r/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
			calls++
			fmt.Fprint(w, fileJSON("README.md", "README.md", readmeText))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := &lexgithub.RepoFetcher{Client: apiClient(t, srv)}
		docs, err := f.FetchRepo(context.Background(), testRepoDescriptor("README.md", "README.md"))
		require.NoError(t, err)

		assert.Len(t, docs, 1)
		assert.Equal(t, 1, calls)
	})
}

func TestValuableFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		valuable bool
	}{
		{"README.md", true},
		{"notes.rst", true},
		{"CHANGELOG.txt", true},
		{"intro.adoc", true},
		{"Dockerfile", true},
		{"docker-compose.yml", true},
		{"package.json", true},
		{"tsconfig.json", true},
		{"LICENSE", true},
		{"CONTRIBUTING", true},
		{"user-guide.html", true},
		{"api_client.py", true},
		{"bundle.min.js", false},
		{"main.test", false},
		{"logo.svg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valuable, lexgithub.ValuableFile(tt.name))
		})
	}
}

func TestFormatForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want lexdoc.Format
	}{
		{"README.md", lexdoc.FormatMarkdown},
		{"guide.rst", lexdoc.FormatMarkdown},
		{"index.ts", lexdoc.FormatCode},
		{"app.py", lexdoc.FormatCode},
		{"config.yaml", lexdoc.FormatConfig},
		{"package.json", lexdoc.FormatConfig},
		{"Dockerfile", lexdoc.FormatConfig},
		{"NOTICE", lexdoc.FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lexgithub.FormatForFile(tt.name))
		})
	}
}
