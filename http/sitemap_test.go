package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	lexhttp "github.com/fwojciec/lexdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlsetXML(urls ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, u := range urls {
		body += "<url><loc>" + u + "</loc></url>"
	}
	return body + "</urlset>"
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemap listed in robots.txt", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-sitemap.xml\n", srv.URL)
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/docs/a", srv.URL+"/docs/b"))
		})

		s := lexhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, []string{srv.URL + "/docs/a", srv.URL + "/docs/b"}, urls)
	})

	t.Run("falls back to sitemap.xml when robots.txt is missing", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/docs/page"))
		})

		s := lexhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, []string{srv.URL + "/docs/page"}, urls)
	})

	t.Run("follows sitemap index recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex><sitemap><loc>%s/child.xml</loc></sitemap></sitemapindex>`, srv.URL)
		})
		mux.HandleFunc("/child.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/docs/from-child"))
		})

		s := lexhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, []string{srv.URL + "/docs/from-child"}, urls)
	})

	t.Run("filters URLs by base path prefix", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(
				srv.URL+"/docs/keep",
				srv.URL+"/blog/drop",
			))
		})

		s := lexhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/docs/")
		require.NoError(t, err)

		assert.Equal(t, []string{srv.URL + "/docs/keep"}, urls)
	})

	t.Run("returns empty slice when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := lexhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Empty(t, urls)
		assert.NotNil(t, urls)
	})
}
