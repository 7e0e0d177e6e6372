package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/lexdoc"
	lexhttp "github.com/fwojciec/lexdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>docs</html>"))
		}))
		defer srv.Close()

		f := lexhttp.NewFetcher()
		defer f.Close()

		body, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html>docs</html>", body)
	})

	t.Run("sends a user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := lexhttp.NewFetcher(lexhttp.WithUserAgent("custom-agent/2.0"))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "custom-agent/2.0", ua)
	})

	t.Run("maps 429 to ERATELIMIT", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		f := lexhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, lexdoc.ERATELIMIT, lexdoc.ErrorCode(err))
	})

	t.Run("maps 403 to EFORBIDDEN", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		f := lexhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, lexdoc.EFORBIDDEN, lexdoc.ErrorCode(err))
	})

	t.Run("maps 404 to ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := lexhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, lexdoc.ENOTFOUND, lexdoc.ErrorCode(err))
	})

	t.Run("maps server errors to EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := lexhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, lexdoc.EUNAVAILABLE, lexdoc.ErrorCode(err))
	})
}
