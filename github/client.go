// Package github fetches documentation files from GitHub repositories
// through the REST API, pacing requests against the account's rate quota.
package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout for API calls.
const DefaultTimeout = 30 * time.Second

// NewClient creates a go-github client. With a token the client
// authenticates via OAuth2; without one it makes anonymous requests
// against the much smaller unauthenticated quota.
func NewClient(ctx context.Context, token string) *gh.Client {
	if token == "" {
		return gh.NewClient(nil)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return gh.NewClient(tc)
}
