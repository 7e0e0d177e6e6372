package github

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/lexdoc"
	gh "github.com/google/go-github/v80/github"
)

// Quota thresholds below which fetching pauses. The aggressive mode runs
// the quota closer to empty in exchange for throughput.
const (
	quotaThresholdNormal     = 10
	quotaThresholdAggressive = 5
)

// Cooldown lengths after a rate-limited response. Anonymous quota recovers
// much slower, so the anonymous cooldown is longer.
const (
	cooldownAuthenticated = 30 * time.Second
	cooldownAnonymous     = 60 * time.Second
)

// RateBudget guards one GitHub account's API quota. It answers whether a
// request may proceed and how long to pause after a rate-limited response.
// The quota probe is serialized: the quota reflects one external account,
// so concurrent traversals must share one RateBudget.
type RateBudget struct {
	client     *gh.Client
	hasToken   bool
	aggressive bool

	mu sync.Mutex
}

// NewRateBudget creates a RateBudget over the given client. hasToken
// selects the cooldown length; aggressive selects the quota threshold.
func NewRateBudget(client *gh.Client, hasToken, aggressive bool) *RateBudget {
	return &RateBudget{
		client:     client,
		hasToken:   hasToken,
		aggressive: aggressive,
	}
}

// Check probes the remaining core quota and reports whether a request may
// proceed. A failed probe reports true: the subsequent request will surface
// the real error, and stalling on a broken probe would halt fetching for
// nothing.
func (b *RateBudget) Check(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	limits, _, err := b.client.RateLimit.Get(ctx)
	if err != nil {
		return true
	}

	threshold := quotaThresholdNormal
	if b.aggressive {
		threshold = quotaThresholdAggressive
	}
	return limits.GetCore().Remaining > threshold
}

// Backoff returns the pause owed when the quota is low or a rate-limited
// response arrived.
func (b *RateBudget) Backoff() time.Duration {
	if b.hasToken {
		return cooldownAuthenticated
	}
	return cooldownAnonymous
}

// Penalty returns the cooldown owed after a failed call: the full backoff
// for rate-limited errors, zero for everything else (forbidden and
// not-found responses don't consume quota worth protecting).
func (b *RateBudget) Penalty(err error) time.Duration {
	if lexdoc.ErrorCode(err) == lexdoc.ERATELIMIT {
		return b.Backoff()
	}
	return 0
}

// CoolDown pauses for d, returning early if the context is canceled.
func (b *RateBudget) CoolDown(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
