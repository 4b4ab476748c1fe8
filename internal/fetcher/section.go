package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/resilience"
	"github.com/sells-group/comparison-cli/internal/viewcache"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// ClientOptions configures a SectionClient.
type ClientOptions struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64

	// Cache is optional. Without it every Fetch goes to the API.
	Cache viewcache.Cache

	// Policy overrides the retry policy. Zero value uses resilience.DefaultPolicy.
	Policy resilience.Policy

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// SectionClient fetches section snapshots from the comparison data API.
// Concurrent identical requests share one upstream call.
type SectionClient struct {
	base      *url.URL
	userAgent string
	client    *http.Client
	cache     viewcache.Cache
	policy    resilience.Policy
	limiter   *AdaptiveLimiter
	breaker   *resilience.Breaker
	group     singleflight.Group

	// flightTimeout bounds a shared fetch, which runs detached from any
	// single caller's context.
	flightTimeout time.Duration
	now           func() time.Time
}

// NewSectionClient validates opts and builds a client.
func NewSectionClient(opts ClientOptions) (*SectionClient, error) {
	if opts.BaseURL == "" {
		return nil, eris.New("fetcher: base url is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: parse base url %q", opts.BaseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, eris.Errorf("fetcher: base url %q must be http or https", opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "comparison-cli/1.0"
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}

	policy := opts.Policy
	if policy.Attempts == 0 {
		policy = resilience.DefaultPolicy()
	}
	policy = policy.WithAttempts(opts.MaxRetries)
	if policy.OnRetry == nil {
		policy.OnRetry = resilience.LogRetry("fetch section")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &SectionClient{
		base:      base,
		userAgent: opts.UserAgent,
		client:    client,
		cache:     opts.Cache,
		policy:    policy,
		limiter:   NewAdaptiveLimiter(limit, max(int(opts.RatePerSec), 1)),
		breaker:   resilience.NewBreaker(base.Host, 5, 30*time.Second),

		flightTimeout: opts.Timeout * time.Duration(max(policy.Attempts, 1)),
		now:           time.Now,
	}, nil
}

// Fetch returns the snapshot for req, from cache when fresh. Callers asking
// for the same key while a fetch is in flight wait on that fetch; each one
// stops waiting when its own ctx is done without cancelling the others.
func (c *SectionClient) Fetch(ctx context.Context, req SectionRequest) (*model.ViewModel, error) {
	if req.SectionID == "" {
		return nil, eris.New("fetcher: section id is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrapf(err, "fetcher: section %s", req.SectionID)
	}
	key := viewcache.Key(req.SectionID, req.PlanID, req.CompetitorIDs)

	if c.cache != nil {
		e, err := c.cache.Get(ctx, key)
		if err != nil {
			zap.L().Warn("fetcher: cache read failed", zap.String("key", key), zap.Error(err))
		} else if e != nil {
			return e.ViewModel, nil
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout)
		defer cancel()
		return c.fetchAndStore(fctx, key, req)
	})

	select {
	case <-ctx.Done():
		return nil, eris.Wrapf(ctx.Err(), "fetcher: section %s", req.SectionID)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			zap.L().Debug("fetcher: shared in-flight fetch", zap.String("key", key))
		}
		return res.Val.(*model.ViewModel), nil
	}
}

func (c *SectionClient) fetchAndStore(ctx context.Context, key string, req SectionRequest) (*model.ViewModel, error) {
	if err := c.breaker.Allow(); err != nil {
		return nil, eris.Wrapf(err, "fetcher: section %s", req.SectionID)
	}
	vm, err := resilience.DoVal(ctx, c.policy, func(ctx context.Context) (*model.ViewModel, error) {
		return c.get(ctx, req)
	})
	c.breaker.Record(err)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: section %s", req.SectionID)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, &viewcache.Entry{ViewModel: vm, FetchedAt: c.now().UTC()}); err != nil {
			zap.L().Warn("fetcher: cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return vm, nil
}

// get performs one HTTP round trip.
func (c *SectionClient) get(ctx context.Context, req SectionRequest) (*model.ViewModel, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rate limiter wait")
	}

	u := c.sectionURL(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.OnRateLimit()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &resilience.StatusError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var vm model.ViewModel
	if err := json.NewDecoder(resp.Body).Decode(&vm); err != nil {
		return nil, eris.Wrap(err, "decode section")
	}
	c.limiter.OnSuccess()
	return &vm, nil
}

// sectionURL builds the section-data request. Plan and competitor selection
// are applied locally, so only the section and organization are sent.
func (c *SectionClient) sectionURL(req SectionRequest) string {
	u := *c.base
	u.Path = c.base.Path + "/api/comparison/section-data"
	u.RawPath = ""

	q := url.Values{}
	q.Set("section_id", req.SectionID)
	if req.OrganizationID != "" {
		q.Set("organization_id", req.OrganizationID)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
