package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/kkennyy/call-what-ah/internal/cache"
	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/util"
	"github.com/kkennyy/call-what-ah/internal/worker"
)

const (
	linkMaxRetries = 3
	cacheNamespace = "link"
	staleAfterDays = 365
)

// linkBackoff is the wait before retry attempt+1 (injectable for tests)
var linkBackoff = func(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// LinkChecker fetches cited pages and reports whether they are alive and
// still carry the cited title
type LinkChecker struct {
	httpClient *http.Client
	authority  *AuthorityClassifier
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
	workers    int
	userAgent  string
	maxBytes   int64
	logger     *zap.Logger
}

// LinkCheckerOptions configures a LinkChecker
type LinkCheckerOptions struct {
	HTTP         model.HTTPConfig
	RateLimiting model.RateLimitConfig
	Authority    *model.AuthorityConfig
	Workers      int
	Cache        cache.Cache // nil disables caching
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

// NewLinkChecker creates a link checker
func NewLinkChecker(opts LinkCheckerOptions) *LinkChecker {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	maxBytes := opts.HTTP.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	client := &http.Client{
		Timeout: opts.HTTP.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(opts.HTTP.HTTPProxy, opts.HTTP.HTTPSProxy, opts.HTTP.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("stopped after 5 redirects")
			}
			return nil
		},
	}

	lc := &LinkChecker{
		httpClient: client,
		authority:  NewAuthorityClassifier(opts.Authority),
		limiter:    worker.NewLimiter(opts.RateLimiting.RequestsPerSecond, opts.RateLimiting.BurstSize),
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		workers:    opts.Workers,
		userAgent:  opts.HTTP.UserAgent,
		maxBytes:   maxBytes,
		logger:     opts.Logger,
	}
	if opts.HTTP.RespectRobots {
		lc.robots = util.NewRobotsChecker(opts.HTTP.UserAgent, client, opts.HTTP.Timeout)
	}
	return lc
}

type linkJob struct {
	checker *LinkChecker
	source  model.Source
}

type linkResult struct {
	check model.LinkCheck
}

func (r *linkResult) GetError() error {
	if r.check.Error != "" {
		return fmt.Errorf("%s", r.check.Error)
	}
	return nil
}

func (j *linkJob) Execute(ctx context.Context) worker.Result {
	return &linkResult{check: j.checker.CheckOne(ctx, j.source)}
}

// Check checks every distinct source URL concurrently. Results follow the
// order of first appearance.
func (c *LinkChecker) Check(ctx context.Context, sources []model.Source) []model.LinkCheck {
	seen := make(map[string]bool)
	jobs := make([]worker.Job, 0, len(sources))
	for _, s := range sources {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		jobs = append(jobs, &linkJob{checker: c, source: s})
	}

	results := worker.Run(ctx, c.workers, jobs)
	checks := make([]model.LinkCheck, 0, len(results))
	dead := 0
	for _, r := range results {
		check := r.(*linkResult).check
		if check.IsDead {
			dead++
		}
		checks = append(checks, check)
	}
	c.logger.Info("link check complete", zap.Int("urls", len(checks)), zap.Int("dead", dead))
	return checks
}

// CheckOne checks a single source, using the cache when configured
func (c *LinkChecker) CheckOne(ctx context.Context, source model.Source) model.LinkCheck {
	key := cache.Key(cacheNamespace, source.URL+"\x00"+source.Title)
	if c.cache != nil {
		var cached model.LinkCheck
		if cache.GetJSON(c.cache, key, &cached) {
			c.logger.Debug("link check cache hit", zap.String("url", source.URL))
			return cached
		}
	}

	check := c.checkWithRetry(ctx, source)

	if c.cache != nil && !isRetryableCheck(check) && ctx.Err() == nil {
		if err := cache.SetJSON(c.cache, key, check, c.cacheTTL); err != nil {
			c.logger.Debug("link check cache write failed", zap.Error(err))
		}
	}
	return check
}

func (c *LinkChecker) checkWithRetry(ctx context.Context, source model.Source) model.LinkCheck {
	var check model.LinkCheck
	for attempt := 0; attempt < linkMaxRetries; attempt++ {
		check = c.checkSingle(ctx, source)
		if !isRetryableCheck(check) || ctx.Err() != nil {
			return check
		}
		if attempt < linkMaxRetries-1 {
			c.logger.Debug("retrying link check", zap.String("url", source.URL), zap.Int("attempt", attempt+1))
			select {
			case <-ctx.Done():
				return check
			case <-time.After(linkBackoff(attempt)):
			}
		}
	}
	return check
}

func (c *LinkChecker) checkSingle(ctx context.Context, source model.Source) model.LinkCheck {
	check := model.LinkCheck{
		URL:       source.URL,
		Authority: c.authority.Classify(source.URL),
	}

	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, source.URL)
		if err != nil {
			check.Error = err.Error()
			check.IsDead = true
			return check
		}
		if !allowed {
			check.RobotsBlocked = true
			return check
		}
		if delay > 0 {
			if host, err := hostOf(source.URL); err == nil {
				c.limiter.SetHostRate(host, 1/delay.Seconds(), 1)
			}
		}
	}

	if err := c.limiter.Wait(ctx, source.URL); err != nil {
		check.Error = fmt.Sprintf("rate limit: %v", err)
		return check
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		check.Error = fmt.Sprintf("create request: %v", err)
		check.IsDead = true
		return check
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		check.Error = fmt.Sprintf("request failed: %v", err)
		check.IsDead = true
		return check
	}
	defer func() { _ = resp.Body.Close() }()

	check.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		check.IsAccessible = true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		check.IsDead = true
	}

	if final := resp.Request.URL.String(); final != source.URL {
		check.RedirectURL = final
	}

	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			check.LastModified = &t
			age := int(time.Since(t).Hours() / 24)
			check.Age = &age
			check.IsStale = age > staleAfterDays
		}
	}

	if check.IsAccessible && strings.Contains(resp.Header.Get("Content-Type"), "html") {
		check.PageTitle = ExtractTitle(io.LimitReader(resp.Body, c.maxBytes))
		check.TitleMatches = TitleMatches(check.PageTitle, source.Title)
	}
	return check
}

// ExtractTitle returns the text of the first <title> element
func ExtractTitle(r io.Reader) string {
	z := html.NewTokenizer(r)
	inTitle := false
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inTitle && string(name) == "title" {
				return strings.Join(strings.Fields(b.String()), " ")
			}
		case html.TextToken:
			if inTitle {
				b.Write(z.Text())
			}
		}
	}
}

// TitleMatches reports whether either title contains the other, ignoring
// case and whitespace. An empty cited title never matches.
func TitleMatches(pageTitle, citedTitle string) bool {
	page := normalizeTitle(pageTitle)
	cited := normalizeTitle(citedTitle)
	if page == "" || cited == "" {
		return false
	}
	return strings.Contains(page, cited) || strings.Contains(cited, page)
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func isRetryableCheck(check model.LinkCheck) bool {
	if check.StatusCode >= 500 && check.StatusCode < 600 {
		return true
	}
	if check.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if check.Error != "" {
		s := strings.ToLower(check.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	return strings.ToLower(parsed.Hostname()), nil
}
