package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkennyy/call-what-ah/internal/cache"
	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/model"
)

func init() {
	linkBackoff = func(int) time.Duration { return 0 }
}

type citedSite struct {
	server *httptest.Server
	hits   atomic.Int32
	flaky  atomic.Int32
}

func newCitedSite(t *testing.T) *citedSite {
	t.Helper()
	site := &citedSite{}
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
	})
	mux.HandleFunc("/entry", func(w http.ResponseWriter, r *http.Request) {
		site.hits.Add(1)
		assert.Equal(t, "cwah-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		_, _ = w.Write([]byte("<html><head><title>\n  教育部臺灣台語常用詞辭典 \n</title></head><body>阿伯</body></html>"))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		if site.flaky.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/private/page", func(w http.ResponseWriter, r *http.Request) {
		t.Error("robots-disallowed page was fetched")
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/entry", http.StatusMovedPermanently)
	})
	site.server = httptest.NewServer(mux)
	t.Cleanup(site.server.Close)
	return site
}

func newChecker(c cache.Cache) *LinkChecker {
	return NewLinkChecker(LinkCheckerOptions{
		HTTP: model.HTTPConfig{
			Timeout:       5 * time.Second,
			UserAgent:     "cwah-test/1.0",
			RespectRobots: true,
		},
		Workers: 2,
		Cache:   c,
	})
}

func TestLinkChecker_CheckOne(t *testing.T) {
	site := newCitedSite(t)
	checker := newChecker(nil)
	ctx := context.Background()

	ok := checker.CheckOne(ctx, model.Source{URL: site.server.URL + "/entry", Title: "教育部臺灣台語常用詞辭典"})
	assert.True(t, ok.IsAccessible)
	assert.False(t, ok.IsDead)
	assert.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Equal(t, "教育部臺灣台語常用詞辭典", ok.PageTitle)
	assert.True(t, ok.TitleMatches)
	require.NotNil(t, ok.Age)
	assert.True(t, ok.IsStale)

	gone := checker.CheckOne(ctx, model.Source{URL: site.server.URL + "/gone"})
	assert.True(t, gone.IsDead)
	assert.False(t, gone.IsAccessible)

	blocked := checker.CheckOne(ctx, model.Source{URL: site.server.URL + "/private/page"})
	assert.True(t, blocked.RobotsBlocked)
	assert.Zero(t, blocked.StatusCode)

	moved := checker.CheckOne(ctx, model.Source{URL: site.server.URL + "/moved", Title: "other dictionary"})
	assert.True(t, moved.IsAccessible)
	assert.Equal(t, site.server.URL+"/entry", moved.RedirectURL)
	assert.False(t, moved.TitleMatches)
}

func TestLinkChecker_RetriesTransientFailures(t *testing.T) {
	site := newCitedSite(t)
	checker := newChecker(nil)

	check := checker.CheckOne(context.Background(), model.Source{URL: site.server.URL + "/flaky"})
	assert.True(t, check.IsAccessible)
	assert.Equal(t, int32(3), site.flaky.Load())
}

func TestLinkChecker_CancelDuringBackoff(t *testing.T) {
	site := newCitedSite(t)
	checker := newChecker(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saved := linkBackoff
	linkBackoff = func(int) time.Duration {
		cancel()
		return time.Minute
	}
	t.Cleanup(func() { linkBackoff = saved })

	start := time.Now()
	check := checker.CheckOne(ctx, model.Source{URL: site.server.URL + "/flaky"})
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.False(t, check.IsAccessible)
	assert.Equal(t, int32(1), site.flaky.Load())
}

func TestLinkChecker_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/entry"
	server.Close()

	check := newChecker(nil).CheckOne(context.Background(), model.Source{URL: url})
	assert.True(t, check.IsDead)
	assert.NotEmpty(t, check.Error)
}

func TestLinkChecker_CheckDedupesAndCaches(t *testing.T) {
	site := newCitedSite(t)
	mem := cache.NewMemoryCache(0, time.Minute, 0)
	checker := newChecker(mem)
	ctx := context.Background()

	entry := model.Source{URL: site.server.URL + "/entry", Title: "教育部臺灣台語常用詞辭典"}
	sources := []model.Source{entry, {URL: site.server.URL + "/gone"}, entry, {URL: ""}}

	checks := checker.Check(ctx, sources)
	require.Len(t, checks, 2)
	assert.Equal(t, entry.URL, checks[0].URL)
	assert.Equal(t, site.server.URL+"/gone", checks[1].URL)
	assert.Equal(t, int32(1), site.hits.Load())

	again := checker.Check(ctx, []model.Source{entry})
	require.Len(t, again, 1)
	assert.True(t, again[0].IsAccessible)
	assert.Equal(t, int32(1), site.hits.Load(), "second check should come from cache")
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "粵語審音配詞字庫", ExtractTitle(strings.NewReader("<title>粵語審音配詞字庫</title>")))
	assert.Equal(t, "A B", ExtractTitle(strings.NewReader("<html><title> A\n\tB </title><title>C</title>")))
	assert.Equal(t, "", ExtractTitle(strings.NewReader("<p>no title</p>")))
}

func TestTitleMatches(t *testing.T) {
	assert.True(t, TitleMatches("教育部臺灣客家語常用詞辭典 - 首頁", "教育部臺灣客家語常用詞辭典"))
	assert.True(t, TitleMatches("Wiktionary", "wiktionary"))
	assert.False(t, TitleMatches("", "x"))
	assert.False(t, TitleMatches("x", ""))
	assert.False(t, TitleMatches("Home", "Singapore Chinese Cultural Centre"))
}

func TestCitations(t *testing.T) {
	bundle, err := dataset.Default()
	require.NoError(t, err)

	citations := Citations(bundle.Dialects)
	require.NotEmpty(t, citations)
	for i := 1; i < len(citations); i++ {
		prev, cur := citations[i-1], citations[i]
		assert.True(t, prev.ConceptID < cur.ConceptID ||
			(prev.ConceptID == cur.ConceptID && prev.DialectID <= cur.DialectID), "citations out of order at %d", i)
	}

	sources := UniqueSources(citations)
	assert.Less(t, len(sources), len(citations))
	seen := map[string]bool{}
	for _, s := range sources {
		assert.False(t, seen[s.URL], "duplicate %s", s.URL)
		seen[s.URL] = true
	}

	assert.Empty(t, Citations(nil))
}
