package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "http://secure.local:3129", "sutian.moe.edu.tw")

	req := &http.Request{URL: &url.URL{Scheme: "https", Host: "humanum.arts.cuhk.edu.hk"}}
	got, err := proxy(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "secure.local:3129", got.Host)

	req = &http.Request{URL: &url.URL{Scheme: "http", Host: "example.org"}}
	got, err = proxy(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "proxy.local:3128", got.Host)

	req = &http.Request{URL: &url.URL{Scheme: "https", Host: "sutian.moe.edu.tw"}}
	got, err = proxy(req)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRobotsChecker_CanFetch(t *testing.T) {
	robotsHits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits++
			_, _ = w.Write([]byte("User-agent: cwah\nDisallow: /search\nCrawl-delay: 2\n\nUser-agent: *\nDisallow:\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRobotsChecker("cwah/0.3 (+https://example.org)", nil, 5*time.Second)
	ctx := context.Background()

	allowed, delay, err := r.CanFetch(ctx, server.URL+"/search?q=伯")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 2*time.Second, delay)

	allowed, _, err = r.CanFetch(ctx, server.URL+"/entry")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, robotsHits, "robots.txt should be cached per host")
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	r := NewRobotsChecker("cwah", server.Client(), time.Second)
	allowed, _, err := r.CanFetch(context.Background(), server.URL+"/anything")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	allowed, _, err := NewRobotsChecker("cwah", nil, time.Second).CanFetch(context.Background(), addr+"/x")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNormalizeUserAgent(t *testing.T) {
	assert.Equal(t, "call-what-ah", NormalizeUserAgent("call-what-ah/0.3 (+https://github.com/kkennyy/call-what-ah)"))
	assert.Equal(t, "cwah", NormalizeUserAgent("cwah"))
	assert.Equal(t, "", NormalizeUserAgent(""))
}
