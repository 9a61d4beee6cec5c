package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/config"
)

func TestPackUnpackEntryRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"items":[]}`)

	bs, err := packEntry(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := unpackEntry(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestUnpackEntryRejectsGarbage(t *testing.T) {
	for _, bad := range [][]byte{nil, {1, 2, 3}, []byte("short")} {
		_, _, _, ok := unpackEntry(bad)
		assert.False(t, ok)
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/entities")
		return c
	}
	cfg := config.CacheConfig{Prefix: "hub:cache", KeyStrategy: "route_query"}

	withQuery := cacheKey(cfg, newCtx("/v1/entities?q=robotica"))
	otherQuery := cacheKey(cfg, newCtx("/v1/entities?q=teatro"))
	assert.NotEqual(t, withQuery, otherQuery)

	// Under the route-only strategy, the query stops mattering.
	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKey(cfg, newCtx("/v1/entities?q=robotica")),
		cacheKey(cfg, newCtx("/v1/entities?q=teatro")),
	)
}

func TestNewRedisCacheDisabledPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/entities", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
