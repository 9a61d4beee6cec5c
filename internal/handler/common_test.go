package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTimeWindow(t *testing.T) {
	assert.True(t, validTimeWindow("09:00", "10:30"))
	assert.True(t, validTimeWindow("00:00", "23:59"))

	// Empty or inverted windows are not reservable.
	assert.False(t, validTimeWindow("10:00", "10:00"))
	assert.False(t, validTimeWindow("11:00", "10:00"))

	for _, bad := range []string{"", "9:00", "24:00", "10:60", "10-00", "10:00:00"} {
		assert.False(t, validTimeWindow(bad, "11:00"), "start %q must be rejected", bad)
	}
}

func TestGetUserIDAcceptsJWTNumericForms(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	// JWT claims decode numbers as float64; other layers may store native ints.
	for _, v := range []interface{}{float64(42), uint64(42), int64(42), int(42), "42"} {
		c.Set("user_id", v)
		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got)
	}

	c.Set("user_id", "not-a-number")
	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestPageParamsClampsBounds(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
	}

	page, size := pageParams(newCtx("/?page=3&page_size=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	page, size = pageParams(newCtx("/?page=-1&page_size=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = pageParams(newCtx("/"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}

func TestOptStr(t *testing.T) {
	assert.Nil(t, optStr(""))
	assert.Nil(t, optStr("   "))
	if got := optStr("  valor  "); assert.NotNil(t, got) {
		assert.Equal(t, "valor", *got)
	}
}
