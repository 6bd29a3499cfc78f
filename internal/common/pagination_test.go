package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=3&limit=10", nil)
	page, perPage := ParsePagination(req, 20)
	require.Equal(t, 3, page)
	require.Equal(t, 10, perPage)

	req = httptest.NewRequest(http.MethodGet, "/products?page=-1&limit=abc", nil)
	page, perPage = ParsePagination(req, 20)
	require.Equal(t, 1, page)
	require.Equal(t, 20, perPage)
}

func TestPageSlice(t *testing.T) {
	start, end := PageSlice(10, 2, 4)
	require.Equal(t, 4, start)
	require.Equal(t, 8, end)

	start, end = PageSlice(10, 4, 4)
	require.Equal(t, 10, start)
	require.Equal(t, 10, end)

	start, end = PageSlice(10, 0, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 10, end)
}

func TestQuantityOrMin(t *testing.T) {
	require.Equal(t, 5, QuantityOrMin("5", 1))
	require.Equal(t, 1, QuantityOrMin("0", 1))
	require.Equal(t, 1, QuantityOrMin("junk", 1))
	require.Equal(t, 1, QuantityOrMin("", 1))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", ClientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	require.Equal(t, "198.51.100.2", ClientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.9:4455"
	require.Equal(t, "192.0.2.9", ClientIP(req))
}
