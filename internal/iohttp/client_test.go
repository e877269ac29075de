package iohttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gnames/gnflora/internal/iohttp"
	"github.com/gnames/gnflora/pkg/config"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptAPIBaseURL(baseURL),
		config.OptAPIVersion("3.0"),
		config.OptAPIPageSize(2),
		config.OptAPIRetryAttempts(3),
	})
	return cfg
}

func TestFetch_SinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3.0", r.URL.Query().Get("v"))
			json.NewEncoder(w).Encode([]flora.Row{
				{"taxon_ID": 1.0},
			})
		}))
	defer srv.Close()

	client := iohttp.New(testConfig(srv.URL), nil)
	rows, err := client.Fetch(context.Background(), "taxonomy", url.Values{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestFetch_Pagination(t *testing.T) {
	// Three rows with a page size of two: two pages, the second short.
	all := []flora.Row{
		{"taxon_ID": 1.0}, {"taxon_ID": 2.0}, {"taxon_ID": 3.0},
	}
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			start, _ := strconv.Atoi(r.URL.Query().Get("startat"))
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			end := min(start+limit, len(all))
			if start > len(all) {
				start = len(all)
			}
			json.NewEncoder(w).Encode(all[start:end])
		}))
	defer srv.Close()

	client := iohttp.New(testConfig(srv.URL), nil)
	rows, err := client.Fetch(context.Background(), "taxonomy", url.Values{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			json.NewEncoder(w).Encode([]flora.Row{{"taxon_ID": 1.0}})
		}))
	defer srv.Close()

	client := iohttp.New(testConfig(srv.URL), nil)
	rows, err := client.Fetch(context.Background(), "taxonomy", url.Values{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
	defer srv.Close()

	client := iohttp.New(testConfig(srv.URL), nil)
	_, err := client.Fetch(context.Background(), "nosuch", url.Values{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
	defer srv.Close()

	client := iohttp.New(testConfig(srv.URL), nil)
	_, err := client.Fetch(context.Background(), "taxonomy", url.Values{})
	require.Error(t, err)
}

// fakeCache is an in-memory iohttp.Cache.
type fakeCache struct {
	data map[string][]flora.Row
	sets int
}

func (c *fakeCache) Get(key string, v any) (bool, error) {
	rows, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(v.(*[]flora.Row)) = rows
	return true, nil
}

func (c *fakeCache) Set(key string, v any) error {
	c.sets++
	c.data[key] = v.([]flora.Row)
	return nil
}

func TestFetch_UsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			json.NewEncoder(w).Encode([]flora.Row{{"taxon_ID": 1.0}})
		}))
	defer srv.Close()

	cache := &fakeCache{data: make(map[string][]flora.Row)}
	client := iohttp.New(testConfig(srv.URL), cache)

	rows, err := client.Fetch(context.Background(), "taxonomy", url.Values{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, cache.sets)

	// Second fetch is served from the cache.
	rows, err = client.Fetch(context.Background(), "taxonomy", url.Values{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(1), calls.Load())
}
