package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/stratos/internal/shared"
	tu "github.com/desertthunder/stratos/internal/testing"
)

type memoryCache struct {
	entries  map[string][]byte
	stores   int
	storeErr error
}

func newMemoryCache() *memoryCache { return &memoryCache{entries: make(map[string][]byte)} }

func (m *memoryCache) Lookup(kind, key string) ([]byte, error) {
	body, ok := m.entries[kind+"|"+key]
	if !ok {
		return nil, shared.ErrCacheMiss
	}
	return body, nil
}

func (m *memoryCache) Store(kind, key string, body []byte) error {
	m.stores++
	if m.storeErr != nil {
		return m.storeErr
	}
	m.entries[kind+"|"+key] = body
	return nil
}

type countingSource struct {
	bodies map[string][]byte
	calls  int
}

func (c *countingSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	c.calls++
	body, ok := c.bodies[path]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return body, nil
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/events/1.json":
			w.Write([]byte(`[{"id":"a"}]`))
		case "/data/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := shared.ProviderConfig{BaseURL: server.URL + "/data/", RequestsPerSecond: 100, Burst: 5, TimeoutSeconds: 5}
	source := NewHTTPSource(cfg, server.Client())

	t.Run("fetches body", func(t *testing.T) {
		body, err := source.Fetch(context.Background(), EventsPath(1))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(body) != `[{"id":"a"}]` {
			t.Errorf("unexpected body %q", body)
		}
	})

	t.Run("404 is not found", func(t *testing.T) {
		_, err := source.Fetch(context.Background(), ThreeSixtyPath(1))
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		_, err := source.Fetch(context.Background(), "broken.json")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("expected status in error, got %v", err)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		_, err := NewHTTPSource(cfg, client).Fetch(context.Background(), EventsPath(1))
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("body read error", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
		rt := tu.NewMockRoundTripper(resp, nil)
		_, err := NewHTTPSource(cfg, &http.Client{Transport: rt}).Fetch(context.Background(), EventsPath(1))
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if len(rt.Requests) != 1 || rt.Requests[0].URL.Path != "/data/events/1.json" {
			t.Errorf("unexpected requests %v", rt.Requests)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		limited := NewHTTPSource(shared.ProviderConfig{BaseURL: server.URL, RequestsPerSecond: 0.001, Burst: 1}, server.Client())
		if _, err := limited.Fetch(context.Background(), "data/events/1.json"); err != nil {
			t.Fatalf("expected first request within burst, got %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := limited.Fetch(ctx, "data/events/1.json")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected the cancellation to stay in the chain, got %v", err)
		}
	})
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "events"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "events", "7.json"), []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewDirSource(root)

	body, err := source.Fetch(context.Background(), EventsPath(7))
	if err != nil || string(body) != "[]" {
		t.Errorf("expected [] and no error, got %q, %v", body, err)
	}

	if _, err := source.Fetch(context.Background(), EventsPath(8)); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCachedSource(t *testing.T) {
	t.Run("miss then hit", func(t *testing.T) {
		inner := &countingSource{bodies: map[string][]byte{EventsPath(1): []byte(`[]`)}}
		cache := newMemoryCache()
		source := NewCachedSource(inner, cache, nil)

		for range 3 {
			if _, err := source.Fetch(context.Background(), EventsPath(1)); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}
		if inner.calls != 1 {
			t.Errorf("expected 1 upstream fetch, got %d", inner.calls)
		}
		if _, ok := cache.entries[KindEvents+"|"+EventsPath(1)]; !ok {
			t.Error("expected the payload stored under the events kind")
		}
	})

	t.Run("upstream errors are not cached", func(t *testing.T) {
		inner := &countingSource{}
		cache := newMemoryCache()
		source := NewCachedSource(inner, cache, nil)

		if _, err := source.Fetch(context.Background(), ThreeSixtyPath(2)); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if cache.stores != 0 {
			t.Errorf("expected no store, got %d", cache.stores)
		}
	})

	t.Run("store failure still returns payload", func(t *testing.T) {
		inner := &countingSource{bodies: map[string][]byte{MatchesPath(43, 106): []byte(`[]`)}}
		cache := newMemoryCache()
		cache.storeErr = errors.New("disk full")

		body, err := NewCachedSource(inner, cache, nil).Fetch(context.Background(), MatchesPath(43, 106))
		if err != nil || string(body) != "[]" {
			t.Errorf("expected payload despite store failure, got %q, %v", body, err)
		}
	})
}

func TestNewSource(t *testing.T) {
	if _, ok := NewSource(shared.ProviderConfig{DataDir: t.TempDir()}, nil, nil).(*DirSource); !ok {
		t.Error("expected a DirSource when a data directory is configured")
	}
	if _, ok := NewSource(shared.ProviderConfig{BaseURL: "http://localhost"}, nil, nil).(*HTTPSource); !ok {
		t.Error("expected an HTTPSource without a data directory")
	}
	if _, ok := NewSource(shared.ProviderConfig{BaseURL: "http://localhost"}, newMemoryCache(), nil).(*CachedSource); !ok {
		t.Error("expected a CachedSource when a cache is given")
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]string{
		MatchesPath(43, 106): KindMatches,
		EventsPath(1):        KindEvents,
		ThreeSixtyPath(1):    KindThreeSixty,
		"/events/1.json":     KindEvents,
	}
	for path, want := range tests {
		if got := kindOf(path); got != want {
			t.Errorf("kindOf(%q): expected %q, got %q", path, want, got)
		}
	}
}
