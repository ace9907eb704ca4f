package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/shared"
	"golang.org/x/time/rate"
)

// HTTPSource fetches provider paths below a base URL.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPSource creates a rate-limited source. A nil client uses one with the configured timeout.
func NewHTTPSource(cfg shared.ProviderConfig, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &HTTPSource{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(limit, max(cfg.Burst, 1)),
	}
}

// Fetch performs a GET request for path and returns the body.
func (h *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTimeout, err)
	}

	fullURL := h.baseURL + "/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d for %s", shared.ErrAPIRequest, resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}
	return body, nil
}

// DirSource reads provider paths from a local open-data checkout.
type DirSource struct {
	root string
}

func NewDirSource(root string) *DirSource { return &DirSource{root: root} }

func (d *DirSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(path)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return body, nil
}

// CachedSource serves payloads from a [Cache], falling back to the wrapped [Source] on a miss.
//
// Failing to store a fetched payload is logged and the payload is still returned.
type CachedSource struct {
	source Source
	cache  Cache
	logger *log.Logger
}

func NewCachedSource(source Source, cache Cache, logger *log.Logger) *CachedSource {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CachedSource{source: source, cache: cache, logger: logger}
}

func (c *CachedSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	kind := kindOf(path)

	body, err := c.cache.Lookup(kind, path)
	if err == nil {
		c.logger.Debug("cache hit", "path", path)
		return body, nil
	}
	if !errors.Is(err, shared.ErrCacheMiss) {
		c.logger.Warn("cache lookup failed", "path", path, "error", err)
	}

	body, err = c.source.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Store(kind, path, body); err != nil {
		c.logger.Warn("failed to cache payload", "path", path, "error", err)
	}
	return body, nil
}

// NewSource builds the source described by cfg: a [DirSource] when a data directory is set, an
// [HTTPSource] otherwise, wrapped in a [CachedSource] when cache is non-nil.
func NewSource(cfg shared.ProviderConfig, cache Cache, logger *log.Logger) Source {
	var source Source
	if cfg.DataDir != "" {
		source = NewDirSource(cfg.DataDir)
	} else {
		source = NewHTTPSource(cfg, nil)
	}

	if cache != nil {
		return NewCachedSource(source, cache, logger)
	}
	return source
}
