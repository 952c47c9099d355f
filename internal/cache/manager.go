package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tagnology/embed-go/internal/infrastructure/logging"
	"github.com/tagnology/embed-go/internal/manifest"
	"github.com/tagnology/embed-go/internal/product"
	"github.com/tagnology/embed-go/internal/shared/types"
)

// Fetcher retrieves the raw manifest for a product page.
type Fetcher interface {
	Fetch(ctx context.Context, productID, platform, pageURL string) (*types.Manifest, error)
}

// Metrics receives cache outcome counters.
type Metrics interface {
	CacheHit()
	CacheMiss()
	CacheCoalesced()
}

// Stats is a point-in-time snapshot of cache occupancy.
type Stats struct {
	Entries  int `json:"entries"`
	InFlight int `json:"inFlight"`
}

// Manager caches widget manifests per page URL and coalesces concurrent
// fetches for the same page into one request.
type Manager struct {
	mu       sync.Mutex
	entries  map[string]types.CacheEntry
	inflight map[string]chan struct{}

	fetcher  Fetcher
	platform string
	logger   *logging.Logger
	metrics  Metrics
}

// NewManager creates a manifest cache backed by the given fetcher.
func NewManager(fetcher Fetcher, platform string, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		entries:  make(map[string]types.CacheEntry),
		inflight: make(map[string]chan struct{}),
		fetcher:  fetcher,
		platform: platform,
		logger:   logger,
	}
}

// WithMetrics attaches outcome counters.
func (m *Manager) WithMetrics(metrics Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WidgetsForPosition returns the ordered widgets for a placement slot on
// a page. productID overrides URL-based resolution when non-empty.
//
// Errors never surface to callers: a failed or unresolvable fetch yields
// an empty list, and the next request for the page retries.
func (m *Manager) WidgetsForPosition(ctx context.Context, pageURL string, position types.Position, productID string) []types.WidgetFolder {
	m.mu.Lock()

	if entry, ok := m.entries[pageURL]; ok {
		m.mu.Unlock()
		m.countHit()
		return manifest.FilterForPosition(entry.PageInfo, position)
	}

	if ch, ok := m.inflight[pageURL]; ok {
		m.mu.Unlock()
		m.countCoalesced()
		return m.awaitAndFilter(ctx, ch, pageURL, position)
	}

	id := productID
	if id == "" {
		id, _ = product.Resolve(pageURL)
	}
	if id == "" {
		m.mu.Unlock()
		m.logger.Debug("no product id for page, skipping fetch", zap.String("page", pageURL))
		return nil
	}

	ch := make(chan struct{})
	m.inflight[pageURL] = ch
	m.mu.Unlock()
	m.countMiss()

	// The fetch is detached from the caller's context so the result
	// lands in the cache even after every waiter has left.
	go m.load(pageURL, id, ch)

	return m.awaitAndFilter(ctx, ch, pageURL, position)
}

// load runs the manifest fetch to completion and publishes the result.
func (m *Manager) load(pageURL, productID string, ch chan struct{}) {
	mf, err := m.fetcher.Fetch(context.Background(), productID, m.platform, pageURL)

	m.mu.Lock()
	if err == nil && mf != nil {
		m.entries[pageURL] = types.CacheEntry{PageInfo: mf.PageInfo, FetchedAt: time.Now()}
	}
	delete(m.inflight, pageURL)
	m.mu.Unlock()
	close(ch)

	if err != nil {
		m.logger.Warn("manifest fetch failed",
			zap.String("page", pageURL),
			zap.String("product_id", productID),
			zap.Error(err))
		return
	}
	m.logger.Debug("manifest cached",
		zap.String("page", pageURL),
		zap.Int("folders", len(mf.PageInfo)))
}

// awaitAndFilter blocks until the in-flight fetch completes, then
// re-reads the cache. A still-empty slot means the fetch failed.
func (m *Manager) awaitAndFilter(ctx context.Context, ch <-chan struct{}, pageURL string, position types.Position) []types.WidgetFolder {
	select {
	case <-ch:
	case <-ctx.Done():
		return nil
	}

	m.mu.Lock()
	entry, ok := m.entries[pageURL]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return manifest.FilterForPosition(entry.PageInfo, position)
}

// ClearPage drops the cached manifest for one page. An in-flight fetch
// is left to finish and repopulate the slot.
func (m *Manager) ClearPage(pageURL string) {
	m.mu.Lock()
	delete(m.entries, pageURL)
	m.mu.Unlock()
}

// Clear drops every cached manifest.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]types.CacheEntry)
	m.mu.Unlock()
}

// Stats reports current cache occupancy.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Entries: len(m.entries), InFlight: len(m.inflight)}
}

func (m *Manager) countHit() {
	if m.metrics != nil {
		m.metrics.CacheHit()
	}
}

func (m *Manager) countMiss() {
	if m.metrics != nil {
		m.metrics.CacheMiss()
	}
}

func (m *Manager) countCoalesced() {
	if m.metrics != nil {
		m.metrics.CacheCoalesced()
	}
}
