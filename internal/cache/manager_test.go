package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagnology/embed-go/internal/shared/types"
)

type stubFetcher struct {
	mu        sync.Mutex
	calls     int
	gate      chan struct{}
	manifests map[string]*types.Manifest
	err       error

	lastProductID string
	lastPlatform  string
}

func (f *stubFetcher) Fetch(ctx context.Context, productID, platform, pageURL string) (*types.Manifest, error) {
	f.mu.Lock()
	f.calls++
	f.lastProductID = productID
	f.lastPlatform = platform
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.manifests[pageURL], nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *stubFetcher) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

const testPage = "https://shop.example.com/SalePage/12345"

func buyButtonFolder(id string) types.WidgetFolder {
	return types.WidgetFolder{FolderID: id, EmbedLocation: "BELOW_BUY_BUTTON"}
}

func singlePageFetcher(folders ...types.WidgetFolder) *stubFetcher {
	return &stubFetcher{
		manifests: map[string]*types.Manifest{
			testPage: {Message: "OK", PageInfo: folders},
		},
	}
}

func TestManagerFetchesAndCaches(t *testing.T) {
	fetcher := singlePageFetcher(buyButtonFolder("f1"))
	m := NewManager(fetcher, "91APP", nil)

	widgets := m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	require.Len(t, widgets, 1)
	assert.Equal(t, "f1", widgets[0].FolderID)
	assert.Equal(t, "12345", fetcher.lastProductID)
	assert.Equal(t, "91APP", fetcher.lastPlatform)

	// Second request is served from cache.
	widgets = m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	require.Len(t, widgets, 1)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestManagerCoalescesConcurrentRequests(t *testing.T) {
	fetcher := singlePageFetcher(buyButtonFolder("f1"))
	fetcher.gate = make(chan struct{})
	m := NewManager(fetcher, "91APP", nil)

	const callers = 8
	results := make([][]types.WidgetFolder, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	assert.Equal(t, 1, fetcher.callCount(), "concurrent callers share one fetch")
	for i, widgets := range results {
		require.Len(t, widgets, 1, "caller %d", i)
		assert.Equal(t, "f1", widgets[0].FolderID)
	}
}

func TestManagerPagesAreIsolated(t *testing.T) {
	otherPage := "https://shop.example.com/SalePage/99999"
	fetcher := &stubFetcher{
		manifests: map[string]*types.Manifest{
			testPage:  {PageInfo: []types.WidgetFolder{buyButtonFolder("f1")}},
			otherPage: {PageInfo: []types.WidgetFolder{buyButtonFolder("f2")}},
		},
	}
	m := NewManager(fetcher, "91APP", nil)

	first := m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	second := m.WidgetsForPosition(context.Background(), otherPage, types.BelowBuyButton, "")

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "f1", first[0].FolderID)
	assert.Equal(t, "f2", second[0].FolderID)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestManagerNoProductIDSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{}
	m := NewManager(fetcher, "91APP", nil)

	widgets := m.WidgetsForPosition(context.Background(), "https://shop.example.com/about", types.BelowBuyButton, "")
	assert.Empty(t, widgets)
	assert.Equal(t, 0, fetcher.callCount())

	stats := m.Stats()
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, 0, stats.InFlight, "no loading marker without a product id")
}

func TestManagerExplicitProductIDOverride(t *testing.T) {
	page := "https://shop.example.com/landing"
	fetcher := &stubFetcher{
		manifests: map[string]*types.Manifest{
			page: {PageInfo: []types.WidgetFolder{buyButtonFolder("f1")}},
		},
	}
	m := NewManager(fetcher, "91APP", nil)

	widgets := m.WidgetsForPosition(context.Background(), page, types.BelowBuyButton, "override-77")
	require.Len(t, widgets, 1)
	assert.Equal(t, "override-77", fetcher.lastProductID)
}

func TestManagerFetchFailureDegradesAndRetries(t *testing.T) {
	fetcher := singlePageFetcher(buyButtonFolder("f1"))
	fetcher.setError(errors.New("backend down"))
	m := NewManager(fetcher, "91APP", nil)

	widgets := m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	assert.Empty(t, widgets)
	assert.Equal(t, 0, m.Stats().Entries, "failures are not cached")

	fetcher.setError(nil)
	widgets = m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	require.Len(t, widgets, 1)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestManagerClearPageForcesRefetch(t *testing.T) {
	fetcher := singlePageFetcher(buyButtonFolder("f1"))
	m := NewManager(fetcher, "91APP", nil)

	m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	m.ClearPage(testPage)
	m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")

	assert.Equal(t, 2, fetcher.callCount())
}

func TestManagerFetchOutlivesCanceledCaller(t *testing.T) {
	fetcher := singlePageFetcher(buyButtonFolder("f1"))
	fetcher.gate = make(chan struct{})
	m := NewManager(fetcher, "91APP", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []types.WidgetFolder, 1)
	go func() {
		done <- m.WidgetsForPosition(ctx, testPage, types.BelowBuyButton, "")
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	widgets := <-done
	assert.Empty(t, widgets, "canceled caller gets nothing")

	// The detached fetch still completes and populates the cache.
	close(fetcher.gate)
	deadline := time.After(time.Second)
	for m.Stats().Entries == 0 {
		select {
		case <-deadline:
			t.Fatal("fetch never populated the cache")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	widgets = m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	require.Len(t, widgets, 1)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestManagerStats(t *testing.T) {
	fetcher := singlePageFetcher(buyButtonFolder("f1"))
	m := NewManager(fetcher, "91APP", nil)

	assert.Equal(t, Stats{}, m.Stats())
	m.WidgetsForPosition(context.Background(), testPage, types.BelowBuyButton, "")
	assert.Equal(t, Stats{Entries: 1}, m.Stats())

	m.Clear()
	assert.Equal(t, Stats{}, m.Stats())
}
