// Package testutil provides testing utilities and helpers for embed backend tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/tagnology/embed-go/internal/shared/types"
)

// MockFetcher is a mock implementation of cache.Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

// Fetch mocks the manifest fetch.
func (m *MockFetcher) Fetch(ctx context.Context, productID, platform, pageURL string) (*types.Manifest, error) {
	args := m.Called(ctx, productID, platform, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Manifest), args.Error(1)
}

// NewMockFetcher creates a mock fetcher that returns the given folders for any page.
func NewMockFetcher(t *testing.T, folders []types.WidgetFolder) *MockFetcher {
	t.Helper()
	m := new(MockFetcher)

	m.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&types.Manifest{Message: "success", PageInfo: folders}, nil).
		Maybe()

	return m
}

// CreateFolder creates a test widget folder with sensible defaults.
func CreateFolder(t *testing.T, id, embedLocation string, overrides map[string]interface{}) types.WidgetFolder {
	t.Helper()

	f := types.WidgetFolder{
		FolderID:      id,
		Layout:        "Carousel",
		EmbedLocation: embedLocation,
	}

	if layout, ok := overrides["layout"].(string); ok {
		f.Layout = layout
	}
	if pos, ok := overrides["floatingMediaPosition"].(string); ok {
		f.FloatingMediaPosition = pos
	}
	if ts, ok := overrides["timestamp"].(int64); ok {
		f.Timestamp = &ts
	}

	return f
}

// CreateFloatingMedia creates a floating media folder pinned to the given corner.
func CreateFloatingMedia(t *testing.T, id, corner string, timestamp int64) types.WidgetFolder {
	t.Helper()

	return CreateFolder(t, id, "", map[string]interface{}{
		"layout":                types.LayoutFloatingMedia,
		"floatingMediaPosition": corner,
		"timestamp":             timestamp,
	})
}

// AssertFolderOrder verifies the folder IDs appear in the expected order.
func AssertFolderOrder(t *testing.T, folders []types.WidgetFolder, ids ...string) {
	t.Helper()

	if len(folders) != len(ids) {
		t.Fatalf("Expected %d folders, got %d", len(ids), len(folders))
	}
	for i, id := range ids {
		if folders[i].FolderID != id {
			t.Fatalf("Folder %d: expected %s, got %s", i, id, folders[i].FolderID)
		}
	}
}
