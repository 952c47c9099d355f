package types

import (
	"strings"
	"time"
)

// LayoutFloatingMedia is the layout value that activates fixed-overlay
// behavior. Matched case-insensitively on the wire.
const LayoutFloatingMedia = "FloatingMedia"

// Floating-media widgets render in a fixed-size viewport box.
const (
	FloatingMediaWidth  = 126.0
	FloatingMediaHeight = 224.0
)

// WidgetFolder is one placeable widget definition returned by the
// manifest. FolderID is the stable identity; everything else is
// optional on the wire.
type WidgetFolder struct {
	FolderID              string `json:"folderId"`
	ProductID             string `json:"productId,omitempty"`
	Platform              string `json:"platform,omitempty"`
	ProductName           string `json:"productName,omitempty"`
	ProductURL            string `json:"productUrl,omitempty"`
	ProductImage          string `json:"productImage,omitempty"`
	EmbedLocation         string `json:"embedLocation,omitempty"`
	Timestamp             *int64 `json:"timestamp,omitempty"`
	FolderName            string `json:"folderName,omitempty"`
	Layout                string `json:"layout,omitempty"`
	Setting               *int   `json:"setting,omitempty"`
	FloatingMediaPosition string `json:"floatingMediaPosition,omitempty"`
}

// IsFloatingMedia reports whether this folder renders as a fixed
// viewport overlay rather than inline content.
func (f WidgetFolder) IsFloatingMedia() bool {
	return strings.EqualFold(f.Layout, LayoutFloatingMedia)
}

// SortTimestamp returns the recency key for ordering. A folder with no
// timestamp sorts as the oldest.
func (f WidgetFolder) SortTimestamp() int64 {
	if f.Timestamp == nil {
		return 0
	}
	return *f.Timestamp
}

// Manifest is the widget list fetched for one page/product. Immutable
// once cached; a later fetch for the same key supersedes it.
type Manifest struct {
	Message  string         `json:"message"`
	PageInfo []WidgetFolder `json:"pageInfo"`
}

// CacheEntry is a cached manifest snapshot keyed by raw page URL.
type CacheEntry struct {
	PageInfo  []WidgetFolder
	FetchedAt time.Time
}
