// Package product derives canonical product identifiers from page URLs.
package product

import (
	"net/url"
	"strings"
)

// URL path markers recognized by the embed service, checked in this
// fixed priority order. First match wins.
const (
	salePageMarker     = "/salepage/"
	saleCategoryMarker = "/salepagecategory/"
	detailMarker       = "/detail/"
)

// Resolve extracts the cache-key product identifier from a page URL.
// The path is lowercased before matching, so the returned id is
// lowercase as well. Returns false for unparsable URLs and for paths
// matching none of the known patterns.
func Resolve(pageURL string) (string, bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}

	path := strings.ToLower(u.Path)
	last := lastSegment(path)
	if last == "" {
		return "", false
	}

	switch {
	case strings.Contains(path, salePageMarker):
		return last, true
	case strings.Contains(path, saleCategoryMarker):
		return "category_" + last, true
	case strings.Contains(path, detailMarker):
		return "detail_" + last, true
	}
	return "", false
}

// lastSegment returns the final non-empty path component.
func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
