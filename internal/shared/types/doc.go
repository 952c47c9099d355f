// Package types provides shared data structures for the embed SDK.
//
// This package defines core types used across all SDK components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - WidgetFolder: One placeable widget definition from a manifest
//   - Manifest: The per-page widget list returned by the embed service
//   - Position: Closed enumeration of placement slots
//   - Rect: Screen geometry for floating-overlay hit testing
//
// Position Families:
//   - Inline slots match WidgetFolder.EmbedLocation in document flow
//   - Fixed slots match floating-media widgets by viewport corner
//
// Example Usage:
//
//	pos, ok := types.ParsePosition("BELOW_BUY_BUTTON")
//	if folder.IsFloatingMedia() {
//	    corner, _ := pos.FloatingCorner()
//	}
package types
