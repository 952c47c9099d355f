package manifest

import (
	"sort"
	"strings"

	"github.com/tagnology/embed-go/internal/shared/types"
)

// FilterForPosition returns the manifest entries visible at one
// placement slot, newest first. Fixed slots admit only floating-media
// entries whose corner matches; inline slots admit only non-floating
// entries whose embedLocation matches the slot case-insensitively.
// The input is never mutated.
func FilterForPosition(entries []types.WidgetFolder, position types.Position) []types.WidgetFolder {
	corner, isFixed := position.FloatingCorner()
	want := strings.ToUpper(strings.TrimSpace(string(position)))

	matched := make([]types.WidgetFolder, 0, len(entries))
	for _, entry := range entries {
		if isFixed {
			if entry.IsFloatingMedia() && entry.FloatingMediaPosition == corner {
				matched = append(matched, entry)
			}
			continue
		}
		if entry.IsFloatingMedia() {
			// Floating media only renders in fixed corner slots.
			continue
		}
		if entry.EmbedLocation == "" {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(entry.EmbedLocation)) == want {
			matched = append(matched, entry)
		}
	}

	// Stable: entries sharing a timestamp keep their manifest order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SortTimestamp() > matched[j].SortTimestamp()
	})
	return matched
}
