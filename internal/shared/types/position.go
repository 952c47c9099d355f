package types

import "strings"

// Position is a named placement slot a host page declares when
// requesting widgets. Wire values are case-sensitive as transmitted
// and case-insensitive as matched.
type Position string

// Inline slots render in document flow and match EmbedLocation.
const (
	BelowBuyButton       Position = "BELOW_BUY_BUTTON"
	BelowMainProductInfo Position = "BELOW_MAIN_PRODUCT_INFO"
	AboveRecommendation  Position = "ABOVE_RECOMMENDATION"
	AboveFilter          Position = "ABOVE_FILTER"
)

// Fixed slots map to viewport corners and only match floating-media
// widgets by their FloatingMediaPosition.
const (
	FixedBottomLeft  Position = "FIXED_BOTTOM_LEFT"
	FixedBottomRight Position = "FIXED_BOTTOM_RIGHT"
	FixedTopLeft     Position = "FIXED_TOP_LEFT"
	FixedTopRight    Position = "FIXED_TOP_RIGHT"
	FixedCenterLeft  Position = "FIXED_CENTER_LEFT"
	FixedCenterRight Position = "FIXED_CENTER_RIGHT"
)

// floatingCorners maps fixed slots to the corner labels the manifest
// uses in FloatingMediaPosition.
var floatingCorners = map[Position]string{
	FixedBottomLeft:  "BottomLeft",
	FixedBottomRight: "BottomRight",
	FixedTopLeft:     "TopLeft",
	FixedTopRight:    "TopRight",
	FixedCenterLeft:  "CenterLeft",
	FixedCenterRight: "CenterRight",
}

// AllPositions lists every placement slot in declaration order.
func AllPositions() []Position {
	return []Position{
		BelowBuyButton,
		BelowMainProductInfo,
		AboveRecommendation,
		AboveFilter,
		FixedBottomLeft,
		FixedBottomRight,
		FixedTopLeft,
		FixedTopRight,
		FixedCenterLeft,
		FixedCenterRight,
	}
}

// ParsePosition matches s against the known slots case-insensitively.
func ParsePosition(s string) (Position, bool) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, p := range AllPositions() {
		if string(p) == want {
			return p, true
		}
	}
	return "", false
}

// FloatingCorner returns the corner label for a fixed slot, or false
// for inline slots.
func (p Position) FloatingCorner() (string, bool) {
	corner, ok := floatingCorners[p]
	return corner, ok
}

// IsFixed reports whether p is one of the six viewport-corner slots.
func (p Position) IsFixed() bool {
	_, ok := floatingCorners[p]
	return ok
}

func (p Position) String() string {
	return string(p)
}
