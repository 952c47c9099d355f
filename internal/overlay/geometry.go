package overlay

import (
	"strconv"
	"strings"

	"github.com/tagnology/embed-go/internal/bridge"
	"github.com/tagnology/embed-go/internal/shared/types"
)

// Visual chrome insets applied to the declared box. The horizontal
// transform shrinks the hit region, the vertical one grows it.
const (
	horizontalInset = 24.0
	verticalInset   = 18.0
)

// Resolve turns a property directive mapping into an absolute rectangle
// inside containerBounds. It returns false when the directives do not
// produce a usable box, in which case the caller keeps its previous
// rectangle.
func Resolve(property bridge.Value, bounds types.Rect) (types.Rect, bool) {
	if isFullscreen(property, bounds) {
		return bounds, true
	}

	width, ok := resolveLength(property.Field("width"), bounds)
	if !ok || width <= 0 {
		return types.Rect{}, false
	}
	height, ok := resolveLength(property.Field("height"), bounds)
	if !ok || height <= 0 {
		return types.Rect{}, false
	}

	var x float64
	if right, ok := resolveLength(property.Field("right"), bounds); ok {
		x = bounds.Width - width - right
	} else if left, ok := resolveLength(property.Field("left"), bounds); ok {
		x = left
	} else {
		x = (bounds.Width - width) / 2
	}
	x += horizontalInset
	width -= 2 * horizontalInset
	if width < 0 {
		width = 0
	}

	var y float64
	if bottom, ok := resolveLength(property.Field("bottom"), bounds); ok {
		y = bounds.Height - height - bottom
	} else if top, ok := resolveLength(property.Field("top"), bounds); ok {
		y = top
	} else {
		y = (bounds.Height - height) / 2
	}
	y -= verticalInset
	height += 2 * verticalInset

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+width > bounds.Width {
		width = bounds.Width - x
	}
	if y+height > bounds.Height {
		height = bounds.Height - y
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	return types.Rect{X: x, Y: y, Width: width, Height: height}, true
}

// isFullscreen detects the full-bleed directive set: viewport-spanning
// width and height anchored at the origin.
func isFullscreen(property bridge.Value, bounds types.Rect) bool {
	if !matchesFullUnit(property.Field("width"), "vw") {
		return false
	}
	if !matchesFullUnit(property.Field("height"), "vh") {
		return false
	}
	left, ok := resolveLength(property.Field("left"), bounds)
	if !ok || left != 0 {
		return false
	}
	top, ok := resolveLength(property.Field("top"), bounds)
	if !ok || top != 0 {
		return false
	}
	return true
}

// matchesFullUnit reports whether a directive is "100vw"/"100dvw" style
// for the given base unit.
func matchesFullUnit(v bridge.Value, unit string) bool {
	s, ok := v.String()
	if !ok {
		return false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "100"+unit || s == "100d"+unit
}

// resolveLength converts a directive value to pixels. Numbers are taken
// as-is; strings accept a px suffix or viewport units resolved against
// the container bounds. "auto" and anything unparsable report false.
func resolveLength(v bridge.Value, bounds types.Rect) (float64, bool) {
	if n, ok := v.Number(); ok {
		return n, true
	}
	s, ok := v.String()
	if !ok {
		return 0, false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return 0, false
	}

	type unit struct {
		suffix string
		base   float64
	}
	units := []unit{
		{"dvw", bounds.Width},
		{"dvh", bounds.Height},
		{"vw", bounds.Width},
		{"vh", bounds.Height},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			n, err := strconv.ParseFloat(strings.TrimSuffix(s, u.suffix), 64)
			if err != nil {
				return 0, false
			}
			return n / 100 * u.base, true
		}
	}

	s = strings.TrimSuffix(s, "px")
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
