package bridge

import (
	"strconv"
	"strings"

	"github.com/tagnology/embed-go/internal/shared/types"
)

// propertyHeightKeys lists the CSS-like directive keys checked for a
// height value, in priority order.
var propertyHeightKeys = []string{"height", "minHeight", "maxHeight", "--height", "--tagnology-height"}

// HeightResolution is the outcome of applying a resize payload.
type HeightResolution struct {
	// Height is the container height after the update.
	Height float64
	// Deferred reports that the payload carried viewport-relative
	// directives and precise layout belongs to the overlay path.
	Deferred bool
}

// ResolveHeight applies the resize height policy to a payload.
//
// Floating-media widgets pin to the fixed media height. Otherwise a
// position:fixed directive or a unit-bearing height string defers the
// update: the container only grows, using the resolved height or the
// viewport height as the target. Plain numeric heights apply directly
// and may shrink the container.
func ResolveHeight(payload Value, floatingMedia bool, current, viewport float64) HeightResolution {
	if floatingMedia {
		return HeightResolution{Height: types.FloatingMediaHeight}
	}

	property := payload.Field("property")
	raw := rawHeightString(property)
	deferred := isFixedPosition(property) || hasUnitChars(raw)

	resolved, found := resolvedHeight(payload, property)

	if deferred {
		fallback := viewport
		if found {
			fallback = resolved
		}
		height := current
		if fallback > 0 && fallback > height {
			height = fallback
		}
		return HeightResolution{Height: height, Deferred: true}
	}

	if found {
		return HeightResolution{Height: resolved}
	}
	return HeightResolution{Height: current}
}

// rawHeightString returns the first string-valued height directive.
func rawHeightString(property Value) string {
	for _, key := range propertyHeightKeys {
		if s, ok := property.Field(key).String(); ok {
			return s
		}
	}
	return ""
}

func isFixedPosition(property Value) bool {
	s, ok := property.Field("position").String()
	return ok && strings.EqualFold(strings.TrimSpace(s), "fixed")
}

// hasUnitChars reports whether a height string carries a unit such as
// "100vh" or "50%" rather than a bare pixel number.
func hasUnitChars(s string) bool {
	for _, r := range s {
		if r == '%' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// resolvedHeight scans the candidate fields in priority order and
// returns the first value that parses as a number.
func resolvedHeight(payload, property Value) (float64, bool) {
	candidates := []Value{
		payload.Field("height"),
		payload.Path("size", "height"),
		payload.Path("data", "height"),
	}
	for _, key := range propertyHeightKeys {
		candidates = append(candidates, property.Field(key))
	}
	for _, c := range candidates {
		if n, ok := numericValue(c); ok {
			return n, true
		}
	}
	return 0, false
}

// numericValue parses a candidate height. Strings are sanitized down to
// digits, dots, and minus signs before parsing.
func numericValue(v Value) (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		var b strings.Builder
		for _, r := range v.Str {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		n, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
