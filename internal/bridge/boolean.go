package bridge

import "strings"

// ParseTolerantBool coerces the loosely typed open flag carried by
// toggleLB messages. Booleans pass through, numbers are nonzero-true,
// and a small set of string literals is accepted. Anything else is
// invalid and the caller drops the event.
func ParseTolerantBool(v Value) (value bool, ok bool) {
	switch v.Kind {
	case KindBool:
		return v.Bool, true
	case KindNumber:
		return v.Num != 0, true
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}
