package interp

import (
	"fmt"
	"strings"
)

// formatValue renders a produced value the way a live session would echo
// it.
func formatValue(v any) string {
	switch val := v.(type) {
	case *Plot:
		return fmt.Sprintf("<plot:%s points=%d>", val.Type, len(val.Y))
	case string:
		if len(val) > 1000 {
			return fmt.Sprintf("%q... (truncated, total %d chars)", val[:1000], len(val))
		}
		return fmt.Sprintf("%q", val)
	case []any:
		if len(val) == 0 {
			return "[]"
		}
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
