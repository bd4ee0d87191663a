package document

import (
	"strconv"
	"strings"

	"github.com/itsmostafa/weave/internal/engine"
)

// parseInfo parses a fence info string into a chunk label and raw option
// bag. Accepted forms: `js`, `{js}`, `{js label, echo=FALSE,
// results='hold'}`. Blocks for other languages report ok=false and are
// left alone.
func parseInfo(info string) (label string, raw engine.RawOptions, ok bool) {
	s := strings.TrimSpace(info)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	parts := strings.Split(s, ",")
	head := strings.Fields(strings.TrimSpace(parts[0]))
	if len(head) == 0 {
		return "", nil, false
	}
	switch strings.ToLower(head[0]) {
	case "js", "javascript":
	default:
		return "", nil, false
	}
	if len(head) > 1 {
		label = head[1]
	}

	raw = engine.RawOptions{}
	for _, part := range parts[1:] {
		key, val, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		raw[strings.TrimSpace(key)] = optionValue(strings.TrimSpace(val))
	}
	return label, raw, true
}

// optionValue types a raw option literal: quoted strings stay strings,
// TRUE/FALSE become booleans, numbers become numbers, anything else
// passes through as a bare string.
func optionValue(val string) any {
	if len(val) >= 2 {
		if (val[0] == '\'' && val[len(val)-1] == '\'') || (val[0] == '"' && val[len(val)-1] == '"') {
			return val[1 : len(val)-1]
		}
	}
	switch strings.ToLower(val) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(val, 64); err == nil {
		return n
	}
	return val
}
