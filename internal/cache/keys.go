package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key builds a deterministic cache key from a prefix tag, a logical
// operation name, and the call's parameters. Parameters are sorted so
// equal inputs always produce equal keys.
func Key(prefix, op string, params map[string]string) string {
	suffix := "default"
	if len(params) > 0 {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, params[name]))
		}
		suffix = strings.Join(parts, "_")
	}

	return fmt.Sprintf("%s:%s:%s", prefix, op, suffix)
}
