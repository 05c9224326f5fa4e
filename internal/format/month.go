package format

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MonthShortName maps 1-12 to "Jan".."Dec". Out-of-range values are clamped
// into range; 0 yields "".
func MonthShortName(n int) string {
	if n == 0 {
		return ""
	}
	if n < 1 {
		n = 1
	}
	if n > 12 {
		n = 12
	}
	return time.Month(n).String()[:3]
}

// MonthShortNameOf is MonthShortName for loosely typed input. Numeric strings
// are converted; nil and other non-numeric values yield "".
func MonthShortNameOf(v any) string {
	switch x := v.(type) {
	case int:
		return MonthShortName(x)
	case int64:
		return MonthShortName(int(x))
	case float64:
		return MonthShortName(int(x))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return MonthShortName(int(i))
		}
		return ""
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return MonthShortName(i)
		}
		return ""
	default:
		return ""
	}
}
