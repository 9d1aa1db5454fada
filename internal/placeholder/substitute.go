package placeholder

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Substitute replaces each placeholder that has an entry in values with the
// value's text. Placeholders without an entry are left exactly as written so
// missing data stays visible in the output.
func Substitute(content string, values map[string]any) string {
	if len(values) == 0 {
		return content
	}
	return replace(content, func(name string) (string, bool) {
		v, ok := values[name]
		if !ok {
			return "", false
		}
		return FormatValue(v), true
	})
}

// FormatValue renders a substitution value as text. nil renders empty,
// integral floats render without a fractional part or exponent.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
