package weft

import (
	"fmt"
	"strconv"
)

// renderValue turns a value written as content or as an attribute value
// into its textual form. The second result is true when the value is
// pre-escaped markup (HTML) that must bypass the active escape mode.
//
// Numbers and booleans render through strconv; their output never contains
// HTML specials. Everything unknown falls back to fmt.
func renderValue(v any) (text string, safe bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case HTML:
		return string(v), true
	case string:
		return v, false
	case []byte:
		return string(v), false
	case int:
		return strconv.Itoa(v), false
	case int8:
		return strconv.FormatInt(int64(v), 10), false
	case int16:
		return strconv.FormatInt(int64(v), 10), false
	case int32:
		return strconv.FormatInt(int64(v), 10), false
	case int64:
		return strconv.FormatInt(v, 10), false
	case uint:
		return strconv.FormatUint(uint64(v), 10), false
	case uint8:
		return strconv.FormatUint(uint64(v), 10), false
	case uint16:
		return strconv.FormatUint(uint64(v), 10), false
	case uint32:
		return strconv.FormatUint(uint64(v), 10), false
	case uint64:
		return strconv.FormatUint(v, 10), false
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), false
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), false
	case bool:
		return strconv.FormatBool(v), false
	case fmt.Stringer:
		return v.String(), false
	default:
		return fmt.Sprintf("%v", v), false
	}
}
