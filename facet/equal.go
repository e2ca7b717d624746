package facet

import "time"

// Equal reports strict equality between two facet values.
//
// The comparison is reflection-free and predictable: integers compare
// exactly across int/uint widths, an int and a float compare numerically,
// strings/bools compare directly, times compare with time.Time.Equal, and
// slices compare element-wise. Values of unrelated kinds are never equal —
// notably the string "2024" does not equal the number 2024.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			return ai == bi
		}
		if bf, ok := asFloat64(b); ok {
			return float64(ai) == bf
		}
		return false
	}
	if af, ok := asFloat64(a); ok {
		if bi, ok := asInt64(b); ok {
			return af == float64(bi)
		}
		if bf, ok := asFloat64(b); ok {
			return af == bf
		}
		return false
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}

	return false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
