package utils

import "strconv"

// SafeDeref safely dereferences a string pointer and returns empty string if nil
func SafeDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DerefOr dereferences s, falling back to def when s is nil or empty
func DerefOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// Int32String formats an optional int32, "N/A" when nil
func Int32String(v *int32) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatInt(int64(*v), 10)
}

// Int64String formats an optional int64, "N/A" when nil
func Int64String(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatInt(*v, 10)
}
