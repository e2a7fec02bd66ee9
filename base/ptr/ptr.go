package ptr

import "time"

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int return a pointer to the input value
func Int(value int) *int {
	return &value
}

// Bool return a pointer to the input value
func Bool(value bool) *bool {
	return &value
}

// Time return a pointer to the input value
func Time(value time.Time) *time.Time {
	return &value
}

// StringValue dereferences p, or returns "" for nil
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
