package utils

import "strconv"

// ParseDays reads a "days" query value, falling back to def when absent or
// unparsable and clamping to at least one day.
func ParseDays(raw string, def int) int {
	days := def
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}
	if days < 1 {
		days = 1
	}
	return days
}

// ParseLimit reads a "limit" query value, defaulting to 10 and clamping to
// 1..50 so a dashboard can't ask for the whole table.
func ParseLimit(raw string) int {
	limit := 10
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}
