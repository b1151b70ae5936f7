package utils

import "time"

// ISO8601Micro is the timestamp layout used for created_at fields:
// UTC, microsecond precision, "Z" suffix.
const ISO8601Micro = "2006-01-02T15:04:05.000000Z"

// FormatISO8601 renders t in UTC using ISO8601Micro.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(ISO8601Micro)
}
