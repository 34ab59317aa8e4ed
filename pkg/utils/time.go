package utils

import "time"

// NowMillis returns the current time as unix milliseconds, the timestamp
// format used across match state.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// MillisToTime converts a unix-millisecond timestamp to time.Time
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}
