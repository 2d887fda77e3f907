package utils

import "time"

// TimestampLayout renders second precision date-times, e.g. 2024-04-05 13:04:05.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp converts a unix timestamp in seconds to a date-time string in loc.
// A nil location renders in the process local time zone.
func FormatTimestamp(timestamp uint64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(int64(timestamp), 0).In(loc).Format(TimestampLayout)
}
