package services

import (
	"fmt"
	"time"
)

// DisplayEventTime renders the distance between now and the event's schedule
// as caller-facing text, e.g. "in 3 days" or "2 hours ago". Pure function.
func DisplayEventTime(eventTime, now time.Time) string {
	d := eventTime.Sub(now)
	past := d < 0
	if past {
		d = -d
	}

	var phrase string
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		phrase = plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		phrase = plural(int(d.Hours()), "hour")
	default:
		phrase = plural(int(d.Hours()/24), "day")
	}

	if past {
		return phrase + " ago"
	}
	return "in " + phrase
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
