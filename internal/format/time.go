// Package format renders timestamps and durations for listings.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Clock holds the date and time layouts chosen by display_date and
// display_time.
type Clock struct {
	date      string
	dateShort string
	clock     string
	clockFull string
}

// NewClock builds a Clock from the display_date and display_time settings.
// Unknown time settings fall back to 24h.
func NewClock(displayDate, displayTime string) Clock {
	c := Clock{
		date:      dateLayout(displayDate),
		dateShort: dateLayoutShort(displayDate),
		clock:     "15:04",
		clockFull: "15:04:05",
	}
	if displayTime == "12h" {
		c.clock = "3:04 PM"
		c.clockFull = "3:04:05 PM"
	}
	return c
}

// Date formats only the date portion.
// Example output: "23/01/2024" or "01/23/2024" or "2024-01-23"
func (c Clock) Date(t time.Time) string {
	return t.Format(c.date)
}

// DateTime formats date and time.
// Example output: "23/01/2024 15:04" or "01/23/2024 3:04 PM"
func (c Clock) DateTime(t time.Time) string {
	return c.Date(t) + " " + c.Time(t)
}

// DateTimeShort formats the date without the year.
func (c Clock) DateTimeShort(t time.Time) string {
	return t.Format(c.dateShort) + " " + c.Time(t)
}

// Time formats only the time portion.
func (c Clock) Time(t time.Time) string {
	return t.Format(c.clock)
}

// Full formats date and time with seconds.
func (c Clock) Full(t time.Time) string {
	return c.Date(t) + " " + t.Format(c.clockFull)
}

func dateLayout(displayDate string) string {
	switch displayDate {
	case "":
		return "02/01/2006"
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		return displayDate
	}
}

func dateLayoutShort(displayDate string) string {
	switch displayDate {
	case "", "dd/mm/yyyy":
		return "02/01"
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	default:
		short := displayDate
		for _, year := range []string{"2006", "/06", "-06", " 06"} {
			short = strings.ReplaceAll(short, year, "")
		}
		short = strings.Trim(strings.TrimSpace(short), "/-")
		if short == "" {
			return "Jan 02"
		}
		return short
	}
}

// Duration renders d compactly: "850µs", "12ms", "1.4s", "2m03s".
func Duration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		m := int(d / time.Minute)
		s := int((d % time.Minute) / time.Second)
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}
