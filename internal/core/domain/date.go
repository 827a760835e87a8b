package domain

import (
	"strings"
	"time"
)

const (
	DisplayDateLayout = "02.01.2006"
	ISODateLayout     = "2006-01-02"
)

// ParseDisplayDate parses a DD.MM.YYYY history key.
func ParseDisplayDate(date string) (time.Time, error) {
	return time.Parse(DisplayDateLayout, date)
}

// DisplayToISO converts DD.MM.YYYY into YYYY-MM-DD by reversing the dot
// separated parts. Day and month are zero padded. Anything that does not
// split into three parts is returned unchanged.
func DisplayToISO(date string) string {
	parts := strings.Split(date, ".")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
}

// ISOToDisplay is the inverse of DisplayToISO.
func ISOToDisplay(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
