package formatter

import (
	"fmt"
	"math"
	"time"
)

// RelativeDateFrom describes t relative to now in days, weeks or months.
func RelativeDateFrom(t, now time.Time) string {
	days := int(math.Round(now.Sub(t).Hours() / 24))
	switch {
	case days <= 0:
		return "aujourd'hui"
	case days == 1:
		return "hier"
	case days < 14:
		return fmt.Sprintf("il y a %d j", days)
	case days < 60:
		return fmt.Sprintf("il y a %d sem", days/7)
	default:
		return fmt.Sprintf("il y a %d mois", days/30)
	}
}

// HumanTimestamp renders a session time in local time as "02/01/2006 15:04".
func HumanTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04")
}

// HumanDate renders the date part only.
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}
