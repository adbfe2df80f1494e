package i18n

import (
	"fmt"
	"time"
)

var (
	frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frenchMonths   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// FormatDate renders a long calendar date, e.g. "Thursday, October 15, 2026"
// or "jeudi 15 octobre 2026".
func FormatDate(lang Language, d time.Time) string {
	if d.IsZero() {
		return ""
	}
	if lang == French {
		return fmt.Sprintf("%s %d %s %d", frenchWeekdays[d.Weekday()], d.Day(), frenchMonths[d.Month()-1], d.Year())
	}
	return d.Format("Monday, January 2, 2006")
}
