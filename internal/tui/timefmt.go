package tui

import "time"

// formatWhen buckets a timestamp by distance from now: time-only for
// the same calendar day, month and day within the same year, and the
// full date otherwise.
func formatWhen(t, now time.Time) string {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()

	switch {
	case ty == ny && tm == nm && td == nd:
		return t.Format("15:04")
	case ty == ny:
		return t.Format("Jan 2, 15:04")
	default:
		return t.Format("Jan 2 2006, 15:04")
	}
}
