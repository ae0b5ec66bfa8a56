package airquality

import "fmt"

// The week clock addresses the weekly aggregate as hour slots 0..167,
// Monday 00:00 = 0 through Sunday 23:00 = 167.
const (
	HoursPerDay  = 24
	MaxTimeIndex = 7*HoursPerDay - 1
)

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayName returns the English name for a weekday index (Monday = 0).
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// WeekIndex combines a weekday (Monday = 0) and hour into a week-clock slot.
func WeekIndex(day, hour int) int {
	return day*HoursPerDay + hour
}

// ClampTimeIndex forces an index into [0, MaxTimeIndex]. Out-of-range
// navigation requests clamp rather than fail.
func ClampTimeIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > MaxTimeIndex {
		return MaxTimeIndex
	}
	return idx
}

// TimeIndexParts splits a week-clock slot into weekday and hour.
func TimeIndexParts(idx int) (day, hour int) {
	idx = ClampTimeIndex(idx)
	return idx / HoursPerDay, idx % HoursPerDay
}

// TimeIndexLabel renders a slot as e.g. "Monday 13:00".
func TimeIndexLabel(idx int) string {
	day, hour := TimeIndexParts(idx)
	return fmt.Sprintf("%s %02d:00", dayNames[day], hour)
}

// NavPosition is the result of a navigation step on the week clock.
type NavPosition struct {
	TimeIndex int    `json:"timeIndex"`
	Day       int    `json:"day"`
	Hour      int    `json:"hour"`
	Label     string `json:"label"`
}

// Navigate moves the week clock by step hours from idx, clamping at both
// ends of the week.
func Navigate(idx, step int) NavPosition {
	next := ClampTimeIndex(ClampTimeIndex(idx) + step)
	day, hour := TimeIndexParts(next)
	return NavPosition{
		TimeIndex: next,
		Day:       day,
		Hour:      hour,
		Label:     TimeIndexLabel(next),
	}
}
