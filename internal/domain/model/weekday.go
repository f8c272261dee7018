package model

import "strings"

// Weekday names a calendar day in the Monday-first week the storefront uses.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// WeekOrder lists the seven weekdays in canonical Monday..Sunday order.
var WeekOrder = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the Monday-based position of the weekday, or -1 when unknown.
func (d Weekday) Index() int {
	for i, w := range WeekOrder {
		if w == d {
			return i
		}
	}
	return -1
}

// ParseWeekday resolves a weekday name case-insensitively.
func ParseWeekday(s string) (Weekday, bool) {
	for _, w := range WeekOrder {
		if strings.EqualFold(string(w), strings.TrimSpace(s)) {
			return w, true
		}
	}
	return "", false
}
