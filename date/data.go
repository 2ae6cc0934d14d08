package date

import "time"

// Month is 0-indexed: January = 0.
type Month int

const (
	January Month = iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m]
}

func (m Month) Valid() bool {
	return m >= January && m <= December
}

// Weekday is 0-indexed starting from Sunday, matching the "Su Mo ... Sa" header.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func (w Weekday) Short() string {
	if w < Sunday || w > Saturday {
		return ""
	}
	return weekdayNames[w]
}

// Date is a calendar day. Zero value never matches a real day.
type Date struct {
	Day   int
	Month Month
	Year  int
}

func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{
		Day:   d,
		Month: Month(m - time.January),
		Year:  y,
	}
}

// Table holds the number of days in each month of one particular year.
type Table [12]int

var commonYear = Table{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func (t Table) Days(m Month) int {
	return t[m]
}

// Before returns the number of days from the start of the year to the start of m.
func (t Table) Before(m Month) int {
	total := 0
	for i := January; i < m; i++ {
		total += t[i]
	}
	return total
}
