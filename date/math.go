package date

func IsLeapYear(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

// DaysTable returns a fresh table for y, so different years never share a February length.
func DaysTable(y int) Table {
	t := commonYear
	if IsLeapYear(y) {
		t[February] = 29
	}
	return t
}

// MonthStartDay returns the weekday of the first day of month m in year y.
// Counting starts from 0001-01-01, which was a Monday. Defined for y >= 1.
func MonthStartDay(y int, m Month) Weekday {
	total := 1

	prev := y - 1
	total += prev * 365
	total += prev/4 + prev/400 - prev/100

	total += DaysTable(y).Before(m)

	return Weekday(total % 7)
}

// MonthStartWeek returns the week number of the row that holds the first day of m.
// Week 1 is the row holding January 1st; numbering restarts every year.
func MonthStartWeek(y int, m Month) int {
	offset := int(MonthStartDay(y, January)) + DaysTable(y).Before(m)
	return 1 + offset/7
}

// YearCharLen returns the number of decimal digits in y.
func YearCharLen(y int) int {
	count := 0
	for y != 0 {
		y /= 10
		count++
	}
	return count
}
