package calendar

import (
	"strconv"
	"strings"

	"github.com/nvkalinin/cal/date"
)

const (
	yearWidth      = 64
	yearWidthWeeks = 78
)

// Year renders the whole year y as four rows of three months under a centered year heading.
func (p *Printer) Year(y int, weekNumbers bool) string {
	width := yearWidth
	if weekNumbers {
		width = yearWidthWeeks
	}

	var b strings.Builder
	b.WriteByte('\n')
	spaces(&b, (width-date.YearCharLen(y))/2)
	b.WriteString(strconv.Itoa(y))
	b.WriteString("\n\n")

	for m := date.January; m <= date.December; m += MaxPerRow {
		b.WriteString(p.Months(Layout{
			Year:        y,
			Start:       m,
			Count:       MaxPerRow,
			WeekNumbers: weekNumbers,
		}))
		b.WriteByte('\n')
	}
	return b.String()
}
