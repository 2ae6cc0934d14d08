package calendar

import (
	"fmt"
	"strings"

	"github.com/nvkalinin/cal/date"
)

var dayNames = weekdayHeader()

const (
	monthWidth = 20
	weekWidth  = 3 // Week number column: "%2d ".
	cellWidth  = 3 // Day cell: "%2d ".
)

// Layout describes one row of up to MaxPerRow months.
type Layout struct {
	Year          int
	Start         date.Month
	Count         int
	WeekNumbers   bool
	YearInHeading bool
}

const MaxPerRow = 3

// Months renders the heading, the day names and the day grid of l.
// l.Count must be in 1..MaxPerRow and l.Start+l.Count must not go past December.
func (p *Printer) Months(l Layout) string {
	var b strings.Builder
	p.writeHeading(&b, l)
	p.writeDays(&b, l)
	return b.String()
}

func (p *Printer) writeHeading(b *strings.Builder, l Layout) {
	w := boolInt(l.WeekNumbers)

	yearLen := 0
	if l.YearInHeading {
		yearLen = date.YearCharLen(l.Year) + 1
	}

	for i := 0; i < l.Count; i++ {
		name := (l.Start + date.Month(i)).String()
		free := monthWidth - (len(name) + yearLen)
		pad, rem := free/2, free%2

		spaces(b, pad+w*weekWidth)
		b.WriteString(name)
		if l.YearInHeading {
			fmt.Fprintf(b, " %d", l.Year)
		}
		spaces(b, pad+rem+2+w)
	}
	b.WriteByte('\n')

	for i := 0; i < l.Count; i++ {
		spaces(b, w*weekWidth)
		b.WriteString(dayNames)
		spaces(b, 2+w)
	}
	b.WriteByte('\n')
}

// monthCursor tracks the grid position inside one month of the row.
type monthCursor struct {
	month date.Month
	days  int
	next  int // Next day number to print.
	lead  int // Blank cells before day 1, consumed once.
	week  int
}

func (c *monthCursor) exhausted() bool {
	return c.next > c.days
}

func (p *Printer) writeDays(b *strings.Builder, l Layout) {
	w := boolInt(l.WeekNumbers)
	table := date.DaysTable(l.Year)

	remaining := 0
	cur := make([]monthCursor, l.Count)
	for i := range cur {
		m := l.Start + date.Month(i)
		cur[i] = monthCursor{
			month: m,
			days:  table.Days(m),
			next:  1,
			lead:  int(date.MonthStartDay(l.Year, m)),
		}
		if l.WeekNumbers {
			cur[i].week = date.MonthStartWeek(l.Year, m)
		}
		remaining += cur[i].days
	}

	last := l.Count - 1
	mp, col := 0, 0
	for remaining > 0 {
		c := &cur[mp]

		if l.WeekNumbers && col == 0 {
			if !c.exhausted() {
				fmt.Fprintf(b, "%2d ", c.week)
				c.week++
			} else {
				spaces(b, weekWidth)
			}
		}

		switch {
		case c.lead > 0:
			spaces(b, c.lead*cellWidth)
			col = c.lead
			c.lead = 0
		case c.exhausted():
			spaces(b, (7-col)*cellWidth)
			col = 7
		default:
			num := fmt.Sprintf("%2d", c.next)
			if p.isToday(l.Year, c.month, c.next) {
				num = p.highlighter().Highlight(num)
			}
			b.WriteString(num)
			b.WriteByte(' ')
			c.next++
			col++
			remaining--
		}

		if col%7 != 0 {
			continue
		}
		if mp != last {
			spaces(b, 1+w)
			mp++
		} else {
			b.WriteByte('\n')
			mp = 0
		}
		col = 0
	}
	b.WriteByte('\n')
}

func (p *Printer) isToday(y int, m date.Month, d int) bool {
	t := p.Today
	return t.Year == y && t.Month == m && t.Day == d
}

func weekdayHeader() string {
	names := make([]string, 0, 7)
	for d := date.Sunday; d <= date.Saturday; d++ {
		names = append(names, d.Short())
	}
	return strings.Join(names, " ")
}

func spaces(b *strings.Builder, n int) {
	if n > 0 {
		b.WriteString(strings.Repeat(" ", n))
	}
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
