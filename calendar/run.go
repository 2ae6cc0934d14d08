package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nvkalinin/cal/date"
)

var ErrMonthRange = errors.New("month must be in range 0..11")

type Opts struct {
	Today     date.Date   // Highlighted day. Zero value disables highlighting.
	Highlight Highlighter // NoHighlight if nil.
}

type Printer struct {
	Opts
}

func NewPrinter(opts Opts) *Printer {
	return &Printer{Opts: opts}
}

func (p *Printer) highlighter() Highlighter {
	if p.Highlight == nil {
		return NoHighlight
	}
	return p.Highlight
}

// Request holds partially specified parameters, as they come from the command line.
type Request struct {
	Year        int // <= 0 means unspecified.
	Month       int // < 0 means unspecified.
	Count       int // < 1 means unspecified.
	WeekNumbers bool
}

// Plan is a Request with all parameters resolved.
type Plan struct {
	Year        int
	Month       date.Month
	Count       int
	FullYear    bool
	WeekNumbers bool
}

// Resolve fills unspecified parameters from today and clamps the month count so that
// the plan never goes past December of the resolved year.
func Resolve(r Request, today date.Date) (Plan, error) {
	if r.Month > int(date.December) {
		return Plan{}, fmt.Errorf("calendar: invalid month %d: %w", r.Month, ErrMonthRange)
	}

	plan := Plan{WeekNumbers: r.WeekNumbers}

	if r.Year > 0 && r.Month < 0 {
		plan.Year = r.Year
		plan.FullYear = true
		return plan, nil
	}

	plan.Year = r.Year
	if plan.Year < 1 {
		plan.Year = today.Year
	}
	plan.Month = date.Month(r.Month)
	if r.Month < 0 {
		plan.Month = today.Month
	}

	n := r.Count
	switch {
	case n == 12:
		plan.FullYear = true
		plan.Month = date.January
		return plan, nil
	case int(plan.Month)+n > 12:
		n = 12 - int(plan.Month)
	case n < 1:
		n = 1
	}
	plan.Count = n

	return plan, nil
}

// Render produces the text for a resolved plan. Runs longer than MaxPerRow months are split
// into rows, each preceded by an empty line.
func (p *Printer) Render(plan Plan) string {
	if plan.FullYear {
		return p.Year(plan.Year, plan.WeekNumbers)
	}

	l := Layout{
		Year:        plan.Year,
		Start:       plan.Month,
		Count:       plan.Count,
		WeekNumbers: plan.WeekNumbers,
	}

	if l.Count <= MaxPerRow {
		l.YearInHeading = l.Count == 1
		return p.Months(l)
	}

	var b strings.Builder
	for l.Count > MaxPerRow {
		b.WriteByte('\n')
		b.WriteString(p.Months(Layout{
			Year:        l.Year,
			Start:       l.Start,
			Count:       MaxPerRow,
			WeekNumbers: l.WeekNumbers,
		}))
		l.Start += MaxPerRow
		l.Count -= MaxPerRow
	}
	b.WriteByte('\n')
	b.WriteString(p.Months(l))
	return b.String()
}

// Run resolves r against p.Today and writes the calendar to w.
func (p *Printer) Run(w io.Writer, r Request) error {
	plan, err := Resolve(r, p.Today)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, p.Render(plan)); err != nil {
		return fmt.Errorf("calendar: cannot write output: %w", err)
	}
	return nil
}
