package cmd

import (
	"io"
	"os"
	"time"

	"github.com/nvkalinin/cal/calendar"
	"github.com/nvkalinin/cal/date"
	"golang.org/x/term"
)

type ColorMode string

var (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Cal prints the calendar to Out, the way the classic cal utility does.
type Cal struct {
	Year  int       `short:"y" value-name:"num" description:"Year to print. Prints the whole year if -m is not specified."`
	Month int       `short:"m" value-name:"num" default:"-1" default-mask:"current" description:"Month to print, January = 0."`
	Count int       `short:"n" value-name:"num" description:"Number of months to print. Stops at December, 12 prints the whole year."`
	Weeks bool      `short:"w" description:"Print week numbers."`
	Color ColorMode `long:"color" value-name:"when" choice:"auto" choice:"always" choice:"never" default:"auto" description:"Highlight the current day. 'auto' highlights only when printing to a terminal."`

	Out io.Writer        `no-flag:"true"` // os.Stdout if nil.
	Now func() time.Time `no-flag:"true"` // time.Now if nil.
}

func (c *Cal) Execute(args []string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	p := calendar.NewPrinter(calendar.Opts{
		Today:     date.FromTime(now()),
		Highlight: c.highlighter(out),
	})

	return p.Run(out, calendar.Request{
		Year:        c.Year,
		Month:       c.Month,
		Count:       c.Count,
		WeekNumbers: c.Weeks,
	})
}

func (c *Cal) highlighter(out io.Writer) calendar.Highlighter {
	switch c.Color {
	case ColorAlways:
		return calendar.ANSI
	case ColorNever:
		return calendar.NoHighlight
	}

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return calendar.ANSI
	}
	return calendar.NoHighlight
}
