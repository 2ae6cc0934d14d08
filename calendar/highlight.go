package calendar

// Highlighter styles the 2-column number of the current day.
type Highlighter interface {
	Highlight(s string) string
}

type HighlightFunc func(s string) string

func (f HighlightFunc) Highlight(s string) string {
	return f(s)
}

const (
	ansiCurrentDay = "\033[30m\033[47m" // Black on white.
	ansiReset      = "\033[0m"
)

var (
	ANSI        Highlighter = HighlightFunc(func(s string) string { return ansiCurrentDay + s + ansiReset })
	NoHighlight Highlighter = HighlightFunc(func(s string) string { return s })
)
