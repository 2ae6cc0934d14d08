package log

import (
	"io"
	"log"
	"strings"
)

// Messages are expected to start with a level tag: [DEBUG], [INFO], [WARN] or [ERROR].
// [DEBUG] messages are dropped unless AllowDebug is set.
var AllowDebug = false

var std = log.New(log.Writer(), "", log.LstdFlags)

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Printf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	std.Printf(format, v...)
}

func allowed(s string) bool {
	if AllowDebug {
		return true
	}
	return !strings.HasPrefix(s, "[DEBUG]")
}
