// Package notify shows short, severity-tagged notices to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Level is the severity of a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is one message shown to the user.
type Notice struct {
	Message string
	Level   Level
}

// Notifier displays notices.
type Notifier interface {
	Notify(n Notice)
}

// Messages shown by the application.
const (
	MsgSaved           = "Progress saved locally."
	MsgSaveFailed      = "Failed to save."
	MsgLeadSaved       = "Lead saved. Proceed to quote."
	MsgBusinessClaimed = "Business selected. Lead captured."
	MsgReferral        = "Referral captured. We will follow up."
	MsgSelectType      = "Please select a website type."
	MsgLocationMissing = "Location not found. Try refining your query."
	MsgGeolocateFailed = "Unable to access your location."
	MsgCopied          = "Project details copied to clipboard."
	MsgCleared         = "Saved project cleared."
)

// Console writes notices to a terminal, colored by level.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to w.
// Colors follow fatih/color, which disables them when w is not a terminal.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notify implements Notifier.
func (c *Console) Notify(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = colorFor(n.Level).Fprintf(c.w, "%s %s\n", prefix(n.Level), n.Message)
}

func colorFor(l Level) *color.Color {
	switch l {
	case LevelSuccess:
		return color.New(color.FgGreen)
	case LevelWarning:
		return color.New(color.FgYellow)
	case LevelDanger:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func prefix(l Level) string {
	switch l {
	case LevelSuccess:
		return "[ok]"
	case LevelWarning:
		return "[warn]"
	case LevelDanger:
		return "[error]"
	default:
		return "[info]"
	}
}

// Recorder keeps every notice in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice, or the zero Notice.
func (r *Recorder) Last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Infof is a shorthand for an info notice.
func Infof(n Notifier, format string, args ...any) {
	n.Notify(Notice{Message: fmt.Sprintf(format, args...), Level: LevelInfo})
}
