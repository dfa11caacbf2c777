// Package notify delivers user-facing notifications (toasts). Delivery is
// fire-and-forget: a Notifier never blocks the caller and never reports
// whether the user saw the message.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultDuration is how long a toast stays visible unless configured
// otherwise.
const DefaultDuration = 5 * time.Second

// Notification is a single toast message.
type Notification struct {
	ID       string
	Severity Severity
	Title    string
	Message  string
	Time     time.Time
}

// New builds a Notification with a fresh ID and the current time.
func New(sev Severity, title, message string) Notification {
	return Notification{
		ID:       uuid.NewString(),
		Severity: sev,
		Title:    title,
		Message:  message,
		Time:     time.Now(),
	}
}

// Errorf builds an error notification with a formatted message.
func Errorf(title, format string, args ...any) Notification {
	return New(SeverityError, title, fmt.Sprintf(format, args...))
}

// Notifier accepts notifications for display.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// ---------------------------------------------------------------------------
// LogNotifier
// ---------------------------------------------------------------------------

// LogNotifier writes notifications to a charmbracelet logger at a level
// matching their severity.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier returns a LogNotifier writing to logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(n Notification) {
	switch n.Severity {
	case SeverityError:
		l.logger.Error(n.Title, "message", n.Message, "id", n.ID)
	case SeverityWarning:
		l.logger.Warn(n.Title, "message", n.Message, "id", n.ID)
	default:
		l.logger.Info(n.Title, "message", n.Message, "id", n.ID)
	}
}

// ---------------------------------------------------------------------------
// WriterNotifier
// ---------------------------------------------------------------------------

var severityStyles = map[Severity]lipgloss.Style{
	SeverityInfo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}),
	SeveritySuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}),
	SeverityWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}),
	SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}),
}

// WriterNotifier renders one styled line per notification to w. It is used
// by non-interactive commands, which write toasts to stderr.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier returns a WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify implements Notifier. Write errors are ignored.
func (wn *WriterNotifier) Notify(n Notification) {
	wn.mu.Lock()
	defer wn.mu.Unlock()
	_, _ = fmt.Fprintln(wn.w, Format(n))
}

// Format renders n as "[severity] title: message" with the severity tag
// styled by colour.
func Format(n Notification) string {
	style, ok := severityStyles[n.Severity]
	if !ok {
		style = severityStyles[SeverityInfo]
	}
	tag := style.Render("[" + string(n.Severity) + "]")
	if n.Message == "" {
		return tag + " " + n.Title
	}
	if n.Title == "" {
		return tag + " " + n.Message
	}
	return tag + " " + n.Title + ": " + n.Message
}

// ---------------------------------------------------------------------------
// ChanNotifier
// ---------------------------------------------------------------------------

// ChanNotifier forwards notifications into a buffered channel. When the
// buffer is full the notification is dropped instead of blocking.
type ChanNotifier struct {
	ch chan Notification
}

// NewChanNotifier creates a ChanNotifier with the given buffer size (minimum 1).
func NewChanNotifier(buffer int) *ChanNotifier {
	if buffer < 1 {
		buffer = 1
	}
	return &ChanNotifier{ch: make(chan Notification, buffer)}
}

// Notify implements Notifier.
func (c *ChanNotifier) Notify(n Notification) {
	select {
	case c.ch <- n:
	default:
	}
}

// C returns the receive side of the channel.
func (c *ChanNotifier) C() <-chan Notification {
	return c.ch
}

// ---------------------------------------------------------------------------
// Multi
// ---------------------------------------------------------------------------

// Multi fans a notification out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	list := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}
	return NotifierFunc(func(n Notification) {
		for _, target := range list {
			target.Notify(n)
		}
	})
}
