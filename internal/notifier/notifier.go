// Package notifier delivers nudges to the desktop via the
// org.freedesktop.Notifications service on the session bus. When no
// session bus is reachable, notifications degrade to the structured log
// so headless sessions keep working.
package notifier

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/julianstephens/focusflow/internal/logger"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = "org.freedesktop.Notifications.Notify"
	appName         = "FocusFlow"
	expireTimeoutMs = 10000
)

// Notifier sends nudge and session notifications.
type Notifier interface {
	Notify(summary, body string) error
	Close() error
}

// DesktopNotifier talks to the freedesktop notification daemon over the
// session bus.
type DesktopNotifier struct {
	conn *dbus.Conn
}

// NewDesktop connects to the session bus. An error here usually means the
// process is running without a desktop session.
func NewDesktop() (*DesktopNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DesktopNotifier{conn: conn}, nil
}

func (n *DesktopNotifier) Notify(summary, body string) error {
	obj := n.conn.Object(notifyService, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyMethod, 0,
		appName,            // app_name
		uint32(0),          // replaces_id
		"appointment-soon", // app_icon
		summary,
		body,
		[]string{}, // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)), // normal urgency
		},
		int32(expireTimeoutMs),
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}

func (n *DesktopNotifier) Close() error {
	return n.conn.Close()
}

// LogNotifier writes notifications to the application log. It is the
// fallback when the session bus is unavailable and the default in tests.
type LogNotifier struct{}

func NewLog() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(summary, body string) error {
	logger.Info(summary, "body", body)
	return nil
}

func (n *LogNotifier) Close() error { return nil }

// Best returns a desktop notifier when the session bus is reachable and
// falls back to the log notifier otherwise.
func Best() Notifier {
	n, err := NewDesktop()
	if err != nil {
		logger.Debug("desktop notifications unavailable", "error", err)
		return NewLog()
	}
	return n
}
