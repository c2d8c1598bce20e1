//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const expireTimeoutMillis = int32(5000)

// Notify sends a desktop notification over the org.freedesktop.Notifications D-Bus interface.
func Notify(summary, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, summary, body, []string{}, hints(opts), expireTimeoutMillis)
	return call.Err
}

// hints maps Options to notification hints; urgency 2 is "critical".
func hints(opts Options) map[string]dbus.Variant {
	h := map[string]dbus.Variant{}
	if opts.Urgent {
		h["urgency"] = dbus.MakeVariant(byte(2))
	}
	return h
}
