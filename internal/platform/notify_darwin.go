//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows the message in Notification Center through osascript. Urgent
// notifications play the default alert sound.
func Notify(summary, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, AppName, summary)
	if opts.Urgent {
		script += ` sound name "Basso"`
	}
	return exec.Command("osascript", "-e", script).Run()
}
