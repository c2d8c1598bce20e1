//go:build windows

package platform

import (
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds a PowerShell snippet that shows a two-line toast, with
// the icon when one is given.
func toastScript(summary, body, icon string) string {
	kind := "ToastText02"
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	lines := []string{
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null`,
		`$t = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::` + kind + `)`,
		`$x = $t.GetElementsByTagName("text")`,
		`$x.Item(0).AppendChild($t.CreateTextNode(` + psQuote(summary) + `)) > $null`,
		`$x.Item(1).AppendChild($t.CreateTextNode(` + psQuote(body) + `)) > $null`,
	}
	if icon != "" {
		lines = append(lines, `$t.GetElementsByTagName("image").Item(0).SetAttribute("src", `+psQuote(icon)+`)`)
	}
	lines = append(lines,
		`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(`+psQuote(AppName)+`).Show([Windows.UI.Notifications.ToastNotification]::new($t))`,
	)
	return strings.Join(lines, "; ")
}

// Notify displays a toast notification using the Windows notification center.
func Notify(summary, body string, opts Options) error {
	script := toastScript(summary, body, strings.TrimSpace(opts.IconPath))
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
