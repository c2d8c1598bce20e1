package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultClipboardGrace is the hold-open window for the native clipboard.
const DefaultClipboardGrace = 20 * time.Second

// Notify holds notification settings.
type Notify struct {
	Upload bool
	Save   bool
	Copy   bool
}

// Config holds the application configuration. Empty strings mean "use the
// built-in default" so a lower-precedence layer never masks a higher one.
type Config struct {
	ImgurClientID  string
	CaptureTool    string
	Select         bool
	Timer          int
	Dialog         string
	DmenuCommand   string
	Clipboard      string
	ClipboardGrace time.Duration
	Output         string
	SaveDir        string
	Keep           bool
	LogLevel       string
	LogFormat      string
	Viewers        []string
	Notify         Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		ClipboardGrace: DefaultClipboardGrace,
		Notify: Notify{
			Upload: true,
			Save:   false,
			Copy:   false,
		},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	writeString := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", key, value)
		}
	}
	writeString("imgur_client_id", c.ImgurClientID)
	writeString("capture_tool", c.CaptureTool)
	fmt.Fprintf(&sb, "select = %v\n", c.Select)
	fmt.Fprintf(&sb, "timer = %d\n", c.Timer)
	writeString("dialog", c.Dialog)
	writeString("dmenu_command", quoteIfNeeded(c.DmenuCommand))
	writeString("clipboard", c.Clipboard)
	fmt.Fprintf(&sb, "clipboard_grace = %s\n", c.ClipboardGrace)
	writeString("output", c.Output)
	writeString("save_dir", c.SaveDir)
	fmt.Fprintf(&sb, "keep = %v\n", c.Keep)
	writeString("log_level", c.LogLevel)
	writeString("log_format", c.LogFormat)
	sb.WriteString("\n")

	if len(c.Viewers) > 0 {
		sb.WriteString("[viewers]\n")
		for _, v := range c.Viewers {
			sb.WriteString(quoteIfNeeded(v))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "upload = %v\n", c.Notify.Upload)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}

// quoteIfNeeded protects values whose surrounding whitespace or comment
// prefix would otherwise be lost on parse.
func quoteIfNeeded(s string) string {
	if s == "" {
		return s
	}
	if s != strings.TrimSpace(s) || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "[") {
		return `"` + s + `"`
	}
	return s
}
