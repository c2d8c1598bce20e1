package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		// One viewer command per line, no key.
		if currentSection == "viewers" {
			cfg.Viewers = append(cfg.Viewers, unquote(line))
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := unquote(strings.TrimSpace(parts[1]))

		switch currentSection {
		case "notify":
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("line %d: error in section [notify]: %w", lineNo, err)
			}
		case "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("line %d: error in root section: %w", lineNo, err)
			}
		}
	}

	return cfg, scanner.Err()
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		return value[1 : len(value)-1]
	}
	return value
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "imgur_client_id":
		cfg.ImgurClientID = value
	case "capture_tool":
		cfg.CaptureTool = value
	case "select":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		cfg.Select = b
	case "timer":
		n, err := ParseTimer(value)
		if err != nil {
			return err
		}
		cfg.Timer = n
	case "dialog":
		cfg.Dialog = value
	case "dmenu_command":
		cfg.DmenuCommand = value
	case "clipboard":
		cfg.Clipboard = value
	case "clipboard_grace":
		d, err := ParseGrace(value)
		if err != nil {
			return err
		}
		cfg.ClipboardGrace = d
	case "output":
		cfg.Output = value
	case "save_dir":
		cfg.SaveDir = value
	case "keep":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		cfg.Keep = b
	case "log_level":
		cfg.LogLevel = value
	case "log_format":
		cfg.LogFormat = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "upload":
		n.Upload = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

// maxTimer is the largest delay in seconds that fits a time.Duration.
const maxTimer = math.MaxInt64 / int64(time.Second)

// ParseTimer parses a capture delay in whole seconds. Negative, non-numeric
// and out of range values are rejected.
func ParseTimer(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid timer %q: must be a whole number of seconds", value)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid timer %q: must not be negative", value)
	}
	if int64(n) > maxTimer {
		return 0, fmt.Errorf("invalid timer %q: must be at most %d seconds", value, maxTimer)
	}
	return n, nil
}

// ParseGrace parses a clipboard grace period. A bare integer is taken as
// seconds, anything else as a time.Duration.
func ParseGrace(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid clipboard grace %q: must not be negative", value)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid clipboard grace %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid clipboard grace %q: must not be negative", value)
	}
	return d, nil
}
