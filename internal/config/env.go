package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileVar names an explicit .env file to load.
const EnvFileVar = "RSCROT_ENV_FILE"

// ResolveEnvFile returns the .env file to load: one next to the executable,
// then the file named by RSCROT_ENV_FILE. Empty when neither exists.
func ResolveEnvFile() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}
	if alt := os.Getenv(EnvFileVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

// LoadEnvFile exports the variables in path into the process environment.
// Variables already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays RSCROT_* variables read through getenv onto cfg.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("RSCROT_IMGUR_CLIENT_ID", &cfg.ImgurClientID)
	str("RSCROT_CAPTURE_TOOL", &cfg.CaptureTool)
	str("RSCROT_DIALOG", &cfg.Dialog)
	str("RSCROT_DMENU_COMMAND", &cfg.DmenuCommand)
	str("RSCROT_CLIPBOARD", &cfg.Clipboard)
	str("RSCROT_OUTPUT", &cfg.Output)
	str("RSCROT_SAVE_DIR", &cfg.SaveDir)
	str("RSCROT_LOG_LEVEL", &cfg.LogLevel)
	str("RSCROT_LOG_FORMAT", &cfg.LogFormat)

	if v := strings.TrimSpace(getenv("RSCROT_SELECT")); v != "" {
		b, err := parseBool("RSCROT_SELECT", v)
		if err != nil {
			return err
		}
		cfg.Select = b
	}
	if v := strings.TrimSpace(getenv("RSCROT_TIMER")); v != "" {
		n, err := ParseTimer(v)
		if err != nil {
			return fmt.Errorf("RSCROT_TIMER: %w", err)
		}
		cfg.Timer = n
	}
	if v := strings.TrimSpace(getenv("RSCROT_CLIPBOARD_GRACE")); v != "" {
		d, err := ParseGrace(v)
		if err != nil {
			return fmt.Errorf("RSCROT_CLIPBOARD_GRACE: %w", err)
		}
		cfg.ClipboardGrace = d
	}
	// Comma separated, replaces the rc list.
	if v := strings.TrimSpace(getenv("RSCROT_VIEWERS")); v != "" {
		var viewers []string
		for _, viewer := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(viewer); trimmed != "" {
				viewers = append(viewers, trimmed)
			}
		}
		cfg.Viewers = viewers
	}
	return nil
}
