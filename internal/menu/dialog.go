package menu

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/tool"
)

// DialogBackend names a dialog implementation.
type DialogBackend string

const (
	DialogZenity DialogBackend = "zenity"
	DialogDmenu  DialogBackend = "dmenu"
)

// DefaultDmenuCommand is used by the dmenu backend when none is configured.
const DefaultDmenuCommand = "rofi -dmenu -i -p Action"

// SavePrompt replaces the picker's -p value when it asks for a save path.
const SavePrompt = "Save as"

// cancelStatus is the exit status zenity, rofi and dmenu use when the user
// closes the dialog without choosing.
const cancelStatus = 1

// ParseDialogBackend validates a dialog backend name.
func ParseDialogBackend(s string) (DialogBackend, error) {
	switch b := DialogBackend(strings.ToLower(strings.TrimSpace(s))); b {
	case DialogZenity, DialogDmenu:
		return b, nil
	case "":
		return DialogZenity, nil
	default:
		return "", apperr.Newf(apperr.KindConfig, "dialog", "unknown dialog %q (want zenity or dmenu)", s)
	}
}

// Dialog asks the user for a single selection or a save path. Both methods
// return the tool's raw stdout.
type Dialog interface {
	Choose(ctx context.Context, title string, labels []string) (string, error)
	SavePath(ctx context.Context) (string, error)
}

// DialogOptions configures NewDialog.
type DialogOptions struct {
	Backend      DialogBackend
	DmenuCommand string
	SaveDir      string
}

// NewDialog returns the Dialog for opts.Backend.
func NewDialog(opts DialogOptions, runner tool.Runner) (Dialog, error) {
	switch opts.Backend {
	case DialogDmenu:
		fields := strings.Fields(opts.DmenuCommand)
		if len(fields) == 0 {
			fields = strings.Fields(DefaultDmenuCommand)
		}
		return &Dmenu{Command: fields, runner: runner}, nil
	case DialogZenity, "":
		return &Zenity{SaveDir: opts.SaveDir, runner: runner}, nil
	default:
		return nil, apperr.Newf(apperr.KindConfig, "dialog", "unknown dialog %q", opts.Backend)
	}
}

// Zenity presents the menu as a zenity list and the save picker as a zenity
// file selection.
type Zenity struct {
	SaveDir string
	runner  tool.Runner
}

func (z *Zenity) Choose(ctx context.Context, title string, labels []string) (string, error) {
	args := []string{"--list", "--title", title, "--column", "Action"}
	args = append(args, labels...)
	return output(ctx, z.runner, tool.Command{Name: "zenity", Args: args})
}

func (z *Zenity) SavePath(ctx context.Context) (string, error) {
	args := []string{"--file-selection", "--save"}
	if z.SaveDir != "" {
		args = append(args, "--filename="+filepath.Clean(z.SaveDir)+string(filepath.Separator))
	}
	return output(ctx, z.runner, tool.Command{Name: "zenity", Args: args})
}

// Dmenu feeds the labels, one per line, to a dmenu compatible picker such as
// dmenu, rofi -dmenu or wofi --dmenu. The save path is typed into the same
// picker over an empty list.
type Dmenu struct {
	Command []string
	runner  tool.Runner
}

func (d *Dmenu) Choose(ctx context.Context, _ string, labels []string) (string, error) {
	stdin := []byte(strings.Join(labels, "\n") + "\n")
	return output(ctx, d.runner, tool.Command{Name: d.Command[0], Args: d.Command[1:], Stdin: stdin})
}

func (d *Dmenu) SavePath(ctx context.Context) (string, error) {
	return output(ctx, d.runner, tool.Command{Name: d.Command[0], Args: withPrompt(d.Command[1:], SavePrompt), Stdin: []byte{}})
}

// withPrompt returns a copy of args with the value of -p or --prompt set to
// prompt. Commands without a prompt flag are returned unchanged.
func withPrompt(args []string, prompt string) []string {
	out := append([]string(nil), args...)
	for i, a := range out {
		switch {
		case (a == "-p" || a == "--prompt") && i+1 < len(out):
			out[i+1] = prompt
			return out
		case strings.HasPrefix(a, "--prompt="):
			out[i] = "--prompt=" + prompt
			return out
		}
	}
	return out
}

func output(ctx context.Context, runner tool.Runner, cmd tool.Command) (string, error) {
	out, err := runner.Output(ctx, cmd)
	if err != nil {
		if apperr.ExitCode(err) == cancelStatus {
			return "", fmt.Errorf("%s: %w", cmd.Name, apperr.Cancelled("dialog"))
		}
		return "", err
	}
	return string(out), nil
}
