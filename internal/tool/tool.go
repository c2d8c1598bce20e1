// Package tool runs the external programs rscrot orchestrates and classifies
// their failures.
package tool

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/example/rscrot/internal/apperr"
)

// Command describes one external program invocation.
type Command struct {
	Name  string
	Args  []string
	Stdin []byte
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner launches commands. Output and Run block until the process exits;
// Start returns as soon as the process is launched.
type Runner interface {
	Output(ctx context.Context, c Command) ([]byte, error)
	Run(ctx context.Context, c Command) error
	Start(c Command) error
}

// Exec is the os/exec backed Runner.
type Exec struct{}

var _ Runner = Exec{}

// Output runs c and returns its stdout.
func (Exec) Output(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Stdin != nil {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	return out, classify(ctx, c.Name, err, stderr.String())
}

// Run runs c without capturing output. Stderr passes through to ours so a tool
// that forks a daemon (xclip) does not keep a pipe open behind it.
func (Exec) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Stdin != nil {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}
	cmd.Stderr = os.Stderr
	return classify(ctx, c.Name, cmd.Run(), "")
}

// Start launches c detached from our process group and releases it. The child
// is never waited on.
func (Exec) Start(c Command) error {
	cmd := exec.Command(c.Name, c.Args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return apperr.Wrap(err, apperr.KindSpawn, c.Name, "")
	}
	return cmd.Process.Release()
}

func classify(ctx context.Context, name string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperr.Wrap(ctxErr, apperr.KindCancelled, name, "interrupted")
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e := apperr.ToolExit(name, exitErr.ExitCode())
		if line := firstLine(stderr); line != "" {
			e.Msg += " (" + line + ")"
		}
		e.Err = exitErr
		return e
	}
	return apperr.Wrap(err, apperr.KindSpawn, name, "")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
