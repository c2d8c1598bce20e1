package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/config"
	"github.com/example/rscrot/internal/logger"
	"github.com/example/rscrot/internal/tool"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// environment is everything the commands take from the process. Tests
// replace it wholesale.
type environment struct {
	runner  tool.Runner
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	loader  *config.Loader
	envFile string
}

func processEnvironment() *environment {
	return &environment{
		runner:  tool.Exec{},
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		loader:  config.NewLoader(version, configPathOverride),
		envFile: config.ResolveEnvFile(),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(processEnvironment()).ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Get().Error().Err(err).Str("kind", apperr.KindOf(err).String()).Msg("rscrot failed")
		os.Exit(1)
	}
}
