package cli

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/ariel-frischer/changelog/internal/changelog"
	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/repoinfo"
	"github.com/ariel-frischer/changelog/internal/tags"
	"github.com/spf13/cobra"
)

func runGenerate(cmd *cobra.Command, _ []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Environment, "cannot determine working directory")
	}
	return generate(dir, cmd.ErrOrStderr())
}

// generate loads the configuration for dir and writes its changelog. Failed
// extractors are reported to stderr as warnings.
func generate(dir string, stderr io.Writer) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return clierrors.InvalidConfig(err)
	}

	configureDebugLogging(cfg.Debug, stderr)

	_, err = changelog.Run(dir, changelog.Options{
		Output:     cfg.Output,
		TagPattern: cfg.TagPattern,
		Remotes:    cfg.Remotes,
		Logf: func(format string, args ...any) {
			clierrors.FprintWarning(stderr, format, args...)
		},
	})
	if err != nil {
		return toCLIError(err, dir, cfg.TagPattern)
	}
	return nil
}

// toCLIError maps the fatal errors of a run to their user-facing messages.
func toCLIError(err error, dir, tagPattern string) error {
	switch {
	case errors.Is(err, git.ErrNotRepository):
		return clierrors.NotGitRepository(dir, err)
	case errors.Is(err, repoinfo.ErrNoRepoInformation):
		return clierrors.NoRepoInformation(err)
	case errors.Is(err, tags.ErrNoReleaseTags):
		return clierrors.NoReleaseTags(tagPattern, err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

// configureDebugLogging routes every package's debug trace to a stderr logger
// when enabled, and silences it otherwise.
func configureDebugLogging(enabled bool, stderr io.Writer) {
	var logf func(format string, args ...any)
	if enabled {
		logf = log.New(stderr, "", log.Ltime|log.Lmicroseconds).Printf
	}

	git.SetDebugLogger(logf)
	repoinfo.SetDebugLogger(logf)
	changelog.SetDebugLogger(logf)
}
