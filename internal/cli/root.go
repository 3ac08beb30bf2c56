// Package cli implements the changelog command line: a single root command
// that regenerates CHANGELOG.md for the repository in the working directory.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/changelog/internal/build"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   build.BinaryName,
		Short: build.Description,
		Long: `Generate CHANGELOG.md from the git history of the current repository.

Release tags (v1.2.3) are ordered by semantic version and paired into ranges.
Every range gets a section linking to its GitHub diff, listing "fix" commits
under Bug Fixes and "feat" commits under Features. Unreleased commits appear
in a HEAD section dated today. Other commit types are left out.

The GitHub project is read from the upstream or origin remote, overridden by
the go.mod module path or the repository field of package.json or Cargo.toml
when present.

Configuration (optional): .changelog.yml in the working directory, overridden
by CHANGELOG_OUTPUT, CHANGELOG_TAG_PATTERN, CHANGELOG_REMOTES and
CHANGELOG_DEBUG.`,
		Example: `  # Regenerate CHANGELOG.md
  changelog

  # Print the version
  changelog -V`,
		Version:       displayVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	// Declared explicitly so the shorthand is -V rather than cobra's -v.
	cmd.Flags().BoolP("version", "V", false, "Prints version information")
	cmd.Flags().BoolP("help", "h", false, "Prints help information")
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.SetHelpTemplate(banner() + cmd.HelpTemplate())

	// cobra checks --help before --version; the version wins when both are given.
	help := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if v, _ := c.Flags().GetBool("version"); v {
			fmt.Fprintf(c.OutOrStdout(), "%s v%s\n", c.Name(), c.Version)
			return
		}
		help(c, args)
	})

	return cmd
}

// displayVersion appends the commit to development builds so they can be
// told apart.
func displayVersion() string {
	if build.IsDevBuild() && build.Commit != "unknown" {
		return build.Version + "+" + build.Commit
	}
	return build.Version
}

// banner is printed above the usage text: name and version, authors and description.
func banner() string {
	return formatBanner(displayVersion(), build.BuildDate)
}

func formatBanner(version, buildDate string) string {
	if buildDate != "" && buildDate != "unknown" {
		version += " (built " + buildDate + ")"
	}
	return fmt.Sprintf("%s %s\n%s\n%s\n\n", build.BinaryName, version, build.Authors, build.Description)
}

// Execute runs the root command with the process arguments. Errors have
// already been printed to stderr when it returns.
func Execute() error {
	return execute(rootCmd, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		clierrors.FprintError(stderr, err)
		return err
	}
	return nil
}
