package errors

import "fmt"

// Common error messages for the changelog CLI.
// These templates ensure consistent, actionable error messages.

// NotGitRepository creates an error for a working directory outside a git repository.
func NotGitRepository(dir string, cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  "No git repository in current working directory found!",
		Remediation: []string{
			fmt.Sprintf("Run changelog from inside a git repository (looked in %s)", dir),
			"Initialize one with: git init",
		},
		Cause: cause,
	}
}

// NoRepoInformation creates an error when no extractor could resolve owner/repo.
func NoRepoInformation(cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  "could not determine the GitHub repository for this project",
		Remediation: []string{
			"Add an 'upstream' or 'origin' remote pointing at github.com",
			"Or set the repository field in Cargo.toml / package.json",
		},
		Cause: cause,
	}
}

// NoReleaseTags creates an error when no tag matches the version pattern.
func NoReleaseTags(pattern string, cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  fmt.Sprintf("no semantic version tags matching %q found", pattern),
		Remediation: []string{
			"Tag a release first, e.g.: git tag v0.1.0",
			"Or change tag_pattern in .changelog.yml",
		},
		Cause: cause,
	}
}

// InvalidConfig creates an error for a configuration that failed to load.
func InvalidConfig(cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("invalid configuration: %v", cause),
		Remediation: []string{
			"Check the syntax of .changelog.yml",
			"Check CHANGELOG_* environment variables",
		},
		Cause: cause,
	}
}
