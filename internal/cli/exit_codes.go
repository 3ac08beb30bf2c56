package cli

// Exit codes for the changelog CLI
const (
	// ExitSuccess indicates the changelog was written (or help/version was printed)
	ExitSuccess = 0

	// ExitFailure indicates any fatal error; details are printed to stderr
	ExitFailure = 1
)
