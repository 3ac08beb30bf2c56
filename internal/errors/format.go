package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// color.NoColor is set automatically when the output is not a TTY.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
	warnLabel   = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// FormatError formats a CLIError for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, !color.NoColor)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	var sb strings.Builder

	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(categoryFmt(err.Category.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Message))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Category.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Message)
	}
	sb.WriteString("\n")

	if len(err.Remediation) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	if useColors {
		sb.WriteString(fixLabel("To fix this:"))
	} else {
		sb.WriteString("To fix this:")
	}
	sb.WriteString("\n")
	for _, step := range err.Remediation {
		if useColors {
			sb.WriteString("  ")
			sb.WriteString(bullet("•"))
			sb.WriteString(" ")
		} else {
			sb.WriteString("  • ")
		}
		sb.WriteString(step)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FprintError prints any error to w. Errors that are not a CLIError are
// reported as runtime errors.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	fmt.Fprint(w, FormatError(cliErr))
}

// FprintWarning prints a single warning line to w.
func FprintWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if color.NoColor {
		fmt.Fprintf(w, "warning: %s\n", msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", warnLabel("warning:"), msg)
}
