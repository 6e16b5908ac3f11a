package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var (
	// Check if output supports colors
	supportsColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Color functions
	ColorSuccess = colorFunc(ansi.Green)
	ColorError   = colorFunc(ansi.Red)
	ColorWarning = colorFunc(ansi.Yellow)
	ColorInfo    = colorFunc(ansi.Cyan)
	ColorBold    = colorFunc("default+b")
	ColorDim     = colorFunc("default+h")
)

// DisableColor forces plain output regardless of terminal detection.
func DisableColor() {
	supportsColor = false
}

// colorFunc returns a function that colors text if supported
func colorFunc(color string) func(string) string {
	return func(text string) string {
		if supportsColor {
			return ansi.Color(text, color)
		}
		return text
	}
}

// ShowHeader displays a formatted top-level header
func ShowHeader(title string) {
	width := 60
	fmt.Printf("\n%s\n", ColorBold(title))
	fmt.Println(strings.Repeat("=", width))
}

// ShowSection displays a section header
func ShowSection(title string) {
	fmt.Printf("\n%s\n", ColorBold(title))
	fmt.Println(strings.Repeat("=", 50))
}

// ShowError displays a formatted error message
func ShowError(err error) {
	fmt.Printf("\n%s\n", ColorError("ERROR:"))

	message := err.Error()
	for i, line := range strings.Split(message, "\n") {
		if i == 0 {
			fmt.Printf("  %s\n", line)
		} else {
			fmt.Printf("  %s\n", ColorDim(line))
		}
	}

	if suggestion := getSuggestion(message); suggestion != "" {
		fmt.Printf("\n  %s %s\n", ColorInfo("TIP:"), ColorInfo(suggestion))
	}
}

// ShowSuccess displays a success message
func ShowSuccess(message string) {
	fmt.Printf("%s %s\n", ColorSuccess("OK:"), message)
}

// ShowWarning displays a warning message
func ShowWarning(message string) {
	fmt.Printf("%s %s\n", ColorWarning("WARNING:"), ColorWarning(message))
}

// ShowInfo displays an info message
func ShowInfo(message string) {
	fmt.Printf("%s %s\n", ColorInfo("INFO:"), message)
}

// PrintKeyValue prints a key-value pair in a formatted way
func PrintKeyValue(key, value string) {
	fmt.Printf("  %-32s %s\n", ColorDim(key+":"), value)
}

// getSuggestion returns helpful suggestions based on error messages
func getSuggestion(error string) string {
	lower := strings.ToLower(error)

	switch {
	case strings.Contains(lower, "password authentication failed"):
		return "Check PG_USER and PG_PASSWORD, or run 'ordersight setup'"
	case strings.Contains(lower, "connection refused"):
		return "Verify the PostgreSQL host/port and that the server is running"
	case strings.Contains(lower, "does not exist"):
		return "Verify the table exists or check that the data pipeline has run"
	case strings.Contains(lower, "permission denied"):
		return "Ensure the database user has SELECT privileges on the analytics tables"
	default:
		return ""
	}
}
