package ui

import (
	"os"

	"golang.org/x/term"
)

const AsciiArt = `
███╗   ███╗ █████╗ ███████╗
████╗ ████║██╔══██╗██╔════╝
██╔████╔██║███████║███████╗
██║╚██╔╝██║██╔══██║╚════██║
██║ ╚═╝ ██║██║  ██║███████║
╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝
`

const (
	ColorReset  = "\033[0m"
	ColorGray   = "\033[90m" // Light gray
	ColorWhite  = "\033[97m" // White
	ColorRed    = "\033[91m" // Bright Red
	ColorGreen  = "\033[92m" // Bright Green
	ColorYellow = "\033[93m" // Bright Yellow

	ColorSecure  = "\033[92m"
	ColorInfo    = "\033[37m"
	ColorWarning = "\033[33m"
	ColorHigh    = "\033[31m"
)

// IsTTY reports whether stdout is a terminal. Piped output gets no colors.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Color returns code when writing to a terminal, empty otherwise.
func Color(code string) string {
	if IsTTY() {
		return code
	}
	return ""
}

// SeverityColor maps analyzer severities to console colors.
func SeverityColor(severity string) string {
	switch severity {
	case "high":
		return Color(ColorHigh)
	case "warning":
		return Color(ColorWarning)
	case "good", "secure":
		return Color(ColorSecure)
	case "info":
		return Color(ColorInfo)
	default:
		return Color(ColorWhite)
	}
}
