package color

import (
	"github.com/fatih/color"
)

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	infoColor      = color.New(color.FgGreen)
	warningColor   = color.New(color.FgYellow, color.Bold)
	errorColor     = color.New(color.FgRed, color.Bold)
	userColor      = color.New(color.FgHiBlue, color.Bold)
	assistantColor = color.New(color.FgHiYellow, color.Bold)
	codeColor      = color.New(color.FgHiBlack)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

// ColorRole colours a chat speaker label.
func ColorRole(role string) string {
	if role == "user" {
		return userColor.Sprint(role)
	}
	return assistantColor.Sprint(role)
}

func ColorCode(s string) string {
	return codeColor.Sprint(s)
}

// Disable turns colour off, e.g. when output is not a terminal.
func Disable() {
	color.NoColor = true
}
