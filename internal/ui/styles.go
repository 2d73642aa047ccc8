package ui

import "fmt"

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent   = 74  // blue
	colorCmd      = 250 // light gray
	colorMuted    = 245 // medium gray
	colorManual   = 114 // green
	colorAppState = 179 // amber
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorCmd, s)
}

// RenderTrigger colors a trigger name: manual green, app_state amber,
// initial blue.
func RenderTrigger(trigger string) string {
	if noColor {
		return trigger
	}
	switch trigger {
	case "manual":
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorManual, trigger)
	case "app_state":
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAppState, trigger)
	default:
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, trigger)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
