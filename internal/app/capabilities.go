package app

import (
	"os"
	"strings"
)

// HostCapabilities describes the terminal the UI is drawn on. Locally it
// comes from the process environment; over SSH from the session's.
type HostCapabilities struct {
	TerminalName string
	TrueColor    bool
	// UTF8 is false when the locale rules out box drawing characters.
	UTF8 bool
}

// DetectHostCapabilities reads the capabilities from the process
// environment.
func DetectHostCapabilities() *HostCapabilities {
	return DetectHostCapabilitiesFrom(os.Getenv)
}

// DetectHostCapabilitiesFrom reads the capabilities through getenv.
func DetectHostCapabilitiesFrom(getenv func(string) string) *HostCapabilities {
	caps := &HostCapabilities{UTF8: true}
	term := strings.ToLower(getenv("TERM"))
	termProgram := strings.ToLower(getenv("TERM_PROGRAM"))
	colorterm := strings.ToLower(getenv("COLORTERM"))

	switch {
	case strings.Contains(termProgram, "ghostty"):
		caps.TerminalName = "ghostty"
		caps.TrueColor = true
	case strings.Contains(termProgram, "kitty"), strings.Contains(term, "kitty"):
		caps.TerminalName = "kitty"
		caps.TrueColor = true
	case strings.Contains(termProgram, "wezterm"):
		caps.TerminalName = "wezterm"
		caps.TrueColor = true
	case strings.Contains(termProgram, "iterm"):
		caps.TerminalName = "iterm2"
		caps.TrueColor = true
	case strings.Contains(termProgram, "alacritty"), strings.Contains(term, "alacritty"):
		caps.TerminalName = "alacritty"
		caps.TrueColor = true
	case strings.Contains(term, "xterm"):
		caps.TerminalName = "xterm"
	case term != "":
		caps.TerminalName = term
	}

	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.TrueColor = true
	}
	if strings.Contains(term, "truecolor") || strings.Contains(term, "direct") {
		caps.TrueColor = true
	}

	// The first locale variable that is set wins.
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		locale := strings.ToLower(getenv(name))
		if locale == "" {
			continue
		}
		caps.UTF8 = strings.Contains(locale, "utf-8") || strings.Contains(locale, "utf8")
		break
	}
	if term == "dumb" {
		caps.UTF8 = false
	}
	return caps
}

// Lookup turns a KEY=VALUE list, as an SSH session reports it, into a
// getenv function.
func Lookup(environ []string) func(string) string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return func(k string) string { return env[k] }
}
