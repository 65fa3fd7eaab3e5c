package console

import (
	"os"

	"golang.org/x/term"
)

// Mode controls how much per-module progress the reporter prints.
type Mode int

const (
	// ModeAuto defers to the environment: a TTY outside CI gets progress
	// lines, everything else gets plain output.
	ModeAuto Mode = iota
	// ModeProgress announces each module as it starts compiling.
	ModeProgress
	// ModePlain prints completion lines only.
	ModePlain
)

// ParseMode maps an output-mode flag value to a Mode. "progress" and
// "plain" select their modes directly, and "ci" is shorthand for plain.
// Everything else, including "auto" and the empty string, defers to
// environment detection.
func ParseMode(flag string) Mode {
	switch flag {
	case "progress":
		return ModeProgress
	case "plain", "ci":
		return ModePlain
	default:
		return ModeAuto
	}
}

// DetectMode sniffs the environment ModeAuto resolves against. Progress
// lines need a real terminal on stderr, and CI logs read better without
// them.
func DetectMode() Mode {
	if inCI() || !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModePlain
	}
	return ModeProgress
}

func inCI() bool {
	switch os.Getenv("CI") {
	case "true", "1":
		return true
	}
	return false
}
