package app

import (
	"github.com/lumenlang/lumen/internal/core/ports"
)

// Components bundles the wired application for the CLI entry point. The
// logger rides along so main can report errors that escape the commands.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents wraps the assembled pieces.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{App: app, Logger: logger}
}
