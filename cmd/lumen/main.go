// Package main is the entry point for the lumen build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/lumenlang/lumen/cmd/lumen/commands"
	"github.com/lumenlang/lumen/internal/app"
	"github.com/lumenlang/lumen/internal/core/domain"
	_ "github.com/lumenlang/lumen/internal/wiring"
)

// ComponentProvider assembles the application components, returning a
// cleanup function alongside them.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, graftProvider))
}

// graftProvider resolves the component graph declared by the wiring package.
func graftProvider(ctx context.Context) (*app.Components, func(), error) {
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	return components, func() {}, err
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, shutdown, err := provider(ctx)
	if err != nil {
		// No logger exists yet when wiring fails, so write to stderr directly.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer shutdown()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	switch err := cli.Execute(ctx); {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrBuildFailed):
		// Per-file failures already streamed to the console.
		return 1
	default:
		components.Logger.Error(err)
		return 1
	}
}
