package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/illustgrid/internal/cli"
	ierrors "github.com/matzehuels/illustgrid/pkg/errors"
)

// Exit statuses follow sysexits(3) so scripts can tell a bad flag from a
// missing folder.
const (
	exitFailure     = 1
	exitUsage       = 64
	exitDataErr     = 65
	exitNoInput     = 66
	exitSoftware    = 70
	exitNoPerm      = 77
	exitConfig      = 78
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, cli.StyleError.Render("✗ "+ierrors.UserMessage(err)))
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	switch ierrors.GetCode(err) {
	case ierrors.ErrCodeInvalidParameter, ierrors.ErrCodeInvalidFormat, ierrors.ErrCodeInvalidPath:
		return exitUsage
	case ierrors.ErrCodeDecodeFailure:
		return exitDataErr
	case ierrors.ErrCodeNotFound, ierrors.ErrCodeEmptyDirectory:
		return exitNoInput
	case ierrors.ErrCodePermissionDenied:
		return exitNoPerm
	case ierrors.ErrCodeInvalidConfig:
		return exitConfig
	case ierrors.ErrCodeInternal:
		return exitSoftware
	}
	return exitFailure
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before the root's own pre-run reads the config,
	// so wrap it instead of replacing it.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if loadConfig == nil {
			return nil
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
