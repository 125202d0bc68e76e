package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/pipeline"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var exportDir string
	flags := defaultGalleryFlags()

	cmd := &cobra.Command{
		Use:   "view <folder>",
		Short: "Browse a folder as a shuffled grid in the terminal",
		Long: `Browse a folder as a shuffled grid in the terminal.

Each terminal cell stands for 8x16 pixels, so the number of columns follows the
window width. Press r to reshuffle, +/- to change the thumbnail width, [ and ]
for the column gap, { and } for the row gap, b/B for the background shade, and
the arrow keys or mouse wheel to scroll. Press e to save the visible part of
the grid as a PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(args[0])
			return c.runView(cmd.Context(), opts, exportDir, flags.noCache)
		},
	}

	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for PNG exports")
	flags.register(cmd, false)

	return cmd
}

// runView loads the folder and runs the viewer until the user quits.
func (c *CLI) runView(ctx context.Context, opts pipeline.Options, exportDir string, noCache bool) error {
	if err := errors.ValidateDir(exportDir); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Decoding images...")
	spinner.Start()
	opts.Progress = spinner.Progress("Decoding images")
	loaded, err := runner.Load(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Loaded %d images", loaded.Loaded()))

	m, err := runner.Gallery(loaded.Images, opts)
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(log.FatalLevel)
	defer c.Logger.SetLevel(level)

	v := newViewer(ctx, m, runner.Thumbs, exportDir)
	v.workers = opts.Workers
	p := tea.NewProgram(v,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "run viewer")
	}
	return nil
}
