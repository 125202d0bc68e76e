package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/grid"
	"github.com/matzehuels/illustgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for printing placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var asJSON bool
	flags := defaultGalleryFlags()

	cmd := &cobra.Command{
		Use:   "layout <folder>",
		Short: "Print where every image of a folder is placed",
		Long: `Print where every image of a folder is placed.

The layout is computed exactly as for 'render' and 'view'. Images that fail to
decode are listed as skipped. Use --json for the same document 'render -f json'
writes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(args[0])
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	flags.register(cmd, true)

	return cmd
}

// runLayout loads the folder and prints its layout.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, asJSON bool) error {
	// Sizes only; no thumbnails are produced, so the cache is not needed.
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, "Decoding images...")
	spinner.Start()
	opts.Progress = spinner.Progress("Decoding images")
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if asJSON {
		_, err := os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
		if err == nil {
			fmt.Println()
		}
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}
	if len(result.Layout.Placements) > 0 {
		fmt.Println(layoutTable(result.Layout))
	}
	for _, id := range result.Layout.Skipped {
		printDetail("skipped %s", id)
	}
	printStats(result.Stats.ImageCount, result.Stats.Failed, result.Layout.Columns)
	printKeyValue("height", strconv.Itoa(result.Layout.ContentHeight)+"px")
	printKeyValue("seed", strconv.FormatUint(result.Seed, 10))
	return nil
}

// layoutTable renders the placements as a bordered table.
func layoutTable(l grid.Layout) string {
	rows := make([][]string, 0, len(l.Placements))
	for i, p := range l.Placements {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Image.Name,
			strconv.Itoa(p.Column),
			strconv.Itoa(p.X),
			strconv.Itoa(p.Y),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Image", "Col", "X", "Y", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorWhite)
			case col == 2:
				return lipgloss.NewStyle().Foreground(columnColor(l.Placements[row].Column))
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})
	return t.Render()
}
