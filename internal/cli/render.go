package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/pipeline"
)

// renderCommand creates the render command for writing the grid to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		formats  string
		captions bool
	)
	flags := defaultGalleryFlags()

	cmd := &cobra.Command{
		Use:   "render <folder>",
		Short: "Render a folder as a grid to SVG, PNG or JSON",
		Long: `Render a folder as a grid to SVG, PNG or JSON.

Every .jpg, .jpeg and .png file directly inside the folder is decoded, shuffled
and placed round robin into fixed-width columns. Pass --seed to reproduce an
order; the seed used is recorded in the JSON output.

Decoded thumbnails are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(args[0])
			opts.Formats = pipeline.ParseFormats(formats)
			opts.Captions = captions
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatPNG, "output format(s): png, svg, json (comma-separated)")
	cmd.Flags().BoolVar(&captions, "captions", false, "print file names on thumbnails")
	flags.register(cmd, true)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
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
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Rendered %d of %d images", result.Stats.Placed, result.Stats.ImageCount))

	for _, w := range result.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}

	base := basePath(output, opts.Dir)
	paths := make([]string, 0, len(result.Artifacts))
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.ImageCount, result.Stats.Failed, result.Layout.Columns)
	printDetail("seed %d", result.Seed)
	return nil
}

// basePath derives the output path without extension. Without --output the
// folder name is used in the current directory; an output with a known
// format extension has it stripped.
func basePath(output, dir string) string {
	if output == "" {
		name := filepath.Base(filepath.Clean(dir))
		if abs, err := filepath.Abs(dir); err == nil {
			name = filepath.Base(abs)
		}
		if name == string(filepath.Separator) || name == "." {
			name = appName
		}
		return name
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
