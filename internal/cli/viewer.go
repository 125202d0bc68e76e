package cli

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/illustgrid/pkg/errors"
	"github.com/matzehuels/illustgrid/pkg/gallery"
	"github.com/matzehuels/illustgrid/pkg/grid"
	"github.com/matzehuels/illustgrid/pkg/imageio"
	"github.com/matzehuels/illustgrid/pkg/render/sink"
)

// Terminal cells map to pixels at this ratio.
const (
	cellWidth  = 8
	cellHeight = 16
)

// chromeRows are the terminal rows taken by the status and help lines.
const chromeRows = 2

const (
	widthStep = 10
	gapStep   = 1
	shadeStep = 5
)

const viewerHelp = "r shuffle  +/- width  [/] gap  {/} row gap  b/B shade  ↑/↓ scroll  e export  q quit"

// exportedMsg reports the result of an export started with "e".
type exportedMsg struct {
	path string
	err  error
}

// viewer is the bubbletea model of the interactive gallery. It turns
// terminal input into gallery events and draws each rendered frame as
// boxes on a text canvas.
type viewer struct {
	ctx     context.Context
	gallery *gallery.Model
	thumbs  *imageio.Thumbnailer
	workers int
	outDir  string

	frame  gallery.Frame
	cols   int
	rows   int
	status string
	failed bool
}

func newViewer(ctx context.Context, m *gallery.Model, thumbs *imageio.Thumbnailer, outDir string) viewer {
	return viewer{ctx: ctx, gallery: m, thumbs: thumbs, outDir: outDir}
}

func (v viewer) Init() tea.Cmd {
	return nil
}

func (v viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.cols, v.rows = msg.Width, msg.Height
		v = v.dispatch(gallery.Resized{
			Width:  msg.Width * cellWidth,
			Height: max(0, msg.Height-chromeRows) * cellHeight,
		})

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v = v.dispatch(gallery.ScrollDelta{Direction: gallery.ScrollUp})
		case tea.MouseButtonWheelDown:
			v = v.dispatch(gallery.ScrollDelta{Direction: gallery.ScrollDown})
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "r":
			v = v.dispatch(gallery.Reshuffled{})
		case "+", "=":
			v = v.step(gallery.ParamThumbnailWidth, widthStep)
		case "-", "_":
			v = v.step(gallery.ParamThumbnailWidth, -widthStep)
		case "]":
			v = v.step(gallery.ParamColumnGap, gapStep)
		case "[":
			v = v.step(gallery.ParamColumnGap, -gapStep)
		case "}":
			v = v.step(gallery.ParamRowGap, gapStep)
		case "{":
			v = v.step(gallery.ParamRowGap, -gapStep)
		case "b":
			v = v.step(gallery.ParamBackgroundShade, shadeStep)
		case "B":
			v = v.step(gallery.ParamBackgroundShade, -shadeStep)
		case "up", "k":
			v = v.dispatch(gallery.ScrollDelta{Direction: gallery.ScrollUp})
		case "down", "j":
			v = v.dispatch(gallery.ScrollDelta{Direction: gallery.ScrollDown})
		case "e":
			v.status, v.failed = "Exporting...", false
			return v, v.export()
		}

	case exportedMsg:
		if msg.err != nil {
			v.status, v.failed = "Export failed: "+errors.UserMessage(msg.err), true
		} else {
			v.status, v.failed = "Exported "+msg.path, false
		}
	}
	return v, nil
}

// step changes p by delta. Out-of-range values are rejected by the model
// and reported on the status line.
func (v viewer) step(p gallery.Param, delta int) viewer {
	return v.dispatch(gallery.ParamChanged{Param: p, Value: v.gallery.Value(p) + delta})
}

// dispatch applies ev and keeps the rendered frame.
func (v viewer) dispatch(ev gallery.Event) viewer {
	prevWidth := v.gallery.Params().ThumbnailWidth
	err := v.gallery.Dispatch(ev, gallery.RendererFunc(func(f gallery.Frame) error {
		v.frame = f
		return nil
	}))
	if err != nil {
		v.status, v.failed = errors.UserMessage(err), true
		return v
	}
	v.status, v.failed = "", false

	if v.thumbs != nil && v.gallery.Params().ThumbnailWidth != prevWidth {
		v.thumbs.Store().Retain(v.frame.Layout)
	}
	return v
}

// export writes the visible frame as PNG in the background.
func (v viewer) export() tea.Cmd {
	f := v.frame
	ctx, thumbs, workers := v.ctx, v.thumbs, v.workers
	path := filepath.Join(v.outDir, fmt.Sprintf("%s-%s.png", appName, time.Now().Format("20060102-150405")))
	return func() tea.Msg {
		if thumbs == nil {
			return exportedMsg{err: errors.New(errors.ErrCodeInternal, "no thumbnail source")}
		}
		data, err := sink.RenderPNG(ctx, f.Layout, thumbs,
			sink.WithPNGBackground(f.Background),
			sink.WithViewport(f.ScrollY, f.Height),
			sink.WithWorkers(workers),
		)
		if err != nil {
			return exportedMsg{err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportedMsg{err: errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)}
		}
		loggerFromContext(ctx).Debug("Exported frame", "path", path, "scroll", f.ScrollY, "bytes", len(data))
		return exportedMsg{path: path}
	}
}

func (v viewer) View() string {
	if v.cols == 0 || v.rows == 0 {
		return "Loading..."
	}

	canvasRows := max(0, v.rows-chromeRows)
	var b strings.Builder
	for _, line := range drawCanvas(v.frame, v.cols, canvasRows) {
		b.WriteString(canvasStyle(v.frame.Background).Render(line))
		b.WriteString("\n")
	}
	b.WriteString(v.statusLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(truncate(viewerHelp, v.cols)))
	return b.String()
}

func (v viewer) statusLine() string {
	if v.status != "" {
		style := StyleDim
		if v.failed {
			style = StyleError
		}
		return style.Render(truncate(v.status, v.cols))
	}
	p := v.gallery.Params()
	l := v.frame.Layout
	s := fmt.Sprintf("width %d · gap %d · row gap %d · shade %d · %d cols · %d/%d images · %d/%dpx",
		p.ThumbnailWidth, p.ColumnGap, p.RowGap, v.gallery.BackgroundShade(),
		l.Columns, len(l.Placements), len(v.gallery.Images()),
		v.frame.ScrollY, max(0, l.ContentHeight-v.frame.Height))
	return StyleNumber.Render(truncate(s, v.cols))
}

// canvasStyle paints the canvas in the gallery shade with a readable
// foreground.
func canvasStyle(bg color.Gray) lipgloss.Style {
	fg := lipgloss.Color("#000000")
	if bg.Y < 128 {
		fg = lipgloss.Color("#ffffff")
	}
	hex := fmt.Sprintf("#%02x%02x%02x", bg.Y, bg.Y, bg.Y)
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(fg)
}

// drawCanvas draws the placements visible in f as boxes on a cols x rows
// character grid, one string per row.
func drawCanvas(f gallery.Frame, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
	}

	for _, p := range f.Layout.Visible(f.ScrollY, rows*cellHeight) {
		drawBox(canvas, p, f.ScrollY)
	}

	lines := make([]string, rows)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

// drawBox draws p as a framed box with its name on the first inner row.
func drawBox(canvas [][]rune, p grid.Placement, scrollY int) {
	rows, cols := len(canvas), len(canvas[0])
	x0, x1 := p.X/cellWidth, (p.Right()-1)/cellWidth
	y0, y1 := floorDiv(p.Y-scrollY, cellHeight), floorDiv(p.Bottom()-1-scrollY, cellHeight)

	set := func(x, y int, r rune) {
		if x >= 0 && x < cols && y >= 0 && y < rows {
			canvas[y][x] = r
		}
	}

	if x1-x0 < 1 || y1-y0 < 1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				set(x, y, '▪')
			}
		}
		return
	}

	for x := x0 + 1; x < x1; x++ {
		set(x, y0, '─')
		set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, '│')
		set(x1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1, y0, '┐')
	set(x0, y1, '└')
	set(x1, y1, '┘')

	if y1-y0 >= 2 {
		for i, r := range []rune(truncate(p.Image.Name, x1-x0-1)) {
			set(x0+1+i, y0+1, r)
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:max(0, n)])
	}
	return string(r[:n-1]) + "…"
}
