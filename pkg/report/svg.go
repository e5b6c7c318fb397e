package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/kingdomgen/pkg/selection"
)

// SVGOptions configures the kingdom-sheet visualisation.
type SVGOptions struct {
	Columns   int    // piles per row
	BoxWidth  int    // pixels
	BoxHeight int    // pixels
	Margin    int    // pixels, on every side
	Title     string // optional heading
}

// DefaultSVGOptions returns sensible default layout options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Columns:   5,
		BoxWidth:  200,
		BoxHeight: 90,
		Margin:    30,
		Title:     "Kingdom",
	}
}

// ExportSVG renders sel's chosen piles as a grid of labelled boxes: name,
// card-group, and costs. Kingdom-and-supply piles are filled a different
// colour from landscape/non-supply piles so the two are visually distinct.
func ExportSVG(sel *selection.Selection, opts SVGOptions) ([]byte, error) {
	if sel == nil {
		return nil, fmt.Errorf("selection cannot be nil")
	}
	if opts.Columns <= 0 {
		opts.Columns = 5
	}
	if opts.BoxWidth <= 0 {
		opts.BoxWidth = 200
	}
	if opts.BoxHeight <= 0 {
		opts.BoxHeight = 90
	}
	if opts.Margin <= 0 {
		opts.Margin = 30
	}

	piles := sel.Piles()
	rows := (len(piles) + opts.Columns - 1) / opts.Columns
	if rows == 0 {
		rows = 1
	}
	headerHeight := 0
	if opts.Title != "" {
		headerHeight = 40
	}
	width := opts.Margin*2 + opts.Columns*opts.BoxWidth
	height := opts.Margin*2 + headerHeight + rows*opts.BoxHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin+20, opts.Title, "font-size:20px;font-family:sans-serif;font-weight:bold")
	}

	for i, p := range piles {
		col := i % opts.Columns
		row := i / opts.Columns
		x := opts.Margin + col*opts.BoxWidth
		y := opts.Margin + headerHeight + row*opts.BoxHeight

		fill := "fill:#dfefff"
		if !(p.Supply && p.Kingdom) {
			fill = "fill:#f0f0f0"
		}
		canvas.Rect(x+4, y+4, opts.BoxWidth-8, opts.BoxHeight-8, fill+";stroke:#333333;stroke-width:1")
		canvas.Text(x+12, y+24, p.Name, "font-size:14px;font-family:sans-serif;font-weight:bold")
		canvas.Text(x+12, y+44, p.Group, "font-size:11px;font-family:sans-serif;fill:#555555")

		costLabels := make([]string, 0, p.Costs.Len())
		for _, c := range p.Costs.Items() {
			costLabels = append(costLabels, c.String())
		}
		canvas.Text(x+12, y+64, strings.Join(costLabels, " "), "font-size:11px;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders sel and writes the SVG to filePath.
func SaveSVGToFile(sel *selection.Selection, filePath string, opts SVGOptions) error {
	data, err := ExportSVG(sel, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
