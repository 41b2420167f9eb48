package report

import (
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/stepwise"
)

const (
	chartWidth  = 24 * vg.Centimeter
	chartHeight = 18 * vg.Centimeter
)

type panel struct {
	title string
	value func(p stepwise.PathPoint) float64
}

var panels = [2][2]panel{
	{
		{"R²", func(p stepwise.PathPoint) float64 { return p.Criteria.R2 }},
		{"Adjusted R²", func(p stepwise.PathPoint) float64 { return p.Criteria.AdjustedR2 }},
	},
	{
		{"AIC", func(p stepwise.PathPoint) float64 { return p.Criteria.AIC }},
		{"Cp", func(p stepwise.PathPoint) float64 { return p.Criteria.Cp }},
	},
}

// PlotCriteria writes a 2×2 PNG of R², adjusted R², AIC and Cp along the
// accepted models of res.
func PlotCriteria(path string, res *stepwise.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: create %s", path)
	}
	if err := RenderCriteria(f, res); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "report: close %s", path)
}

// RenderCriteria draws the chart of PlotCriteria as PNG into w.
func RenderCriteria(w io.Writer, res *stepwise.Result) error {
	if res == nil || len(res.Path) == 0 {
		return errors.NewValueError("report.RenderCriteria", "no accepted models to plot")
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, row := range panels {
		plots[i] = make([]*plot.Plot, len(row))
		for j, pn := range row {
			p, err := criterionPlot(pn, res.Path)
			if err != nil {
				return err
			}
			plots[i][j] = p
		}
	}

	img := vgimg.New(chartWidth, chartHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      len(panels[0]),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "report: encode png")
	}
	return nil
}

func criterionPlot(pn panel, path []stepwise.PathPoint) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(path))
	for k, pt := range path {
		pts[k].X = float64(pt.Round)
		pts[k].Y = pn.value(pt)
	}

	p := plot.New()
	p.Title.Text = pn.title
	p.X.Label.Text = "round"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "report: %s line", pn.title)
	}
	line.Color = color.RGBA{B: 200, A: 255}

	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "report: %s points", pn.title)
	}
	marks.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(line, marks)
	return p, nil
}
