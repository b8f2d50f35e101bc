package wcbplot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style carries the labels and axis options shared by all figures.
type Style struct {
	Lumi   float64
	Status string
	// LogY draws the main panel with a logarithmic y axis.
	LogY bool
}

func (s Style) title() string {
	return fmt.Sprintf("CMS %s    %g fb^-1 (13 TeV)", s.Status, s.Lumi)
}

// Formats are the extensions written for every figure.
var Formats = []string{".png", ".pdf"}

var (
	figWidth  = 6 * vg.Inch
	figHeight = 7.2 * vg.Inch

	signalColor = color.RGBA{R: 65, G: 105, B: 225, A: 255}
	procColor   = color.RGBA{R: 255, G: 140, A: 255}
	sumColor    = color.RGBA{A: 255}
	ratioColor  = color.RGBA{G: 128, A: 255}
	barColors   = []color.Color{
		color.RGBA{R: 31, G: 119, B: 180, A: 255},
		color.RGBA{R: 255, G: 127, B: 14, A: 255},
		color.RGBA{R: 44, G: 160, B: 44, A: 255},
	}

	selectionText = []string{"N_jet > 3", "N_bjet > 0", "N_b/cjet > 2"}
)

// RenderOverlay draws an unstacked comparison with a Wcb/process ratio
// panel and returns the written files.
func RenderOverlay(o *Overlay, dir string, s Style) ([]string, error) {
	xmin, xmax := o.Backgrounds.Edges[0], o.Backgrounds.Edges[len(o.Backgrounds.Edges)-1]

	top := hplot.New()
	top.Title.Text = s.title()
	top.Y.Label.Text = "Normalized events / bin"
	top.Legend.Top = true
	top.Add(plotter.NewGrid())

	traces := []struct {
		h     *Hist
		label string
		color color.Color
	}{
		{o.Signal, SignalLabel, signalColor},
		{o.Background, o.Process, procColor},
		{o.Backgrounds, "Sum of bkgs", sumColor},
	}
	for _, tr := range traces {
		if tr.h == nil {
			continue
		}
		h := hplot.NewH1D(tr.h.H1D(), hplot.WithLogY(s.LogY))
		h.FillColor = nil
		h.LineStyle.Color = tr.color
		h.LineStyle.Width = vg.Points(2)
		h.Infos.Style = hplot.HInfoNone
		top.Add(h)
		top.Legend.Add(tr.label, h)
	}
	for _, line := range selectionText {
		top.Legend.Add(line)
	}

	if s.LogY {
		top.Y.Scale = LogScale{}
		top.Y.Tick.Marker = LogTicks{}
		top.Y.Min, top.Y.Max = 1e-5, 1e2
	} else {
		top.Y.Min = 0
	}
	top.X.Min, top.X.Max = xmin, xmax
	top.X.Tick.Marker = UnlabeledTicks{PreciseTicks{NSuggestedTicks: 11}}

	bot := hplot.New()
	bot.X.Label.Text = axisName(o.HistName)
	bot.Y.Label.Text = SignalLabel + " / " + o.Process
	bot.Add(plotter.NewGrid())
	if o.Ratio != nil {
		bot.Add(ratioPoints(o.Ratio, color.RGBA{A: 255}))
	}
	bot.Add(unityLine())
	bot.X.Min, bot.X.Max = xmin, xmax
	bot.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 11}
	bot.Y.Min, bot.Y.Max = -5, 20

	return save(&hplot.RatioPlot{Top: top, Bottom: bot, Ratio: 0.25}, dir, o.Name())
}

// RenderBars draws a per-category bar chart, with a ratio panel when the
// report has one.
func RenderBars(r *BarReport, dir string, s Style) ([]string, error) {
	top := hplot.New()
	top.Title.Text = s.title()
	top.Y.Label.Text = r.YLabel
	top.X.Label.Text = "NN category"
	top.Legend.Top = true

	width := vg.Points(40) / vg.Length(len(r.Groups))
	for i, g := range r.Groups {
		bc, err := plotter.NewBarChart(plotter.Values(g.Values), width)
		if err != nil {
			return nil, errors.Wrapf(err, "bars %s", g.Label)
		}
		bc.Offset = vg.Length(float64(i)-float64(len(r.Groups)-1)/2) * width
		bc.Color = barColors[i%len(barColors)]
		bc.LineStyle.Width = 0
		top.Add(bc)
		if len(r.Groups) > 1 {
			top.Legend.Add(g.Label, bc)
		}
	}
	top.NominalX(r.Labels...)

	switch {
	case r.Raw && r.Ratio != nil:
		top.Y.Scale = LogScale{}
		top.Y.Tick.Marker = LogTicks{}
		top.Y.Min, top.Y.Max = 1e-1, 1e6
	case r.Raw:
		top.Y.Min = 0
	default:
		top.Y.Min, top.Y.Max = 0, 1
	}

	if r.Ratio == nil {
		return save(top, dir, r.Name)
	}

	for _, line := range append([]string{"AR"}, selectionText...) {
		top.Legend.Add(line)
	}
	top.X.Label.Text = ""
	top.X.Tick.Marker = UnlabeledTicks{top.X.Tick.Marker}

	bot := hplot.New()
	bot.X.Label.Text = "NN category"
	bot.Y.Label.Text = r.RatioLabel
	xys := make(plotter.XYs, len(r.Ratio))
	for i, v := range r.Ratio {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "ratio points")
	}
	sc.GlyphStyle.Color = ratioColor
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(4)
	bot.Add(sc, unityLine())
	bot.NominalX(r.Labels...)
	bot.Y.Min, bot.Y.Max = 0, 3

	return save(&hplot.RatioPlot{Top: top, Bottom: bot, Ratio: 0.25}, dir, r.Name)
}

// RenderScoreComparison draws the 4FS and 5FS score distributions and
// their ratio.
func RenderScoreComparison(c *ScoreComparison, dir string, s Style) ([]string, error) {
	xmin, xmax := c.H4F.Edges[0], c.H4F.Edges[len(c.H4F.Edges)-1]

	top := hplot.New()
	top.Title.Text = s.title()
	top.Y.Label.Text = fmt.Sprintf("Events / %g", c.H4F.Edges[1]-c.H4F.Edges[0])
	top.Legend.Top = true

	for i, h := range []*Hist{c.H4F, c.H5F} {
		hh := hplot.NewH1D(h.H1D())
		hh.FillColor = nil
		hh.LineStyle.Color = barColors[i]
		hh.LineStyle.Width = vg.Points(2)
		hh.Infos.Style = hplot.HInfoNone
		label := Scheme4F
		if i == 1 {
			hh.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			label = Scheme5F
		}
		top.Add(hh)
		top.Legend.Add(label, hh)
	}
	top.X.Min, top.X.Max = xmin, xmax
	top.X.Tick.Marker = UnlabeledTicks{PreciseTicks{NSuggestedTicks: 11}}

	bot := hplot.New()
	bot.X.Label.Text = "score ttWcb"
	bot.Y.Label.Text = "4FS / 5FS"
	bot.Add(plotter.NewGrid())
	bot.Add(ratioPoints(c.Ratio, color.RGBA{A: 255}))
	bot.Add(unityLine())
	bot.X.Min, bot.X.Max = xmin, xmax
	bot.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 11}
	bot.Y.Min, bot.Y.Max = 0, 3

	return save(&hplot.RatioPlot{Top: top, Bottom: bot, Ratio: 0.25}, dir, c.Name)
}

func ratioPoints(h *Hist, c color.Color) *hplot.S2D {
	pts := hplot.NewS2D(h.S2D(), hplot.WithYErrBars(true))
	pts.GlyphStyle.Color = c
	pts.GlyphStyle.Shape = draw.CircleGlyph{}
	pts.GlyphStyle.Radius = vg.Points(2)
	return pts
}

func unityLine() *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return 1 })
	f.LineStyle.Color = color.Gray{Y: 128}
	f.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return f
}

// axisName turns h_jet_pt into "jet pt".
func axisName(hist string) string {
	return strings.ReplaceAll(strings.ReplaceAll(hist, "h_", ""), "_", " ")
}

// drawer is a figure that can be saved.
type drawer interface {
	Draw(draw.Canvas)
}

func save(d drawer, dir, name string) ([]string, error) {
	var files []string
	for _, ext := range Formats {
		file := filepath.Join(dir, name+ext)
		if err := hplot.Save(d, figWidth, figHeight, file); err != nil {
			return nil, errors.Wrapf(err, "could not save %s", file)
		}
		files = append(files, file)
	}
	return files, nil
}
