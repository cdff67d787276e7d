package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/plasmalab/tokasim/internal/analysis"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// channelLabels maps recorded column names to plot titles and axis units.
var channelLabels = map[string]struct{ Title, Unit string }{
	"plasma_current": {"Plasma Current", "Ip (MA)"},
	"q95":            {"Edge Safety Factor", "q95"},
	"beta_n":         {"Normalized Beta", "beta_N"},
	"li":             {"Internal Inductance", "li"},
	"z_position":     {"Vertical Position", "z (m)"},
	"temp_core":      {"Core Temperature", "T (keV)"},
	"density_core":   {"Core Density", "n (1e19 m^-3)"},
	"mhd_activity":   {"MHD Activity", "level"},
	"stored_energy":  {"Stored Energy", "W (MJ)"},
	"ntm_amplitude":  {"NTM Island Width", "w"},
}

// Label returns the plot title and axis unit for a recorded column.
// Unknown columns fall back to the column name itself.
func Label(column string) (title, unit string) {
	if l, ok := channelLabels[column]; ok {
		return l.Title, l.Unit
	}
	return column, column
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.TextStyle.Font.Size = vg.Points(11)
	p.Y.Label.TextStyle.Font.Size = vg.Points(11)
	p.X.Padding = vg.Points(8)
	p.Y.Padding = vg.Points(8)
	p.Add(plotter.NewGrid())
}

func savePNG(p *plot.Plot, width, height vg.Length, path string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	pngc := vgimg.PngCanvas{Canvas: c}
	_, err = pngc.WriteTo(bw)
	return err
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if strings.HasSuffix(path, ".png") {
		return savePNG(p, 8*vg.Inch, 4*vg.Inch, path)
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// SaveChannelPlot renders one recorded channel against time. The output
// format follows the file extension, .png or .svg.
func SaveChannelPlot(path, title, ylabel string, times, values []float64) error {
	if len(times) != len(values) || len(times) == 0 {
		return fmt.Errorf("export: mismatched plot data for %s", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	stylePlot(p)

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return save(p, path)
}

// SaveShotPlots renders every recorded channel into dir, one image per
// channel named after its column.
func SaveShotPlots(dir, format string, times []float64, records [][]float64) error {
	for i, column := range plasma.HistoryColumns {
		values := make([]float64, len(records))
		for j, rec := range records {
			if i < len(rec) {
				values[j] = rec[i]
			}
		}

		title, unit := Label(column)
		path := filepath.Join(dir, column+"."+format)
		if err := SaveChannelPlot(path, title, unit, times, values); err != nil {
			return err
		}
	}
	return nil
}

// SaveSpectrumPlot renders a magnitude spectrum against frequency.
func SaveSpectrumPlot(path, title string, spec *analysis.Spectrum) error {
	if spec == nil || len(spec.Freqs) == 0 {
		return fmt.Errorf("export: empty spectrum for %s", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "frequency (Hz)"
	p.Y.Label.Text = "magnitude"
	stylePlot(p)

	pts := make(plotter.XYs, len(spec.Freqs))
	for i := range spec.Freqs {
		pts[i].X = spec.Freqs[i]
		pts[i].Y = spec.Power[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return save(p, path)
}
