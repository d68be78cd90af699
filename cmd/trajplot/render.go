package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/refline/internal/candidate"
)

var obstacleFill = color.RGBA{R: 200, G: 60, B: 60, A: 90}

// RenderPlan draws reference lines (dashed), composed trajectories and
// obstacle footprints in the plane and saves a PNG to path. The selected
// candidate is drawn thicker.
func RenderPlan(path string, sc *Scenario, res *Result) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cycle %s - candidate trajectories", sc.CycleID)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	for _, o := range sc.Obstacles {
		corners := o.Obstacle().Polygon()
		xys := make(plotter.XYs, len(corners))
		for i, c := range corners {
			xys[i] = plotter.XY{X: c.X, Y: c.Y}
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("obstacle %s: %w", o.ID, err)
		}
		poly.Color = obstacleFill
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	for i, c := range res.Candidates {
		col := plotutil.Color(i)

		stations := c.ReferenceLine().Stations()
		refPts := make(plotter.XYs, len(stations))
		for j, st := range stations {
			refPts[j] = plotter.XY{X: st.Point.X, Y: st.Point.Y}
		}
		refLine, err := plotter.NewLine(refPts)
		if err != nil {
			return fmt.Errorf("candidate %s reference: %w", c.ID(), err)
		}
		refLine.Color = col
		refLine.Width = vg.Points(0.5)
		refLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(refLine)

		traj := c.Trajectory()
		if traj.Empty() {
			p.Legend.Add(c.ID()+" (no trajectory)", refLine)
			continue
		}
		pts := make(plotter.XYs, traj.Len())
		for j, pt := range traj.Points() {
			pts[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("candidate %s trajectory: %w", c.ID(), err)
		}
		line.Color = col
		line.Width = vg.Points(1)
		label := fmt.Sprintf("%s cost=%.3g", c.ID(), c.Cost())
		if c == res.Best {
			line.Width = vg.Points(2.5)
			label += " (selected)"
		}
		p.Add(line)
		p.Legend.Add(label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(12*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save plan plot: %w", err)
	}
	return nil
}

// RenderProfiles writes an HTML page with speed and curvature over time
// for every composed trajectory.
func RenderProfiles(path, cycleID string, res *Result) error {
	speed := newProfileChart("Speed", cycleID, "v (m/s)")
	kappa := newProfileChart("Curvature", cycleID, "kappa (1/m)")

	for _, c := range res.Candidates {
		if !c.HasTrajectory() {
			continue
		}
		v, k := trajectorySeries(c)
		name := c.ID()
		if c == res.Best {
			name += " *"
		}
		speed.AddSeries(name, v, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
		kappa.AddSeries(name, k, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}

	page := components.NewPage()
	page.PageTitle = "Cycle " + cycleID
	page.AddCharts(speed, kappa)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render profiles: %w", err)
	}
	return f.Close()
}

func newProfileChart(title, cycleID, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "cycle " + cycleID}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "t (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	return line
}

// trajectorySeries converts a trajectory into (t, v) and (t, kappa) pairs.
func trajectorySeries(c *candidate.Candidate) (speed, kappa []opts.LineData) {
	points := c.Trajectory().Points()
	speed = make([]opts.LineData, len(points))
	kappa = make([]opts.LineData, len(points))
	for i, pt := range points {
		speed[i] = opts.LineData{Value: []interface{}{pt.T, pt.V}}
		kappa[i] = opts.LineData{Value: []interface{}{pt.T, pt.Kappa}}
	}
	return speed, kappa
}
