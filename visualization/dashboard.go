package visualization

import (
	"fmt"
	"io"
	"os"

	"github.com/anggasct/trafficflow"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DashboardOptions configures the rendered HTML page
type DashboardOptions struct {
	PageTitle  string
	AssetsHost string // empty keeps the go-echarts default CDN
	Width      string
	Height     string
}

// DefaultDashboardOptions returns the options used by RenderDashboard
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{
		PageTitle: "Traffic Analysis Dashboard",
		Width:     "600px",
		Height:    "400px",
	}
}

// Dashboard renders a completed run as an HTML page of charts
type Dashboard struct {
	report  *trafficflow.Report
	options DashboardOptions
}

// NewDashboard creates a dashboard for report
func NewDashboard(report *trafficflow.Report, options ...DashboardOptions) *Dashboard {
	o := DefaultDashboardOptions()
	if len(options) > 0 {
		o = options[0]
	}
	return &Dashboard{report: report, options: o}
}

// RenderDashboard writes the dashboard for report to w with default options
func RenderDashboard(w io.Writer, report *trafficflow.Report) error {
	return NewDashboard(report).Render(w)
}

// Render writes the page: vehicle counts, traffic share, assigned green
// time and estimated waiting time
func (d *Dashboard) Render(w io.Writer) error {
	if d.report == nil {
		return fmt.Errorf("dashboard: no report")
	}

	page := components.NewPage()
	page.PageTitle = d.options.PageTitle
	if d.options.AssetsHost != "" {
		page.SetAssetsHost(d.options.AssetsHost)
	}
	page.AddCharts(
		d.countChart(),
		d.shareChart(),
		d.greenChart(),
		d.waitChart(),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("dashboard: render error: %w", err)
	}
	return nil
}

// RenderToFile writes the dashboard to filename
func (d *Dashboard) RenderToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := d.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d *Dashboard) globalOpts(title, subtitle string) []charts.GlobalOpts {
	init := opts.Initialization{PageTitle: d.options.PageTitle, Width: d.options.Width, Height: d.options.Height}
	if d.options.AssetsHost != "" {
		init.AssetsHost = d.options.AssetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (d *Dashboard) bar(title, subtitle, series string, rows []trafficflow.TableRow) *charts.Bar {
	x := make([]string, 0, len(rows))
	y := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		x = append(x, r.Direction.String())
		y = append(y, opts.BarData{Value: r.Seconds})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(d.globalOpts(title, subtitle)...)
	bar.SetXAxis(x).
		AddSeries(series, y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func (d *Dashboard) countChart() *charts.Bar {
	rows := make([]trafficflow.TableRow, 0, len(trafficflow.Directions()))
	for _, dir := range trafficflow.Directions() {
		rows = append(rows, trafficflow.TableRow{Direction: dir, Seconds: d.report.Counts[dir]})
	}
	subtitle := fmt.Sprintf("total=%d busiest=%s (%d vehicles)", d.report.TotalVehicles, d.report.Busiest, d.report.BusiestCount)
	return d.bar("Vehicle Count per Direction", subtitle, "vehicles", rows)
}

func (d *Dashboard) shareChart() *charts.Pie {
	data := make([]opts.PieData, 0, len(trafficflow.Directions()))
	for _, dir := range trafficflow.Directions() {
		data = append(data, opts.PieData{Name: dir.String(), Value: d.report.Counts[dir]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(d.globalOpts("Traffic Share by Direction", "")...)
	pie.AddSeries("share", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

func (d *Dashboard) greenChart() *charts.Bar {
	subtitle := fmt.Sprintf("yellow=%ds cycle=%ds", d.report.YellowTime, d.report.CycleTime)
	return d.bar("Assigned Green Time (sec)", subtitle, "green", d.report.GreenTable())
}

func (d *Dashboard) waitChart() *charts.Bar {
	return d.bar("Estimated Waiting Time (sec)", "", "wait", d.report.WaitTable())
}
