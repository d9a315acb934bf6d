package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Header names the CSV columns in output order.
var Header = []string{
	"mode", "threads", "shapes", "points", "width", "height", "secs",
	"avg_ms_per_frame", "fps", "speedup", "efficiency",
}

// Record formats r as CSV fields: 6 decimals for the frame cost, 3 for rates.
func (r Result) Record() []string {
	return []string{
		r.Mode,
		strconv.Itoa(r.Threads),
		strconv.Itoa(r.Shapes),
		strconv.Itoa(r.Points),
		strconv.Itoa(r.Width),
		strconv.Itoa(r.Height),
		strconv.Itoa(r.Seconds),
		strconv.FormatFloat(r.AvgMS, 'f', 6, 64),
		strconv.FormatFloat(r.FPS, 'f', 3, 64),
		strconv.FormatFloat(r.Speedup, 'f', 3, 64),
		strconv.FormatFloat(r.Efficiency, 'f', 3, 64),
	}
}

// WriteCSV writes the header and one line per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func label(r Result) string {
	return fmt.Sprintf("%s/%d", r.Mode, r.Threads)
}

// WriteChart renders an HTML page with the frame cost of every row and the
// speedup and efficiency curves of the parallel rows.
func WriteChart(w io.Writer, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no benchmark results to chart")
	}
	first := results[0]
	subtitle := fmt.Sprintf("%d shapes x %d points, %dx%d, %ds per run",
		first.Shapes, first.Points, first.Width, first.Height, first.Seconds)

	cost := charts.NewBar()
	cost.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average frame cost (ms)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	labels := make([]string, 0, len(results))
	bars := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		labels = append(labels, label(r))
		bars = append(bars, opts.BarData{Value: round(r.AvgMS, 6)})
	}
	cost.SetXAxis(labels).AddSeries("avg ms/frame", bars)

	scaling := charts.NewLine()
	scaling.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Parallel scaling", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "threads"}),
	)
	var threads []string
	var speedup, efficiency []opts.LineData
	for _, r := range results[1:] {
		threads = append(threads, strconv.Itoa(r.Threads))
		speedup = append(speedup, opts.LineData{Value: round(r.Speedup, 3)})
		efficiency = append(efficiency, opts.LineData{Value: round(r.Efficiency, 3)})
	}
	scaling.SetXAxis(threads).
		AddSeries("speedup", speedup).
		AddSeries("efficiency", efficiency)

	page := components.NewPage()
	page.AddCharts(cost, scaling)
	return page.Render(w)
}

func round(v float64, decimals int) float64 {
	out, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	return out
}
