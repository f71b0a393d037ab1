package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders an interactive line chart of the recorded angles with a
// marker line for every counted rep.
func (r *Recorder) WriteHTML(w io.Writer, title string) error {
	labels := make([]string, len(r.times))
	for i, t := range r.times {
		labels[i] = timeLabel(t)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("frames=%d reps=%d", len(r.times), len(r.reps))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "degrees", Min: 0, Max: 180}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(labels)

	for i, name := range r.names {
		data := make([]opts.LineData, len(r.times))
		for j, v := range r.values[name] {
			// Gaps render as breaks in the line.
			if math.IsNaN(v) {
				data[j] = opts.LineData{Value: nil}
				continue
			}
			data[j] = opts.LineData{Value: math.Round(v*10) / 10}
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		}
		if i == 0 {
			for n, t := range r.reps {
				seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
					Name:  fmt.Sprintf("rep %d", n+1),
					XAxis: timeLabel(t),
				}))
			}
		}
		line.AddSeries(name, data, seriesOpts...)
	}

	return line.Render(w)
}

func timeLabel(seconds float64) string {
	return fmt.Sprintf("%.2f", seconds)
}
