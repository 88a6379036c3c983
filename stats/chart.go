package stats

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// A Point is the overall reduction for one window size.
type Point struct {
	WindowBits int
	Reduction  float64
}

// A Series is the reduction for one pattern across window sizes.
type Series struct {
	Name   string
	Points []Point
}

// Sweep runs the same messages through every window size from MinWindowBits
// to MaxWindowBits.
func Sweep(p Pattern, sizeBits, count int, seed int64) (Series, error) {
	messages, err := Generate(p, sizeBits, count, seed)
	if err != nil {
		return Series{}, err
	}
	s := Series{Name: string(p)}
	for bits := MinWindowBits; bits <= MaxWindowBits; bits++ {
		results, err := Run(messages, bits)
		if err != nil {
			return Series{}, err
		}
		s.Points = append(s.Points, Point{
			WindowBits: bits,
			Reduction:  Summarize(results).Reduction(),
		})
	}
	return s, nil
}

// RenderChart draws the series as an SVG line chart of reduction against
// window size.
func RenderChart(w io.Writer, title string, series []Series) error {
	minY, maxY := 0.0, 100.0
	var cs []chart.Series
	for _, s := range series {
		xvals := make([]float64, 0, len(s.Points))
		yvals := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xvals = append(xvals, float64(p.WindowBits))
			yvals = append(yvals, p.Reduction)
			if p.Reduction < minY {
				minY = p.Reduction
			}
			if p.Reduction > maxY {
				maxY = p.Reduction
			}
		}
		cs = append(cs, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				DotWidth: 3,
			},
			XValues: xvals,
			YValues: yvals,
		})
	}

	graph := chart.Chart{
		Title: title,
		XAxis: chart.XAxis{
			Name:  "window bits",
			Range: &chart.ContinuousRange{Min: MinWindowBits, Max: MaxWindowBits},
		},
		YAxis: chart.YAxis{
			Name:  "reduction %",
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}
