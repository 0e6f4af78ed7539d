package analysis

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// CoveragePlotter draws the cumulative distinct-schedule counts of each
// experiment as one line chart per run.
func CoveragePlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, names []string, datasets []DataSet) {
		p := plot.New()
		p.Title.Text = "Schedule coverage"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Distinct schedules"
		for i := 0; i < len(names); i++ {
			counts, ok := datasets[i].([]int)
			if !ok {
				continue
			}
			points := make(plotter.XYs, len(counts))
			for j, v := range counts {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(counts) > 0 {
				fmt.Printf("Distinct schedules: %d for experiment: %s\n", counts[len(counts)-1], names[i])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_coverage.png"))
	}
}
