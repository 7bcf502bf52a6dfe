package scene

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// countTicks generates up to n ticks over [0, max] using 1, 2, 5 × 10^k integer
// steps. The last tick is always max so the axis top is labelled.
func countTicks(max, n int) []chart.Tick {
	if max < 1 {
		max = 1
	}
	if n < 2 {
		n = 2
	}
	span := float64(max)
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	if mag < 1 {
		mag = 1
	}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		score := math.Abs(count - float64(n-1))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	var ticks []chart.Tick
	for v := 0.0; v < span; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	if k := len(ticks); k > 1 && span-ticks[k-1].Value < bestStep/2 {
		ticks = ticks[:k-1]
	}
	return append(ticks, chart.Tick{Value: span, Label: formatTick(span)})
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
