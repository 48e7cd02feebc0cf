package depth

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// DebugPlot renders a sample's per-CN likelihood curve as an ASCII
// graph to aid development and troubleshooting, the same console
// diagnostic role asciigraph plays in gmm/mixtureModel_test.go. This
// is a debug aid, not the out-of-scope plot-data-generation feature:
// it never writes a file or a format an external viewer consumes.
func DebugPlot(label string, likelihoods []float64) string {
	if len(likelihoods) == 0 {
		return ""
	}
	graph := asciigraph.Plot(likelihoods, asciigraph.Height(8), asciigraph.Caption(label))
	return fmt.Sprintln(graph)
}
