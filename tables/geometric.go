package tables

import (
	"sort"
	"strings"

	"github.com/tsawler/ancora/model"
)

// GeometricDetector finds table regions by detecting runs of vertically
// adjacent lines whose words align into the same columns. It needs no
// ruling lines, only word geometry.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a detector with default configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{config: DefaultConfig()}
}

// NewGeometricDetectorWithConfig creates a detector with custom configuration.
func NewGeometricDetectorWithConfig(config Config) *GeometricDetector {
	return &GeometricDetector{config: config}
}

// Name returns the detector name.
func (d *GeometricDetector) Name() string { return "geometric" }

// Detect finds table regions among the ordered text lines of a page.
func (d *GeometricDetector) Detect(page int, lines []model.TextLine) ([]Region, error) {
	if len(lines) < d.config.MinRows {
		return nil, nil
	}

	var regions []Region
	var run []model.TextLine

	flush := func() {
		if len(run) >= d.config.MinRows {
			if region, ok := d.buildRegion(run); ok {
				regions = append(regions, region)
			}
		}
		run = run[:0]
	}

	for _, line := range lines {
		if len(line.Words) < d.config.MinCols {
			flush()
			continue
		}
		if len(run) > 0 {
			prev := run[len(run)-1]
			gap := line.Box.Top - prev.Box.Bottom
			if gap > d.config.MaxRowGap || d.alignedColumns(prev, line) < d.config.MinCols {
				flush()
			}
		}
		run = append(run, line)
	}
	flush()

	return regions, nil
}

// alignedColumns counts word start positions of b that align with a word
// start of a within the alignment tolerance.
func (d *GeometricDetector) alignedColumns(a, b model.TextLine) int {
	count := 0
	for _, wb := range b.Words {
		for _, wa := range a.Words {
			if abs(wb.Box.Left-wa.Box.Left) <= d.config.AlignmentTolerance {
				count++
				break
			}
		}
	}
	return count
}

// buildRegion turns a run of column-aligned lines into a region with a
// cell grid. Column boundaries come from clustering word start positions
// across the whole run.
func (d *GeometricDetector) buildRegion(run []model.TextLine) (Region, bool) {
	centers := d.clusterColumns(run)
	if len(centers) < d.config.MinCols {
		return Region{}, false
	}

	boxes := make([]model.BBox, len(run))
	cells := make([][]string, len(run))
	for i, line := range run {
		boxes[i] = line.Box
		row := make([]string, len(centers))
		for _, w := range line.Words {
			col := nearestColumn(centers, w.Box.Left)
			if row[col] != "" {
				row[col] += " "
			}
			row[col] += w.Text
		}
		cells[i] = row
	}

	return Region{
		Box:    model.UnionBoxes(boxes),
		HasBox: true,
		Cells:  cells,
	}, true
}

// clusterColumns clusters the word start positions of a run of lines into
// column centers.
func (d *GeometricDetector) clusterColumns(run []model.TextLine) []float64 {
	var starts []float64
	for _, line := range run {
		for _, w := range line.Words {
			starts = append(starts, w.Box.Left)
		}
	}
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	var centers []float64
	clusterStart := 0
	for i := 1; i <= len(starts); i++ {
		if i == len(starts) || starts[i]-starts[i-1] > d.config.AlignmentTolerance {
			sum := 0.0
			for _, s := range starts[clusterStart:i] {
				sum += s
			}
			centers = append(centers, sum/float64(i-clusterStart))
			clusterStart = i
		}
	}
	return centers
}

// nearestColumn returns the index of the column center closest to x.
func nearestColumn(centers []float64, x float64) int {
	best := 0
	bestDist := abs(centers[0] - x)
	for i, c := range centers[1:] {
		if d := abs(c - x); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

// FlattenRegion joins a region's cells into one string, rows and cells
// alike separated by the cell delimiter.
func FlattenRegion(cells [][]string) string {
	var parts []string
	for _, row := range cells {
		parts = append(parts, strings.Join(row, "|"))
	}
	return strings.Join(parts, "|")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
