package tables

import (
	"log/slog"

	"github.com/tsawler/ancora/model"
)

// Extractor wraps a region detection primitive into typed table elements
// with bounding boxes and canonical ids.
type Extractor struct {
	detector Detector
}

// NewExtractor creates an extractor backed by the geometric detector.
func NewExtractor() *Extractor {
	return &Extractor{detector: NewGeometricDetector()}
}

// NewExtractorWithDetector creates an extractor backed by a custom
// detection primitive.
func NewExtractorWithDetector(d Detector) *Extractor {
	return &Extractor{detector: d}
}

// Extract detects table regions among the text lines of one page and
// returns them as table elements. A region without a determinable
// bounding box falls back to the full page box; detection failure yields
// no tables, never an error.
func (e *Extractor) Extract(page int, lines []model.TextLine, pageBox model.BBox) []model.Table {
	regions, err := e.detector.Detect(page, lines)
	if err != nil {
		slog.Warn("table detection failed", "page", page, "detector", e.detector.Name(), "error", err)
		return nil
	}

	out := make([]model.Table, 0, len(regions))
	for i, region := range regions {
		box := region.Box
		if !region.HasBox || !box.IsValid() {
			slog.Warn("table region without bounding box; using page bounds", "page", page, "index", i)
			box = pageBox
		}
		out = append(out, model.Table{
			ID:   model.TableID(page, i),
			Page: page,
			Box:  box,
			Rows: region.Cells,
		})
	}
	return out
}
