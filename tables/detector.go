// Package tables detects table regions on a page and wraps them into
// typed table elements with bounding boxes and cell grids.
package tables

import "github.com/tsawler/ancora/model"

// Region is one detected table region: its grid of cell strings and,
// when the detector can determine one, its bounding box.
type Region struct {
	Box    model.BBox
	HasBox bool
	Cells  [][]string
}

// Detector is the interface for table region detection primitives. The
// in-repo implementation is geometric; callers may plug in their own.
type Detector interface {
	// Detect finds table regions among the ordered text lines of a page.
	Detect(page int, lines []model.TextLine) ([]Region, error)

	// Name returns the detector name.
	Name() string
}

// Config holds detector configuration.
type Config struct {
	// Minimum rows for a valid table
	MinRows int

	// Minimum columns for a valid table
	MinCols int

	// Tolerance for column alignment across rows (page units)
	AlignmentTolerance float64

	// Maximum vertical gap between consecutive rows (page units)
	MaxRowGap float64
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		AlignmentTolerance: 5.0,
		MaxRowGap:          20.0,
	}
}
