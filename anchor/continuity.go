package anchor

import (
	"math"

	"github.com/tsawler/ancora/model"
)

const (
	// sameLineGapFactor scales the average height of a line pair to bound
	// the vertical gap of a same-page continuation.
	sameLineGapFactor = 2.0

	// crossPageZone is the fraction of page height a line must sit within
	// (bottom of the prior page, top of the next) to qualify as a
	// cross-page continuation.
	crossPageZone = 0.4

	// crossPageIndentLimit bounds the left-indent difference of a
	// cross-page continuation pair, in page units.
	crossPageIndentLimit = 50.0
)

// Continuous reports whether next can continue prev as one logical run of
// text. On the same page the pair must be vertically close relative to
// their own heights. Across pages, next must sit on the immediately
// following page, prev near the bottom of its page, next near the top of
// its page, with similar indentation; pageHeights supplies the page
// extents for the zone tests.
func Continuous(prev, next *model.TextLine, pageHeights map[int]float64) bool {
	if prev == nil || next == nil {
		return false
	}

	if next.Page == prev.Page {
		avg := (prev.Box.Height() + next.Box.Height()) / 2
		return next.Box.Top-prev.Box.Bottom < sameLineGapFactor*avg
	}

	if next.Page != prev.Page+1 {
		return false
	}
	prevHeight := pageHeights[prev.Page]
	nextHeight := pageHeights[next.Page]
	if prevHeight <= 0 || nextHeight <= 0 {
		return false
	}
	if prev.Box.Bottom < prevHeight*(1-crossPageZone) {
		return false
	}
	if next.Box.Top > nextHeight*crossPageZone {
		return false
	}
	return math.Abs(prev.Indent-next.Indent) < crossPageIndentLimit
}

// AggregateBoxes unions the boxes of matched lines. Lines on a single page
// produce one box; lines spanning pages produce an ordered per-page box
// list so coordinates from different pages are never conflated.
func AggregateBoxes(lines []*model.TextLine) (*model.BBox, []model.PageBox) {
	if len(lines) == 0 {
		return nil, nil
	}

	var pages []model.PageBox
	for _, line := range lines {
		if n := len(pages); n > 0 && pages[n-1].Page == line.Page {
			pages[n-1].Box = pages[n-1].Box.Union(line.Box)
			continue
		}
		pages = append(pages, model.PageBox{Page: line.Page, Box: line.Box})
	}

	if len(pages) == 1 {
		box := pages[0].Box
		return &box, nil
	}
	return nil, pages
}
