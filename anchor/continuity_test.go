package anchor

import (
	"testing"

	"github.com/tsawler/ancora/model"
)

func srcLine(id string, page int, top, bottom, left float64, text string) *model.TextLine {
	return &model.TextLine{
		ID:     id,
		Page:   page,
		Box:    model.NewBBox(left, top, left+200, bottom),
		Indent: left,
		Text:   text,
	}
}

var testPageHeights = map[int]float64{0: 792, 1: 792, 2: 792}

func TestContinuousSamePage(t *testing.T) {
	prev := srcLine("p0-ln-0", 0, 688, 700, 72, "a")
	next := srcLine("p0-ln-1", 0, 710, 722, 72, "b")

	// Gap 10 against 2x average height 24.
	if !Continuous(prev, next, testPageHeights) {
		t.Error("Continuous() = false for a close same-page pair")
	}
}

func TestContinuousSamePageLargeGap(t *testing.T) {
	prev := srcLine("p0-ln-0", 0, 100, 112, 72, "a")
	next := srcLine("p0-ln-1", 0, 200, 212, 72, "b")

	if Continuous(prev, next, testPageHeights) {
		t.Error("Continuous() = true across a gap far exceeding line height")
	}
}

func TestContinuousCrossPage(t *testing.T) {
	prev := srcLine("p0-ln-9", 0, 738, 750, 72, "a")
	next := srcLine("p1-ln-0", 1, 48, 60, 72, "b")

	if !Continuous(prev, next, testPageHeights) {
		t.Error("Continuous() = false for a valid cross-page continuation")
	}
}

func TestContinuousRequiresImmediatelyFollowingPage(t *testing.T) {
	prev := srcLine("p0-ln-9", 0, 738, 750, 72, "a")
	skip := srcLine("p2-ln-0", 2, 48, 60, 72, "b")
	back := srcLine("p0-ln-0", 1, 738, 750, 72, "c")

	if Continuous(prev, skip, testPageHeights) {
		t.Error("Continuous() = true across a skipped page")
	}
	if Continuous(skip, back, testPageHeights) {
		t.Error("Continuous() = true for a backwards page pair")
	}
}

func TestContinuousCrossPageZones(t *testing.T) {
	// Prior line too high on its page.
	prev := srcLine("p0-ln-0", 0, 288, 300, 72, "a")
	next := srcLine("p1-ln-0", 1, 48, 60, 72, "b")
	if Continuous(prev, next, testPageHeights) {
		t.Error("Continuous() = true with prior line outside the bottom zone")
	}

	// Next line too low on its page.
	prev = srcLine("p0-ln-9", 0, 738, 750, 72, "a")
	next = srcLine("p1-ln-5", 1, 388, 400, 72, "b")
	if Continuous(prev, next, testPageHeights) {
		t.Error("Continuous() = true with next line outside the top zone")
	}
}

func TestContinuousCrossPageIndent(t *testing.T) {
	prev := srcLine("p0-ln-9", 0, 738, 750, 72, "a")
	next := srcLine("p1-ln-0", 1, 48, 60, 172, "b")

	if Continuous(prev, next, testPageHeights) {
		t.Error("Continuous() = true with an indent delta of 100")
	}
}

func TestContinuousMissingPageHeight(t *testing.T) {
	prev := srcLine("p0-ln-9", 0, 738, 750, 72, "a")
	next := srcLine("p1-ln-0", 1, 48, 60, 72, "b")

	if Continuous(prev, next, nil) {
		t.Error("Continuous() = true without page heights for the zone test")
	}
}

func TestAggregateBoxesSinglePage(t *testing.T) {
	lines := []*model.TextLine{
		srcLine("p0-ln-0", 0, 100, 112, 72, "a"),
		srcLine("p0-ln-1", 0, 115, 127, 60, "b"),
	}

	box, pages := AggregateBoxes(lines)
	if box == nil || pages != nil {
		t.Fatalf("AggregateBoxes() = (%v, %v), want single box", box, pages)
	}
	if box.Top != 100 || box.Bottom != 127 || box.Left != 60 {
		t.Errorf("union = %+v, want t=100 b=127 l=60", *box)
	}
}

func TestAggregateBoxesSpanningPages(t *testing.T) {
	lines := []*model.TextLine{
		srcLine("p0-ln-9", 0, 738, 750, 72, "a"),
		srcLine("p1-ln-0", 1, 48, 60, 72, "b"),
		srcLine("p1-ln-1", 1, 62, 74, 72, "c"),
	}

	box, pages := AggregateBoxes(lines)
	if box != nil {
		t.Fatalf("AggregateBoxes() returned single box %+v for a page-spanning set", *box)
	}
	if len(pages) != 2 {
		t.Fatalf("AggregateBoxes() returned %d page boxes, want 2", len(pages))
	}
	if pages[0].Page != 0 || pages[1].Page != 1 {
		t.Errorf("page order = %d,%d, want 0,1", pages[0].Page, pages[1].Page)
	}
	if pages[1].Box.Top != 48 || pages[1].Box.Bottom != 74 {
		t.Errorf("page 1 union = %+v, want t=48 b=74", pages[1].Box)
	}
}

func TestAggregateBoxesEmpty(t *testing.T) {
	box, pages := AggregateBoxes(nil)
	if box != nil || pages != nil {
		t.Errorf("AggregateBoxes(nil) = (%v, %v), want nils", box, pages)
	}
}
