package view

import (
	"strings"
	"testing"

	"github.com/tsawler/ancora/model"
)

func plainLine(page int, top, bottom float64, size float64, words ...string) *model.TextLine {
	l := &model.TextLine{
		Page: page,
		Box:  model.NewBBox(72, top, 400, bottom),
		Text: strings.Join(words, " "),
	}
	left := 72.0
	for _, w := range words {
		right := left + float64(len(w))*size*0.5
		l.Words = append(l.Words, model.Word{
			Text:     w,
			Box:      model.NewBBox(left, top, right, bottom),
			FontSize: size,
		})
		left = right + size*0.3
	}
	return l
}

func TestSerializePageMarkerAndSizeTag(t *testing.T) {
	elements := []model.Element{
		plainLine(0, 100, 112, 12, "Hello", "world"),
		plainLine(0, 115, 127, 12, "second", "line"),
	}

	got := NewSerializer().Serialize(elements)
	want := "[PAGE=0]\n<s=12>\nHello world\nsecond line\n</s>\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeSizeChangeClosesTag(t *testing.T) {
	elements := []model.Element{
		plainLine(0, 100, 118, 18, "Title"),
		plainLine(0, 125, 137, 12, "body", "text"),
	}

	got := NewSerializer().Serialize(elements)
	if !strings.Contains(got, "<s=18>\nTitle\n</s>\n<s=12>\nbody text") {
		t.Errorf("size blocks wrong:\n%s", got)
	}
}

func TestSerializeStyledWords(t *testing.T) {
	line := plainLine(0, 100, 112, 12, "plain", "strong", "slanted", "both")
	line.Words[1].Bold = true
	line.Words[2].Italic = true
	line.Words[3].Bold = true
	line.Words[3].Italic = true

	got := NewSerializer().Serialize([]model.Element{line})
	if !strings.Contains(got, "plain *strong* _slanted_ *_both_*") {
		t.Errorf("styled rendering wrong:\n%s", got)
	}
}

func TestSerializeExplicitBreaks(t *testing.T) {
	first := plainLine(0, 100, 112, 12, "alpha")
	first.BreaksAfter = 2
	second := plainLine(0, 200, 212, 12, "beta")
	second.BreaksBefore = 2

	got := NewSerializer().Serialize([]model.Element{first, second})
	if !strings.Contains(got, "alpha\n\n\nbeta") {
		t.Errorf("break counts not honored:\n%s", got)
	}
}

func TestSerializeGapFallback(t *testing.T) {
	// No explicit break counts; the gap (30) exceeds the median line
	// height (12) times the multiplier (1.5).
	elements := []model.Element{
		plainLine(0, 100, 112, 12, "alpha"),
		plainLine(0, 142, 154, 12, "beta"),
	}

	got := NewSerializer().Serialize(elements)
	if !strings.Contains(got, "alpha\n\nbeta") {
		t.Errorf("gap fallback missing:\n%s", got)
	}
}

func TestSerializeGapWithinTolerance(t *testing.T) {
	elements := []model.Element{
		plainLine(0, 100, 112, 12, "alpha"),
		plainLine(0, 115, 127, 12, "beta"),
	}

	got := NewSerializer().Serialize(elements)
	if strings.Contains(got, "alpha\n\nbeta") {
		t.Errorf("unexpected blank line within tolerance:\n%s", got)
	}
}

func TestSerializeTable(t *testing.T) {
	tbl := &model.Table{
		ID:   "p0-tbl-0",
		Page: 0,
		Box:  model.NewBBox(72, 200, 400, 260),
		Rows: [][]string{{"Name", "Date"}, {"Ann", "May"}},
	}

	got := NewSerializer().Serialize([]model.Element{tbl})
	want := "[PAGE=0]\n[TABLE]\nName|Date\nAnn|May\n[/TABLE]\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeImageMarker(t *testing.T) {
	img := &model.Image{
		ID:   "p2-img-0-0",
		Page: 2,
		Box:  model.NewBBox(100, 200.25, 300, 350.5),
	}

	got := NewSerializer().Serialize([]model.Element{img})
	if !strings.Contains(got, "[IMAGE page=2 l=100.0 t=200.2 r=300.0 b=350.5]") {
		t.Errorf("image marker wrong:\n%s", got)
	}
}

func TestSerializeSizeTagSpansTable(t *testing.T) {
	elements := []model.Element{
		plainLine(0, 100, 112, 12, "before"),
		&model.Table{Page: 0, Box: model.NewBBox(72, 120, 400, 160), Rows: [][]string{{"a", "b"}}},
		plainLine(0, 170, 182, 12, "after"),
	}

	got := NewSerializer().Serialize(elements)
	if strings.Count(got, "<s=12>") != 1 {
		t.Errorf("size tag reopened across table:\n%s", got)
	}
}

func TestSerializePageSeparator(t *testing.T) {
	elements := []model.Element{
		plainLine(0, 100, 112, 12, "one"),
		plainLine(1, 100, 112, 12, "two"),
	}

	got := NewSerializer().Serialize(elements)
	if !strings.Contains(got, "</s>\n\n[PAGE=1]") {
		t.Errorf("page separator or size close missing:\n%s", got)
	}
	if !strings.HasSuffix(got, "two\n</s>\n") {
		t.Errorf("trailing content wrong:\n%s", got)
	}
}

func TestSerializeEmpty(t *testing.T) {
	if got := NewSerializer().Serialize(nil); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
}
