package model

import (
	"strings"
	"testing"
)

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(10, 20, 50, 40)
	b := NewBBox(30, 10, 80, 30)

	u := a.Union(b)

	if u.Left != 10 || u.Top != 10 || u.Right != 80 || u.Bottom != 40 {
		t.Errorf("Union() = %+v, want {10 10 80 40}", u)
	}
}

func TestUnionBoxes(t *testing.T) {
	boxes := []BBox{
		NewBBox(72, 100, 300, 112),
		NewBBox(72, 115, 280, 127),
		NewBBox(90, 130, 310, 142),
	}

	u := UnionBoxes(boxes)

	if u.Top != 100 {
		t.Errorf("Top = %f, want min top 100", u.Top)
	}
	if u.Bottom != 142 {
		t.Errorf("Bottom = %f, want max bottom 142", u.Bottom)
	}
	if u.Left != 72 || u.Right != 310 {
		t.Errorf("horizontal extent = [%f, %f], want [72, 310]", u.Left, u.Right)
	}
}

func TestUnionBoxesEmpty(t *testing.T) {
	u := UnionBoxes(nil)
	if u != (BBox{}) {
		t.Errorf("UnionBoxes(nil) = %+v, want zero box", u)
	}
}

func TestBBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{"overlapping", NewBBox(0, 0, 10, 10), NewBBox(5, 5, 15, 15), true},
		{"disjoint horizontal", NewBBox(0, 0, 10, 10), NewBBox(20, 0, 30, 10), false},
		{"disjoint vertical", NewBBox(0, 0, 10, 10), NewBBox(0, 20, 10, 30), false},
		{"touching edge", NewBBox(0, 0, 10, 10), NewBBox(10, 0, 20, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxVerticalMidpoint(t *testing.T) {
	b := NewBBox(0, 100, 50, 120)
	if mid := b.VerticalMidpoint(); mid != 110 {
		t.Errorf("VerticalMidpoint() = %f, want 110", mid)
	}
}

func TestBBoxExpand(t *testing.T) {
	b := NewBBox(10, 10, 20, 20).Expand(2)
	want := NewBBox(8, 8, 22, 22)
	if b != want {
		t.Errorf("Expand(2) = %+v, want %+v", b, want)
	}
}

func TestElementIDs(t *testing.T) {
	if id := TextLineID(3, 7); id != "p3-ln-7" {
		t.Errorf("TextLineID(3, 7) = %q, want 'p3-ln-7'", id)
	}
	if id := TableID(1, 0); id != "p1-tbl-0" {
		t.Errorf("TableID(1, 0) = %q, want 'p1-tbl-0'", id)
	}
	if id := ImageID(2, 1, 3); id != "p2-img-1-3" {
		t.Errorf("ImageID(2, 1, 3) = %q, want 'p2-img-1-3'", id)
	}
}

func TestElementVariants(t *testing.T) {
	var e Element = &TextLine{ID: "p0-ln-0", Page: 0, Box: NewBBox(0, 0, 10, 10)}
	if e.Type() != ElementTypeTextLine {
		t.Errorf("Type() = %v, want ElementTypeTextLine", e.Type())
	}

	e = &Table{ID: "p0-tbl-0", Page: 0}
	if e.Type() != ElementTypeTable {
		t.Errorf("Type() = %v, want ElementTypeTable", e.Type())
	}

	e = &Image{ID: "p0-img-0-0", Page: 0}
	if e.Type() != ElementTypeImage {
		t.Errorf("Type() = %v, want ElementTypeImage", e.Type())
	}
}

func TestStreamJSON(t *testing.T) {
	elements := []Element{
		&TextLine{ID: "p0-ln-0", Page: 0, Text: "hello", Box: NewBBox(0, 0, 10, 10)},
		&Table{ID: "p0-tbl-0", Page: 0, Rows: [][]string{{"a", "b"}}},
	}

	data, err := StreamJSON(elements)
	if err != nil {
		t.Fatalf("StreamJSON() failed: %v", err)
	}

	s := string(data)
	for _, want := range []string{`"kind":"text_line"`, `"kind":"table"`, `"id":"p0-ln-0"`} {
		if !strings.Contains(s, want) {
			t.Errorf("StreamJSON() output missing %s:\n%s", want, s)
		}
	}
}
