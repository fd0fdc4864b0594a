package model

import "fmt"

// ElementType represents the variant of a page element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeTextLine
	ElementTypeTable
	ElementTypeImage
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeTextLine:
		return "text_line"
	case ElementTypeTable:
		return "table"
	case ElementTypeImage:
		return "image"
	default:
		return "unknown"
	}
}

// Element is the interface for all page elements. Elements are produced
// once per extraction pass and are read-only during anchoring; ids are
// unique within a document and stable for one processing request.
type Element interface {
	Type() ElementType
	ElementID() string
	PageNumber() int
	BoundingBox() BBox
}

// Word is a run of characters within a text line separated from its
// neighbours by more than the adaptive word tolerance.
type Word struct {
	Text     string  `json:"text"`
	Box      BBox    `json:"box"`
	FontSize float64 `json:"font_size,omitempty"` // 0 means unknown
	Bold     bool    `json:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty"`
}

// TextLine is a horizontal run of words on one page.
type TextLine struct {
	ID           string `json:"id"`
	Page         int    `json:"page"`
	Box          BBox   `json:"box"`
	Indent       float64 `json:"indent"`
	Text         string `json:"text"`
	Words        []Word `json:"words"`
	BreaksBefore int    `json:"line_breaks_before"`
	BreaksAfter  int    `json:"line_breaks_after"`
}

func (l *TextLine) Type() ElementType { return ElementTypeTextLine }
func (l *TextLine) ElementID() string { return l.ID }
func (l *TextLine) PageNumber() int   { return l.Page }
func (l *TextLine) BoundingBox() BBox { return l.Box }

// Table is a detected table region with its grid of cell strings.
type Table struct {
	ID   string     `json:"id"`
	Page int        `json:"page"`
	Box  BBox       `json:"box"`
	Rows [][]string `json:"table"`
}

func (t *Table) Type() ElementType { return ElementTypeTable }
func (t *Table) ElementID() string { return t.ID }
func (t *Table) PageNumber() int   { return t.Page }
func (t *Table) BoundingBox() BBox { return t.Box }

// Image is a single placement of an embedded image. Data holds the decoded
// raster in a portable encoding, or nil when only the placement could be
// resolved.
type Image struct {
	ID      string `json:"id"`
	Page    int    `json:"page"`
	Box     BBox   `json:"box"`
	Subtype string `json:"subtype,omitempty"`
	Data    []byte `json:"data,omitempty"`
}

func (i *Image) Type() ElementType { return ElementTypeImage }
func (i *Image) ElementID() string { return i.ID }
func (i *Image) PageNumber() int   { return i.Page }
func (i *Image) BoundingBox() BBox { return i.Box }

// TextLineID builds the canonical id for the idx-th text line on a page.
func TextLineID(page, idx int) string {
	return fmt.Sprintf("p%d-ln-%d", page, idx)
}

// TableID builds the canonical id for the idx-th table on a page.
func TableID(page, idx int) string {
	return fmt.Sprintf("p%d-tbl-%d", page, idx)
}

// ImageID builds the canonical id for one placement of an image on a page.
func ImageID(page, image, placement int) string {
	return fmt.Sprintf("p%d-img-%d-%d", page, image, placement)
}
