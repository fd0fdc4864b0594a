package model

import "encoding/json"

// Chunk is a unit of text produced by the external semantic segmenter.
// The segmenter may have reworded, merged, or split the source text; the
// anchorer attaches source coordinates to the chunk's metadata in place.
type Chunk struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata carries the segmenter-supplied classification plus the
// anchoring fields populated by the anchorer. Metadata the pipeline does
// not interpret travels in Extra rather than growing implicit fields.
type ChunkMetadata struct {
	Type    string   `json:"type"`
	Page    int      `json:"page"`
	Section string   `json:"section,omitempty"`
	Tags    []string `json:"tags,omitempty"`

	// Anchoring output. Box is set when all matched lines share one page;
	// PageBoxes is set instead when the chunk spans a page boundary, one
	// union box per page in source order.
	Box            *BBox     `json:"box,omitempty"`
	PageBoxes      []PageBox `json:"page_boxes,omitempty"`
	Anchored       bool      `json:"anchored"`
	MatchedLineIDs []string  `json:"matched_line_ids,omitempty"`
	LineCount      int       `json:"line_count"`
	TableID        string    `json:"table_id,omitempty"`

	Extra map[string]any `json:"extra,omitempty"`
}

// PageBox is a bounding box tagged with the page it belongs to, so that
// consumers never conflate coordinates from different pages.
type PageBox struct {
	Page int  `json:"page"`
	Box  BBox `json:"box"`
}

// ChunkType values understood by the anchorer. Any other type is treated
// as generic text.
const (
	ChunkTypeText    = "text"
	ChunkTypeTable   = "table"
	ChunkTypeImage   = "image"
	ChunkTypeHeading = "heading"
	ChunkTypeList    = "list"
)

// StreamJSON encodes an ordered element stream as tagged records, the wire
// form handed to the external segmenter alongside the textual view.
func StreamJSON(elements []Element) ([]byte, error) {
	type record struct {
		Kind    string  `json:"kind"`
		Element Element `json:"element"`
	}
	records := make([]record, 0, len(elements))
	for _, e := range elements {
		records = append(records, record{Kind: e.Type().String(), Element: e})
	}
	return json.Marshal(records)
}
