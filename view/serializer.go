// Package view renders an ordered element stream into a linear textual
// view with structural markers, suitable as input to a downstream
// semantic segmenter.
package view

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/ancora/model"
)

// Config holds tunable parameters for serialization.
type Config struct {
	// GapMultiplier scales the page's median line height to decide when
	// a vertical gap between lines without explicit break counts should
	// produce a blank line.
	GapMultiplier float64
}

// DefaultConfig returns the default serializer configuration.
func DefaultConfig() Config {
	return Config{
		GapMultiplier: 1.5,
	}
}

// Serializer renders element streams to marked-up text.
type Serializer struct {
	config Config
}

// NewSerializer creates a serializer with default configuration.
func NewSerializer() *Serializer {
	return NewSerializerWithConfig(DefaultConfig())
}

// NewSerializerWithConfig creates a serializer with the given configuration.
func NewSerializerWithConfig(config Config) *Serializer {
	return &Serializer{config: config}
}

// Serialize renders the ordered element stream into UTF-8 text, one page
// at a time. Each page opens with a [PAGE=N] marker. Text lines carry
// font-size blocks (<s=NN> ... </s>) and per-word styling, tables render
// as [TABLE]/[/TABLE] blocks with pipe-joined rows, and images render as
// single-line markers carrying their page and box coordinates.
func (s *Serializer) Serialize(elements []model.Element) string {
	var b strings.Builder

	page := -1
	openSize := 0
	prevBottom := math.NaN()
	prevBreaksAfter := 0
	medianHeight := 0.0

	closeSize := func() {
		if openSize > 0 {
			b.WriteString("</s>\n")
			openSize = 0
		}
	}

	for _, el := range elements {
		if el.PageNumber() != page {
			closeSize()
			if page != -1 {
				b.WriteString("\n")
			}
			page = el.PageNumber()
			prevBottom = math.NaN()
			prevBreaksAfter = 0
			medianHeight = medianLineHeight(elements, page)
			fmt.Fprintf(&b, "[PAGE=%d]\n", page)
		}

		switch v := el.(type) {
		case *model.TextLine:
			blanks := v.BreaksBefore
			if prevBreaksAfter > blanks {
				blanks = prevBreaksAfter
			}
			if blanks == 0 && !math.IsNaN(prevBottom) && medianHeight > 0 &&
				v.Box.Top-prevBottom > medianHeight*s.config.GapMultiplier {
				blanks = 1
			}
			for i := 0; i < blanks; i++ {
				b.WriteString("\n")
			}

			if size := dominantSize(v); size > 0 && size != openSize {
				closeSize()
				fmt.Fprintf(&b, "<s=%d>\n", size)
				openSize = size
			}
			b.WriteString(renderLine(v))
			b.WriteString("\n")

			prevBottom = v.Box.Bottom
			prevBreaksAfter = v.BreaksAfter

		case *model.Table:
			b.WriteString("[TABLE]\n")
			for _, row := range v.Rows {
				b.WriteString(strings.Join(row, "|"))
				b.WriteString("\n")
			}
			b.WriteString("[/TABLE]\n")
			prevBottom = v.Box.Bottom
			prevBreaksAfter = 0

		case *model.Image:
			fmt.Fprintf(&b, "[IMAGE page=%d l=%.1f t=%.1f r=%.1f b=%.1f]\n",
				v.Page, v.Box.Left, v.Box.Top, v.Box.Right, v.Box.Bottom)
			prevBottom = v.Box.Bottom
			prevBreaksAfter = 0
		}
	}
	closeSize()

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// renderLine renders a text line's words with styling markers, joined by
// single spaces.
func renderLine(line *model.TextLine) string {
	if len(line.Words) == 0 {
		return line.Text
	}
	parts := make([]string, 0, len(line.Words))
	for _, w := range line.Words {
		parts = append(parts, renderWord(w))
	}
	return strings.Join(parts, " ")
}

func renderWord(w model.Word) string {
	switch {
	case w.Bold && w.Italic:
		return "*_" + w.Text + "_*"
	case w.Bold:
		return "*" + w.Text + "*"
	case w.Italic:
		return "_" + w.Text + "_"
	default:
		return w.Text
	}
}

// dominantSize is the line's representative font size, rounded to the
// nearest integer: the median of its word sizes.
func dominantSize(line *model.TextLine) int {
	sizes := make([]float64, 0, len(line.Words))
	for _, w := range line.Words {
		if w.FontSize > 0 {
			sizes = append(sizes, w.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	return int(math.Round(sizes[len(sizes)/2]))
}

// medianLineHeight is the median bounding-box height of the page's text
// lines, used by the blank-line gap fallback.
func medianLineHeight(elements []model.Element, page int) float64 {
	var heights []float64
	for _, el := range elements {
		line, ok := el.(*model.TextLine)
		if !ok || line.Page != page {
			continue
		}
		heights = append(heights, line.Box.Height())
	}
	if len(heights) == 0 {
		return 0
	}
	sort.Float64s(heights)
	return heights[len(heights)/2]
}
