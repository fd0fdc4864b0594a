package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/ancora/model"
	"github.com/tsawler/ancora/reader"
)

// GrouperConfig holds configuration for character-to-line grouping.
type GrouperConfig struct {
	// LineTolerance is the maximum difference between a character's top
	// and the top of the first character in a line group for both to be
	// considered part of the same line (page units).
	LineTolerance float64

	// WordToleranceMultiplier scales the median font size of a line to
	// produce the horizontal gap beyond which consecutive characters
	// belong to different words.
	WordToleranceMultiplier float64
}

// DefaultGrouperConfig returns sensible default configuration.
func DefaultGrouperConfig() GrouperConfig {
	return GrouperConfig{
		LineTolerance:           5.0,
		WordToleranceMultiplier: 0.4,
	}
}

// CharGrouper groups raw character records into ordered text lines.
type CharGrouper struct {
	config GrouperConfig
}

// NewCharGrouper creates a grouper with default configuration.
func NewCharGrouper() *CharGrouper {
	return &CharGrouper{config: DefaultGrouperConfig()}
}

// NewCharGrouperWithConfig creates a grouper with custom configuration.
func NewCharGrouperWithConfig(config GrouperConfig) *CharGrouper {
	return &CharGrouper{config: config}
}

// Group converts the character records of one page into ordered text
// lines. A page with no characters yields an empty list, not an error.
func (g *CharGrouper) Group(page int, chars []reader.Char) []model.TextLine {
	if len(chars) == 0 {
		return nil
	}

	// Step 1: sort by (top, x0) and split into line groups.
	sorted := make([]reader.Char, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var groups [][]reader.Char
	current := []reader.Char{sorted[0]}
	for _, c := range sorted[1:] {
		if absFloat(c.Top-current[0].Top) < g.config.LineTolerance {
			current = append(current, c)
		} else {
			groups = append(groups, current)
			current = []reader.Char{c}
		}
	}
	groups = append(groups, current)

	// Step 2: build lines with words and style metadata.
	lines := make([]model.TextLine, 0, len(groups))
	for _, group := range groups {
		words := g.splitWords(group)
		if len(words) == 0 {
			continue
		}

		boxes := make([]model.BBox, len(words))
		texts := make([]string, len(words))
		for i, w := range words {
			boxes[i] = w.Box
			texts[i] = w.Text
		}

		line := model.TextLine{
			Page:  page,
			Box:   model.UnionBoxes(boxes),
			Text:  strings.Join(texts, " "),
			Words: words,
		}
		line.Indent = line.Box.Left

		if n := len(lines); n > 0 && line.Box.Top-lines[n-1].Box.Bottom > g.config.LineTolerance {
			line.BreaksBefore = 1
		}
		lines = append(lines, line)
	}

	// Step 3: second pass for trailing breaks and ids.
	for i := range lines {
		if i+1 < len(lines) && lines[i+1].Box.Top-lines[i].Box.Bottom > g.config.LineTolerance {
			lines[i].BreaksAfter = 1
		}
		lines[i].ID = model.TextLineID(page, i)
	}

	return lines
}

// splitWords splits one line group into words using an adaptive
// separation tolerance derived from the line's median font size.
func (g *CharGrouper) splitWords(group []reader.Char) []model.Word {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].X0 < group[j].X0
	})

	sizes := make([]float64, 0, len(group))
	for _, c := range group {
		if c.Size > 0 {
			sizes = append(sizes, c.Size)
		}
	}
	tolerance := median(sizes) * g.config.WordToleranceMultiplier
	if tolerance <= 0 {
		tolerance = 1.0
	}

	var words []model.Word
	var run []reader.Char
	flush := func() {
		if w, ok := buildWord(run); ok {
			words = append(words, w)
		}
		run = run[:0]
	}

	for _, c := range group {
		if len(run) > 0 && c.X0-run[len(run)-1].X1 > tolerance {
			flush()
		}
		run = append(run, c)
	}
	flush()

	return words
}

// buildWord assembles a word from a run of characters. Words that reduce
// to empty text are dropped.
func buildWord(run []reader.Char) (model.Word, bool) {
	if len(run) == 0 {
		return model.Word{}, false
	}

	var sb strings.Builder
	boxes := make([]model.BBox, 0, len(run))
	sizes := make([]float64, 0, len(run))
	for _, c := range run {
		sb.WriteString(c.Text)
		boxes = append(boxes, model.NewBBox(c.X0, c.Top, c.X1, c.Bottom))
		if c.Size > 0 {
			sizes = append(sizes, c.Size)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return model.Word{}, false
	}

	font := strings.ToLower(run[0].Font)
	return model.Word{
		Text:     text,
		Box:      model.UnionBoxes(boxes),
		FontSize: median(sizes),
		Bold:     strings.Contains(font, "bold"),
		Italic:   strings.Contains(font, "italic") || strings.Contains(font, "oblique"),
	}, true
}

// median returns the middle value of vals, or 0 for an empty slice.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
