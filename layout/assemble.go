package layout

import (
	"sort"

	"github.com/tsawler/ancora/model"
)

// AssemblerConfig holds configuration for per-page element assembly.
type AssemblerConfig struct {
	// TableMargin expands each table box before testing whether a text
	// line's vertical midpoint falls inside it (page units).
	TableMargin float64
}

// DefaultAssemblerConfig returns sensible default configuration.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{TableMargin: 2.0}
}

// Assembler merges the text lines, tables, and images of a page into one
// vertically ordered element stream. Text lines swallowed by a table
// region are removed: their content is already represented structurally
// by the table's cell grid.
type Assembler struct {
	config AssemblerConfig
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler() *Assembler {
	return &Assembler{config: DefaultAssemblerConfig()}
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	return &Assembler{config: config}
}

// AssemblePage produces the ordered element stream for one page.
func (a *Assembler) AssemblePage(lines []model.TextLine, tables []model.Table, images []model.Image) []model.Element {
	elements := make([]model.Element, 0, len(lines)+len(tables)+len(images))

	for i := range lines {
		if a.swallowedByTable(&lines[i], tables) {
			continue
		}
		elements = append(elements, &lines[i])
	}
	for i := range tables {
		elements = append(elements, &tables[i])
	}
	for i := range images {
		elements = append(elements, &images[i])
	}

	sort.SliceStable(elements, func(i, j int) bool {
		bi, bj := elements[i].BoundingBox(), elements[j].BoundingBox()
		if bi.Top != bj.Top {
			return bi.Top < bj.Top
		}
		return bi.Left < bj.Left
	})

	return elements
}

// Assemble concatenates independently assembled page streams in page order.
func (a *Assembler) Assemble(pages [][]model.Element) []model.Element {
	var out []model.Element
	for _, page := range pages {
		out = append(out, page...)
	}
	return out
}

// swallowedByTable reports whether a text line's vertical midpoint lies
// within a table box (expanded by the margin) while its horizontal extent
// overlaps that box.
func (a *Assembler) swallowedByTable(line *model.TextLine, tables []model.Table) bool {
	mid := line.Box.VerticalMidpoint()
	for i := range tables {
		expanded := tables[i].Box.Expand(a.config.TableMargin)
		if expanded.ContainsY(mid) && line.Box.OverlapsHorizontally(tables[i].Box) {
			return true
		}
	}
	return false
}
