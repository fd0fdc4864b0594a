package ancora

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/ancora/anchor"
	"github.com/tsawler/ancora/images"
	"github.com/tsawler/ancora/layout"
	"github.com/tsawler/ancora/model"
	"github.com/tsawler/ancora/reader"
	"github.com/tsawler/ancora/tables"
	"github.com/tsawler/ancora/view"
)

// Warning describes a non-fatal condition encountered during processing.
// Warnings never abort the pipeline; the result is best-effort.
type Warning struct {
	Page    int    // zero-based page, or -1 when not page-specific
	Stage   string // pipeline stage that raised it
	Message string
}

func (w Warning) String() string {
	if w.Page < 0 {
		return fmt.Sprintf("[%s] %s", w.Stage, w.Message)
	}
	return fmt.Sprintf("[%s] page %d: %s", w.Stage, w.Page, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		parts = append(parts, w.String())
	}
	return strings.Join(parts, "; ")
}

// Pipeline provides a fluent interface over the extraction, serialization,
// and anchoring stages. Each configuration method returns a new Pipeline
// instance, making chains safe to share and reuse.
type Pipeline struct {
	// Source
	filename string
	data     []byte

	// Lifecycle
	reader       *reader.Reader
	readerOpened bool

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Pipeline with a copy of options.
// This ensures immutability: each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename:     p.filename,
		data:         p.data,
		reader:       p.reader,
		readerOpened: p.readerOpened,
		options:      p.options.clone(),
		err:          p.err,
		warnings:     append([]Warning(nil), p.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// LineTolerance sets the vertical tolerance, in page units, for grouping
// characters into one line.
func (p *Pipeline) LineTolerance(v float64) *Pipeline {
	newP := p.clone()
	newP.options.lineTolerance = v
	return newP
}

// WordToleranceMultiplier sets the multiplier applied to a line's median
// font size to derive its word-separation tolerance.
func (p *Pipeline) WordToleranceMultiplier(v float64) *Pipeline {
	newP := p.clone()
	newP.options.wordToleranceMultiplier = v
	return newP
}

// GapMultiplier sets the multiplier applied to a page's median line height
// for the serializer's blank-line gap fallback.
func (p *Pipeline) GapMultiplier(v float64) *Pipeline {
	newP := p.clone()
	newP.options.gapMultiplier = v
	return newP
}

// MatchScoreThreshold sets the minimum score (0-100) for a multi-line
// anchor combination to be accepted.
func (p *Pipeline) MatchScoreThreshold(v int) *Pipeline {
	newP := p.clone()
	newP.options.matchScoreThreshold = v
	return newP
}

// CrossPageLineWindow sets how many consecutive lines an anchor
// combination may span.
func (p *Pipeline) CrossPageLineWindow(v int) *Pipeline {
	newP := p.clone()
	newP.options.crossPageLineWindow = v
	return newP
}

// TableMatchThreshold sets the minimum table-matcher score for a table
// chunk to anchor.
func (p *Pipeline) TableMatchThreshold(v float64) *Pipeline {
	newP := p.clone()
	newP.options.tableMatchThreshold = v
	return newP
}

// TableMargin sets the margin, in page units, by which a table's box is
// expanded when deciding whether it swallows a text line.
func (p *Pipeline) TableMargin(v float64) *Pipeline {
	newP := p.clone()
	newP.options.tableMargin = v
	return newP
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
func (p *Pipeline) PageCount() (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if err := p.ensureReader(); err != nil {
		return 0, err
	}
	return p.reader.PageCount(), nil
}

// Elements extracts the ordered element stream for the whole document.
func (p *Pipeline) Elements() ([]model.Element, []Warning, error) {
	elements, _, warnings, err := p.extract()
	return elements, warnings, err
}

// View extracts the element stream and serializes it into the textual
// view handed to an external segmenter.
func (p *Pipeline) View() (string, []Warning, error) {
	elements, _, warnings, err := p.extract()
	if err != nil {
		return "", warnings, err
	}
	s := view.NewSerializerWithConfig(view.Config{GapMultiplier: p.options.gapMultiplier})
	return s.Serialize(elements), warnings, nil
}

// Anchor extracts the element stream and anchors the given chunks onto it.
// Chunks are annotated in place and returned; unmatched chunks come back
// with Anchored=false rather than an error.
func (p *Pipeline) Anchor(chunks []model.Chunk) ([]model.Chunk, []Warning, error) {
	elements, heights, warnings, err := p.extract()
	if err != nil {
		return nil, warnings, err
	}

	a := anchor.NewAnchorerWithConfig(anchor.Config{
		MatchScoreThreshold: p.options.matchScoreThreshold,
		CrossPageLineWindow: p.options.crossPageLineWindow,
		TableMatchThreshold: p.options.tableMatchThreshold,
	})
	a.Anchor(elements, heights, chunks)
	return chunks, warnings, nil
}

// AnchorWith serializes the view, obtains chunks from the segmenter, and
// anchors them, running the whole round trip in one call.
func (p *Pipeline) AnchorWith(ctx context.Context, seg Segmenter) ([]model.Chunk, []Warning, error) {
	elements, heights, warnings, err := p.extract()
	if err != nil {
		return nil, warnings, err
	}

	s := view.NewSerializerWithConfig(view.Config{GapMultiplier: p.options.gapMultiplier})
	chunks, err := seg.Segment(ctx, s.Serialize(elements))
	if err != nil {
		return nil, warnings, fmt.Errorf("segmenter: %w", err)
	}

	a := anchor.NewAnchorerWithConfig(anchor.Config{
		MatchScoreThreshold: p.options.matchScoreThreshold,
		CrossPageLineWindow: p.options.crossPageLineWindow,
		TableMatchThreshold: p.options.tableMatchThreshold,
	})
	a.Anchor(elements, heights, chunks)
	return chunks, warnings, nil
}

// ============================================================================
// Internals
// ============================================================================

// ensureReader opens the reader if not already open.
func (p *Pipeline) ensureReader() error {
	if p.readerOpened {
		return nil
	}

	var (
		r   *reader.Reader
		err error
	)
	switch {
	case p.data != nil:
		r, err = reader.NewReader(p.data)
	case p.filename != "":
		r, err = reader.Open(p.filename)
	default:
		return fmt.Errorf("no document specified")
	}
	if err != nil {
		return err
	}

	p.reader = r
	p.readerOpened = true
	return nil
}

func (p *Pipeline) addWarning(page int, stage, message string) {
	p.warnings = append(p.warnings, Warning{Page: page, Stage: stage, Message: message})
}

// documentSource is the page-level access extraction needs. reader.Reader
// satisfies it.
type documentSource interface {
	PageCount() int
	PageDim(page int) reader.Dim
	Chars(page int) ([]reader.Char, error)
	images.Source
}

// extract runs per-page extraction and assembly over the whole document.
func (p *Pipeline) extract() ([]model.Element, map[int]float64, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.warnings, p.err
	}
	if err := p.ensureReader(); err != nil {
		return nil, nil, p.warnings, err
	}

	elements, heights := p.extractFrom(p.reader)
	return elements, heights, p.warnings, nil
}

// extractFrom extracts and assembles every page of src. Pages are
// independent and failures are local: a character-extraction error yields
// an empty text page, recorded as a warning, while table and image
// extraction for that page still run. The returned map carries each page's
// height for cross-page continuity tests.
func (p *Pipeline) extractFrom(src documentSource) ([]model.Element, map[int]float64) {
	grouper := layout.NewCharGrouperWithConfig(layout.GrouperConfig{
		LineTolerance:           p.options.lineTolerance,
		WordToleranceMultiplier: p.options.wordToleranceMultiplier,
	})
	tableExtractor := tables.NewExtractor()
	imageExtractor := images.NewExtractor()
	assembler := layout.NewAssemblerWithConfig(layout.AssemblerConfig{
		TableMargin: p.options.tableMargin,
	})

	pageCount := src.PageCount()
	heights := make(map[int]float64, pageCount)
	pageStreams := make([][]model.Element, 0, pageCount)

	for page := 0; page < pageCount; page++ {
		dim := src.PageDim(page)
		heights[page] = dim.Height
		pageBox := model.NewBBox(0, 0, dim.Width, dim.Height)

		chars, err := src.Chars(page)
		if err != nil {
			p.addWarning(page, "extract", fmt.Sprintf("reading characters: %v", err))
			chars = nil
		}

		lines := grouper.Group(page, chars)
		tbls := tableExtractor.Extract(page, lines, pageBox)
		imgs := imageExtractor.Extract(src, page, pageBox)

		pageStreams = append(pageStreams, assembler.AssemblePage(lines, tbls, imgs))
	}

	return assembler.Assemble(pageStreams), heights
}
