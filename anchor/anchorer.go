package anchor

import (
	"log/slog"
	"strings"

	"github.com/tsawler/ancora/model"
)

// Config holds tunable parameters for anchoring.
type Config struct {
	// MatchScoreThreshold is the minimum Score for a multi-line
	// combination to be accepted.
	MatchScoreThreshold int

	// CrossPageLineWindow caps how many consecutive lines a multi-line
	// combination may span.
	CrossPageLineWindow int

	// TableMatchThreshold is the minimum table-matcher score for a table
	// chunk to anchor.
	TableMatchThreshold float64
}

// DefaultConfig returns the default anchoring configuration.
func DefaultConfig() Config {
	return Config{
		MatchScoreThreshold: 80,
		CrossPageLineWindow: 20,
		TableMatchThreshold: 0.30,
	}
}

// Anchorer attaches source coordinates to externally produced chunks.
type Anchorer struct {
	config  Config
	matcher *TableMatcher
}

// NewAnchorer creates an anchorer with default configuration.
func NewAnchorer() *Anchorer {
	return NewAnchorerWithConfig(DefaultConfig())
}

// NewAnchorerWithConfig creates an anchorer with the given configuration.
func NewAnchorerWithConfig(config Config) *Anchorer {
	return &Anchorer{
		config:  config,
		matcher: NewTableMatcher(config.TableMatchThreshold),
	}
}

// Anchor annotates chunks in place with the coordinates of the elements
// they came from. Elements are read-only; one mutable set of used line ids
// spans the whole pass, so no two chunks ever claim the same source line.
// Chunks that cannot be matched are returned with Anchored=false rather
// than failing the pass. pageHeights supplies page extents for cross-page
// continuity tests, keyed by zero-based page number.
func (a *Anchorer) Anchor(elements []model.Element, pageHeights map[int]float64, chunks []model.Chunk) {
	var lines []*model.TextLine
	var tables []*model.Table
	for _, el := range elements {
		switch v := el.(type) {
		case *model.TextLine:
			lines = append(lines, v)
		case *model.Table:
			tables = append(tables, v)
		}
	}

	used := make(map[string]bool)
	for i := range chunks {
		chunk := &chunks[i]
		switch chunk.Metadata.Type {
		case model.ChunkTypeImage:
			// A box attached during extraction pairing is the anchor; no
			// matching is performed.
			chunk.Metadata.Anchored = chunk.Metadata.Box != nil || len(chunk.Metadata.PageBoxes) > 0
		case model.ChunkTypeTable:
			a.anchorTable(chunk, tables)
		default:
			a.anchorText(chunk, lines, pageHeights, used)
		}
	}
}

// anchorTable matches a table chunk against the tables on its declared
// page and copies the winner's coordinates into the chunk.
func (a *Anchorer) anchorTable(chunk *model.Chunk, tables []*model.Table) {
	var onPage []*model.Table
	for _, tbl := range tables {
		if tbl.Page == chunk.Metadata.Page {
			onPage = append(onPage, tbl)
		}
	}

	tbl, _ := a.matcher.Match(chunk.Text, onPage)
	if tbl == nil {
		chunk.Metadata.Anchored = false
		return
	}
	box := tbl.Box
	chunk.Metadata.Box = &box
	chunk.Metadata.Page = tbl.Page
	chunk.Metadata.TableID = tbl.ID
	chunk.Metadata.Anchored = true
}

// anchorText matches each non-empty line of the chunk's text against the
// unused source lines, then aggregates the matched boxes.
func (a *Anchorer) anchorText(chunk *model.Chunk, lines []*model.TextLine, pageHeights map[int]float64, used map[string]bool) {
	var matched []*model.TextLine
	cursor := 0
	for _, raw := range strings.Split(chunk.Text, "\n") {
		chunkLine := strings.TrimSpace(raw)
		if chunkLine == "" {
			continue
		}

		found, next := a.matchLine(chunkLine, lines, used, cursor, pageHeights)
		if len(found) == 0 {
			slog.Warn("chunk line has no source anchor", "line", chunkLine)
			continue
		}
		for _, l := range found {
			used[l.ID] = true
		}
		matched = append(matched, found...)
		cursor = next
	}

	if len(matched) == 0 {
		chunk.Metadata.Anchored = false
		chunk.Metadata.MatchedLineIDs = nil
		chunk.Metadata.LineCount = 0
		return
	}

	box, pageBoxes := AggregateBoxes(matched)
	chunk.Metadata.Box = box
	chunk.Metadata.PageBoxes = pageBoxes
	chunk.Metadata.Page = matched[0].Page
	chunk.Metadata.Anchored = true
	chunk.Metadata.LineCount = len(matched)
	chunk.Metadata.MatchedLineIDs = make([]string, 0, len(matched))
	for _, l := range matched {
		chunk.Metadata.MatchedLineIDs = append(chunk.Metadata.MatchedLineIDs, l.ID)
	}
}

// matchLine resolves one chunk line to one or more source lines, searching
// forward from cursor over the unused lines. It returns the matched lines
// and the cursor position just past them, or nil when nothing reaches the
// acceptance threshold.
func (a *Anchorer) matchLine(chunkLine string, lines []*model.TextLine, used map[string]bool, cursor int, pageHeights map[int]float64) ([]*model.TextLine, int) {
	exact := Normalize(chunkLine)
	loose := NormalizeLoose(chunkLine)

	// Single-line pass: exact, then punctuation-insensitive equality.
	for i := cursor; i < len(lines); i++ {
		if used[lines[i].ID] {
			continue
		}
		if Normalize(lines[i].Text) == exact || NormalizeLoose(lines[i].Text) == loose {
			return []*model.TextLine{lines[i]}, i + 1
		}
	}

	// Multi-line pass: grow a window of continuous unused lines, scoring
	// the progressively longer joined text. Greedy with an early exit on a
	// perfect score; not guaranteed globally optimal.
	bestScore := 0
	var best []*model.TextLine
	bestEnd := cursor

	for start := cursor; start < len(lines) && bestScore < 100; start++ {
		if used[lines[start].ID] {
			continue
		}

		window := []*model.TextLine{lines[start]}
		joined := lines[start].Text
		last := lines[start]

		if s := a.combinedScore(exact, loose, joined); s > bestScore {
			bestScore = s
			best = append([]*model.TextLine(nil), window...)
			bestEnd = start + 1
		}

		for j := start + 1; j < len(lines) && len(window) < a.config.CrossPageLineWindow && bestScore < 100; j++ {
			if used[lines[j].ID] {
				continue
			}
			if !Continuous(last, lines[j], pageHeights) {
				break
			}
			window = append(window, lines[j])
			joined += " " + lines[j].Text
			last = lines[j]

			if s := a.combinedScore(exact, loose, joined); s > bestScore {
				bestScore = s
				best = append([]*model.TextLine(nil), window...)
				bestEnd = j + 1
			}
		}
	}

	if bestScore < a.config.MatchScoreThreshold {
		return nil, cursor
	}
	return best, bestEnd
}

// combinedScore scores the candidate text against both normalized forms of
// the chunk line and keeps the higher.
func (a *Anchorer) combinedScore(exact, loose, candidate string) int {
	s := Score(exact, Normalize(candidate))
	if ls := Score(loose, NormalizeLoose(candidate)); ls > s {
		s = ls
	}
	return s
}
