package anchor

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/ancora/model"
)

// tableKeywords boost the Jaccard branch when the chunk's wording signals
// tabular content.
var tableKeywords = []string{"table", "row", "column", "cell", "total", "sum"}

const (
	tableInChunkWeight = 0.95
	chunkInTableWeight = 0.90
	containmentFloor   = 0.5
	keywordBoost       = 1.3
)

// TableMatcher scores candidate table elements against a chunk's text.
type TableMatcher struct {
	threshold float64
}

// NewTableMatcher creates a matcher that accepts tables scoring at or
// above threshold.
func NewTableMatcher(threshold float64) *TableMatcher {
	return &TableMatcher{threshold: threshold}
}

// Match selects the best-scoring table for the chunk text, or nil when no
// table reaches the acceptance threshold. A chunk corresponding to more
// than one table on a page is not supported; the single best scorer wins.
func (m *TableMatcher) Match(chunkText string, tables []*model.Table) (*model.Table, float64) {
	chunkWords := tokenize(chunkText)

	var best *model.Table
	bestScore := 0.0
	for _, tbl := range tables {
		score := m.score(chunkWords, tokenize(FlattenTable(tbl)))
		if score > bestScore {
			best, bestScore = tbl, score
		}
	}
	if best == nil || bestScore < m.threshold {
		return nil, 0
	}
	return best, bestScore
}

// score rates one table's word set against the chunk's. Strong one-sided
// containment dominates; otherwise Jaccard similarity, boosted when the
// chunk mentions a table-indicator keyword.
func (m *TableMatcher) score(chunkWords, tableWords map[string]struct{}) float64 {
	if len(chunkWords) == 0 || len(tableWords) == 0 {
		return 0
	}

	inter := 0
	for w := range tableWords {
		if _, ok := chunkWords[w]; ok {
			inter++
		}
	}

	if r := float64(inter) / float64(len(tableWords)); r >= containmentFloor {
		return tableInChunkWeight * r
	}
	if r := float64(inter) / float64(len(chunkWords)); r >= containmentFloor {
		return chunkInTableWeight * r
	}

	score := Jaccard(chunkWords, tableWords)
	for _, kw := range tableKeywords {
		if _, ok := chunkWords[kw]; ok {
			score *= keywordBoost
			break
		}
	}
	return score
}

// tokenize builds the word set used for table matching: NFKC-normalized,
// lowercased tokens split on every non-letter, non-digit rune. Splitting
// on punctuation keeps pipe-joined cells as separate words, on both the
// table side and chunk text that echoes the view's row rendering.
func tokenize(s string) map[string]struct{} {
	fields := strings.FieldsFunc(norm.NFKC.String(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// FlattenTable joins every cell of a table into one pipe-separated string.
func FlattenTable(tbl *model.Table) string {
	var cells []string
	for _, row := range tbl.Rows {
		cells = append(cells, row...)
	}
	return strings.Join(cells, "|")
}
