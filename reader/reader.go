package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrDocumentUnreadable is returned when the input cannot be opened as a
// PDF at all. It is the only fatal condition in the pipeline.
var ErrDocumentUnreadable = errors.New("document unreadable")

// Char is one raw character record on a page: a glyph run with its
// horizontal extent [X0, X1] and vertical extent [Top, Bottom] in
// top-down page units, plus the font it was set in.
type Char struct {
	Text   string
	X0     float64
	X1     float64
	Top    float64
	Bottom float64
	Size   float64
	Font   string
}

// Dim holds the width and height of one page in page units.
type Dim struct {
	Width  float64
	Height float64
}

// Reader opens a document once for both glyph-level access (character
// records) and structural access (content streams, image objects).
type Reader struct {
	glyphs *pdf.Reader
	ctx    *pdfmodel.Context
	dims   []Dim
}

// Open reads a PDF from disk. The returned Reader holds the whole
// document in memory; it has no resources to release.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	return NewReader(data)
}

// NewReader builds a Reader from raw document bytes.
func NewReader(data []byte) (*Reader, error) {
	glyphs, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	rawDims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	dims := make([]Dim, 0, len(rawDims))
	for _, d := range rawDims {
		dims = append(dims, Dim{Width: d.Width, Height: d.Height})
	}

	return &Reader{glyphs: glyphs, ctx: ctx, dims: dims}, nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.ctx.PageCount
}

// PageDim returns the dimensions of a page (zero-based index).
func (r *Reader) PageDim(page int) Dim {
	if page < 0 || page >= len(r.dims) {
		return Dim{Width: 612, Height: 792}
	}
	return r.dims[page]
}

// Chars returns the character records of a page (zero-based index),
// ordered by (Top, X0). A page with no extractable characters yields an
// empty slice, not an error.
func (r *Reader) Chars(page int) ([]Char, error) {
	if page < 0 || page >= r.PageCount() {
		return nil, fmt.Errorf("page %d out of range [0, %d)", page, r.PageCount())
	}

	p := r.glyphs.Page(page + 1)
	if p.V.IsNull() {
		return nil, nil
	}

	height := r.PageDim(page).Height
	content := p.Content()

	chars := make([]Char, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		chars = append(chars, Char{
			Text:   t.S,
			X0:     t.X,
			X1:     t.X + t.W,
			Top:    height - t.Y - t.FontSize,
			Bottom: height - t.Y,
			Size:   t.FontSize,
			Font:   t.Font,
		})
	}

	sort.SliceStable(chars, func(i, j int) bool {
		if chars[i].Top != chars[j].Top {
			return chars[i].Top < chars[j].Top
		}
		return chars[i].X0 < chars[j].X0
	})

	return chars, nil
}

// PageContent returns the raw content stream of a page (zero-based index).
func (r *Reader) PageContent(page int) ([]byte, error) {
	rd, err := pdfcpu.ExtractPageContent(r.ctx, page+1)
	if err != nil {
		return nil, err
	}
	if rd == nil {
		return nil, nil
	}
	return io.ReadAll(rd)
}

// PageImages returns the decoded image objects of a page (zero-based
// index), keyed by object number. Each value carries the raster in its
// original file format plus the XObject resource name.
func (r *Reader) PageImages(page int) (map[int]pdfmodel.Image, error) {
	return pdfcpu.ExtractPageImages(r.ctx, page+1, false)
}

// ImageObjNrs enumerates the image object numbers referenced by a page
// (zero-based index) without decoding them. This is the lower-fidelity
// inspector used by the image extraction fallback path.
func (r *Reader) ImageObjNrs(page int) []int {
	return pdfcpu.ImageObjNrs(r.ctx, page+1)
}
