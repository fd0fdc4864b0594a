package images

import (
	"io"
	"log/slog"
	"sort"

	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/ancora/model"
)

// Source provides the page-level document access the extractor needs.
// reader.Reader satisfies it.
type Source interface {
	PageContent(page int) ([]byte, error)
	PageImages(page int) (map[int]pdfmodel.Image, error)
	ImageObjNrs(page int) []int
}

// Extractor resolves embedded image placements on a page.
type Extractor struct{}

// NewExtractor creates an image extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns one image element per placement on the page. The
// primary path resolves placement rectangles from the content stream and
// decodes pixel data to PNG; when the decoder is unavailable the fallback
// enumerates image objects with page-bounds boxes and no payload. Both
// paths are best-effort: a failed decode skips that image's placements
// and extraction continues.
func (e *Extractor) Extract(src Source, page int, pageBox model.BBox) []model.Image {
	placements := e.pagePlacements(src, page, pageBox)

	decoded, err := src.PageImages(page)
	if err != nil {
		slog.Warn("image decoder unavailable; falling back to object enumeration", "page", page, "error", err)
		return e.fallback(src, page, pageBox)
	}

	// Deterministic image indices: ascending object number.
	objNrs := make([]int, 0, len(decoded))
	for nr := range decoded {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	var out []model.Image
	for i, nr := range objNrs {
		img := decoded[nr]

		raw, err := io.ReadAll(img)
		if err != nil {
			slog.Warn("reading image stream failed; skipping placement", "page", page, "image", img.Name, "error", err)
			continue
		}
		payload, err := normalizeToPNG(raw)
		if err != nil {
			slog.Warn("image decode failed; skipping placement", "page", page, "image", img.Name, "error", err)
			continue
		}

		boxes := placements[img.Name]
		if len(boxes) == 0 {
			// Placement could not be determined; approximate with the
			// page bounds.
			boxes = []model.BBox{pageBox}
		}

		for j, box := range boxes {
			out = append(out, model.Image{
				ID:      model.ImageID(page, i, j),
				Page:    page,
				Box:     box,
				Subtype: img.FileType,
				Data:    payload,
			})
		}
	}
	return out
}

// pagePlacements scans the page content stream for placement rectangles,
// keyed by XObject resource name.
func (e *Extractor) pagePlacements(src Source, page int, pageBox model.BBox) map[string][]model.BBox {
	content, err := src.PageContent(page)
	if err != nil {
		slog.Warn("page content unavailable for placement scan", "page", page, "error", err)
		return nil
	}
	return scanPlacements(content, pageBox.Bottom)
}

// fallback enumerates image placements from the lower-fidelity page
// inspector: boxes and ids, no decoded pixel payload.
func (e *Extractor) fallback(src Source, page int, pageBox model.BBox) []model.Image {
	var out []model.Image
	for i := range src.ImageObjNrs(page) {
		out = append(out, model.Image{
			ID:      model.ImageID(page, i, 0),
			Page:    page,
			Box:     pageBox,
			Subtype: "image",
			Data:    nil,
		})
	}
	return out
}
