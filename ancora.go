// Package ancora converts a PDF into a position-aware element stream,
// serializes that stream into a linear textual view for an external
// semantic segmenter, and anchors the segmenter's chunks back onto the
// exact source coordinates they came from.
//
// Basic usage:
//
//	view, warnings, err := ancora.Open("document.pdf").View()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", ancora.FormatWarnings(warnings))
//	}
//
// With options:
//
//	elements, _, err := ancora.Open("report.pdf").
//	    LineTolerance(4).
//	    TableMargin(3).
//	    Elements()
//
// Anchoring externally produced chunks:
//
//	anchored, _, err := ancora.Open("report.pdf").Anchor(chunks)
//
// For advanced use cases, the lower-level reader, layout, view, and
// anchor packages are also available.
package ancora

import (
	"context"

	"github.com/tsawler/ancora/model"
	"github.com/tsawler/ancora/reader"
)

// Open opens a PDF file and returns a Pipeline for fluent configuration.
// The document is not read until a terminal operation runs.
//
// Example:
//
//	view, warnings, err := ancora.Open("document.pdf").View()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates a Pipeline over raw document bytes.
func FromBytes(data []byte) *Pipeline {
	return &Pipeline{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader creates a Pipeline from an already-opened reader.Reader.
// This is useful when several pipelines should share one parsed document.
func FromReader(r *reader.Reader) *Pipeline {
	return &Pipeline{
		reader:       r,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Segmenter splits a textual view into semantic chunks. Implementations
// typically call an external service; the pipeline never provides one
// itself.
type Segmenter interface {
	Segment(ctx context.Context, view string) ([]model.Chunk, error)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := ancora.Must(ancora.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
