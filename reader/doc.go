// Package reader provides access to the raw page description of a PDF
// document: per-glyph character records in top-down page coordinates,
// page dimensions, page content streams, and embedded image objects.
//
// The reader is the only place a fatal error can originate; every later
// stage degrades to a partial result instead of failing.
package reader
