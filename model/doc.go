// Package model defines the core data types shared by all ancora packages:
// bounding boxes in top-down page coordinates, the page element union
// (text lines, tables, images), and the chunk records exchanged with the
// external semantic segmenter.
package model
