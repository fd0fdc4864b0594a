// Package layout turns raw character records into ordered text lines and
// words with derived style and spacing metadata, and assembles lines,
// tables, and images into one vertically ordered element stream per page.
package layout
