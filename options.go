package ancora

// Options holds configuration for the extraction and anchoring pipeline.
type Options struct {
	// Line grouping
	lineTolerance           float64
	wordToleranceMultiplier float64

	// Serialization
	gapMultiplier float64

	// Anchoring
	matchScoreThreshold int
	crossPageLineWindow int
	tableMatchThreshold float64

	// Assembly
	tableMargin float64
}

// defaultOptions returns the default pipeline options.
func defaultOptions() Options {
	return Options{
		lineTolerance:           5.0,
		wordToleranceMultiplier: 0.4,
		gapMultiplier:           1.5,
		matchScoreThreshold:     80,
		crossPageLineWindow:     20,
		tableMatchThreshold:     0.30,
		tableMargin:             2.0,
	}
}

// clone creates a copy of Options. All fields are scalar, so a value copy
// suffices; the method exists to keep chain methods uniform.
func (o Options) clone() Options {
	return o
}
