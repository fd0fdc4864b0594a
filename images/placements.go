package images

import (
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/ancora/model"
)

// scanPlacements walks a page content stream and resolves the rectangle
// occupied by every XObject invocation. An image asset may appear more
// than once, so each resource name maps to an ordered placement list.
//
// Only the operators that affect placement geometry are interpreted:
// q/Q (state stack), cm (matrix concatenation), and Do (XObject paint).
// The unit square transformed by the current matrix is the image's
// extent in PDF user space; pageHeight converts it to top-down units.
func scanPlacements(content []byte, pageHeight float64) map[string][]model.BBox {
	placements := make(map[string][]model.BBox)
	if len(content) == 0 {
		return placements
	}

	ctm := identity()
	var stack []matrix
	var operands []string

	for _, tok := range strings.Fields(string(content)) {
		switch tok {
		case "q":
			stack = append(stack, ctm)
			operands = operands[:0]
		case "Q":
			if n := len(stack); n > 0 {
				ctm = stack[n-1]
				stack = stack[:n-1]
			}
			operands = operands[:0]
		case "cm":
			if m, ok := takeMatrix(operands); ok {
				ctm = m.mul(ctm)
			}
			operands = operands[:0]
		case "Do":
			if name, ok := takeName(operands); ok {
				placements[name] = append(placements[name], placementBox(ctm, pageHeight))
			}
			operands = operands[:0]
		default:
			if isOperand(tok) {
				operands = append(operands, tok)
			} else {
				// Any other operator consumes its operands.
				operands = operands[:0]
			}
		}
	}

	return placements
}

// placementBox maps the unit square through the matrix and converts the
// resulting rectangle to top-down page coordinates.
func placementBox(m matrix, pageHeight float64) model.BBox {
	xs := make([]float64, 0, 4)
	ys := make([]float64, 0, 4)
	for _, corner := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		x, y := m.transform(corner[0], corner[1])
		xs = append(xs, x)
		ys = append(ys, y)
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}

	return model.NewBBox(minX, pageHeight-maxY, maxX, pageHeight-minY)
}

// takeMatrix parses the six trailing numeric operands of a cm operator.
func takeMatrix(operands []string) (matrix, bool) {
	if len(operands) < 6 {
		return matrix{}, false
	}
	var m matrix
	for i, s := range operands[len(operands)-6:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return matrix{}, false
		}
		m[i] = v
	}
	return m, true
}

// takeName returns the trailing name operand of a Do operator without its
// leading slash.
func takeName(operands []string) (string, bool) {
	if len(operands) == 0 {
		return "", false
	}
	last := operands[len(operands)-1]
	if !strings.HasPrefix(last, "/") || len(last) < 2 {
		return "", false
	}
	return last[1:], true
}

// isOperand reports whether a token is a number or a name, i.e. something
// an operator may consume.
func isOperand(tok string) bool {
	if strings.HasPrefix(tok, "/") {
		return true
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}
