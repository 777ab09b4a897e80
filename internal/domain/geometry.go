package domain

// Point is a position in table space, in pixels.
type Point struct {
	X int
	Y int
}

// Bounds is an axis-aligned rectangle used for hit testing.
type Bounds struct {
	X, Y int
	W, H int
}

// Contains reports whether (x, y) lies inside the rectangle, edges inclusive
// on the top-left and exclusive on the bottom-right.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Layout holds the table geometry the piles are placed with.
type Layout struct {
	CardWidth      int
	CardHeight     int
	Padding        int
	StackedXStride int // horizontal offset between fanned Discard cards
	StackedYStride int // vertical offset between stacked Tableau cards
	PileGapX       int
	PileGapY       int
}

// DefaultLayout is the classic table geometry.
func DefaultLayout() Layout {
	return Layout{
		CardWidth:      125,
		CardHeight:     175,
		Padding:        10,
		StackedXStride: 35,
		StackedYStride: 45,
		PileGapX:       20,
		PileGapY:       20,
	}
}

// CardBounds is the hit box of a card whose top-left corner is at p.
func (l Layout) CardBounds(p Point) Bounds {
	return Bounds{X: p.X, Y: p.Y, W: l.CardWidth, H: l.CardHeight}
}

// Grab converts a pointer position to the top-left corner of a card held by
// its centre.
func (l Layout) Grab(x, y int) Point {
	return Point{X: x - l.CardWidth/2, Y: y - l.CardHeight/2}
}

func (l Layout) columnStride() int { return l.CardWidth + l.PileGapX }

func (l Layout) rowStride() int { return l.CardHeight + l.PileGapY }

// StockAnchor is the top-left corner of the Stock.
func (l Layout) StockAnchor() Point {
	return Point{X: l.Padding, Y: l.Padding}
}

// DiscardAnchor is the top-left corner of the Discard, one column right of
// the Stock.
func (l Layout) DiscardAnchor() Point {
	return Point{X: l.Padding + l.columnStride(), Y: l.Padding}
}

// FoundationAnchor is the top-left corner of Foundation slot i (0-based).
func (l Layout) FoundationAnchor(i int) Point {
	return Point{X: l.Padding + (3+i)*l.columnStride(), Y: l.Padding}
}

// TableauAnchor is the top-left corner of Tableau slot i (0-based).
func (l Layout) TableauAnchor(i int) Point {
	return Point{X: l.Padding + i*l.columnStride(), Y: l.Padding + l.rowStride()}
}
