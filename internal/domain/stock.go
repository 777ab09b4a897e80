package domain

import "slices"

// DrawCount is how many cards one advance deals from Stock to Discard.
const DrawCount = 3

// discardFan is how many Discard cards below the top are re-laid out when
// cards arrive.
const discardFan = 6

// Stock is the face-down draw pile. It is never a Source or Sink; it only
// reacts to Advance.
type Stock struct {
	stack
	anchor Point
	layout Layout
}

// NewStock creates a Stock holding cards face-down, last card on top.
func NewStock(anchor Point, layout Layout, cards []*PhysicalCard) *Stock {
	s := &Stock{anchor: anchor, layout: layout}
	for _, pc := range cards {
		pc.Place(anchor)
		pc.SetFaceDown(true)
		pc.SetVisible(true)
	}
	s.push(cards...)
	return s
}

func (s *Stock) ID() PileID { return PileStock }

// Anchor is the top-left corner of the pile slot.
func (s *Stock) Anchor() Point { return s.anchor }

// WithinBounds hit-tests the Stock slot, empty or not.
func (s *Stock) WithinBounds(x, y int) bool {
	return s.layout.CardBounds(s.anchor).Contains(x, y)
}

// takeThree pops up to DrawCount cards, first popped first.
func (s *Stock) takeThree() []*PhysicalCard {
	out := make([]*PhysicalCard, 0, DrawCount)
	for i := 0; i < DrawCount; i++ {
		pc := s.pop(1)
		if len(pc) == 0 {
			break
		}
		out = append(out, pc[0])
	}
	return out
}

// deposit stacks cards face-down onto the Stock. Only the last card animates
// in; the rest are placed directly beneath it.
func (s *Stock) deposit(cards []*PhysicalCard) {
	for i, pc := range cards {
		if i == len(cards)-1 {
			pc.MoveTo(s.anchor)
		} else {
			pc.Place(s.anchor)
		}
		pc.SetFaceDown(true)
		pc.SetVisible(true)
	}
	s.push(cards...)
}

// Discard receives cards from the Stock face-up and lends its top card.
type Discard struct {
	stack
	anchor Point
	layout Layout
}

// NewDiscard creates an empty Discard at anchor.
func NewDiscard(anchor Point, layout Layout) *Discard {
	return &Discard{anchor: anchor, layout: layout}
}

func (d *Discard) ID() PileID { return PileDiscard }

// Anchor is the top-left corner of the pile slot.
func (d *Discard) Anchor() Point { return d.anchor }

func (d *Discard) fanned(offset int) Point {
	return Point{X: d.anchor.X + offset*d.layout.StackedXStride, Y: d.anchor.Y}
}

// addThree lays cards on top, fanning the top three out to the right.
func (d *Discard) addThree(cards []*PhysicalCard) {
	d.push(cards...)
	n := d.Len()
	for i := max(n-discardFan, 0); i < n; i++ {
		offset := 0
		if fromTop := n - i; fromTop <= 2 {
			offset = 3 - fromTop
		}
		pc := d.cards[i]
		pc.MoveTo(d.fanned(offset))
		pc.SetFaceDown(false)
		pc.SetVisible(true)
	}
}

func (d *Discard) Liftable(x, y int) int {
	if top := d.top(); top != nil && top.WithinBounds(d.layout, x, y) {
		return 1
	}
	return 0
}

func (d *Discard) Borrow(count int) []PhysicalCard {
	return snapshot(d.topN(min(count, 1)))
}

// Take pops the top card and shifts the next ones right to reveal the new
// top.
func (d *Discard) Take(count int) []*PhysicalCard {
	run := d.pop(min(count, 1))
	if len(run) == 0 {
		return nil
	}
	n := d.Len()
	for i := max(n-3, 0); i < n; i++ {
		fromTop := n - i - 1
		d.cards[i].MoveTo(d.fanned(2 - fromTop))
	}
	return run
}

func (d *Discard) Hide(count int) { hide(d.topN(min(count, 1))) }

func (d *Discard) Release(count int, at Point) {
	release(d.topN(min(count, 1)), at, 0)
}

// StockDiscard pairs the Stock with the Discard it deals into.
type StockDiscard struct {
	Stock   *Stock
	Discard *Discard
}

// AdvanceResult reports what one Advance did.
type AdvanceResult struct {
	Dealt    []Card // cards moved to Discard, in deal order
	Recycled int    // cards moved back to Stock when it was empty
}

// Advance deals up to three cards to the Discard, or, when the Stock is
// empty, turns the whole Discard over back into the Stock.
func (sd *StockDiscard) Advance() AdvanceResult {
	if cards := sd.Stock.takeThree(); len(cards) > 0 {
		sd.Discard.addThree(cards)
		return AdvanceResult{Dealt: cardsOf(cards)}
	}
	cards := sd.Discard.drain()
	slices.Reverse(cards)
	sd.Stock.deposit(cards)
	return AdvanceResult{Recycled: len(cards)}
}
