package domain

// Tableau is a descending alternating-colour pile. Face-down cards form a
// prefix of the sequence and face-up cards the suffix.
type Tableau struct {
	stack
	id     PileID
	anchor Point
	layout Layout
}

// NewTableau creates an empty Tableau at anchor.
func NewTableau(id PileID, anchor Point, layout Layout) *Tableau {
	return &Tableau{id: id, anchor: anchor, layout: layout}
}

func (t *Tableau) ID() PileID { return t.id }

// Anchor is the top-left corner of the pile slot.
func (t *Tableau) Anchor() Point { return t.anchor }

func (t *Tableau) slot(i int) Point {
	return Point{X: t.anchor.X, Y: t.anchor.Y + i*t.layout.StackedYStride}
}

// faceUp returns the live face-up suffix.
func (t *Tableau) faceUp() []*PhysicalCard {
	n := 0
	for i := len(t.cards) - 1; i >= 0 && !t.cards[i].faceDown; i-- {
		n++
	}
	return t.topN(n)
}

// FaceDownCount is the length of the face-down prefix.
func (t *Tableau) FaceDownCount() int { return t.Len() - len(t.faceUp()) }

// Liftable scans from the top card down and returns the number of cards from
// the struck face-up card to the top. A face-down or missed hit returns 0.
func (t *Tableau) Liftable(x, y int) int {
	for i := len(t.cards) - 1; i >= 0; i-- {
		pc := t.cards[i]
		if pc.faceDown {
			return 0
		}
		if pc.WithinBounds(t.layout, x, y) {
			return len(t.cards) - i
		}
	}
	return 0
}

func (t *Tableau) liftable(count int) []*PhysicalCard {
	up := t.faceUp()
	if count < len(up) {
		up = up[len(up)-max(count, 0):]
	}
	return up
}

func (t *Tableau) Borrow(count int) []PhysicalCard {
	return snapshot(t.liftable(count))
}

// Take removes up to count face-up cards from the top and turns a newly
// exposed face-down card face-up.
func (t *Tableau) Take(count int) []*PhysicalCard {
	run := t.pop(len(t.liftable(count)))
	if top := t.top(); top != nil && top.faceDown {
		top.SetFaceDown(false)
	}
	return run
}

func (t *Tableau) Hide(count int) { hide(t.liftable(count)) }

func (t *Tableau) Release(count int, at Point) {
	release(t.liftable(count), at, t.layout.StackedYStride)
}

// WithinDropBounds hit-tests the slot of the current top card, or the anchor
// when empty.
func (t *Tableau) WithinDropBounds(x, y int) bool {
	return t.layout.CardBounds(t.slot(max(t.Len()-1, 0))).Contains(x, y)
}

// Accepts allows a run whose bottom card is a King on an empty pile, or is
// one rank below the top card and of the other colour. The run's own order
// is not rechecked: lifted runs are well-formed by construction.
func (t *Tableau) Accepts(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	bottom := cards[0]
	top := t.top()
	if top == nil {
		return bottom.Rank == King
	}
	if top.faceDown {
		return false
	}
	prev, ok := top.card.Rank.Predecessor()
	return ok && prev == bottom.Rank && top.card.Color() != bottom.Color()
}

func (t *Tableau) Accept(x, y int, cards []*PhysicalCard) error {
	if !t.Accepts(cardsOf(cards)) {
		return ErrPlacementRejected
	}
	grab := t.layout.Grab(x, y)
	for i, pc := range cards {
		pc.Place(t.slot(t.Len()))
		pc.SetFrom(Point{X: grab.X, Y: grab.Y + i*t.layout.StackedYStride})
		pc.SetFaceDown(false)
		pc.SetVisible(true)
		t.push(pc)
	}
	return nil
}

// Run returns the face-up suffix identities, bottom first.
func (t *Tableau) Run() []Card {
	return cardsOf(t.faceUp())
}
