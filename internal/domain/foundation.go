package domain

// Foundation is an ascending same-suit pile built one card at a time from
// Ace. Its suit is set by the first card placed.
type Foundation struct {
	stack
	id     PileID
	anchor Point
	layout Layout
}

// NewFoundation creates an empty Foundation at anchor.
func NewFoundation(id PileID, anchor Point, layout Layout) *Foundation {
	return &Foundation{id: id, anchor: anchor, layout: layout}
}

func (f *Foundation) ID() PileID { return f.id }

// Anchor is the top-left corner of the pile slot.
func (f *Foundation) Anchor() Point { return f.anchor }

// Complete reports whether the Foundation holds Ace through King.
func (f *Foundation) Complete() bool { return f.Len() == int(King) }

// Liftable is 1 when (x, y) hits the top card.
func (f *Foundation) Liftable(x, y int) int {
	if top := f.top(); top != nil && top.WithinBounds(f.layout, x, y) {
		return 1
	}
	return 0
}

func (f *Foundation) Borrow(count int) []PhysicalCard {
	return snapshot(f.topN(min(count, 1)))
}

func (f *Foundation) Take(count int) []*PhysicalCard {
	return f.pop(min(count, 1))
}

func (f *Foundation) Hide(count int) { hide(f.topN(min(count, 1))) }

func (f *Foundation) Release(count int, at Point) {
	release(f.topN(min(count, 1)), at, 0)
}

func (f *Foundation) WithinDropBounds(x, y int) bool {
	return f.layout.CardBounds(f.anchor).Contains(x, y)
}

// Accepts allows a single card that is an Ace on an empty pile, or the
// same-suit successor of the top card.
func (f *Foundation) Accepts(cards []Card) bool {
	if len(cards) != 1 {
		return false
	}
	card := cards[0]
	top := f.top()
	if top == nil {
		return card.Rank == Ace
	}
	next, ok := top.card.Rank.Successor()
	return ok && top.card.Suit == card.Suit && next == card.Rank
}

func (f *Foundation) Accept(x, y int, cards []*PhysicalCard) error {
	if !f.Accepts(cardsOf(cards)) {
		return ErrPlacementRejected
	}
	pc := cards[0]
	pc.Place(f.anchor)
	pc.SetFrom(f.layout.Grab(x, y))
	pc.SetFaceDown(false)
	pc.SetVisible(true)
	f.push(pc)
	return nil
}
