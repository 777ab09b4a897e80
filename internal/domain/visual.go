package domain

import "github.com/google/uuid"

// VisualCard is the read-only presentation state of one card.
type VisualCard struct {
	Key      uuid.UUID
	Pile     PileID
	Card     Card // only meaningful when FaceDown is false
	FaceDown bool
	Visible  bool
	Held     bool
	Pos      Point
	From     Point
}

// VisualSlot marks an empty pile at its anchor.
type VisualSlot struct {
	Pile PileID
	Pos  Point
}

// VisualState is everything presentation needs to draw the table.
type VisualState struct {
	Cards      []VisualCard
	EmptySlots []VisualSlot
}

func visualOf(id PileID, pc *PhysicalCard) VisualCard {
	return VisualCard{
		Key:      pc.key,
		Pile:     id,
		Card:     pc.card,
		FaceDown: pc.faceDown,
		Visible:  pc.visible,
		Pos:      pc.pos,
		From:     pc.from,
	}
}

func (vs *VisualState) addPile(id PileID, anchor Point, s *stack) {
	if s.Len() == 0 {
		vs.EmptySlots = append(vs.EmptySlots, VisualSlot{Pile: id, Pos: anchor})
		return
	}
	for _, pc := range s.cards {
		vs.Cards = append(vs.Cards, visualOf(id, pc))
	}
}

// Visual returns the presentation state of every pile, in draw order.
func (t *Table) Visual() VisualState {
	var vs VisualState
	sd := t.stockDiscard
	vs.addPile(PileStock, sd.Stock.anchor, &sd.Stock.stack)
	vs.addPile(PileDiscard, sd.Discard.anchor, &sd.Discard.stack)
	for _, f := range t.foundations {
		vs.addPile(f.id, f.anchor, &f.stack)
	}
	for _, ts := range t.tableaus {
		vs.addPile(ts.id, ts.anchor, &ts.stack)
	}
	return vs
}
