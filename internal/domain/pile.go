package domain

import (
	"errors"
	"fmt"
)

// ErrPlacementRejected is returned by Sink.Accept when the run is not legal
// on that pile. The pile is left unchanged.
var ErrPlacementRejected = errors.New("placement rejected")

// PileID identifies one pile slot on the table.
type PileID uint8

const (
	PileStock PileID = iota
	PileDiscard
	PileFoundation1
	PileFoundation2
	PileFoundation3
	PileFoundation4
	PileTableau1
	PileTableau2
	PileTableau3
	PileTableau4
	PileTableau5
	PileTableau6
	PileTableau7
)

const (
	// FoundationCount is the number of Foundation slots.
	FoundationCount = 4
	// TableauCount is the number of Tableau slots.
	TableauCount = 7
)

// SourceOrder is the fixed order piles are queried in on pointer down.
var SourceOrder = []PileID{
	PileDiscard,
	PileFoundation1, PileFoundation2, PileFoundation3, PileFoundation4,
	PileTableau1, PileTableau2, PileTableau3, PileTableau4, PileTableau5, PileTableau6, PileTableau7,
}

// SinkOrder is the fixed order piles are queried in on pointer up.
var SinkOrder = []PileID{
	PileFoundation1, PileFoundation2, PileFoundation3, PileFoundation4,
	PileTableau1, PileTableau2, PileTableau3, PileTableau4, PileTableau5, PileTableau6, PileTableau7,
}

// FoundationID returns the id of Foundation slot i (0-based).
func FoundationID(i int) PileID { return PileFoundation1 + PileID(i) }

// TableauID returns the id of Tableau slot i (0-based).
func TableauID(i int) PileID { return PileTableau1 + PileID(i) }

// IsFoundation reports whether id names a Foundation slot.
func (id PileID) IsFoundation() bool { return id >= PileFoundation1 && id <= PileFoundation4 }

// IsTableau reports whether id names a Tableau slot.
func (id PileID) IsTableau() bool { return id >= PileTableau1 && id <= PileTableau7 }

func (id PileID) String() string {
	switch {
	case id == PileStock:
		return "stock"
	case id == PileDiscard:
		return "discard"
	case id.IsFoundation():
		return fmt.Sprintf("foundation%d", id-PileFoundation1+1)
	case id.IsTableau():
		return fmt.Sprintf("tableau%d", id-PileTableau1+1)
	}
	return fmt.Sprintf("pile(%d)", uint8(id))
}

// Source is a pile cards can be lifted from.
type Source interface {
	ID() PileID
	// Liftable returns how many cards a pointer at (x, y) would pick up,
	// 0 if it does not hit a liftable run.
	Liftable(x, y int) int
	// Borrow returns a copy of the top count liftable cards, top-most last.
	Borrow(count int) []PhysicalCard
	// Take removes the top count liftable cards and returns them, top-most
	// last. Asking for more than are liftable returns fewer.
	Take(count int) []*PhysicalCard
	// Hide marks the top count cards as being held.
	Hide(count int)
	// Release shows the top count cards again, animating from at.
	Release(count int, at Point)
}

// Sink is a pile cards can be dropped onto.
type Sink interface {
	ID() PileID
	// WithinDropBounds hit-tests (x, y) against the current top of the pile.
	WithinDropBounds(x, y int) bool
	// Accepts reports whether the run, bottom card first, can land here.
	Accepts(cards []Card) bool
	// Accept places the run, animating from the drop point (x, y). It fails
	// with ErrPlacementRejected and changes nothing when Accepts is false.
	Accept(x, y int, cards []*PhysicalCard) error
}

// stack is the ordered card sequence every pile is built on. Index 0 is the
// bottom, the last index is the top.
type stack struct {
	cards []*PhysicalCard
}

func (s *stack) Len() int { return len(s.cards) }

// top returns the top card or nil when empty.
func (s *stack) top() *PhysicalCard {
	if len(s.cards) == 0 {
		return nil
	}
	return s.cards[len(s.cards)-1]
}

// topN returns the live top n cards, clamped to the stack size.
func (s *stack) topN(n int) []*PhysicalCard {
	if n <= 0 {
		return nil
	}
	if n > len(s.cards) {
		n = len(s.cards)
	}
	return s.cards[len(s.cards)-n:]
}

// pop removes and returns the top n cards, clamped to the stack size.
func (s *stack) pop(n int) []*PhysicalCard {
	run := s.topN(n)
	if len(run) == 0 {
		return nil
	}
	out := make([]*PhysicalCard, len(run))
	copy(out, run)
	s.cards = s.cards[:len(s.cards)-len(run)]
	return out
}

func (s *stack) push(cards ...*PhysicalCard) {
	s.cards = append(s.cards, cards...)
}

// drain empties the stack and returns every card, bottom first.
func (s *stack) drain() []*PhysicalCard {
	out := s.cards
	s.cards = nil
	return out
}

// snapshot copies the cards in run.
func snapshot(run []*PhysicalCard) []PhysicalCard {
	out := make([]PhysicalCard, len(run))
	for i, pc := range run {
		out[i] = *pc
	}
	return out
}

// Cards returns the identities held, bottom first.
func (s *stack) Cards() []Card {
	out := make([]Card, len(s.cards))
	for i, pc := range s.cards {
		out[i] = pc.card
	}
	return out
}

// Physical returns a copy of every card, bottom first.
func (s *stack) Physical() []PhysicalCard { return snapshot(s.cards) }

func hide(run []*PhysicalCard) {
	for _, pc := range run {
		pc.SetVisible(false)
	}
}

// release shows run again, animating each card from at offset by yStride
// per card so the run keeps its stacked shape.
func release(run []*PhysicalCard, at Point, yStride int) {
	for i, pc := range run {
		pc.SetFrom(Point{X: at.X, Y: at.Y + i*yStride})
		pc.SetVisible(true)
	}
}

func cardsOf(run []*PhysicalCard) []Card {
	out := make([]Card, len(run))
	for i, pc := range run {
		out[i] = pc.card
	}
	return out
}
