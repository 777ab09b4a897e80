package domain

import "math/rand"

// Table owns every pile. Piles are reached only through their PileID, so no
// pile or caller keeps a second handle on another pile's cards.
type Table struct {
	layout       Layout
	stockDiscard StockDiscard
	foundations  [FoundationCount]*Foundation
	tableaus     [TableauCount]*Tableau
}

// TableauSetup is the starting content of one Tableau.
type TableauSetup struct {
	FaceDown []Card
	FaceUp   []Card
}

// Setup describes every pile's content, bottom card first.
type Setup struct {
	Stock       []Card
	Discard     []Card
	Foundations [FoundationCount][]Card
	Tableaus    [TableauCount]TableauSetup
}

func physical(cards []Card) []*PhysicalCard {
	out := make([]*PhysicalCard, len(cards))
	for i, c := range cards {
		out[i] = NewPhysicalCard(c, Point{})
	}
	return out
}

// Arrange builds a table holding exactly the cards in setup. Every card gets
// a fresh presentation key.
func Arrange(layout Layout, setup Setup) *Table {
	t := &Table{layout: layout}
	t.stockDiscard.Stock = NewStock(layout.StockAnchor(), layout, physical(setup.Stock))
	t.stockDiscard.Discard = NewDiscard(layout.DiscardAnchor(), layout)
	if len(setup.Discard) > 0 {
		d := t.stockDiscard.Discard
		cards := physical(setup.Discard)
		for _, pc := range cards {
			pc.Place(d.anchor)
		}
		d.addThree(cards)
		for _, pc := range cards {
			pc.Place(pc.pos)
		}
	}
	for i := range t.foundations {
		f := NewFoundation(FoundationID(i), layout.FoundationAnchor(i), layout)
		for _, pc := range physical(setup.Foundations[i]) {
			pc.Place(f.anchor)
			f.push(pc)
		}
		t.foundations[i] = f
	}
	for i := range t.tableaus {
		ts := NewTableau(TableauID(i), layout.TableauAnchor(i), layout)
		for _, pc := range physical(setup.Tableaus[i].FaceDown) {
			pc.Place(ts.slot(ts.Len()))
			pc.SetFaceDown(true)
			ts.push(pc)
		}
		for _, pc := range physical(setup.Tableaus[i].FaceUp) {
			pc.Place(ts.slot(ts.Len()))
			ts.push(pc)
		}
		t.tableaus[i] = ts
	}
	return t
}

// Deal shuffles a fresh deck and lays it out: Tableau i receives i cards
// (i = 1..7), all face-down but the last, and the rest go to the Stock.
func Deal(rng *rand.Rand, layout Layout) *Table {
	deck := ShuffleDeck(rng, NewDeck())
	var setup Setup
	next := 0
	for i := range setup.Tableaus {
		n := i + 1
		run := deck[next : next+n]
		setup.Tableaus[i] = TableauSetup{
			FaceDown: append([]Card(nil), run[:n-1]...),
			FaceUp:   []Card{run[n-1]},
		}
		next += n
	}
	setup.Stock = append([]Card(nil), deck[next:]...)
	return Arrange(layout, setup)
}

func (t *Table) Layout() Layout { return t.layout }

// StockDiscard exposes the Stock/Discard pair.
func (t *Table) StockDiscard() *StockDiscard { return &t.stockDiscard }

// Foundation returns Foundation slot i (0-based).
func (t *Table) Foundation(i int) *Foundation { return t.foundations[i] }

// Tableau returns Tableau slot i (0-based).
func (t *Table) Tableau(i int) *Tableau { return t.tableaus[i] }

// Source resolves id to a pile cards can be lifted from.
func (t *Table) Source(id PileID) (Source, bool) {
	switch {
	case id == PileDiscard:
		return t.stockDiscard.Discard, true
	case id.IsFoundation():
		return t.foundations[id-PileFoundation1], true
	case id.IsTableau():
		return t.tableaus[id-PileTableau1], true
	}
	return nil, false
}

// Sink resolves id to a pile cards can be dropped onto.
func (t *Table) Sink(id PileID) (Sink, bool) {
	switch {
	case id.IsFoundation():
		return t.foundations[id-PileFoundation1], true
	case id.IsTableau():
		return t.tableaus[id-PileTableau1], true
	}
	return nil, false
}

// Cards returns every card on the table.
func (t *Table) Cards() []Card {
	out := make([]Card, 0, DeckSize)
	out = append(out, t.stockDiscard.Stock.Cards()...)
	out = append(out, t.stockDiscard.Discard.Cards()...)
	for _, f := range t.foundations {
		out = append(out, f.Cards()...)
	}
	for _, ts := range t.tableaus {
		out = append(out, ts.Cards()...)
	}
	return out
}

// Won reports whether every Foundation is complete.
func (t *Table) Won() bool {
	for _, f := range t.foundations {
		if !f.Complete() {
			return false
		}
	}
	return true
}
