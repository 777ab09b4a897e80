package domain

import "testing"

func fiveCardStock() (*Table, []Card) {
	cards := []Card{c(Ace, Spades), c(Two, Hearts), c(Three, Clubs), c(Four, Diamonds), c(Five, Spades)}
	return Arrange(DefaultLayout(), Setup{Stock: cards}), cards
}

func TestAdvanceCycle(t *testing.T) {
	table, cards := fiveCardStock()
	sd := table.StockDiscard()

	res := sd.Advance()
	if len(res.Dealt) != 3 || res.Recycled != 0 {
		t.Fatalf("first advance = %+v", res)
	}
	// Top of Stock is dealt first, so the third card dealt ends on top.
	want := []Card{cards[4], cards[3], cards[2]}
	for i, card := range want {
		if res.Dealt[i] != card {
			t.Errorf("dealt[%d] = %v, want %v", i, res.Dealt[i], card)
		}
	}
	if got := sd.Discard.Cards(); got[len(got)-1] != cards[2] {
		t.Errorf("Discard top = %v, want %v", got[len(got)-1], cards[2])
	}
	for _, pc := range sd.Discard.Physical() {
		if pc.FaceDown() {
			t.Errorf("%v dealt face-down", pc.Card())
		}
	}
	if sd.Stock.Len() != 2 {
		t.Fatalf("Stock should hold 2, holds %d", sd.Stock.Len())
	}

	res = sd.Advance()
	if len(res.Dealt) != 2 {
		t.Fatalf("second advance dealt %d", len(res.Dealt))
	}
	if sd.Stock.Len() != 0 || sd.Discard.Len() != 5 {
		t.Fatalf("stock=%d discard=%d after second advance", sd.Stock.Len(), sd.Discard.Len())
	}

	res = sd.Advance()
	if res.Recycled != 5 || len(res.Dealt) != 0 {
		t.Fatalf("recycle advance = %+v", res)
	}
	if sd.Discard.Len() != 0 {
		t.Fatalf("Discard should be empty, holds %d", sd.Discard.Len())
	}
	// Turning the Discard over restores the starting Stock order.
	got := sd.Stock.Cards()
	for i, card := range cards {
		if got[i] != card {
			t.Errorf("stock[%d] = %v, want %v", i, got[i], card)
		}
	}
	for _, pc := range sd.Stock.Physical() {
		if !pc.FaceDown() {
			t.Errorf("%v recycled face-up", pc.Card())
		}
	}
}

func TestAdvanceEmpty(t *testing.T) {
	table := Arrange(DefaultLayout(), Setup{})
	res := table.StockDiscard().Advance()
	if len(res.Dealt) != 0 || res.Recycled != 0 {
		t.Errorf("advance on empty piles = %+v", res)
	}
}

func TestAdvanceConservesCards(t *testing.T) {
	table, _ := fiveCardStock()
	sd := table.StockDiscard()
	for i := 0; i < 10; i++ {
		sd.Advance()
		if n := sd.Stock.Len() + sd.Discard.Len(); n != 5 {
			t.Fatalf("advance %d: %d cards between Stock and Discard", i, n)
		}
	}
}

func TestDiscardFan(t *testing.T) {
	table, _ := fiveCardStock()
	sd := table.StockDiscard()
	l := table.Layout()
	col := func(offset int) Point {
		a := sd.Discard.Anchor()
		return Point{X: a.X + offset*l.StackedXStride, Y: a.Y}
	}

	sd.Advance()
	sd.Advance()
	phys := sd.Discard.Physical()
	wantCols := []int{0, 0, 0, 1, 2}
	for i, off := range wantCols {
		if phys[i].Position() != col(off) {
			t.Errorf("card %d at %v, want %v", i, phys[i].Position(), col(off))
		}
	}

	sd.Discard.Take(1)
	phys = sd.Discard.Physical()
	wantCols = []int{0, 0, 1, 2}
	for i, off := range wantCols {
		if phys[i].Position() != col(off) {
			t.Errorf("after take, card %d at %v, want %v", i, phys[i].Position(), col(off))
		}
	}
}

func TestDiscardLiftable(t *testing.T) {
	table, cards := fiveCardStock()
	sd := table.StockDiscard()
	sd.Advance()

	top := sd.Discard.Physical()[2].Position()
	if got := sd.Discard.Liftable(top.X+5, top.Y+5); got != 1 {
		t.Errorf("Liftable on top card = %d, want 1", got)
	}
	a := sd.Discard.Anchor()
	if got := sd.Discard.Liftable(a.X+5, a.Y+5); got != 0 {
		t.Errorf("Liftable on buried card = %d, want 0", got)
	}
	borrowed := sd.Discard.Borrow(3)
	if len(borrowed) != 1 || borrowed[0].Card() != cards[2] {
		t.Errorf("Borrow(3) = %v", borrowed)
	}
}

func TestStockWithinBounds(t *testing.T) {
	table := Arrange(DefaultLayout(), Setup{})
	a := table.StockDiscard().Stock.Anchor()
	if !table.StockDiscard().Stock.WithinBounds(a.X+1, a.Y+1) {
		t.Error("empty Stock slot should still be clickable")
	}
	if table.StockDiscard().Stock.WithinBounds(a.X-1, a.Y) {
		t.Error("point left of the Stock hit it")
	}
}
