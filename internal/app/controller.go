package app

import (
	"fmt"

	"github.com/google/uuid"

	"klondike/internal/domain"
)

// HeldCard is the run lifted between a pointer down and the matching
// pointer up. The cards stay in their origin pile, hidden, until the drop
// lands; Source names that pile.
type HeldCard struct {
	Cards  []domain.PhysicalCard
	Source domain.PileID
	Drag   domain.Point // current pointer position
	Origin domain.Point // where the bottom card of the run was lifted from
}

// Run returns the identities of the held cards, bottom first.
func (h HeldCard) Run() []domain.Card {
	out := make([]domain.Card, len(h.Cards))
	for i := range h.Cards {
		out[i] = h.Cards[i].Card()
	}
	return out
}

// Controller is the drag state machine. It is Idle when held is nil and
// Holding otherwise. Every intent runs to completion before the next one;
// the Nakama match loop is its only caller.
type Controller struct {
	table *domain.Table
	held  *HeldCard
	won   bool
}

// NewController takes ownership of table.
func NewController(table *domain.Table) *Controller {
	return &Controller{table: table, won: table.Won()}
}

func (c *Controller) Table() *domain.Table { return c.table }

// Holding reports whether a run is being dragged.
func (c *Controller) Holding() bool { return c.held != nil }

// Held returns a copy of the dragged run, if any.
func (c *Controller) Held() (HeldCard, bool) {
	if c.held == nil {
		return HeldCard{}, false
	}
	h := *c.held
	h.Cards = append([]domain.PhysicalCard(nil), c.held.Cards...)
	return h, true
}

// Won reports whether the game has been won.
func (c *Controller) Won() bool { return c.won }

// PointerDown advances the Stock when its slot is hit, otherwise lifts the
// first liftable run under the pointer. A second down while holding does
// nothing.
func (c *Controller) PointerDown(x, y int) ([]Event, error) {
	if c.won {
		return nil, ErrGameOver
	}
	if c.held != nil {
		return nil, nil
	}
	before := c.Visual()
	var events []Event

	sd := c.table.StockDiscard()
	if sd.Stock.WithinBounds(x, y) {
		res := sd.Advance()
		switch {
		case len(res.Dealt) > 0:
			events = append(events, Event{Kind: EventStockAdvanced, Payload: StockAdvancedPayload{Dealt: res.Dealt}})
		case res.Recycled > 0:
			events = append(events, Event{Kind: EventStockRecycled, Payload: StockRecycledPayload{Count: res.Recycled}})
		}
		return c.withMoves(events, before), nil
	}

	for _, id := range domain.SourceOrder {
		src, _ := c.table.Source(id)
		n := src.Liftable(x, y)
		if n == 0 {
			continue
		}
		run := src.Borrow(n)
		src.Hide(n)
		c.held = &HeldCard{
			Cards:  run,
			Source: id,
			Drag:   domain.Point{X: x, Y: y},
			Origin: run[0].Position(),
		}
		events = append(events, Event{
			Kind:    EventRunLifted,
			Payload: RunLiftedPayload{Source: id, Cards: c.held.Run()},
		})
		return c.withMoves(events, before), nil
	}
	return nil, nil
}

// PointerMove updates the drag position of the held run.
func (c *Controller) PointerMove(x, y int) error {
	if c.held == nil {
		return ErrNotHolding
	}
	c.held.Drag = domain.Point{X: x, Y: y}
	return nil
}

// PointerUp drops the held run on the first Sink under the pointer that
// accepts it, or returns it to its origin pile animating from the release
// point.
func (c *Controller) PointerUp(x, y int) ([]Event, error) {
	if c.held == nil {
		return nil, ErrNotHolding
	}
	c.held.Drag = domain.Point{X: x, Y: y}
	before := c.Visual()
	held := c.held
	c.held = nil

	src, _ := c.table.Source(held.Source)
	run := held.Run()
	var events []Event

	if sink := c.findSink(x, y, run); sink != nil {
		cards := src.Take(len(run))
		if len(cards) != len(run) {
			panic(fmt.Sprintf("controller: %v yielded %d of %d held cards", held.Source, len(cards), len(run)))
		}
		if err := sink.Accept(x, y, cards); err != nil {
			panic(fmt.Sprintf("controller: %v rejected an approved run: %v", sink.ID(), err))
		}
		events = append(events, Event{
			Kind:    EventRunPlaced,
			Payload: RunPlacedPayload{Source: held.Source, Sink: sink.ID(), Cards: run},
		})
	} else {
		at := c.table.Layout().Grab(x, y)
		src.Release(len(run), at)
		events = append(events, Event{
			Kind:    EventRunReturned,
			Payload: RunReturnedPayload{Source: held.Source, Cards: run, At: at},
		})
	}

	events = c.withMoves(events, before)
	if !c.won && c.table.Won() {
		c.won = true
		events = append(events, Event{Kind: EventGameWon, Payload: GameWonPayload{}})
	}
	return events, nil
}

func (c *Controller) findSink(x, y int, run []domain.Card) domain.Sink {
	for _, id := range domain.SinkOrder {
		sink, _ := c.table.Sink(id)
		if sink.WithinDropBounds(x, y) && sink.Accepts(run) {
			return sink
		}
	}
	return nil
}

// Visual is the table's visual state with the held run drawn at the drag
// position, on top of everything else.
func (c *Controller) Visual() domain.VisualState {
	vs := c.table.Visual()
	if c.held == nil {
		return vs
	}

	index := make(map[uuid.UUID]int, len(c.held.Cards))
	for i := range c.held.Cards {
		index[c.held.Cards[i].Key()] = i
	}
	l := c.table.Layout()
	base := l.Grab(c.held.Drag.X, c.held.Drag.Y)

	cards := make([]domain.VisualCard, 0, len(vs.Cards))
	lifted := make([]domain.VisualCard, len(c.held.Cards))
	for _, vc := range vs.Cards {
		i, ok := index[vc.Key]
		if !ok {
			cards = append(cards, vc)
			continue
		}
		vc.Held = true
		vc.Visible = true
		vc.From = vc.Pos
		vc.Pos = domain.Point{X: base.X, Y: base.Y + i*l.StackedYStride}
		lifted[i] = vc
	}
	vs.Cards = append(cards, lifted...)
	return vs
}

func (c *Controller) withMoves(events []Event, before domain.VisualState) []Event {
	moves := diff(before, c.Visual())
	if len(moves) == 0 {
		return events
	}
	return append(events, Event{Kind: EventCardsMoved, Payload: CardsMovedPayload{Moves: moves}})
}

// diff lists every card of after whose visual state differs from before.
func diff(before, after domain.VisualState) []CardMove {
	prev := make(map[uuid.UUID]domain.VisualCard, len(before.Cards))
	for _, vc := range before.Cards {
		prev[vc.Key] = vc
	}
	var moves []CardMove
	for _, vc := range after.Cards {
		if old, ok := prev[vc.Key]; ok && old == vc {
			continue
		}
		moves = append(moves, CardMove{
			Key:      vc.Key,
			Pile:     vc.Pile,
			Card:     vc.Card,
			FaceDown: vc.FaceDown,
			Visible:  vc.Visible,
			Held:     vc.Held,
			From:     vc.From,
			To:       vc.Pos,
		})
	}
	return moves
}
