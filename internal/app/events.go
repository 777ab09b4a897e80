package app

import (
	"github.com/google/uuid"

	"klondike/internal/domain"
)

// EventKind identifies emitted table events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventStockAdvanced EventKind = "stock_advanced"
	EventStockRecycled EventKind = "stock_recycled"
	EventRunLifted     EventKind = "run_lifted"
	EventRunPlaced     EventKind = "run_placed"
	EventRunReturned   EventKind = "run_returned"
	EventCardsMoved    EventKind = "cards_moved"
	EventGameWon       EventKind = "game_won"
)

// Event is an app event produced by one intent.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	Visual domain.VisualState
}

type StockAdvancedPayload struct {
	Dealt []domain.Card
}

type StockRecycledPayload struct {
	Count int
}

type RunLiftedPayload struct {
	Source domain.PileID
	Cards  []domain.Card
}

type RunPlacedPayload struct {
	Source domain.PileID
	Sink   domain.PileID
	Cards  []domain.Card
}

// RunReturnedPayload reports a snap-back; At is where the run was released.
type RunReturnedPayload struct {
	Source domain.PileID
	Cards  []domain.Card
	At     domain.Point
}

// CardMove is one card whose presentation changed during an intent.
// Presentation animates it from From to To.
type CardMove struct {
	Key      uuid.UUID
	Pile     domain.PileID
	Card     domain.Card
	FaceDown bool
	Visible  bool
	Held     bool
	From     domain.Point
	To       domain.Point
}

type CardsMovedPayload struct {
	Moves []CardMove
}

type GameWonPayload struct{}
