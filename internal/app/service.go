package app

import (
	"errors"
	"math/rand"
	"time"

	"klondike/internal/domain"
)

// Service deals solitaire tables.
type Service struct {
	rng    *rand.Rand
	layout domain.Layout
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, layout domain.Layout) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, layout: layout}
}

var (
	ErrNotHolding = errors.New("no run is being held")
	ErrGameOver   = errors.New("game already won")
)

// StartGame shuffles and deals a fresh table. Every card gets a new key, so
// presentation treats the deal as a full redraw.
func (s *Service) StartGame() (*Controller, []Event) {
	table := domain.Deal(s.rng, s.layout)
	ctrl := NewController(table)
	return ctrl, []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Visual: ctrl.Visual()},
	}}
}
