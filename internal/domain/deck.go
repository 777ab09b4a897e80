package domain

import (
	"math/rand"
)

// DeckSize is the number of distinct cards in a standard deck.
const DeckSize = 52

// NewDeck returns the 52-card deck ordered by suit (Spades, Clubs, Hearts,
// Diamonds) then rank.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SameDeck reports whether cards holds every card of the standard deck
// exactly once.
func SameDeck(cards []Card) bool {
	if len(cards) != DeckSize {
		return false
	}
	seen := make(map[Card]bool, DeckSize)
	for _, c := range cards {
		if c.Rank < Ace || c.Rank > King || int(c.Suit) >= len(Suits) || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}
