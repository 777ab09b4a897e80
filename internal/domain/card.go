package domain

import "fmt"

// Suit is one of the four French suits.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in deck order.
var Suits = [...]Suit{Spades, Clubs, Hearts, Diamonds}

// Color is the colour a suit is printed in.
type Color uint8

const (
	Black Color = iota
	Red
)

// Color derives the printed colour of the suit.
func (s Suit) Color() Color {
	switch s {
	case Diamonds, Hearts:
		return Red
	default:
		return Black
	}
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	}
	return "?"
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Rank is a card value, totally ordered Ace..King.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Successor returns the next rank up. King has none.
func (r Rank) Successor() (Rank, bool) {
	if r < Ace || r >= King {
		return 0, false
	}
	return r + 1, true
}

// Predecessor returns the next rank down. Ace has none.
func (r Rank) Predecessor() (Rank, bool) {
	if r <= Ace || r > King {
		return 0, false
	}
	return r - 1, true
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r > Ace && r < Jack {
		return fmt.Sprintf("%d", r)
	}
	return "?"
}

// Card is an immutable (rank, suit) pair.
type Card struct {
	Rank Rank
	Suit Suit
}

// Color is the colour of the card's suit.
func (c Card) Color() Color { return c.Suit.Color() }

func (c Card) String() string { return c.Rank.String() + c.Suit.String() }
