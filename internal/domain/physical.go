package domain

import "github.com/google/uuid"

// PhysicalCard is one Card placed in table space. It is owned by exactly one
// pile at a time; ownership moves with Take and Accept.
type PhysicalCard struct {
	key      uuid.UUID
	card     Card
	pos      Point
	from     Point // where the last relocation started, for animation
	faceDown bool
	visible  bool
}

// NewPhysicalCard places card face-up and visible at pos.
func NewPhysicalCard(card Card, pos Point) *PhysicalCard {
	return &PhysicalCard{
		key:     uuid.New(),
		card:    card,
		pos:     pos,
		from:    pos,
		visible: true,
	}
}

// Key is the stable presentation key of this card instance.
func (pc *PhysicalCard) Key() uuid.UUID { return pc.key }

func (pc *PhysicalCard) Card() Card { return pc.card }

func (pc *PhysicalCard) Position() Point { return pc.pos }

// From is the position the card last moved from.
func (pc *PhysicalCard) From() Point { return pc.from }

func (pc *PhysicalCard) FaceDown() bool { return pc.faceDown }

func (pc *PhysicalCard) Visible() bool { return pc.visible }

func (pc *PhysicalCard) SetFaceDown(faceDown bool) { pc.faceDown = faceDown }

func (pc *PhysicalCard) SetVisible(visible bool) { pc.visible = visible }

// SetFrom overrides the animation start point without moving the card.
func (pc *PhysicalCard) SetFrom(p Point) { pc.from = p }

// Place puts the card at p with no movement to animate.
func (pc *PhysicalCard) Place(p Point) {
	pc.pos = p
	pc.from = p
}

// MoveTo relocates the card, remembering where it came from.
func (pc *PhysicalCard) MoveTo(p Point) {
	pc.from = pc.pos
	pc.pos = p
}

// WithinBounds hit-tests the card at its current position.
func (pc *PhysicalCard) WithinBounds(l Layout, x, y int) bool {
	return l.CardBounds(pc.pos).Contains(x, y)
}
