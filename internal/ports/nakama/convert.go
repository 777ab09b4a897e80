package nakama

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"klondike/internal/app"
	"klondike/internal/domain"
)

var errBadPointer = errors.New("pointer payload needs integer x and y")

func suitName(s domain.Suit) string {
	switch s {
	case domain.Spades:
		return "spades"
	case domain.Clubs:
		return "clubs"
	case domain.Hearts:
		return "hearts"
	case domain.Diamonds:
		return "diamonds"
	default:
		return ""
	}
}

// withIdentity adds rank and suit to a card object. Face-down cards carry no
// identity on the wire.
func withIdentity(m map[string]any, card domain.Card, faceDown bool) map[string]any {
	if !faceDown {
		m["rank"] = int(card.Rank)
		m["suit"] = suitName(card.Suit)
	}
	return m
}

func visualCardToMap(vc domain.VisualCard) map[string]any {
	return withIdentity(map[string]any{
		"key":       vc.Key.String(),
		"pile":      vc.Pile.String(),
		"face_down": vc.FaceDown,
		"visible":   vc.Visible,
		"held":      vc.Held,
		"x":         vc.Pos.X,
		"y":         vc.Pos.Y,
		"from_x":    vc.From.X,
		"from_y":    vc.From.Y,
	}, vc.Card, vc.FaceDown)
}

func moveToMap(mv app.CardMove) map[string]any {
	return withIdentity(map[string]any{
		"key":       mv.Key.String(),
		"pile":      mv.Pile.String(),
		"face_down": mv.FaceDown,
		"visible":   mv.Visible,
		"held":      mv.Held,
		"x":         mv.To.X,
		"y":         mv.To.Y,
		"from_x":    mv.From.X,
		"from_y":    mv.From.Y,
	}, mv.Card, mv.FaceDown)
}

// tableStateToStruct encodes the full visual state.
func tableStateToStruct(vs domain.VisualState, won bool) (*structpb.Struct, error) {
	cards := make([]any, len(vs.Cards))
	for i, vc := range vs.Cards {
		cards[i] = visualCardToMap(vc)
	}
	slots := make([]any, len(vs.EmptySlots))
	for i, s := range vs.EmptySlots {
		slots[i] = map[string]any{"pile": s.Pile.String(), "x": s.Pos.X, "y": s.Pos.Y}
	}
	return structpb.NewStruct(map[string]any{
		"cards":       cards,
		"empty_slots": slots,
		"won":         won,
	})
}

func cardsMovedToStruct(p app.CardsMovedPayload) (*structpb.Struct, error) {
	moves := make([]any, len(p.Moves))
	for i, mv := range p.Moves {
		moves[i] = moveToMap(mv)
	}
	return structpb.NewStruct(map[string]any{"moves": moves})
}

func errorToStruct(code int, message string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"code": code, "message": message})
}

// labelToStruct builds the match label used for match listing.
func labelToStruct(open bool, won bool) (*structpb.Struct, error) {
	openSeats := 0
	if open {
		openSeats = app.PlayersPerTable
	}
	return structpb.NewStruct(map[string]any{
		"game": "klondike",
		"open": openSeats,
		"won":  won,
	})
}

func marshalStruct(s *structpb.Struct) ([]byte, error) {
	return protojson.Marshal(s)
}

// decodePointer reads a {"x":int,"y":int} intent payload.
func decodePointer(data []byte) (domain.Point, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		return domain.Point{}, fmt.Errorf("decode pointer: %w", err)
	}
	x, err := intField(&s, "x")
	if err != nil {
		return domain.Point{}, err
	}
	y, err := intField(&s, "y")
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: x, Y: y}, nil
}

func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errBadPointer, name)
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", errBadPointer, name)
	}
	f := nv.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%v", errBadPointer, name, f)
	}
	return int(f), nil
}
