package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"klondike/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode    int64
	data      []byte
	presences []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	sent      []sentMessage
	lastLabel string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.sent = append(md.sent, sentMessage{opCode: opCode, data: append([]byte(nil), data...), presences: presences})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.lastLabel = label
	return nil
}

func (md *mockDispatcher) last(t *testing.T) sentMessage {
	t.Helper()
	if len(md.sent) == 0 {
		t.Fatal("expected a message to be sent")
	}
	return md.sent[len(md.sent)-1]
}

// mockPresence overrides the presence fields the handler reads.
type mockPresence struct {
	runtime.Presence
	userID    string
	sessionID string
}

func (p mockPresence) GetUserId() string    { return p.userID }
func (p mockPresence) GetSessionId() string { return p.sessionID }

type mockMatchData struct {
	runtime.MatchData
	userID string
	opCode int64
	data   []byte
}

func (m mockMatchData) GetUserId() string { return m.userID }
func (m mockMatchData) GetOpCode() int64  { return m.opCode }
func (m mockMatchData) GetData() []byte   { return m.data }

func testContext() context.Context {
	env := map[string]string{"KLONDIKE_DEAL_SEED": "11"}
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, env)
}

// seatedMatch initializes a table and seats user-1.
func seatedMatch(t *testing.T) (*matchHandler, *MatchState, *mockDispatcher) {
	t.Helper()
	handler := &matchHandler{}
	ctx := testContext()
	raw, _, _ := handler.MatchInit(ctx, noopLogger{}, nil, nil, nil)
	state, ok := raw.(*MatchState)
	if !ok {
		t.Fatalf("MatchInit returned %T", raw)
	}
	dispatcher := &mockDispatcher{}
	handler.MatchJoin(ctx, noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{
		mockPresence{userID: "user-1", sessionID: "s1"},
	})
	return handler, state, dispatcher
}

func decodeObject(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("payload is not a JSON object: %v (%s)", err, data)
	}
	return out
}

func TestMatchInit(t *testing.T) {
	handler := &matchHandler{}
	raw, tickRate, label := handler.MatchInit(testContext(), noopLogger{}, nil, nil, nil)

	state, ok := raw.(*MatchState)
	if !ok || state.Game == nil {
		t.Fatalf("MatchInit did not deal a table: %T", raw)
	}
	if tickRate != 10 {
		t.Errorf("tickRate = %d, want 10", tickRate)
	}
	if !domain.SameDeck(state.Game.Table().Cards()) {
		t.Error("dealt table is not a complete deck")
	}

	got := decodeObject(t, []byte(label))
	if got["game"] != "klondike" || got["open"] != float64(1) || got["won"] != false {
		t.Errorf("label = %s", label)
	}
}

func TestMatchInitDealSeed(t *testing.T) {
	handler := &matchHandler{}
	a, _, _ := handler.MatchInit(testContext(), noopLogger{}, nil, nil, nil)
	b, _, _ := handler.MatchInit(testContext(), noopLogger{}, nil, nil, nil)
	ca := a.(*MatchState).Game.Table().Cards()
	cb := b.(*MatchState).Game.Table().Cards()
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("same deal seed produced different tables at %d", i)
		}
	}
}

func TestMatchJoinAttempt(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)

	tests := []struct {
		name   string
		userID string
		want   bool
	}{
		{name: "SeatedUserRejoins", userID: "user-1", want: true},
		{name: "SecondPlayer", userID: "user-2", want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, ok, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, mockPresence{userID: test.userID}, nil)
			if ok != test.want {
				t.Fatalf("MatchJoinAttempt(%s) = %t, want %t", test.userID, ok, test.want)
			}
		})
	}
}

func TestMatchJoinSendsTableState(t *testing.T) {
	_, state, dispatcher := seatedMatch(t)

	if state.UserID != "user-1" {
		t.Fatalf("seated user = %q", state.UserID)
	}
	msg := dispatcher.last(t)
	if msg.opCode != OpTableState {
		t.Fatalf("opcode = %d, want %d", msg.opCode, OpTableState)
	}
	if len(msg.presences) != 1 || msg.presences[0].GetUserId() != "user-1" {
		t.Fatalf("table state should go to the joining player only")
	}

	body := decodeObject(t, msg.data)
	cards, _ := body["cards"].([]any)
	if len(cards) != domain.DeckSize {
		t.Fatalf("table state holds %d cards", len(cards))
	}
	for _, raw := range cards {
		c := raw.(map[string]any)
		_, hasRank := c["rank"]
		if c["face_down"] == true && hasRank {
			t.Fatalf("face-down card leaked its identity: %v", c)
		}
		if c["face_down"] == false && !hasRank {
			t.Fatalf("face-up card missing identity: %v", c)
		}
	}
	if decodeObject(t, []byte(dispatcher.lastLabel))["open"] != float64(0) {
		t.Errorf("label should show no open seat: %s", dispatcher.lastLabel)
	}
}

func TestMatchLoopPointerDownOnStock(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)
	before := state.Game.Table().StockDiscard().Stock.Len()

	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{userID: "user-1", opCode: OpPointerDown, data: []byte(`{"x":20,"y":20}`)},
	})

	if got := state.Game.Table().StockDiscard().Stock.Len(); got != before-3 {
		t.Fatalf("Stock holds %d, want %d", got, before-3)
	}
	msg := dispatcher.last(t)
	if msg.opCode != OpCardsMoved {
		t.Fatalf("opcode = %d, want %d", msg.opCode, OpCardsMoved)
	}
	moves, _ := decodeObject(t, msg.data)["moves"].([]any)
	if len(moves) != 3 {
		t.Fatalf("moves = %d, want 3", len(moves))
	}
	if state.Tick != 3 {
		t.Errorf("tick = %d, want 3", state.Tick)
	}
}

func TestMatchLoopRejectsBadPayload(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)
	sent := len(dispatcher.sent)

	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{userID: "user-1", opCode: OpPointerDown, data: []byte(`{"x":"left"}`)},
	})

	if len(dispatcher.sent) != sent+1 {
		t.Fatalf("expected one error message, got %d", len(dispatcher.sent)-sent)
	}
	msg := dispatcher.last(t)
	if msg.opCode != OpError {
		t.Fatalf("opcode = %d, want %d", msg.opCode, OpError)
	}
	if decodeObject(t, msg.data)["code"] != float64(ErrCodeBadPayload) {
		t.Errorf("error payload = %s", msg.data)
	}
}

func TestMatchLoopIgnoresUnseatedUser(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)
	sent := len(dispatcher.sent)
	before := state.Game.Table().StockDiscard().Stock.Len()

	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{userID: "user-2", opCode: OpPointerDown, data: []byte(`{"x":20,"y":20}`)},
	})

	if len(dispatcher.sent) != sent {
		t.Error("unseated user triggered a message")
	}
	if state.Game.Table().StockDiscard().Stock.Len() != before {
		t.Error("unseated user advanced the Stock")
	}
}

func TestMatchLoopIdlePointerUp(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)
	sent := len(dispatcher.sent)

	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{userID: "user-1", opCode: OpPointerMove, data: []byte(`{"x":5,"y":5}`)},
		mockMatchData{userID: "user-1", opCode: OpPointerUp, data: []byte(`{"x":5,"y":5}`)},
	})

	if len(dispatcher.sent) != sent {
		t.Error("idle move and up should not send anything")
	}
}

func TestMatchLoopNewGame(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)
	old := state.Game

	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{userID: "user-1", opCode: OpNewGame},
	})

	if state.Game == old {
		t.Fatal("new game did not replace the table")
	}
	msg := dispatcher.last(t)
	if msg.opCode != OpTableState || msg.presences != nil {
		t.Fatalf("expected table state broadcast, got opcode %d", msg.opCode)
	}
}

func TestMatchLeave(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)

	// A stale session of the same user does not free the table.
	got := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 4, state, []runtime.Presence{
		mockPresence{userID: "user-1", sessionID: "old"},
	})
	if got == nil {
		t.Fatal("stale session leave terminated the match")
	}

	got = handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.Presence{
		mockPresence{userID: "user-1", sessionID: "s1"},
	})
	if got != nil {
		t.Fatal("match should terminate once the table is empty")
	}
}

func TestMatchSignalState(t *testing.T) {
	handler, state, dispatcher := seatedMatch(t)

	_, reply := handler.MatchSignal(context.Background(), noopLogger{}, nil, nil, dispatcher, 6, state, "state")
	cards, _ := decodeObject(t, []byte(reply))["cards"].([]any)
	if len(cards) != domain.DeckSize {
		t.Errorf("signal reply holds %d cards", len(cards))
	}

	_, reply = handler.MatchSignal(context.Background(), noopLogger{}, nil, nil, dispatcher, 6, state, "other")
	if reply != "" {
		t.Errorf("unknown signal answered %q", reply)
	}
}
