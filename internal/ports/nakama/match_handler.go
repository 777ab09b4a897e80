package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/types/known/structpb"

	"klondike/internal/app"
	"klondike/internal/config"
	"klondike/internal/domain"
)

// MatchState holds the authoritative runtime state for one solitaire table.
type MatchState struct {
	UserID   string           // seated player, empty when the table is free
	Presence runtime.Presence // presence of the seated player
	App      *app.Service     // deals new games
	Game     *app.Controller  // current table
	Tick     int64
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// tableConfig resolves the table configuration: file, then runtime env
// overrides, falling back to defaults when either is unusable.
func tableConfig(ctx context.Context, logger runtime.Logger) config.TableConfig {
	if err := config.LoadTableConfig(TableConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load table config: %v", err)
	}
	cfg := config.Default()
	if loaded := config.GetTableConfig(); loaded != nil {
		cfg = *loaded
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if env == nil {
		return cfg
	}
	overridden := cfg
	if err := config.ApplyEnv(&overridden, env); err != nil {
		logger.Warn("MatchInit: Ignoring env overrides: %v", err)
		return cfg
	}
	return overridden
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing table.")

	cfg := tableConfig(ctx, logger)
	seed := cfg.DealSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state := &MatchState{
		App: app.NewService(rand.New(rand.NewSource(seed)), cfg.Layout()),
	}
	state.Game, _ = state.App.StartGame()
	logger.Info("MatchInit: Table dealt (seed=%d).", seed)

	label, err := mh.label(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, cfg.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.UserID != "" && matchState.UserID != presence.GetUserId() {
		logger.Warn("MatchJoinAttempt: User %s rejected, table seated by %s.", presence.GetUserId(), matchState.UserID)
		return state, false, "Table occupied"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.UserID != "" && matchState.UserID != p.GetUserId() {
			logger.Warn("MatchJoin: User %s joined but the table is seated by %s.", p.GetUserId(), matchState.UserID)
			continue
		}
		matchState.UserID = p.GetUserId()
		matchState.Presence = p
		logger.Debug("MatchJoin: User %s seated.", p.GetUserId())
		mh.sendTableState(matchState, dispatcher, logger, []runtime.Presence{p})
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() != matchState.UserID {
			continue
		}
		// A stale session of the seated user leaving does not free the seat.
		if matchState.Presence != nil && matchState.Presence.GetSessionId() != p.GetSessionId() {
			continue
		}
		matchState.UserID = ""
		matchState.Presence = nil
		logger.Debug("MatchLeave: User %s left, table freed.", p.GetUserId())
	}

	if matchState.UserID == "" {
		logger.Info("MatchLeave: Terminating empty table.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Intents are applied one at a time in receive order.
	for _, msg := range messages {
		if msg.GetUserId() != matchState.UserID {
			logger.Warn("MatchLoop: Ignoring opcode %d from unseated user %s", msg.GetOpCode(), msg.GetUserId())
			continue
		}
		switch msg.GetOpCode() {
		case OpPointerDown:
			mh.handlePointerDown(matchState, dispatcher, logger, msg)
		case OpPointerMove:
			mh.handlePointerMove(matchState, dispatcher, logger, msg)
		case OpPointerUp:
			mh.handlePointerUp(matchState, dispatcher, logger, msg)
		case OpNewGame:
			mh.handleNewGame(matchState, dispatcher, logger)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) decodeIntent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, name string, msg runtime.MatchData) (domain.Point, bool) {
	p, err := decodePointer(msg.GetData())
	if err != nil {
		logger.Warn("%s: Invalid payload from %s: %v", name, msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, ErrCodeBadPayload, err.Error())
		return domain.Point{}, false
	}
	return p, true
}

func (mh *matchHandler) handlePointerDown(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	p, ok := mh.decodeIntent(state, dispatcher, logger, "PointerDown", msg)
	if !ok {
		return
	}
	events, err := state.Game.PointerDown(p.X, p.Y)
	if errors.Is(err, app.ErrGameOver) {
		logger.Debug("PointerDown: Ignored at (%d,%d), game already won.", p.X, p.Y)
		mh.sendError(state, dispatcher, logger, ErrCodeGameOver, err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePointerMove(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	p, ok := mh.decodeIntent(state, dispatcher, logger, "PointerMove", msg)
	if !ok {
		return
	}
	if err := state.Game.PointerMove(p.X, p.Y); err != nil {
		logger.Debug("PointerMove: %v", err)
	}
}

func (mh *matchHandler) handlePointerUp(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	p, ok := mh.decodeIntent(state, dispatcher, logger, "PointerUp", msg)
	if !ok {
		return
	}
	events, err := state.Game.PointerUp(p.X, p.Y)
	if err != nil {
		logger.Debug("PointerUp: %v", err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleNewGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game, events := state.App.StartGame()
	state.Game = game
	logger.Info("NewGame: Table redealt for %s.", state.UserID)
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
}

// dispatchEvents sends the events that have a wire form and traces the rest.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventGameStarted:
			mh.sendTableState(state, dispatcher, logger, nil)
		case app.EventCardsMoved:
			p := ev.Payload.(app.CardsMovedPayload)
			payload, err := cardsMovedToStruct(p)
			if err != nil {
				logger.Error("Failed to encode event %v: %v", ev.Kind, err)
				continue
			}
			mh.broadcast(dispatcher, logger, OpCardsMoved, payload, nil)
		case app.EventGameWon:
			logger.Info("Event: game_won (user=%s, tick=%d)", state.UserID, state.Tick)
			payload, err := tableStateToStruct(state.Game.Visual(), true)
			if err != nil {
				logger.Error("Failed to encode event %v: %v", ev.Kind, err)
				continue
			}
			mh.broadcast(dispatcher, logger, OpGameWon, payload, nil)
			mh.updateLabel(state, dispatcher, logger)
		default:
			logger.Debug("Event: %s %+v", ev.Kind, ev.Payload)
		}
	}
}

// sendTableState sends the full table to presences, or to everyone when nil.
func (mh *matchHandler) sendTableState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presences []runtime.Presence) {
	payload, err := tableStateToStruct(state.Game.Visual(), state.Game.Won())
	if err != nil {
		logger.Error("Failed to encode table state: %v", err)
		return
	}
	mh.broadcast(dispatcher, logger, OpTableState, payload, presences)
}

// sendError sends an error event to the seated player.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	if state.Presence == nil {
		logger.Warn("Cannot send error to %s: Presence not found", state.UserID)
		return
	}
	payload, err := errorToStruct(code, message)
	if err != nil {
		logger.Error("Failed to encode error event: %v", err)
		return
	}
	mh.broadcast(dispatcher, logger, OpError, payload, []runtime.Presence{state.Presence})
}

func (mh *matchHandler) broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload *structpb.Struct, presences []runtime.Presence) {
	bytes, err := marshalStruct(payload)
	if err != nil {
		logger.Error("Failed to marshal opcode %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, presences, nil, true); err != nil {
		logger.Error("Failed to broadcast opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) label(state *MatchState) (string, error) {
	won := state.Game != nil && state.Game.Won()
	label, err := labelToStruct(state.UserID == "", won)
	if err != nil {
		return "", err
	}
	bytes, err := marshalStruct(label)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := mh.label(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Table terminated with %d grace seconds", graceSeconds)
	return state
}

// MatchSignal answers "state" with the encoded table; other signals are ignored.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok || data != "state" {
		return state, ""
	}
	payload, err := tableStateToStruct(matchState.Game.Visual(), matchState.Game.Won())
	if err != nil {
		logger.Error("MatchSignal: Failed to encode table state: %v", err)
		return state, ""
	}
	bytes, err := marshalStruct(payload)
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal table state: %v", err)
		return state, ""
	}
	return state, string(bytes)
}
