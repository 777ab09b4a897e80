package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateTableResponse is the payload returned to clients opening a table.
type CreateTableResponse struct {
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcCreateTable, RpcCreateTableHandler)
}

// RpcCreateTableHandler creates a fresh single-player table. The caller
// joins it with the returned match id.
//
// Payload: unused.
// Returns: JSON {"match_id": "..."}.
func RpcCreateTableHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	matchId, err := nk.MatchCreate(ctx, MatchNameKlondike, map[string]interface{}{})
	if err != nil {
		logger.Error("RpcCreateTable [User:%s]: Failed to create match: %v", userId, err)
		return "", err
	}

	b, err := json.Marshal(CreateTableResponse{MatchID: matchId})
	if err != nil {
		return "", err
	}
	logger.Info("RpcCreateTable [User:%s]: Created table %s", userId, matchId)
	return string(b), nil
}
