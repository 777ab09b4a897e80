package nakama

const (
	// RpcCreateTable is the Nakama RPC id clients call to open a new solitaire table.
	RpcCreateTable = "create_table"

	// MatchNameKlondike is the authoritative match handler name registered with Nakama.
	MatchNameKlondike = "klondike_table"

	// TableConfigPath is where MatchInit looks for the table configuration.
	TableConfigPath = "data/table_config.json"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPointerDown int64 = 1
	OpPointerMove int64 = 2
	OpPointerUp   int64 = 3
	OpNewGame     int64 = 4

	// Server -> Client events
	OpTableState int64 = 100
	OpCardsMoved int64 = 101
	OpGameWon    int64 = 102
	OpError      int64 = 103
)

// Error codes carried by OpError.
const (
	ErrCodeBadPayload = 400
	ErrCodeGameOver   = 409
)
