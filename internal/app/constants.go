package app

// PlayersPerTable is how many players may sit at one solitaire table.
const PlayersPerTable = 1
