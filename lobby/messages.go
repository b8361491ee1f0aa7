package lobby

import "twilight-battle-server/storage"

// RoomInfo is the public summary of a table shown in the room list.
type RoomInfo struct {
	ID         string `json:"id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
	Started    bool   `json:"started"`
	Status     string `json:"status"`
}

// RosterEntry is one seat in player_joined announcements.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bot  bool   `json:"bot,omitempty"`
}

// JoinedMsg confirms a seat to the joining client.
type JoinedMsg struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// PlayerJoinedMsg is broadcast when a seat is taken.
type PlayerJoinedMsg struct {
	Type       string        `json:"type"`
	PlayerID   string        `json:"playerId"`
	PlayerName string        `json:"playerName"`
	Players    []RosterEntry `json:"players"`
}

// PlayerLeftMsg is broadcast when a seat is given up.
type PlayerLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Forfeit  bool   `json:"forfeit"`
}

// ActionSuccessMsg carries the result of an accepted action to every seat.
type ActionSuccessMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	Result   any    `json:"result"`
}

// ActionErrorMsg goes only to the player whose action was rejected.
type ActionErrorMsg struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GameOverMsg announces the end of a match.
type GameOverMsg struct {
	Type       string                `json:"type"`
	Winner     string                `json:"winner,omitempty"`
	WinnerName string                `json:"winnerName,omitempty"`
	Reason     string                `json:"reason"`
	Players    []storage.MatchPlayer `json:"players"`
}
