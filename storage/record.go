package storage

import "time"

// End reasons stored with each match.
const (
	EndCompleted = "completed"
	EndForfeit   = "forfeit"
	EndAbandoned = "abandoned"
)

// MatchPlayer is one seat of a finished match. Place 1 is the winner; eliminated
// players are ranked in reverse elimination order.
type MatchPlayer struct {
	PlayerID string `json:"player_id"`
	UserID   string `json:"user_id,omitempty"`
	Name     string `json:"name"`
	Bot      bool   `json:"bot"`
	Place    int    `json:"place"`
}

// MatchRecord is a finished match as returned by the history API.
type MatchRecord struct {
	ID        string        `json:"id"`
	RoomCode  string        `json:"room_code"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Turns     int           `json:"turns"`
	WinnerID  string        `json:"winner_id,omitempty"`
	EndReason string        `json:"end_reason"`
	Players   []MatchPlayer `json:"players"`
	// YourPlace is the requesting user's place; set by ListByUserID.
	YourPlace int `json:"your_place,omitempty"`
}

// placeOf returns the place of userID in rec, or 0 if they did not take part.
func placeOf(rec MatchRecord, userID string) int {
	for _, p := range rec.Players {
		if p.UserID != "" && p.UserID == userID {
			return p.Place
		}
	}
	return 0
}
