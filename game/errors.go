package game

import "errors"

// Rule violations. Every one of them is returned before any state is touched,
// so the room stays exactly as it was and only the originating client is told.
var (
	ErrNotYourTurn        = errors.New("not your turn")
	ErrActionAlreadyUsed  = errors.New("action already used this turn")
	ErrInvalidZoneOrSlot  = errors.New("invalid zone or slot")
	ErrSlotOccupied       = errors.New("slot occupied")
	ErrCardNotFound       = errors.New("card not found")
	ErrPreconditionNotMet = errors.New("precondition not met")
	ErrEquipmentIllegal   = errors.New("equipment not allowed")
	ErrDeckEmpty          = errors.New("deck is empty")
	ErrPlayerDead         = errors.New("player is dead")
	ErrEmbargoActive      = errors.New("attacks are blocked until every player has acted once")

	ErrNotStarted       = errors.New("game has not started")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrGameFinished     = errors.New("game finished")
	ErrRoomFull         = errors.New("room is full")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadySeated    = errors.New("player already seated")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrNotYourTurn, "not_your_turn"},
	{ErrActionAlreadyUsed, "action_already_used"},
	{ErrInvalidZoneOrSlot, "invalid_zone_or_slot"},
	{ErrSlotOccupied, "slot_occupied"},
	{ErrCardNotFound, "card_not_found"},
	{ErrPreconditionNotMet, "precondition_not_met"},
	{ErrEquipmentIllegal, "equipment_illegal"},
	{ErrDeckEmpty, "deck_empty"},
	{ErrPlayerDead, "player_dead"},
	{ErrEmbargoActive, "embargo_active"},
	{ErrNotStarted, "not_started"},
	{ErrAlreadyStarted, "already_started"},
	{ErrGameFinished, "game_finished"},
	{ErrRoomFull, "seat_full"},
	{ErrNotEnoughPlayers, "not_enough_players"},
	{ErrPlayerNotFound, "player_not_found"},
	{ErrAlreadySeated, "already_seated"},
}

// ErrorCode returns the stable wire code for a rules error, or "internal" for anything else.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
