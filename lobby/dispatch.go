package lobby

import (
	"errors"
	"fmt"

	"twilight-battle-server/game"
	"twilight-battle-server/roomerrors"
)

// apply routes one player action to the room. The returned result is what gets
// broadcast in action_success.
func apply(r *game.Room, playerID, action string, p ActionParams) (any, error) {
	switch canonical(action) {
	case ActDraw:
		return r.Draw(playerID)
	case ActPlay:
		return r.Play(playerID, p.CardID, p.To)
	case ActMove:
		return r.Move(playerID, p.From, p.To)
	case ActSwap:
		return r.Swap(playerID, p.From, p.To)
	case ActFlip:
		return r.Flip(playerID, p.From)
	case ActAttack:
		return r.Attack(playerID, p.TargetID)
	case ActEquip:
		return r.Equip(playerID, p.CardID, p.CreatureID)
	case ActSpell:
		return r.CastSpell(playerID, game.SpellRequest{
			CardRef:        p.CardID,
			TargetPlayerID: p.TargetID,
			TargetCardID:   p.TargetCardID,
		})
	case ActRitual:
		return r.PerformRitual(playerID, game.RitualRequest{CardRef: p.CardID, TargetPlayerID: p.TargetID})
	case ActRevive:
		return r.Revive(playerID, p.CardID)
	case ActMageBlock:
		return r.BlockMage(playerID, p.TargetID, p.TargetCardID)
	case ActProphecy:
		return r.Prophesy(playerID, p.TargetID, p.TargetCardID)
	case ActOracle:
		return r.PerformOracle(playerID, p.TargetID)
	case ActEndTurn:
		return r.EndTurn(playerID)
	}
	return nil, fmt.Errorf("%w: unknown action %q", roomerrors.ErrUnknownAction, action)
}

// canonical resolves an action alias to the name broadcast to clients.
func canonical(action string) string {
	if alias, ok := actionAliases[action]; ok {
		return alias
	}
	return action
}

// ErrorCode maps any error the table can produce to a stable wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, roomerrors.ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, roomerrors.ErrNoBotProfiles):
		return "no_bots"
	case errors.Is(err, roomerrors.ErrRoomClosed):
		return "room_closed"
	case errors.Is(err, roomerrors.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, roomerrors.ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, roomerrors.ErrAlreadyInRoom):
		return "already_in_room"
	}
	return game.ErrorCode(err)
}
