package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// ProphecyTurns is how many of the cursed player's turns pass before the marked creature dies.
const ProphecyTurns = 2

// AbilityResult is returned by the creature abilities.
type AbilityResult struct {
	PlayerID       string `json:"playerId"`
	Ability        Action `json:"ability"`
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
	Card           *Card  `json:"card,omitempty"`
	Turns          int    `json:"turns,omitempty"`
}

// opponentCreature resolves a creature on another living player's board.
func (r *Room) opponentCreature(caster *Player, targetID, creatureID string) (*Player, *Card, error) {
	target, err := r.livingTarget(targetID)
	if err != nil {
		return nil, nil, err
	}
	if target == caster {
		return nil, nil, fmt.Errorf("%w: must target another player", ErrPreconditionNotMet)
	}
	_, _, c := target.findOnBoard(creatureID)
	if c == nil {
		return nil, nil, fmt.Errorf("%w: creature %s not on %s's board", ErrCardNotFound, creatureID, target.Name)
	}
	return target, c, nil
}

// BlockMage lets a Rei Mago stop an opponent's Mago from channeling spells.
func (r *Room) BlockMage(playerID, targetID, creatureID string) (AbilityResult, error) {
	p, err := r.canAct(playerID, ActionMageBlock)
	if err != nil {
		return AbilityResult{}, err
	}
	if !p.hasOnBoard(cards.ReiMago) {
		return AbilityResult{}, fmt.Errorf("%w: needs a Rei Mago on the board", ErrPreconditionNotMet)
	}
	target, c, err := r.opponentCreature(p, targetID, creatureID)
	if err != nil {
		return AbilityResult{}, err
	}
	if c.TemplateID != cards.Mago {
		return AbilityResult{}, fmt.Errorf("%w: %s does not answer to the Rei Mago", ErrPreconditionNotMet, c.Name)
	}
	if c.Blocked {
		return AbilityResult{}, fmt.Errorf("%w: %s is already blocked", ErrPreconditionNotMet, c.Name)
	}

	c.Blocked = true
	r.useAction(playerID, ActionMageBlock)
	cp := c.snapshot()
	return AbilityResult{PlayerID: playerID, Ability: ActionMageBlock, TargetPlayerID: target.ID, Card: &cp}, nil
}

// Prophesy lets a Profeta mark an opponent's creature to die after two of its owner's turns.
func (r *Room) Prophesy(playerID, targetID, creatureID string) (AbilityResult, error) {
	p, err := r.canAct(playerID, ActionProphecy)
	if err != nil {
		return AbilityResult{}, err
	}
	if !p.hasOnBoard(cards.Profeta) {
		return AbilityResult{}, fmt.Errorf("%w: needs a Profeta on the board", ErrPreconditionNotMet)
	}
	target, c, err := r.opponentCreature(p, targetID, creatureID)
	if err != nil {
		return AbilityResult{}, err
	}
	if target.ProphecyTarget != "" {
		return AbilityResult{}, fmt.Errorf("%w: %s already carries a prophecy", ErrPreconditionNotMet, target.Name)
	}

	target.ProphecyTarget = c.InstanceID
	target.ProphecyTurns = ProphecyTurns
	r.useAction(playerID, ActionProphecy)
	cp := c.snapshot()
	return AbilityResult{PlayerID: playerID, Ability: ActionProphecy, TargetPlayerID: target.ID, Card: &cp, Turns: ProphecyTurns}, nil
}

// PerformOracle reveals an Oráculo from hand, which needs an elf standing in defense.
// The oracle goes back on top of the deck.
func (r *Room) PerformOracle(playerID, targetID string) (AbilityResult, error) {
	p, err := r.canAct(playerID, ActionOracle)
	if err != nil {
		return AbilityResult{}, err
	}
	if p.countDefense(cards.Elfo) < 1 {
		return AbilityResult{}, fmt.Errorf("%w: needs an elf in defense", ErrPreconditionNotMet)
	}
	oracle := p.handCard(cards.Oraculo)
	if oracle == nil {
		return AbilityResult{}, fmt.Errorf("%w: no oracle in hand", ErrCardNotFound)
	}
	if targetID != "" {
		target, err := r.livingTarget(targetID)
		if err != nil {
			return AbilityResult{}, err
		}
		if target != p && target.hasTalisman(cards.TalismaVerdade) {
			return AbilityResult{}, fmt.Errorf("%w: %s is immune to oracles", ErrPreconditionNotMet, target.Name)
		}
	}

	p.takeFromHand(oracle.InstanceID)
	r.Deck.PushTop(oracle)
	r.useAction(playerID, ActionOracle)
	cp := oracle.snapshot()
	return AbilityResult{PlayerID: playerID, Ability: ActionOracle, TargetPlayerID: targetID, Card: &cp}, nil
}
