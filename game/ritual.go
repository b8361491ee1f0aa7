package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// RitualRequest carries the parameters of a ritual. CardRef is a hand instance id or a ritual template id.
type RitualRequest struct {
	CardRef        string `json:"cardRef"`
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
}

// RitualResult is returned by PerformRitual.
type RitualResult struct {
	PlayerID        string `json:"playerId"`
	Ritual          string `json:"ritual"`
	TargetPlayerID  string `json:"targetPlayerId"`
	UsedCard        bool   `json:"usedCard"`
	TalismansStolen int    `json:"talismansStolen,omitempty"`
	ProphecyLifted  bool   `json:"prophecyLifted,omitempty"`
	TargetTalismans int    `json:"targetTalismans"`
	CasterTalismans int    `json:"casterTalismans"`
}

type ritual struct {
	// defaultSelf targets the caster when no target is named.
	defaultSelf bool
	check       func(caster, target *Player) error
	apply       func(caster, target *Player, res *RitualResult)
}

var rituals = map[string]ritual{
	cards.Ritual157: {
		check: func(caster, target *Player) error {
			if target == caster {
				return fmt.Errorf("%w: ritual 157 must target another player", ErrPreconditionNotMet)
			}
			if caster.countAnywhere(cards.Apofis) < 1 || caster.countAnywhere(cards.MagoNegro) < 1 {
				return fmt.Errorf("%w: ritual 157 needs Apofis and Mago Negro", ErrPreconditionNotMet)
			}
			if n := caster.countAnywhere(cards.Zumbi); n < 6 {
				return fmt.Errorf("%w: ritual 157 needs 6 zombies, have %d", ErrPreconditionNotMet, n)
			}
			if n := caster.countDefense(cards.Elfo); n < 2 {
				return fmt.Errorf("%w: ritual 157 needs 2 elves in defense, have %d", ErrPreconditionNotMet, n)
			}
			if target.hasOnBoard(cards.Ninfa) {
				return fmt.Errorf("%w: %s is protected by a nymph", ErrPreconditionNotMet, target.Name)
			}
			return nil
		},
		apply: func(caster, target *Player, res *RitualResult) {
			res.TalismansStolen = len(target.Talismans)
			caster.Talismans = append(caster.Talismans, target.Talismans...)
			target.Talismans = nil
		},
	},
	cards.RitualAmor: {
		defaultSelf: true,
		check: func(caster, target *Player) error {
			if caster.countAnywhere(cards.Ninfa) < 1 || caster.countAnywhere(cards.VampiroTayler) < 1 {
				return fmt.Errorf("%w: ritual amor needs Ninfa and Vampiro Tayler", ErrPreconditionNotMet)
			}
			if target.ProphecyTarget == "" {
				return fmt.Errorf("%w: %s carries no prophecy", ErrPreconditionNotMet, target.Name)
			}
			return nil
		},
		apply: func(_, target *Player, res *RitualResult) {
			target.ProphecyTarget = ""
			target.ProphecyTurns = 0
			res.ProphecyLifted = true
		},
	},
}

// PerformRitual runs a ritual. The caster needs the ritual card in hand, which is
// consumed, unless a Mago Negro on their board performs it without one.
func (r *Room) PerformRitual(playerID string, req RitualRequest) (RitualResult, error) {
	p, err := r.canAct(playerID, ActionRitual)
	if err != nil {
		return RitualResult{}, err
	}

	card := p.handCard(req.CardRef)
	templateID := req.CardRef
	if card != nil {
		templateID = card.TemplateID
	}
	rt, ok := rituals[templateID]
	if !ok {
		if card != nil {
			return RitualResult{}, fmt.Errorf("%w: %s is not a ritual", ErrPreconditionNotMet, card.Name)
		}
		return RitualResult{}, fmt.Errorf("%w: unknown ritual %s", ErrCardNotFound, req.CardRef)
	}
	viaMage := p.hasOnBoard(cards.MagoNegro)
	if card == nil && !viaMage {
		return RitualResult{}, fmt.Errorf("%w: %s not in hand", ErrCardNotFound, templateID)
	}

	targetID := req.TargetPlayerID
	if targetID == "" {
		if !rt.defaultSelf {
			return RitualResult{}, fmt.Errorf("%w: ritual needs a target player", ErrPreconditionNotMet)
		}
		targetID = playerID
	}
	target, err := r.livingTarget(targetID)
	if err != nil {
		return RitualResult{}, err
	}
	if err := rt.check(p, target); err != nil {
		return RitualResult{}, err
	}

	res := RitualResult{PlayerID: playerID, Ritual: templateID, TargetPlayerID: targetID}
	if card != nil && !viaMage {
		p.takeFromHand(card.InstanceID)
		r.Graveyard.PushTop(card)
		res.UsedCard = true
	}
	rt.apply(p, target, &res)
	r.useAction(playerID, ActionRitual)
	res.TargetTalismans = len(target.Talismans)
	res.CasterTalismans = len(p.Talismans)
	return res, nil
}
