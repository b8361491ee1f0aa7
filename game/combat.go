package game

import (
	"fmt"
	"sort"

	"twilight-battle-server/cards"
)

// warriorBonus is the attack added per Talismã Guerreiro in the attacker's pool.
const warriorBonus = 1000

// AttackResult is the outcome of one attack.
type AttackResult struct {
	AttackerID       string `json:"attacker"`
	DefenderID       string `json:"target"`
	TotalAttack      int    `json:"totalAttack"`
	DamageAbsorbed   int    `json:"damageAbsorbed"`
	DamageToPlayer   int    `json:"damageToPlayer"`
	Destroyed        []Card `json:"destroyedCards"`
	Damaged          []Card `json:"damagedCards"`
	ImmortalitySaved bool   `json:"immortalitySaved,omitempty"`
	PlayerKilled     bool   `json:"playerKilled"`
	TargetLife       int    `json:"targetLife"`
	Winner           string `json:"winner,omitempty"`
}

// attackPower sums attack-row creatures, the player weapon and warrior talismans.
func attackPower(p *Player) int {
	total := 0
	for _, c := range p.Attack {
		if c != nil {
			total += c.Attack
		}
	}
	if w := p.Weapon(); w != nil {
		total += w.Attack
	}
	for _, t := range p.Talismans {
		if t.TemplateID == cards.TalismaGuerreiro {
			total += warriorBonus
		}
	}
	return total
}

// Attack resolves an attack from attackerID on defenderID. Defenders absorb damage
// strongest first; whatever is left hits the defending player.
func (r *Room) Attack(attackerID, defenderID string) (AttackResult, error) {
	attacker, err := r.canAct(attackerID, ActionAttack)
	if err != nil {
		return AttackResult{}, err
	}
	if attackerID == defenderID {
		return AttackResult{}, fmt.Errorf("%w: cannot attack yourself", ErrPreconditionNotMet)
	}
	defender, ok := r.Players[defenderID]
	if !ok {
		return AttackResult{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, defenderID)
	}
	if defender.Dead {
		return AttackResult{}, fmt.Errorf("%w: %s", ErrPlayerDead, defenderID)
	}
	hasAttacker := false
	for _, c := range attacker.Attack {
		if c != nil {
			hasAttacker = true
			break
		}
	}
	if !hasAttacker {
		return AttackResult{}, fmt.Errorf("%w: no creature in attack slots", ErrPreconditionNotMet)
	}
	if !r.embargoLifted {
		return AttackResult{}, ErrEmbargoActive
	}

	power := attackPower(attacker)
	res := AttackResult{
		AttackerID:  attackerID,
		DefenderID:  defenderID,
		TotalAttack: power,
		Destroyed:   []Card{},
		Damaged:     []Card{},
	}

	type defenderSlot struct {
		idx  int
		card *Card
	}
	var order []defenderSlot
	for i, c := range defender.Defense {
		if c != nil {
			order = append(order, defenderSlot{i, c})
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].card.Life > order[j].card.Life
	})

	remaining := power
	for _, ds := range order {
		if remaining <= 0 {
			break
		}
		c := ds.card
		if remaining >= c.Life {
			remaining -= c.Life
			defender.Defense[ds.idx] = nil
			res.Destroyed = append(res.Destroyed, c.snapshot())
			r.bury(c)
			continue
		}
		c.Life -= remaining
		remaining = 0
		res.Damaged = append(res.Damaged, c.snapshot())
	}
	res.DamageAbsorbed = power - remaining

	if remaining > 0 {
		if i := talismanIndex(defender, cards.TalismaImortalidade); i >= 0 {
			t := defender.Talismans[i]
			defender.Talismans = append(defender.Talismans[:i], defender.Talismans[i+1:]...)
			r.Graveyard.PushTop(t)
			defender.Life = r.Rules.StartingLife
			res.ImmortalitySaved = true
		} else {
			defender.Life -= remaining
			res.DamageToPlayer = remaining
		}
	}

	r.useAction(attackerID, ActionAttack)

	if defender.Life <= 0 {
		r.kill(defender)
		res.PlayerKilled = true
	}
	res.TargetLife = defender.Life
	res.Winner = r.Winner
	return res, nil
}

func talismanIndex(p *Player, templateID string) int {
	for i, t := range p.Talismans {
		if t.TemplateID == templateID {
			return i
		}
	}
	return -1
}
