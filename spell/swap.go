package spell

import (
	"fmt"

	"twilight-battle-server/cards"
	"twilight-battle-server/game"
)

// Swap exchanges the target's attack and defense rows. The defense row holds six slots and
// the attack row three, so only the first three defenders move up; the rest stay behind
// and the old attackers join them.
type Swap struct{}

func (Swap) ID() string               { return cards.FeiticoTroca }
func (Swap) Target() game.SpellTarget { return game.TargetPlayer }

func (Swap) Apply(ctx *game.SpellContext) string {
	p := ctx.Target
	var attackers, defenders []*game.Card
	for _, c := range p.Attack {
		if c != nil {
			attackers = append(attackers, c)
		}
	}
	for _, c := range p.Defense {
		if c != nil {
			defenders = append(defenders, c)
		}
	}

	up := min(len(defenders), game.AttackSlots)
	p.Attack = [game.AttackSlots]*game.Card{}
	copy(p.Attack[:], defenders[:up])
	p.Defense = [game.DefenseSlots]*game.Card{}
	copy(p.Defense[:], append(defenders[up:], attackers...))

	return fmt.Sprintf("%s swaps %d attackers with %d defenders", p.Name, len(attackers), up)
}
