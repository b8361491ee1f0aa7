package spell

import (
	"fmt"

	"twilight-battle-server/cards"
	"twilight-battle-server/game"
)

// SilenceTurns is how many of its own turns each player stays silenced.
const SilenceTurns = 2

// Silence puts every living player under the silence effect. Attacks made while
// silenced do not trigger traps.
type Silence struct {
	Turns int
}

func (Silence) ID() string               { return cards.FeiticoSilencio }
func (Silence) Target() game.SpellTarget { return game.TargetNone }

func (s Silence) Apply(ctx *game.SpellContext) string {
	living := ctx.Living()
	for _, p := range living {
		p.AddEffect(game.EffectSilence, s.Turns)
	}
	return fmt.Sprintf("%d players silenced for %d turns", len(living), s.Turns)
}
