package spell

import (
	"fmt"

	"twilight-battle-server/cards"
	"twilight-battle-server/game"
)

// Communist sends every living player's hand back to the deck and reshuffles it.
type Communist struct{}

func (Communist) ID() string               { return cards.FeiticoComunista }
func (Communist) Target() game.SpellTarget { return game.TargetNone }

func (Communist) Apply(ctx *game.SpellContext) string {
	n := 0
	for _, p := range ctx.Living() {
		n += ctx.ReturnHandToDeck(p)
	}
	ctx.ShuffleDeck()
	return fmt.Sprintf("%d cards returned to the deck", n)
}

// Capitalist makes the caster and the target exchange hands.
type Capitalist struct{}

func (Capitalist) ID() string               { return cards.FeiticoCapitalista }
func (Capitalist) Target() game.SpellTarget { return game.TargetOpponent }

func (Capitalist) Apply(ctx *game.SpellContext) string {
	ctx.Caster.Hand, ctx.Target.Hand = ctx.Target.Hand, ctx.Caster.Hand
	return fmt.Sprintf("%s and %s exchange hands", ctx.Caster.Name, ctx.Target.Name)
}
