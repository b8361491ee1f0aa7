package spell

import (
	"fmt"

	"twilight-battle-server/cards"
	"twilight-battle-server/game"
)

const (
	// Bonus is the flat boost of Cortes and Duro de Matar.
	Bonus = 1024
	// HealAmount is restored by Cura.
	HealAmount = 1000
)

// Cuts raises the attack of one creature on the board.
type Cuts struct{}

func (Cuts) ID() string               { return cards.FeiticoCortes }
func (Cuts) Target() game.SpellTarget { return game.TargetCreature }

func (Cuts) Apply(ctx *game.SpellContext) string {
	ctx.TargetCard.Attack += Bonus
	return fmt.Sprintf("%s gains %d attack", ctx.TargetCard.Name, Bonus)
}

// HardToKill raises a player's life.
type HardToKill struct{}

func (HardToKill) ID() string               { return cards.FeiticoDuroMatar }
func (HardToKill) Target() game.SpellTarget { return game.TargetPlayer }

func (HardToKill) Apply(ctx *game.SpellContext) string {
	ctx.Target.Life += Bonus
	return fmt.Sprintf("%s gains %d life", ctx.Target.Name, Bonus)
}

// Heal restores a flat amount of life to the target, or to the caster when no target is named.
type Heal struct{}

func (Heal) ID() string               { return cards.FeiticoCura }
func (Heal) Target() game.SpellTarget { return game.TargetPlayer }

func (Heal) Apply(ctx *game.SpellContext) string {
	ctx.Target.Life += HealAmount
	return fmt.Sprintf("%s heals %d", ctx.Target.Name, HealAmount)
}
