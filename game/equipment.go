package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// Per-creature capacity.
const (
	MaxWeaponsPerCreature = 1
	MaxArmorPerCreature   = 4
)

// EquipResult is returned by Equip.
type EquipResult struct {
	PlayerID string `json:"playerId"`
	Item     Card   `json:"item"`
	Creature Card   `json:"creature"`
}

// weaponAllowed reports whether weapon template w may be wielded by creature template c.
// Armor has no restriction.
func weaponAllowed(w, c string) bool {
	switch w {
	case cards.BladeVampires:
		return cards.IsVampire(c)
	case cards.BladeDragons:
		return c == cards.Elfo || cards.IsVampire(c)
	case cards.LaminaAlmas:
		return c == cards.Elfo || cards.IsMageClass(c) || cards.IsVampire(c)
	}
	return false
}

// Equip attaches an item from hand to one of the player's creatures. The bonus is folded
// into the creature for the rest of its time on the board.
func (r *Room) Equip(playerID, itemID, creatureID string) (EquipResult, error) {
	p, err := r.canAct(playerID, ActionPlay)
	if err != nil {
		return EquipResult{}, err
	}
	i := p.handIndex(itemID)
	if i < 0 {
		return EquipResult{}, fmt.Errorf("%w: %s not in hand", ErrCardNotFound, itemID)
	}
	item := p.Hand[i]
	if !item.Category.IsItem() {
		return EquipResult{}, fmt.Errorf("%w: %s is not an item", ErrEquipmentIllegal, item.Name)
	}
	_, _, creature := p.findOnBoard(creatureID)
	if creature == nil {
		return EquipResult{}, fmt.Errorf("%w: creature %s not on your board", ErrCardNotFound, creatureID)
	}

	weapons, armor := 0, 0
	for _, it := range creature.Equipped {
		switch it.Category {
		case cards.Weapon:
			weapons++
		case cards.Armor:
			armor++
		}
	}
	switch item.Category {
	case cards.Weapon:
		if !weaponAllowed(item.TemplateID, creature.TemplateID) {
			return EquipResult{}, fmt.Errorf("%w: %s cannot wield %s", ErrEquipmentIllegal, creature.Name, item.Name)
		}
		if weapons >= MaxWeaponsPerCreature {
			return EquipResult{}, fmt.Errorf("%w: %s already holds a weapon", ErrEquipmentIllegal, creature.Name)
		}
	case cards.Armor:
		if armor >= MaxArmorPerCreature {
			return EquipResult{}, fmt.Errorf("%w: %s already wears %d armor pieces", ErrEquipmentIllegal, creature.Name, armor)
		}
	}

	p.takeFromHand(itemID)
	creature.Equipped = append(creature.Equipped, item)
	creature.Attack += item.Attack
	creature.Life += item.Life + item.Protection
	r.useAction(playerID, ActionPlay)

	return EquipResult{PlayerID: playerID, Item: item.snapshot(), Creature: creature.snapshot()}, nil
}
