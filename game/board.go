package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// DrawResult is returned by Draw. Card is only meant for the drawing player.
type DrawResult struct {
	PlayerID string `json:"playerId"`
	Card     *Card  `json:"card,omitempty"`
	DeckSize int    `json:"deckSize"`
}

// Public strips the drawn card for broadcast to other seats.
func (d DrawResult) Public() DrawResult {
	d.Card = nil
	return d
}

// BoardResult describes a placement or rearrangement on one player's board.
type BoardResult struct {
	PlayerID string   `json:"playerId"`
	Card     *Card    `json:"card,omitempty"`
	From     *SlotRef `json:"from,omitempty"`
	To       SlotRef  `json:"to"`
	Other    *Card    `json:"other,omitempty"`
}

// Draw takes the top card of the shared deck into the player's hand.
func (r *Room) Draw(playerID string) (DrawResult, error) {
	p, err := r.canAct(playerID, ActionDraw)
	if err != nil {
		return DrawResult{}, err
	}
	c, ok := r.Deck.Draw()
	if !ok {
		return DrawResult{}, ErrDeckEmpty
	}
	p.Hand = append(p.Hand, c)
	r.useAction(playerID, ActionDraw)
	cp := c.snapshot()
	return DrawResult{PlayerID: playerID, Card: &cp, DeckSize: r.Deck.Len()}, nil
}

func isMount(c *Card) bool {
	return c.TemplateID == cards.Centauro || c.TemplateID == cards.SuperCentauro
}

// equipSlotAccepts reports whether a player-level equipment slot can hold c.
func equipSlotAccepts(s EquipSlot, c *Card) bool {
	switch s {
	case SlotWeapon:
		return c.Category == cards.Weapon
	case SlotHelmet, SlotArmor, SlotBoots:
		return c.Category == cards.Armor
	case SlotMount:
		return isMount(c)
	}
	return false
}

// Play moves a card from hand to the board: creatures to an attack or defense slot,
// items and mounts to a player equipment slot, talismans to the talisman pool.
func (r *Room) Play(playerID, instanceID string, to SlotRef) (BoardResult, error) {
	p, err := r.canAct(playerID, ActionPlay)
	if err != nil {
		return BoardResult{}, err
	}
	i := p.handIndex(instanceID)
	if i < 0 {
		return BoardResult{}, fmt.Errorf("%w: %s not in hand", ErrCardNotFound, instanceID)
	}
	c := p.Hand[i]

	var place func()
	switch {
	case to.Zone == ZoneEquipment:
		idx, ok := equipIndex(to.Equip)
		if !ok || !equipSlotAccepts(to.Equip, c) {
			return BoardResult{}, fmt.Errorf("%w: %s cannot go in the %q slot", ErrInvalidZoneOrSlot, c.Name, to.Equip)
		}
		if p.Equipment[idx] != nil {
			return BoardResult{}, fmt.Errorf("%w: %s", ErrSlotOccupied, to.Equip)
		}
		place = func() { p.Equipment[idx] = c }
	case to.Zone == ZoneTalisman:
		if c.Category != cards.Talisman {
			return BoardResult{}, fmt.Errorf("%w: %s is not a talisman", ErrInvalidZoneOrSlot, c.Name)
		}
		place = func() { p.Talismans = append(p.Talismans, c) }
	case c.IsCreature():
		slots, idx, err := p.slot(to)
		if err != nil {
			return BoardResult{}, err
		}
		if slots[idx] != nil {
			return BoardResult{}, fmt.Errorf("%w: %s %d", ErrSlotOccupied, to.Zone, to.Index)
		}
		place = func() { slots[idx] = c }
	default:
		return BoardResult{}, fmt.Errorf("%w: %s cannot be played to %s", ErrInvalidZoneOrSlot, c.Name, to.Zone)
	}

	p.takeFromHand(instanceID)
	place()
	r.useAction(playerID, ActionPlay)
	cp := c.snapshot()
	return BoardResult{PlayerID: playerID, Card: &cp, To: to}, nil
}

// Move relocates a creature to an empty attack or defense slot.
func (r *Room) Move(playerID string, from, to SlotRef) (BoardResult, error) {
	p, err := r.canAct(playerID, ActionMove)
	if err != nil {
		return BoardResult{}, err
	}
	src, si, err := p.slot(from)
	if err != nil {
		return BoardResult{}, err
	}
	dst, di, err := p.slot(to)
	if err != nil {
		return BoardResult{}, err
	}
	c := src[si]
	if c == nil {
		return BoardResult{}, fmt.Errorf("%w: %s %d is empty", ErrCardNotFound, from.Zone, from.Index)
	}
	if dst[di] != nil {
		return BoardResult{}, fmt.Errorf("%w: %s %d", ErrSlotOccupied, to.Zone, to.Index)
	}

	src[si] = nil
	dst[di] = c
	r.useAction(playerID, ActionMove)
	cp := c.snapshot()
	return BoardResult{PlayerID: playerID, Card: &cp, From: &from, To: to}, nil
}

// Swap exchanges the contents of two board slots. One of them may be empty.
func (r *Room) Swap(playerID string, a, b SlotRef) (BoardResult, error) {
	p, err := r.canAct(playerID, ActionSwap)
	if err != nil {
		return BoardResult{}, err
	}
	as, ai, err := p.slot(a)
	if err != nil {
		return BoardResult{}, err
	}
	bs, bi, err := p.slot(b)
	if err != nil {
		return BoardResult{}, err
	}
	if a.Zone == b.Zone && a.Index == b.Index {
		return BoardResult{}, fmt.Errorf("%w: cannot swap a slot with itself", ErrInvalidZoneOrSlot)
	}
	if as[ai] == nil && bs[bi] == nil {
		return BoardResult{}, fmt.Errorf("%w: both slots are empty", ErrCardNotFound)
	}

	as[ai], bs[bi] = bs[bi], as[ai]
	r.useAction(playerID, ActionSwap)
	res := BoardResult{PlayerID: playerID, From: &a, To: b}
	if c := bs[bi]; c != nil {
		cp := c.snapshot()
		res.Card = &cp
	}
	if c := as[ai]; c != nil {
		cp := c.snapshot()
		res.Other = &cp
	}
	return res, nil
}

// Flip toggles the tapped state of a creature on the board.
func (r *Room) Flip(playerID string, at SlotRef) (BoardResult, error) {
	p, err := r.canAct(playerID, ActionFlip)
	if err != nil {
		return BoardResult{}, err
	}
	slots, idx, err := p.slot(at)
	if err != nil {
		return BoardResult{}, err
	}
	c := slots[idx]
	if c == nil {
		return BoardResult{}, fmt.Errorf("%w: %s %d is empty", ErrCardNotFound, at.Zone, at.Index)
	}

	c.Tapped = !c.Tapped
	r.useAction(playerID, ActionFlip)
	cp := c.snapshot()
	return BoardResult{PlayerID: playerID, Card: &cp, To: at}, nil
}
