package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// Board dimensions.
const (
	AttackSlots  = 3
	DefenseSlots = 6
)

// Zone names a place a card can sit.
type Zone string

const (
	ZoneHand      Zone = "hand"
	ZoneAttack    Zone = "attack"
	ZoneDefense   Zone = "defense"
	ZoneEquipment Zone = "equipment"
	ZoneTalisman  Zone = "talisman"
	ZoneDeck      Zone = "deck"
	ZoneGraveyard Zone = "graveyard"
)

// EquipSlot names one of the player-level equipment slots.
type EquipSlot string

const (
	SlotWeapon EquipSlot = "weapon"
	SlotHelmet EquipSlot = "helmet"
	SlotArmor  EquipSlot = "armor"
	SlotBoots  EquipSlot = "boots"
	SlotMount  EquipSlot = "mount"
)

var equipSlots = [...]EquipSlot{SlotWeapon, SlotHelmet, SlotArmor, SlotBoots, SlotMount}

func equipIndex(s EquipSlot) (int, bool) {
	for i, es := range equipSlots {
		if es == s {
			return i, true
		}
	}
	return 0, false
}

// SlotRef addresses a board position. Index is used for attack/defense, Equip for the equipment zone.
type SlotRef struct {
	Zone  Zone      `json:"zone"`
	Index int       `json:"index"`
	Equip EquipSlot `json:"equip,omitempty"`
}

// Effect is a timed status on a player.
type Effect struct {
	Type      string `json:"type"`
	Remaining int    `json:"remaining"`
}

// EffectSilence marks a player whose attacks do not trigger traps.
const EffectSilence = "silence"

// Player is one seat at a table.
type Player struct {
	ID        string
	Name      string
	Life      int
	Hand      []*Card
	Attack    [AttackSlots]*Card
	Defense   [DefenseSlots]*Card
	Equipment [len(equipSlots)]*Card
	Talismans []*Card
	Effects   []Effect

	// ProphecyTarget is the instance id of this player's creature cursed by a Profeta.
	ProphecyTarget string
	ProphecyTurns  int

	Dead     bool
	Observer bool
	// Bot marks seats driven by the server.
	Bot bool
}

// NewPlayer creates a seat with the given starting life.
func NewPlayer(id, name string, life int) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Life: life,
	}
}

// zoneSlots returns the backing array of a board zone as a slice, so writes go to the player.
func (p *Player) zoneSlots(z Zone) ([]*Card, error) {
	switch z {
	case ZoneAttack:
		return p.Attack[:], nil
	case ZoneDefense:
		return p.Defense[:], nil
	default:
		return nil, fmt.Errorf("%w: %q is not a board zone", ErrInvalidZoneOrSlot, z)
	}
}

// slot validates ref against a board zone and returns its slice and index.
func (p *Player) slot(ref SlotRef) ([]*Card, int, error) {
	slots, err := p.zoneSlots(ref.Zone)
	if err != nil {
		return nil, 0, err
	}
	if ref.Index < 0 || ref.Index >= len(slots) {
		return nil, 0, fmt.Errorf("%w: %s slot %d", ErrInvalidZoneOrSlot, ref.Zone, ref.Index)
	}
	return slots, ref.Index, nil
}

// Creatures returns the occupied attack slots followed by the occupied defense slots, in slot order.
func (p *Player) Creatures() []*Card {
	out := make([]*Card, 0, AttackSlots+DefenseSlots)
	for _, c := range p.Attack {
		if c != nil {
			out = append(out, c)
		}
	}
	for _, c := range p.Defense {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// findOnBoard locates a creature by instance id in the attack or defense row.
func (p *Player) findOnBoard(instanceID string) (Zone, int, *Card) {
	for i, c := range p.Attack {
		if c != nil && c.InstanceID == instanceID {
			return ZoneAttack, i, c
		}
	}
	for i, c := range p.Defense {
		if c != nil && c.InstanceID == instanceID {
			return ZoneDefense, i, c
		}
	}
	return "", -1, nil
}

// removeFromBoard clears the slot holding instanceID and returns the card.
func (p *Player) removeFromBoard(instanceID string) *Card {
	zone, idx, c := p.findOnBoard(instanceID)
	if c == nil {
		return nil
	}
	slots, _ := p.zoneSlots(zone)
	slots[idx] = nil
	return c
}

// hasOnBoard reports whether a creature of the template sits in either row.
func (p *Player) hasOnBoard(templateID string) bool {
	for _, c := range p.Creatures() {
		if c.TemplateID == templateID {
			return true
		}
	}
	return false
}

// handIndex returns the position of a hand card matched by instance id, or -1.
func (p *Player) handIndex(instanceID string) int {
	for i, c := range p.Hand {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// handCard resolves ref against the hand, by instance id first and then by template id.
func (p *Player) handCard(ref string) *Card {
	if i := p.handIndex(ref); i >= 0 {
		return p.Hand[i]
	}
	for _, c := range p.Hand {
		if c.TemplateID == ref {
			return c
		}
	}
	return nil
}

// takeFromHand removes and returns the hand card with the given instance id.
func (p *Player) takeFromHand(instanceID string) *Card {
	i := p.handIndex(instanceID)
	if i < 0 {
		return nil
	}
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return c
}

// countHand counts hand cards of the template.
func (p *Player) countHand(templateID string) int {
	n := 0
	for _, c := range p.Hand {
		if c.TemplateID == templateID {
			n++
		}
	}
	return n
}

// countDefense counts defense-row creatures of the template.
func (p *Player) countDefense(templateID string) int {
	n := 0
	for _, c := range p.Defense {
		if c != nil && c.TemplateID == templateID {
			n++
		}
	}
	return n
}

// countAnywhere counts copies of the template across hand, board rows and equipment slots.
func (p *Player) countAnywhere(templateID string) int {
	n := p.countHand(templateID)
	for _, c := range p.Creatures() {
		if c.TemplateID == templateID {
			n++
		}
	}
	for _, c := range p.Equipment {
		if c != nil && c.TemplateID == templateID {
			n++
		}
	}
	return n
}

// RuneCount returns the number of runes in hand.
func (p *Player) RuneCount() int {
	return p.countHand(cards.Runa)
}

// hasTalisman reports whether a talisman of the template is in the pool.
func (p *Player) hasTalisman(templateID string) bool {
	for _, c := range p.Talismans {
		if c.TemplateID == templateID {
			return true
		}
	}
	return false
}

// Weapon returns the player-level weapon, if any.
func (p *Player) Weapon() *Card {
	return p.Equipment[0]
}

// EquipmentIn returns the card in the named player equipment slot.
func (p *Player) EquipmentIn(s EquipSlot) *Card {
	i, ok := equipIndex(s)
	if !ok {
		return nil
	}
	return p.Equipment[i]
}

// HasEffect reports whether a timed effect of the given type is active.
func (p *Player) HasEffect(typ string) bool {
	for _, e := range p.Effects {
		if e.Type == typ && e.Remaining > 0 {
			return true
		}
	}
	return false
}

// AddEffect applies a timed effect, refreshing the duration if it is already active.
func (p *Player) AddEffect(typ string, turns int) {
	for i, e := range p.Effects {
		if e.Type == typ {
			if turns > e.Remaining {
				p.Effects[i].Remaining = turns
			}
			return
		}
	}
	p.Effects = append(p.Effects, Effect{Type: typ, Remaining: turns})
}

// tickEffects decrements every effect and drops the expired ones.
func (p *Player) tickEffects() {
	kept := p.Effects[:0]
	for _, e := range p.Effects {
		e.Remaining--
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	p.Effects = kept
}

// hasChanneler reports whether an unblocked mage-class creature is on the board.
func (p *Player) hasChanneler() bool {
	for _, c := range p.Creatures() {
		if cards.IsMageClass(c.TemplateID) && !c.Blocked {
			return true
		}
	}
	return false
}

// hasSpellProxy reports whether a Rei Mago or Mago Negro is on the board.
func (p *Player) hasSpellProxy() bool {
	for _, c := range p.Creatures() {
		if cards.IsSpellProxy(c.TemplateID) {
			return true
		}
	}
	return false
}
