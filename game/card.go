package game

import (
	"twilight-battle-server/cards"
)

// Card is one physical copy of a catalog template. It is owned by exactly one zone at a time;
// moving it between zones transfers the pointer, it is never copied.
type Card struct {
	InstanceID     string         `json:"instanceId"`
	TemplateID     string         `json:"id"`
	Name           string         `json:"name"`
	Category       cards.Category `json:"type"`
	Life           int            `json:"life"`
	Attack         int            `json:"attack"`
	Protection     int            `json:"protection,omitempty"`
	Description    string         `json:"description"`
	DiesAtDaylight bool           `json:"diesDaylight,omitempty"`

	// Equipped holds items attached to this creature. Their bonuses are already folded into Life/Attack.
	Equipped []*Card `json:"equipped,omitempty"`
	// Blocked is set on a mage silenced by a Rei Mago.
	Blocked bool `json:"blocked,omitempty"`
	Tapped  bool `json:"tapped,omitempty"`
}

// NewCard creates an instance of t with the given instance id.
func NewCard(t cards.Template, instanceID string) *Card {
	return &Card{
		InstanceID:     instanceID,
		TemplateID:     t.ID,
		Name:           t.Name,
		Category:       t.Category,
		Life:           t.Life,
		Attack:         t.Attack,
		Protection:     t.Protection,
		Description:    t.Description,
		DiesAtDaylight: t.DiesAtDaylight,
	}
}

// IsCreature reports whether the card can occupy an attack or defense slot.
func (c *Card) IsCreature() bool {
	return c.Category == cards.Creature
}

// hasEquipped reports whether an item with the given template id is attached.
func (c *Card) hasEquipped(templateID string) bool {
	for _, it := range c.Equipped {
		if it.TemplateID == templateID {
			return true
		}
	}
	return false
}

// restore resets the instance to its catalog stats, dropping damage, buffs and status flags.
func (c *Card) restore() {
	if t, ok := cards.Lookup(c.TemplateID); ok {
		c.Life = t.Life
		c.Attack = t.Attack
		c.Protection = t.Protection
	}
	c.Equipped = nil
	c.Blocked = false
	c.Tapped = false
}

// snapshot returns a copy suitable for a result payload.
func (c *Card) snapshot() Card {
	out := *c
	if len(c.Equipped) > 0 {
		out.Equipped = make([]*Card, len(c.Equipped))
		for i, it := range c.Equipped {
			cp := *it
			out.Equipped[i] = &cp
		}
	}
	return out
}
