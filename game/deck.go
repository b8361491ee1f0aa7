package game

import (
	"math/rand"

	"twilight-battle-server/cards"
)

// Pile is an ordered stack of cards. For the draw deck the top is the end of the slice.
type Pile struct {
	cards []*Card
}

// BuildDeck creates every catalog copy with a fresh instance id and shuffles the result.
func BuildDeck(rng *rand.Rand, newID func() string) *Pile {
	p := &Pile{cards: make([]*Card, 0, cards.DeckSize())}
	for _, t := range cards.All() {
		for i := 0; i < t.Count; i++ {
			p.cards = append(p.cards, NewCard(t, newID()))
		}
	}
	p.Shuffle(rng)
	return p
}

// Len returns the number of cards in the pile.
func (p *Pile) Len() int { return len(p.cards) }

// Cards returns the underlying slice, bottom first. Callers must not modify it.
func (p *Pile) Cards() []*Card { return p.cards }

// Draw pops the top card.
func (p *Pile) Draw() (*Card, bool) {
	if len(p.cards) == 0 {
		return nil, false
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c, true
}

// PushTop puts c on top, where the next Draw takes it.
func (p *Pile) PushTop(c *Card) {
	p.cards = append(p.cards, c)
}

// PushBottom puts c under every other card.
func (p *Pile) PushBottom(c *Card) {
	p.cards = append([]*Card{c}, p.cards...)
}

// Find returns the card with the given instance id without removing it.
func (p *Pile) Find(instanceID string) *Card {
	for _, c := range p.cards {
		if c.InstanceID == instanceID {
			return c
		}
	}
	return nil
}

// FindTemplate returns the topmost card of the given template.
func (p *Pile) FindTemplate(templateID string) *Card {
	for i := len(p.cards) - 1; i >= 0; i-- {
		if p.cards[i].TemplateID == templateID {
			return p.cards[i]
		}
	}
	return nil
}

// Remove takes the card with the given instance id out of the pile.
func (p *Pile) Remove(instanceID string) (*Card, bool) {
	for i, c := range p.cards {
		if c.InstanceID == instanceID {
			p.cards = append(p.cards[:i], p.cards[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// Shuffle randomizes the order in place.
func (p *Pile) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}
