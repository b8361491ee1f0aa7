package spell

import (
	"twilight-battle-server/cards"
	"twilight-battle-server/game"
)

// Spell defines the interface that every castable spell card implements.
type Spell interface {
	ID() string
	Target() game.SpellTarget
	Apply(ctx *game.SpellContext) string
}

// Checker is implemented by spells that can refuse a cast before anything changes.
type Checker interface {
	Check(ctx *game.SpellContext) error
}

// Registry holds all registered spells indexed by their card template id.
type Registry struct {
	spells map[string]Spell
	order  []string // registration order for deterministic AllSpells()
}

// NewRegistry creates a new empty spell registry.
func NewRegistry() *Registry {
	return &Registry{spells: make(map[string]Spell)}
}

// Register adds a spell to the registry.
func (r *Registry) Register(s Spell) {
	id := s.ID()
	if _, exists := r.spells[id]; !exists {
		r.order = append(r.order, id)
	}
	r.spells[id] = s
}

func toDef(s Spell) game.SpellDef {
	def := game.SpellDef{
		ID:     s.ID(),
		Name:   s.ID(),
		Target: s.Target(),
		Apply:  s.Apply,
	}
	if t, ok := cards.Lookup(s.ID()); ok {
		def.Name = t.Name
		def.Description = t.Description
	}
	if c, ok := s.(Checker); ok {
		def.Check = c.Check
	}
	return def
}

// GetSpell returns the spell definition for the game package.
// It satisfies the game.SpellProvider interface.
func (r *Registry) GetSpell(id string) (game.SpellDef, bool) {
	s, ok := r.spells[id]
	if !ok {
		return game.SpellDef{}, false
	}
	return toDef(s), true
}

// AllSpells returns every registered spell in registration order.
func (r *Registry) AllSpells() []game.SpellDef {
	defs := make([]game.SpellDef, 0, len(r.order))
	for _, id := range r.order {
		defs = append(defs, toDef(r.spells[id]))
	}
	return defs
}

// RegisterAll registers the built-in spells. feitico_para_sempre is left out: it reverts
// the vampire blade curse, which the rules engine does not model.
func RegisterAll(r *Registry) {
	r.Register(Cuts{})
	r.Register(HardToKill{})
	r.Register(Swap{})
	r.Register(Communist{})
	r.Register(Silence{Turns: SilenceTurns})
	r.Register(Heal{})
	r.Register(Capitalist{})
}

// Default returns a registry with every built-in spell.
func Default() *Registry {
	r := NewRegistry()
	RegisterAll(r)
	return r
}
