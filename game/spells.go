package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// SpellTarget says what a spell needs to be aimed at.
type SpellTarget int

const (
	TargetNone SpellTarget = iota
	// TargetPlayer defaults to the caster when no player is named.
	TargetPlayer
	// TargetOpponent must name another living player.
	TargetOpponent
	// TargetCreature must name a creature on some living player's board.
	TargetCreature
)

// SpellDef holds the definition of a spell as seen by the game package.
type SpellDef struct {
	ID          string
	Name        string
	Description string
	Target      SpellTarget
	// Check may reject the cast before anything changes. Optional.
	Check func(ctx *SpellContext) error
	// Apply mutates the room and returns a short description of what happened.
	Apply func(ctx *SpellContext) string
}

// SpellContext is what a spell sees when it resolves. Target is the targeted player,
// or the owner of TargetCard for creature spells.
type SpellContext struct {
	Caster     *Player
	Target     *Player
	TargetCard *Card
	room       *Room
}

// Living returns every living seat in turn order.
func (c *SpellContext) Living() []*Player { return c.room.Living() }

// ReturnHandToDeck puts every card of p's hand at the bottom of the deck.
func (c *SpellContext) ReturnHandToDeck(p *Player) int {
	n := len(p.Hand)
	for _, card := range p.Hand {
		c.room.Deck.PushBottom(card)
	}
	p.Hand = nil
	return n
}

// ShuffleDeck reshuffles the shared deck.
func (c *SpellContext) ShuffleDeck() { c.room.Deck.Shuffle(c.room.rng) }

// SpellRequest carries the parameters of a cast. CardRef is a hand instance id or a template id.
type SpellRequest struct {
	CardRef        string `json:"cardRef"`
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
	TargetCardID   string `json:"targetCardId,omitempty"`
}

// SpellResult is returned by CastSpell.
type SpellResult struct {
	PlayerID       string `json:"playerId"`
	Spell          string `json:"spell"`
	Name           string `json:"name"`
	Source         Zone   `json:"source"`
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
	TargetCard     *Card  `json:"targetCard,omitempty"`
	Summary        string `json:"summary"`
}

// castingRight is the resolved permission to cast one spell card.
type castingRight struct {
	card  *Card
	from  Zone
	proxy bool
}

// spellRight decides how p may cast ref: from hand with a mage channeling it,
// or through a proxy caster pulling the card from hand, deck or graveyard.
func (r *Room) spellRight(p *Player, ref string) (castingRight, error) {
	inHand := p.handCard(ref)
	if inHand != nil && p.hasChanneler() {
		return castingRight{card: inHand, from: ZoneHand}, nil
	}
	if !p.hasSpellProxy() {
		if inHand == nil {
			return castingRight{}, fmt.Errorf("%w: %s not in hand", ErrCardNotFound, ref)
		}
		return castingRight{}, fmt.Errorf("%w: no unblocked mage on the board", ErrPreconditionNotMet)
	}
	if inHand != nil {
		return castingRight{card: inHand, from: ZoneHand, proxy: true}, nil
	}
	for _, pile := range []struct {
		zone Zone
		p    *Pile
	}{{ZoneDeck, r.Deck}, {ZoneGraveyard, r.Graveyard}} {
		c := pile.p.Find(ref)
		if c == nil {
			c = pile.p.FindTemplate(ref)
		}
		if c != nil {
			return castingRight{card: c, from: pile.zone, proxy: true}, nil
		}
	}
	return castingRight{}, fmt.Errorf("%w: %s is not in hand, deck or graveyard", ErrCardNotFound, ref)
}

// CastSpell resolves a spell. A card cast from hand by a mage goes to the graveyard;
// a proxy-cast card goes to the bottom of the deck.
func (r *Room) CastSpell(playerID string, req SpellRequest) (SpellResult, error) {
	p, err := r.canAct(playerID, ActionSpell)
	if err != nil {
		return SpellResult{}, err
	}
	right, err := r.spellRight(p, req.CardRef)
	if err != nil {
		return SpellResult{}, err
	}
	card := right.card
	if card.Category != cards.Spell {
		return SpellResult{}, fmt.Errorf("%w: %s is not a spell", ErrPreconditionNotMet, card.Name)
	}
	if r.spells == nil {
		return SpellResult{}, fmt.Errorf("%w: spells are disabled", ErrPreconditionNotMet)
	}
	def, ok := r.spells.GetSpell(card.TemplateID)
	if !ok {
		return SpellResult{}, fmt.Errorf("%w: %s has no castable effect", ErrPreconditionNotMet, card.Name)
	}

	ctx := &SpellContext{Caster: p, room: r}
	if err := r.resolveSpellTarget(ctx, def, req); err != nil {
		return SpellResult{}, err
	}
	if def.Check != nil {
		if err := def.Check(ctx); err != nil {
			return SpellResult{}, err
		}
	}

	switch right.from {
	case ZoneHand:
		p.takeFromHand(card.InstanceID)
	case ZoneDeck:
		r.Deck.Remove(card.InstanceID)
	case ZoneGraveyard:
		r.Graveyard.Remove(card.InstanceID)
	}
	summary := def.Apply(ctx)
	if right.proxy {
		r.Deck.PushBottom(card)
	} else {
		r.Graveyard.PushTop(card)
	}
	r.useAction(playerID, ActionSpell)

	res := SpellResult{
		PlayerID: playerID,
		Spell:    def.ID,
		Name:     def.Name,
		Source:   right.from,
		Summary:  summary,
	}
	if ctx.Target != nil {
		res.TargetPlayerID = ctx.Target.ID
	}
	if ctx.TargetCard != nil {
		cp := ctx.TargetCard.snapshot()
		res.TargetCard = &cp
	}
	return res, nil
}

// resolveSpellTarget fills ctx from the request and enforces spell immunity.
func (r *Room) resolveSpellTarget(ctx *SpellContext, def SpellDef, req SpellRequest) error {
	switch def.Target {
	case TargetPlayer, TargetOpponent:
		id := req.TargetPlayerID
		if id == "" {
			if def.Target == TargetOpponent {
				return fmt.Errorf("%w: %s needs a target player", ErrPreconditionNotMet, def.Name)
			}
			id = ctx.Caster.ID
		}
		t, err := r.livingTarget(id)
		if err != nil {
			return err
		}
		if def.Target == TargetOpponent && t == ctx.Caster {
			return fmt.Errorf("%w: %s must target another player", ErrPreconditionNotMet, def.Name)
		}
		ctx.Target = t
	case TargetCreature:
		if req.TargetCardID == "" {
			return fmt.Errorf("%w: %s needs a target creature", ErrPreconditionNotMet, def.Name)
		}
		for _, p := range r.Living() {
			if _, _, c := p.findOnBoard(req.TargetCardID); c != nil {
				ctx.TargetCard = c
				ctx.Target = p
				break
			}
		}
		if ctx.TargetCard == nil {
			return fmt.Errorf("%w: creature %s not on any board", ErrCardNotFound, req.TargetCardID)
		}
	}
	if ctx.Target != nil && ctx.Target != ctx.Caster && ctx.Target.hasTalisman(cards.TalismaVerdade) {
		return fmt.Errorf("%w: %s is immune to spells", ErrPreconditionNotMet, ctx.Target.Name)
	}
	return nil
}

// livingTarget returns a seated, living player.
func (r *Room) livingTarget(id string) (*Player, error) {
	t, ok := r.Players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	if t.Dead {
		return nil, fmt.Errorf("%w: %s", ErrPlayerDead, id)
	}
	return t, nil
}
