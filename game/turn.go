package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// Casualty is a card that left the board outside combat.
type Casualty struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
	Zone     Zone   `json:"zone"`
	Slot     int    `json:"slot"`
}

// TurnResult is returned by EndTurn and by forced turn passes.
type TurnResult struct {
	PreviousPlayerID  string     `json:"previousPlayer"`
	NextPlayerID      string     `json:"nextTurn"`
	TimeOfDay         TimeOfDay  `json:"timeOfDay"`
	TimeCycle         int        `json:"timeCycle"`
	DayBegan          bool       `json:"dayBegan,omitempty"`
	Daylight          []Casualty `json:"daylightCasualties,omitempty"`
	ProphecyFulfilled *Casualty  `json:"prophecyFulfilled,omitempty"`
}

// canAct checks that the player may spend the category now. An empty category only checks turn ownership.
func (r *Room) canAct(playerID string, a Action) (*Player, error) {
	switch r.Status {
	case StatusLobby:
		return nil, ErrNotStarted
	case StatusFinished:
		return nil, ErrGameFinished
	}
	p, ok := r.Players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if p.Dead {
		return nil, ErrPlayerDead
	}
	if r.CurrentPlayerID() != playerID {
		return nil, ErrNotYourTurn
	}
	if a != "" && r.used[playerID][a] {
		return nil, fmt.Errorf("%w: %s", ErrActionAlreadyUsed, a)
	}
	return p, nil
}

// useAction spends the category. Anything but an attack counts towards lifting the embargo.
func (r *Room) useAction(playerID string, a Action) {
	if a != "" {
		r.used[playerID][a] = true
	}
	if a != ActionAttack {
		r.markActed(playerID)
	}
}

func (r *Room) markActed(playerID string) {
	r.acted[playerID] = true
	r.checkEmbargo()
}

// checkEmbargo lifts the embargo once every living seat has acted. Deaths can lift it too.
func (r *Room) checkEmbargo() {
	if r.embargoLifted {
		return
	}
	for _, id := range r.Order {
		if !r.acted[id] && !r.Players[id].Dead {
			return
		}
	}
	r.embargoLifted = true
}

// EndTurn closes the current player's turn, ticks their timed effects and passes to the next living seat.
func (r *Room) EndTurn(playerID string) (TurnResult, error) {
	p, err := r.canAct(playerID, "")
	if err != nil {
		return TurnResult{}, err
	}
	p.tickEffects()
	fulfilled := r.tickProphecy(p)

	tr := r.advance()
	tr.ProphecyFulfilled = fulfilled
	return tr, nil
}

// advance moves the turn to the next living player and runs the environment clock.
func (r *Room) advance() TurnResult {
	tr := TurnResult{PreviousPlayerID: r.Order[r.CurrentTurn]}
	r.CurrentTurn = r.nextLiving(r.CurrentTurn)
	for _, p := range r.Living() {
		r.used[p.ID] = make(map[Action]bool)
	}

	r.TimeCycle++
	period := r.Rules.DayNightPeriod
	if period > 0 && r.TimeCycle%period == 0 {
		if r.TimeOfDay == Day {
			r.TimeOfDay = Night
		} else {
			r.TimeOfDay = Day
			tr.DayBegan = true
			tr.Daylight = r.resolveDaylight()
		}
	}

	tr.NextPlayerID = r.Order[r.CurrentTurn]
	tr.TimeOfDay = r.TimeOfDay
	tr.TimeCycle = r.TimeCycle
	return tr
}

// nextLiving returns the index of the next living seat after from, wrapping.
// It returns from itself when nobody else is alive.
func (r *Room) nextLiving(from int) int {
	n := len(r.Order)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !r.Players[r.Order[i]].Dead {
			return i
		}
	}
	return from
}

// resolveDaylight destroys every creature that dies at daylight unless its owner wears the dark helmet.
func (r *Room) resolveDaylight() []Casualty {
	var out []Casualty
	for _, p := range r.Living() {
		helmet := p.EquipmentIn(SlotHelmet)
		if helmet != nil && helmet.TemplateID == cards.CapaceteTrevas {
			continue
		}
		for _, zone := range []Zone{ZoneAttack, ZoneDefense} {
			slots, _ := p.zoneSlots(zone)
			for i, c := range slots {
				if c == nil || !c.DiesAtDaylight || c.hasEquipped(cards.CapaceteTrevas) {
					continue
				}
				slots[i] = nil
				out = append(out, Casualty{PlayerID: p.ID, Card: c.snapshot(), Zone: zone, Slot: i})
				r.bury(c)
			}
		}
	}
	return out
}

// tickProphecy counts down a curse on p at the end of p's turn and destroys the marked creature at zero.
func (r *Room) tickProphecy(p *Player) *Casualty {
	if p.ProphecyTarget == "" {
		return nil
	}
	p.ProphecyTurns--
	if p.ProphecyTurns > 0 {
		return nil
	}
	target := p.ProphecyTarget
	p.ProphecyTarget = ""
	p.ProphecyTurns = 0

	zone, idx, c := p.findOnBoard(target)
	if c == nil {
		return nil
	}
	p.removeFromBoard(target)
	cas := &Casualty{PlayerID: p.ID, Card: c.snapshot(), Zone: zone, Slot: idx}
	r.bury(c)
	return cas
}

// bury moves a card and everything attached to it into the graveyard.
func (r *Room) bury(c *Card) {
	for _, it := range c.Equipped {
		r.Graveyard.PushTop(it)
	}
	c.Equipped = nil
	r.Graveyard.PushTop(c)
}
