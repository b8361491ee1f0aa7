package game

import (
	"fmt"

	"twilight-battle-server/cards"
)

// RunesToRevive is the number of runes spent on one revival.
const RunesToRevive = 4

// ReviveResult is returned by Revive.
type ReviveResult struct {
	PlayerID    string `json:"playerId"`
	Card        Card   `json:"card"`
	RunesSpent  int    `json:"runesSpent"`
	RunesInHand int    `json:"runesInHand"`
}

// Revive spends four runes from hand to bring a graveyard card back into hand at full strength.
func (r *Room) Revive(playerID, graveyardCardID string) (ReviveResult, error) {
	p, err := r.canAct(playerID, "")
	if err != nil {
		return ReviveResult{}, err
	}
	if n := p.RuneCount(); n < RunesToRevive {
		return ReviveResult{}, fmt.Errorf("%w: need %d runes, have %d", ErrPreconditionNotMet, RunesToRevive, n)
	}
	c := r.Graveyard.Find(graveyardCardID)
	if c == nil {
		c = r.Graveyard.FindTemplate(graveyardCardID)
	}
	if c == nil {
		return ReviveResult{}, fmt.Errorf("%w: %s not in graveyard", ErrCardNotFound, graveyardCardID)
	}

	r.Graveyard.Remove(c.InstanceID)
	spent := 0
	kept := p.Hand[:0]
	for _, h := range p.Hand {
		if spent < RunesToRevive && h.TemplateID == cards.Runa {
			r.Graveyard.PushTop(h)
			spent++
			continue
		}
		kept = append(kept, h)
	}
	p.Hand = kept
	c.restore()
	p.Hand = append(p.Hand, c)
	r.useAction(playerID, "")

	return ReviveResult{
		PlayerID:    playerID,
		Card:        c.snapshot(),
		RunesSpent:  spent,
		RunesInHand: p.RuneCount(),
	}, nil
}
