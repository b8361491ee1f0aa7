package game

// kill turns p into an observer and hands their cards back: creatures and everything
// on the board to the graveyard, other hand cards to the bottom of the deck.
func (r *Room) kill(p *Player) {
	if p.Dead {
		return
	}
	p.Dead = true
	p.Observer = true
	p.Life = 0

	for _, c := range p.Hand {
		if c.IsCreature() {
			r.Graveyard.PushTop(c)
		} else {
			r.Deck.PushBottom(c)
		}
	}
	p.Hand = nil

	for i, c := range p.Attack {
		if c != nil {
			r.bury(c)
			p.Attack[i] = nil
		}
	}
	for i, c := range p.Defense {
		if c != nil {
			r.bury(c)
			p.Defense[i] = nil
		}
	}
	for i, c := range p.Equipment {
		if c != nil {
			r.bury(c)
			p.Equipment[i] = nil
		}
	}
	for _, t := range p.Talismans {
		r.Graveyard.PushTop(t)
	}
	p.Talismans = nil
	p.Effects = nil
	p.ProphecyTarget = ""
	p.ProphecyTurns = 0

	r.Deck.Shuffle(r.rng)
	r.used[p.ID] = make(map[Action]bool)
	r.Eliminated = append(r.Eliminated, p.ID)
	r.checkEmbargo()
	r.checkWinner()
}

// checkWinner finishes the room once at most one player is alive.
func (r *Room) checkWinner() {
	if r.Status != StatusInProgress {
		return
	}
	living := r.Living()
	switch len(living) {
	case 0:
		r.Status = StatusFinished
	case 1:
		r.Winner = living[0].ID
		r.Status = StatusFinished
	}
}
