package game

import "slices"

// ProphecyView is the public part of a prophecy curse.
type ProphecyView struct {
	TargetCardID string `json:"targetCardId"`
	Turns        int    `json:"turns"`
}

// PlayerView is the client-facing representation of a seat. Hand, equipment slots and
// talismans are only filled in for the viewer; everyone else sees counts.
type PlayerView struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Life           int                 `json:"life"`
	Dead           bool                `json:"dead"`
	Observer       bool                `json:"observer"`
	Bot            bool                `json:"bot,omitempty"`
	Attack         []*Card             `json:"attackBases"`
	Defense        []*Card             `json:"defenseBases"`
	HandCount      int                 `json:"handCount"`
	EquipmentCount int                 `json:"equipmentCount"`
	TalismanCount  int                 `json:"talismanCount"`
	Effects        []Effect            `json:"activeEffects"`
	Prophecy       *ProphecyView       `json:"prophecy,omitempty"`
	Hand           []*Card             `json:"hand,omitempty"`
	Equipment      map[EquipSlot]*Card `json:"equipment,omitempty"`
	Talismans      []*Card             `json:"talismans,omitempty"`
	Runes          int                 `json:"runes,omitempty"`
}

// StateView is the full room state as seen by one player.
type StateView struct {
	Type                 string       `json:"type"`
	RoomID               string       `json:"roomId"`
	Status               string       `json:"status"`
	You                  string       `json:"you"`
	CurrentPlayer        string       `json:"currentPlayer,omitempty"`
	YourTurn             bool         `json:"yourTurn"`
	TimeOfDay            TimeOfDay    `json:"timeOfDay"`
	TimeCycle            int          `json:"timeCycle"`
	DeckSize             int          `json:"deckSize"`
	Graveyard            []*Card      `json:"graveyard"`
	Players              []PlayerView `json:"players"`
	UsedActions          []Action     `json:"usedActions"`
	EmbargoLifted        bool         `json:"embargoLifted"`
	Winner               string       `json:"winner,omitempty"`
	TurnEndsAtUnixMs     int64        `json:"turnEndsAtUnixMs,omitempty"`
	TurnCountdownShowSec int          `json:"turnCountdownShowSec,omitempty"`
}

func copyCards(in []*Card) []*Card {
	out := make([]*Card, len(in))
	for i, c := range in {
		if c != nil {
			cp := c.snapshot()
			out[i] = &cp
		}
	}
	return out
}

// BuildPlayerView creates the view of p for viewerID.
func BuildPlayerView(p *Player, viewerID string) PlayerView {
	v := PlayerView{
		ID:            p.ID,
		Name:          p.Name,
		Life:          p.Life,
		Dead:          p.Dead,
		Observer:      p.Observer,
		Bot:           p.Bot,
		Attack:        copyCards(p.Attack[:]),
		Defense:       copyCards(p.Defense[:]),
		HandCount:     len(p.Hand),
		TalismanCount: len(p.Talismans),
		Effects:       slices.Clone(p.Effects),
	}
	if v.Effects == nil {
		v.Effects = []Effect{}
	}
	if p.Dead {
		v.Life = 0
	}
	for _, c := range p.Equipment {
		if c != nil {
			v.EquipmentCount++
		}
	}
	if p.ProphecyTarget != "" {
		v.Prophecy = &ProphecyView{TargetCardID: p.ProphecyTarget, Turns: p.ProphecyTurns}
	}
	if p.ID != viewerID {
		return v
	}
	v.Hand = copyCards(p.Hand)
	v.Talismans = copyCards(p.Talismans)
	v.Runes = p.RuneCount()
	v.Equipment = make(map[EquipSlot]*Card, len(equipSlots))
	for i, s := range equipSlots {
		if c := p.Equipment[i]; c != nil {
			cp := c.snapshot()
			v.Equipment[s] = &cp
		} else {
			v.Equipment[s] = nil
		}
	}
	return v
}

// StateFor builds the redacted snapshot sent to viewerID.
func (r *Room) StateFor(viewerID string) StateView {
	current := r.CurrentPlayerID()
	sv := StateView{
		Type:          "game_state",
		RoomID:        r.ID,
		Status:        r.Status.String(),
		You:           viewerID,
		CurrentPlayer: current,
		YourTurn:      current != "" && current == viewerID,
		TimeOfDay:     r.TimeOfDay,
		TimeCycle:     r.TimeCycle,
		DeckSize:      r.Deck.Len(),
		Graveyard:     copyCards(r.Graveyard.Cards()),
		Players:       make([]PlayerView, 0, len(r.Order)),
		UsedActions:   []Action{},
		EmbargoLifted: r.embargoLifted,
		Winner:        r.Winner,
	}
	for _, id := range r.Order {
		sv.Players = append(sv.Players, BuildPlayerView(r.Players[id], viewerID))
	}
	for a, used := range r.used[viewerID] {
		if used {
			sv.UsedActions = append(sv.UsedActions, a)
		}
	}
	slices.Sort(sv.UsedActions)
	return sv
}
