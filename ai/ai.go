package ai

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	"twilight-battle-server/cards"
	"twilight-battle-server/config"
	"twilight-battle-server/game"
)

// Move is one bot decision, expressed with the same action names clients send.
type Move struct {
	Action   string
	CardID   string
	TargetID string
	To       game.SlotRef
}

// Action names the bot can emit.
const (
	MoveDraw    = "draw"
	MovePlay    = "play"
	MoveAttack  = "attack"
	MoveEndTurn = "end_turn"
)

func findSelf(state *game.StateView) *game.PlayerView {
	for i := range state.Players {
		if state.Players[i].ID == state.You {
			return &state.Players[i]
		}
	}
	return nil
}

func firstFree(slots []*game.Card) int {
	for i, c := range slots {
		if c == nil {
			return i
		}
	}
	return -1
}

// weakestOpponent returns the living opponent with the least life, first in seat order on ties.
func weakestOpponent(state *game.StateView) string {
	best := ""
	bestLife := 0
	for _, p := range state.Players {
		if p.ID == state.You || p.Dead {
			continue
		}
		if best == "" || p.Life < bestLife {
			best, bestLife = p.ID, p.Life
		}
	}
	return best
}

// pickPlay chooses a hand card to put on the table, or ok=false if nothing fits.
// Creatures go to attack with probability Aggression, otherwise to defense.
func pickPlay(me *game.PlayerView, params *config.BotParams, roll func(int) int) (Move, bool) {
	for _, c := range me.Hand {
		switch {
		case c.IsCreature():
			attack, defense := firstFree(me.Attack), firstFree(me.Defense)
			if attack >= 0 && (defense < 0 || roll(100) < params.Aggression) {
				return Move{Action: MovePlay, CardID: c.InstanceID, To: game.SlotRef{Zone: game.ZoneAttack, Index: attack}}, true
			}
			if defense >= 0 {
				return Move{Action: MovePlay, CardID: c.InstanceID, To: game.SlotRef{Zone: game.ZoneDefense, Index: defense}}, true
			}
		case c.Category == cards.Talisman:
			return Move{Action: MovePlay, CardID: c.InstanceID, To: game.SlotRef{Zone: game.ZoneTalisman}}, true
		}
	}
	return Move{}, false
}

// Decide picks the next move for the player state was built for: draw, build the
// board, attack the weakest opponent once the embargo is over, then end the turn.
func Decide(state *game.StateView, params *config.BotParams, roll func(int) int) Move {
	me := findSelf(state)
	if me == nil || me.Dead {
		return Move{Action: MoveEndTurn}
	}
	used := make(map[game.Action]bool, len(state.UsedActions))
	for _, a := range state.UsedActions {
		used[a] = true
	}

	if !used[game.ActionDraw] && state.DeckSize > 0 {
		return Move{Action: MoveDraw}
	}
	if !used[game.ActionPlay] {
		if m, ok := pickPlay(me, params, roll); ok {
			return m
		}
	}
	if !used[game.ActionAttack] && state.EmbargoLifted && hasAttacker(me) {
		if target := weakestOpponent(state); target != "" && roll(100) < params.Aggression {
			return Move{Action: MoveAttack, TargetID: target}
		}
	}
	return Move{Action: MoveEndTurn}
}

func hasAttacker(me *game.PlayerView) bool {
	for _, c := range me.Attack {
		if c != nil {
			return true
		}
	}
	return false
}

// Run drives one bot seat. It reads the same messages a websocket client would get
// and hands its moves to submit. It returns on game_over, when aiSend is closed or
// when submit reports the table is gone.
func Run(aiSend <-chan []byte, submit func(Move) bool, params *config.BotParams) {
	myTurn := false
	for data := range aiSend {
		var typeEnvelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &typeEnvelope); err != nil {
			continue
		}

		switch typeEnvelope.Type {
		case "game_over":
			return
		case "action_error":
			// A rejected move would otherwise stall the turn until the clock runs out.
			if myTurn && !submit(Move{Action: MoveEndTurn}) {
				return
			}
		case "game_state":
			var state game.StateView
			if err := json.Unmarshal(data, &state); err != nil {
				continue
			}
			myTurn = state.YourTurn && state.Status == game.StatusInProgress.String()
			if !myTurn {
				continue
			}

			// Human-like delay before acting
			delayMS := params.DelayMinMS
			if params.DelayMaxMS > params.DelayMinMS {
				delayMS = params.DelayMinMS + rand.Intn(params.DelayMaxMS-params.DelayMinMS)
			}
			time.Sleep(time.Duration(delayMS) * time.Millisecond)

			m := Decide(&state, params, rand.Intn)
			slog.Debug("bot move", "tag", "ai", "name", params.Name, "action", m.Action, "card", m.CardID, "target", m.TargetID)
			if !submit(m) {
				return
			}
		}
	}
}
