package lobby

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"twilight-battle-server/ai"
	"twilight-battle-server/config"
	"twilight-battle-server/game"
	"twilight-battle-server/roomerrors"
	"twilight-battle-server/storage"
	"twilight-battle-server/wsutil"
)

// BotIDPrefix marks bot seats.
const BotIDPrefix = "bot:"

type seat struct {
	send chan []byte
	bot  bool
}

// Table owns one game.Room and applies intents to it from a single goroutine.
type Table struct {
	Code    string
	Intents chan Intent
	Done    chan struct{}

	cfg   *config.Config
	room  *game.Room
	seats map[string]*seat
	users map[string]string // player id -> auth user id, kept after the seat leaves

	// turnEndsAt is when the current turn ends (zero = timer disabled).
	turnEndsAt      time.Time
	turnTimerCancel chan struct{}
	turnGen         int
	turnLimit       time.Duration

	forfeit bool // the last elimination was a player leaving
	closed  bool

	info       atomic.Pointer[RoomInfo]
	lastActive atomic.Int64
	quit       chan struct{}
	closeOnce  sync.Once

	// OnFinish is called once from the worker when a match ends. Optional.
	OnFinish func(storage.MatchRecord)
}

// NewTable wraps room. Call Run in its own goroutine to start processing intents.
func NewTable(code string, cfg *config.Config, room *game.Room) *Table {
	t := &Table{
		Code:      code,
		Intents:   make(chan Intent, 64),
		Done:      make(chan struct{}),
		cfg:       cfg,
		room:      room,
		seats:     make(map[string]*seat),
		users:     make(map[string]string),
		turnLimit: time.Duration(cfg.TurnLimitSec) * time.Second,
		quit:      make(chan struct{}),
	}
	t.lastActive.Store(time.Now().UnixNano())
	t.publish()
	return t
}

// Run is the table's main loop. It processes intents sequentially until the match
// ends, every human leaves or Close is called.
func (t *Table) Run() {
	defer close(t.Done)
	defer t.cancelTurnTimer()
	defer t.releaseBots()

	for {
		select {
		case <-t.quit:
			t.broadcast(map[string]string{"type": "room_closed", "roomId": t.Code})
			slog.Info("room closed", "tag", "lobby", "room", t.Code)
			return
		case in := <-t.Intents:
			t.handle(in)
		}
		t.lastActive.Store(time.Now().UnixNano())
		t.publish()
		if t.closed {
			return
		}
	}
}

// Submit queues in for the worker. It fails once the table has stopped.
func (t *Table) Submit(in Intent) error {
	select {
	case t.Intents <- in:
		return nil
	case <-t.Done:
		return roomerrors.ErrRoomClosed
	}
}

// Do submits in and waits for the worker's verdict. Used for join, start and add-bot.
func (t *Table) Do(in Intent) error {
	in.Reply = make(chan error, 1)
	if err := t.Submit(in); err != nil {
		return err
	}
	select {
	case err := <-in.Reply:
		return err
	case <-t.Done:
		return roomerrors.ErrRoomClosed
	}
}

// Close stops the worker. Safe to call more than once.
func (t *Table) Close() {
	t.closeOnce.Do(func() { close(t.quit) })
}

// Info returns the latest public summary. Safe for concurrent use.
func (t *Table) Info() RoomInfo { return *t.info.Load() }

// LastActive returns when the table last processed an intent.
func (t *Table) LastActive() time.Time { return time.Unix(0, t.lastActive.Load()) }

func (t *Table) publish() {
	t.info.Store(&RoomInfo{
		ID:         t.Code,
		Players:    len(t.room.Order),
		MaxPlayers: t.room.Rules.MaxPlayers,
		Started:    t.room.Status != game.StatusLobby,
		Status:     t.room.Status.String(),
	})
}

func (t *Table) handle(in Intent) {
	switch in.Type {
	case IntentJoin:
		reply(in, t.join(in))
	case IntentStart:
		reply(in, t.start())
	case IntentAddBot:
		reply(in, t.addBot())
	case IntentAction:
		t.action(in.PlayerID, in.Action, in.Params)
	case IntentState:
		t.sendState(in.PlayerID)
	case IntentLeave:
		t.leave(in.PlayerID)
	case IntentTurnTimeout:
		t.turnTimeout(in.turn)
	}
}

func reply(in Intent, err error) {
	if in.Reply != nil {
		in.Reply <- err
	}
}

func (t *Table) join(in Intent) error {
	p, err := t.room.Join(in.PlayerID, in.Name)
	if err != nil {
		return err
	}
	t.seats[p.ID] = &seat{send: in.Send}
	if in.UserID != "" {
		t.users[p.ID] = in.UserID
	}
	slog.Info("player joined", "tag", "lobby", "room", t.Code, "player", p.ID, "name", p.Name)
	wsutil.SendJSON(in.Send, JoinedMsg{Type: "joined", RoomID: t.Code, PlayerID: p.ID})
	t.announceJoin(p)
	return nil
}

func (t *Table) addBot() error {
	if len(t.cfg.BotProfiles) == 0 {
		return roomerrors.ErrNoBotProfiles
	}
	params := t.cfg.BotProfiles[rand.Intn(len(t.cfg.BotProfiles))]
	id := BotIDPrefix + uuid.NewString()[:8]
	p, err := t.room.Join(id, params.Name)
	if err != nil {
		return err
	}
	p.Bot = true
	send := make(chan []byte, 64)
	t.seats[id] = &seat{send: send, bot: true}
	go ai.Run(send, t.botSubmit(id), &params)
	slog.Info("bot joined", "tag", "lobby", "room", t.Code, "player", id, "name", params.Name)
	t.announceJoin(p)
	return nil
}

func (t *Table) botSubmit(playerID string) func(ai.Move) bool {
	return func(m ai.Move) bool {
		return t.Submit(Intent{
			Type:     IntentAction,
			PlayerID: playerID,
			Action:   m.Action,
			Params:   ActionParams{CardID: m.CardID, TargetID: m.TargetID, To: m.To},
		}) == nil
	}
}

// releaseBots closes bot channels so their goroutines exit with the table.
func (t *Table) releaseBots() {
	for id, s := range t.seats {
		if s.bot {
			close(s.send)
			delete(t.seats, id)
		}
	}
}

func (t *Table) announceJoin(p *game.Player) {
	roster := make([]RosterEntry, 0, len(t.room.Order))
	for _, id := range t.room.Order {
		rp := t.room.Players[id]
		roster = append(roster, RosterEntry{ID: rp.ID, Name: rp.Name, Bot: rp.Bot})
	}
	t.broadcast(PlayerJoinedMsg{Type: "player_joined", PlayerID: p.ID, PlayerName: p.Name, Players: roster})
	t.broadcastState()
}

func (t *Table) start() error {
	if err := t.room.Start(); err != nil {
		return err
	}
	slog.Info("game started", "tag", "lobby", "room", t.Code, "players", len(t.room.Order))
	t.broadcast(map[string]string{"type": "game_started", "roomId": t.Code})
	t.startTurnTimer()
	t.broadcastState()
	return nil
}

func (t *Table) action(playerID, action string, params ActionParams) {
	before := t.room.CurrentPlayerID()
	t.forfeit = false
	res, err := apply(t.room, playerID, action, params)
	if err != nil {
		t.sendActionError(playerID, action, err)
		return
	}
	t.broadcastResult(playerID, canonical(action), res)
	t.afterChange(before)
}

// afterChange finishes the match, or re-arms the clock when the turn moved, then
// pushes fresh state to every seat.
func (t *Table) afterChange(before string) {
	if t.room.Finished() {
		reason := storage.EndCompleted
		if t.forfeit {
			reason = storage.EndForfeit
		}
		t.finish(reason)
		return
	}
	if t.room.CurrentPlayerID() != before {
		t.startTurnTimer()
	}
	t.broadcastState()
}

func (t *Table) leave(playerID string) {
	if _, ok := t.seats[playerID]; !ok {
		return
	}
	before := t.room.CurrentPlayerID()
	status := t.room.Status
	res, err := t.room.Leave(playerID)
	delete(t.seats, playerID)
	if err != nil {
		slog.Warn("leave failed", "tag", "lobby", "room", t.Code, "player", playerID, "err", err)
		return
	}
	t.forfeit = res.Forfeit
	slog.Info("player left", "tag", "lobby", "room", t.Code, "player", playerID, "forfeit", res.Forfeit)
	t.broadcast(PlayerLeftMsg{Type: "player_left", PlayerID: playerID, Forfeit: res.Forfeit})

	switch {
	case status == game.StatusInProgress:
		t.afterChange(before)
		if !t.closed && t.humans() == 0 {
			t.finish(storage.EndAbandoned)
		}
	case t.humans() == 0:
		t.closed = true
	default:
		t.broadcastState()
	}
}

func (t *Table) humans() int {
	n := 0
	for _, s := range t.seats {
		if !s.bot {
			n++
		}
	}
	return n
}

func (t *Table) finish(reason string) {
	t.cancelTurnTimer()
	rec := t.summary(reason, time.Now())
	winnerName := ""
	if p, ok := t.room.Players[rec.WinnerID]; ok {
		winnerName = p.Name
	}
	t.broadcastState()
	t.broadcast(GameOverMsg{Type: "game_over", Winner: rec.WinnerID, WinnerName: winnerName, Reason: reason, Players: rec.Players})
	slog.Info("match finished", "tag", "lobby", "room", t.Code, "winner", rec.WinnerID, "reason", reason, "turns", rec.Turns)
	if t.OnFinish != nil {
		t.OnFinish(rec)
	}
	t.closed = true
}

// summary builds the history record. Players still alive share first place unless
// there is a winner; eliminated players rank in reverse order of death.
func (t *Table) summary(reason string, now time.Time) storage.MatchRecord {
	place := make(map[string]int, len(t.room.Order))
	next := 1
	if t.room.Winner != "" {
		place[t.room.Winner] = 1
		next = 2
	} else if living := t.room.Living(); len(living) > 0 {
		for _, p := range living {
			place[p.ID] = 1
		}
		next = len(living) + 1
	}
	for i := len(t.room.Eliminated) - 1; i >= 0; i-- {
		place[t.room.Eliminated[i]] = next
		next++
	}

	rec := storage.MatchRecord{
		ID:        uuid.NewString(),
		RoomCode:  t.Code,
		StartedAt: t.room.StartedAt,
		EndedAt:   now,
		Turns:     t.room.TimeCycle,
		WinnerID:  t.room.Winner,
		EndReason: reason,
		Players:   make([]storage.MatchPlayer, 0, len(t.room.Order)),
	}
	for _, id := range t.room.Order {
		p := t.room.Players[id]
		rec.Players = append(rec.Players, storage.MatchPlayer{
			PlayerID: id,
			UserID:   t.users[id],
			Name:     p.Name,
			Bot:      p.Bot,
			Place:    place[id],
		})
	}
	return rec
}

// cancelTurnTimer closes the turn timer cancel channel so the timer goroutine exits. Safe if already nil.
func (t *Table) cancelTurnTimer() {
	if t.turnTimerCancel != nil {
		close(t.turnTimerCancel)
		t.turnTimerCancel = nil
	}
	t.turnEndsAt = time.Time{}
}

// startTurnTimer starts a timer for the current turn. If it expires, IntentTurnTimeout is sent.
// No-op if the turn limit is disabled. Cancels any existing turn timer first.
func (t *Table) startTurnTimer() {
	if t.turnLimit <= 0 {
		return
	}
	t.cancelTurnTimer()
	t.turnGen++
	t.turnEndsAt = time.Now().Add(t.turnLimit)
	t.turnTimerCancel = make(chan struct{})
	cancel, gen, limit := t.turnTimerCancel, t.turnGen, t.turnLimit
	go func() {
		select {
		case <-time.After(limit):
			select {
			case t.Intents <- Intent{Type: IntentTurnTimeout, turn: gen}:
			case <-t.Done:
			}
		case <-cancel:
		}
	}()
}

func (t *Table) turnTimeout(gen int) {
	if gen != t.turnGen || t.room.Status != game.StatusInProgress {
		return
	}
	pid := t.room.CurrentPlayerID()
	slog.Info("turn timed out", "tag", "lobby", "room", t.Code, "player", pid)
	t.broadcast(map[string]string{"type": "turn_timeout", "playerId": pid})
	t.action(pid, ActEndTurn, ActionParams{})
}

func (t *Table) sendActionError(playerID, action string, err error) {
	s, ok := t.seats[playerID]
	if !ok {
		return
	}
	slog.Debug("action rejected", "tag", "lobby", "room", t.Code, "player", playerID, "action", action, "err", err)
	wsutil.SendJSON(s.send, ActionErrorMsg{Type: "action_error", Action: action, Code: ErrorCode(err), Message: err.Error()})
}

// broadcastResult sends res to every seat. A drawn card is only shown to the drawer.
func (t *Table) broadcastResult(playerID, action string, res any) {
	msg := ActionSuccessMsg{Type: "action_success", PlayerID: playerID, Action: action, Result: res}
	d, ok := res.(game.DrawResult)
	if !ok {
		t.broadcast(msg)
		return
	}
	public := msg
	public.Result = d.Public()
	for id, s := range t.seats {
		if id == playerID {
			wsutil.SendJSON(s.send, msg)
		} else {
			wsutil.SendJSON(s.send, public)
		}
	}
}

func (t *Table) broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshaling broadcast", "tag", "lobby", "err", err)
		return
	}
	for _, s := range t.seats {
		wsutil.SafeSend(s.send, data)
	}
}

func (t *Table) stateFor(playerID string) game.StateView {
	sv := t.room.StateFor(playerID)
	if playerID == sv.CurrentPlayer && !t.turnEndsAt.IsZero() {
		sv.TurnEndsAtUnixMs = t.turnEndsAt.UnixMilli()
		sv.TurnCountdownShowSec = t.cfg.TurnCountdownShowSec
	}
	return sv
}

func (t *Table) broadcastState() {
	for id, s := range t.seats {
		data, err := json.Marshal(t.stateFor(id))
		if err != nil {
			slog.Error("marshaling game state", "tag", "lobby", "err", err)
			continue
		}
		wsutil.SafeSend(s.send, data)
	}
}

func (t *Table) sendState(playerID string) {
	s, ok := t.seats[playerID]
	if !ok {
		return
	}
	wsutil.SendJSON(s.send, t.stateFor(playerID))
}
