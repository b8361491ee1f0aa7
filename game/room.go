package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"twilight-battle-server/config"
)

// Status is the room lifecycle state.
type Status int

const (
	StatusLobby Status = iota
	StatusInProgress
	StatusFinished
)

// String returns the protocol string for a Status.
func (s Status) String() string {
	switch s {
	case StatusLobby:
		return "lobby"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// TimeOfDay is the environmental phase shared by the whole room.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// Action is a per-turn budget category.
type Action string

const (
	ActionDraw      Action = "draw"
	ActionPlay      Action = "play"
	ActionMove      Action = "move"
	ActionFlip      Action = "flip"
	ActionAttack    Action = "attack"
	ActionSpell     Action = "spell"
	ActionRitual    Action = "ritual"
	ActionSwap      Action = "swap"
	ActionMageBlock Action = "mage-block"
	ActionOracle    Action = "oracle"
	ActionProphecy  Action = "prophecy"
)

// SpellProvider resolves spell templates to their effects. Implemented by spell.Registry;
// declared here so game does not import the spell package.
type SpellProvider interface {
	GetSpell(id string) (SpellDef, bool)
}

// Room is the authoritative state of one game. It is not safe for concurrent use:
// callers apply intents one at a time.
type Room struct {
	ID        string
	Rules     config.RulesConfig
	Order     []string
	Players   map[string]*Player
	Deck      *Pile
	Graveyard *Pile
	Status    Status

	CurrentTurn int
	TimeOfDay   TimeOfDay
	TimeCycle   int
	Winner      string
	CreatedAt   time.Time
	StartedAt   time.Time

	// Eliminated lists player ids in the order they died.
	Eliminated []string

	used          map[string]map[Action]bool
	acted         map[string]bool
	embargoLifted bool

	spells SpellProvider
	rng    *rand.Rand
	newID  func() string
}

// Option configures a Room.
type Option func(*Room)

// WithRand sets the source used for shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(r *Room) { r.rng = rng }
}

// WithIDGenerator sets the card instance id generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Room) { r.newID = fn }
}

// WithSpells sets the spell registry used by CastSpell.
func WithSpells(sp SpellProvider) Option {
	return func(r *Room) { r.spells = sp }
}

// NewRoom creates an empty room in the lobby state with a freshly shuffled deck.
func NewRoom(id string, rules config.RulesConfig, opts ...Option) *Room {
	r := &Room{
		ID:        id,
		Rules:     rules,
		Players:   make(map[string]*Player),
		Graveyard: &Pile{},
		Status:    StatusLobby,
		TimeOfDay: Day,
		CreatedAt: time.Now(),
		used:      make(map[string]map[Action]bool),
		acted:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	r.Deck = BuildDeck(r.rng, r.newID)
	return r
}

// Player returns the seat for id.
func (r *Room) Player(id string) (*Player, bool) {
	p, ok := r.Players[id]
	return p, ok
}

// CurrentPlayerID returns the id of the player whose turn it is, or "" outside a game.
func (r *Room) CurrentPlayerID() string {
	if r.Status != StatusInProgress || len(r.Order) == 0 {
		return ""
	}
	return r.Order[r.CurrentTurn]
}

// Living returns the seats that are still alive, in turn order.
func (r *Room) Living() []*Player {
	out := make([]*Player, 0, len(r.Order))
	for _, id := range r.Order {
		if p := r.Players[id]; !p.Dead {
			out = append(out, p)
		}
	}
	return out
}

// EmbargoLifted reports whether attacks are allowed yet.
func (r *Room) EmbargoLifted() bool { return r.embargoLifted }

// Used reports whether the player has already spent the category this turn.
func (r *Room) Used(playerID string, a Action) bool {
	return r.used[playerID][a]
}

// Join seats a player and deals the initial hand from the deck.
func (r *Room) Join(playerID, name string) (*Player, error) {
	if r.Status != StatusLobby {
		return nil, ErrAlreadyStarted
	}
	if _, ok := r.Players[playerID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadySeated, playerID)
	}
	if len(r.Order) >= r.Rules.MaxPlayers {
		return nil, fmt.Errorf("%w: %d seats", ErrRoomFull, r.Rules.MaxPlayers)
	}
	p := NewPlayer(playerID, name, r.Rules.StartingLife)
	for i := 0; i < r.Rules.InitialHandSize; i++ {
		c, ok := r.Deck.Draw()
		if !ok {
			break
		}
		p.Hand = append(p.Hand, c)
	}
	r.Players[playerID] = p
	r.Order = append(r.Order, playerID)
	r.used[playerID] = make(map[Action]bool)
	return p, nil
}

// Start moves the room from lobby to in-progress. The first seat plays first.
func (r *Room) Start() error {
	switch r.Status {
	case StatusInProgress:
		return ErrAlreadyStarted
	case StatusFinished:
		return ErrGameFinished
	}
	if len(r.Order) < r.Rules.MinPlayers {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPlayers, len(r.Order), r.Rules.MinPlayers)
	}
	r.Status = StatusInProgress
	r.CurrentTurn = 0
	r.StartedAt = time.Now()
	return nil
}

// LeaveResult describes what happened when a player left.
type LeaveResult struct {
	PlayerID string      `json:"playerId"`
	Forfeit  bool        `json:"forfeit"`
	Turn     *TurnResult `json:"turn,omitempty"`
	Winner   string      `json:"winner,omitempty"`
}

// Leave removes a seat. In the lobby the seat and its hand go back; during a game it
// is a forfeit through the death processor, passing the turn if it was theirs.
func (r *Room) Leave(playerID string) (LeaveResult, error) {
	p, ok := r.Players[playerID]
	if !ok {
		return LeaveResult{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	res := LeaveResult{PlayerID: playerID}
	switch r.Status {
	case StatusLobby:
		for _, c := range p.Hand {
			r.Deck.PushBottom(c)
		}
		r.Deck.Shuffle(r.rng)
		delete(r.Players, playerID)
		delete(r.used, playerID)
		for i, id := range r.Order {
			if id == playerID {
				r.Order = append(r.Order[:i], r.Order[i+1:]...)
				break
			}
		}
	case StatusInProgress:
		if p.Dead {
			return res, nil
		}
		res.Forfeit = true
		wasCurrent := r.CurrentPlayerID() == playerID
		r.kill(p)
		if wasCurrent && r.Status == StatusInProgress {
			tr := r.advance()
			res.Turn = &tr
		}
		res.Winner = r.Winner
	}
	return res, nil
}

// Finished reports whether the game is over.
func (r *Room) Finished() bool { return r.Status == StatusFinished }

// Empty reports whether the room has no seat that could still play.
func (r *Room) Empty() bool {
	return len(r.Order) == 0 || len(r.Living()) == 0
}
