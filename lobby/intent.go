package lobby

import "twilight-battle-server/game"

// IntentType enumerates what a table's worker can be asked to do.
type IntentType int

const (
	IntentJoin IntentType = iota
	IntentStart
	IntentAction
	IntentState
	IntentLeave
	IntentAddBot
	IntentTurnTimeout // internal: fired when the turn clock runs out
)

// Player action names accepted in an IntentAction.
const (
	ActDraw      = "draw"
	ActPlay      = "play"
	ActMove      = "move"
	ActSwap      = "swap"
	ActFlip      = "flip"
	ActAttack    = "attack"
	ActEquip     = "equip"
	ActSpell     = "spell"
	ActRitual    = "ritual"
	ActRevive    = "revive"
	ActMageBlock = "mage_block"
	ActProphecy  = "prophecy"
	ActOracle    = "oracle"
	ActEndTurn   = "end_turn"
)

// actionAliases maps the older client action names onto the current ones.
var actionAliases = map[string]string{
	"play_card":  ActPlay,
	"move_card":  ActMove,
	"flip_card":  ActFlip,
	"cast_spell": ActSpell,
}

// ActionParams is the union of the parameters player actions take. Each action reads
// only the fields it needs.
type ActionParams struct {
	CardID       string       `json:"cardId,omitempty"`
	CreatureID   string       `json:"creatureId,omitempty"`
	TargetID     string       `json:"targetId,omitempty"`
	TargetCardID string       `json:"targetCardId,omitempty"`
	From         game.SlotRef `json:"from"`
	To           game.SlotRef `json:"to"`
}

// Intent is a request sent into a table's Intents channel.
type Intent struct {
	Type     IntentType
	PlayerID string
	UserID   string      // auth user id, empty for guests and bots
	Name     string      // display name (join)
	Send     chan []byte // outbound channel of the joining client
	Action   string
	Params   ActionParams

	// Reply receives the outcome of join, start and add-bot intents. Optional.
	Reply chan error

	turn int // turn clock generation the timeout was armed for
}
