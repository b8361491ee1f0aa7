package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"twilight-battle-server/lobby"
	"twilight-battle-server/roomerrors"
	"twilight-battle-server/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and a lobby table.
// Its room fields are only touched from the ReadPump goroutine.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Name     string
	UserID   string
	Table    *lobby.Table
	PlayerID string
}

// ReadPump pumps messages from the websocket connection to the client's table.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.leaveRoom()
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("bad_request", "Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "join_room":
		c.handleJoinRoom(envelope.Raw)
	case "leave_room":
		c.handleLeaveRoom()
	case "start_game":
		c.handleTableRequest(lobby.IntentStart)
	case "add_bot":
		c.handleTableRequest(lobby.IntentAddBot)
	case "player_action":
		c.handlePlayerAction(envelope.Raw)
	case "get_game_state":
		c.handleGetState()
	default:
		c.sendError("unknown_message", "Unknown message type: "+envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	if c.Hub.Identity == nil {
		c.sendError("auth_disabled", "Authentication is not configured.")
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Token == "" {
		c.sendError("bad_request", "Invalid auth message.")
		return
	}
	id, err := c.Hub.Identity.Identify(msg.Token)
	if err != nil {
		slog.Debug("auth rejected", "tag", "ws", "err", err)
		c.sendError("unauthorized", "Invalid or expired token.")
		return
	}
	c.UserID = id.UserID
	if c.Name == "" {
		c.Name = id.Name
	}
	wsutil.SendJSON(c.Send, AuthenticatedMsg{Type: "authenticated", UserID: id.UserID, Name: id.Name})
}

// room returns the client's table, forgetting it once the table has stopped.
func (c *Client) room() *lobby.Table {
	if c.Table == nil {
		return nil
	}
	select {
	case <-c.Table.Done:
		c.Table, c.PlayerID = nil, ""
		return nil
	default:
		return c.Table
	}
}

func (c *Client) handleJoinRoom(raw json.RawMessage) {
	if c.room() != nil {
		c.sendErr(roomerrors.ErrAlreadyInRoom)
		return
	}
	var msg JoinRoomMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("bad_request", "Invalid join_room message.")
		return
	}

	name := strings.TrimSpace(msg.Name)
	if name == "" {
		name = c.Name
	}
	if n := utf8.RuneCountInString(name); n < 1 || n > c.Hub.Config.MaxNameLength {
		c.sendError("bad_request", fmt.Sprintf("Name must be between 1 and %d characters.", c.Hub.Config.MaxNameLength))
		return
	}

	var table *lobby.Table
	if msg.RoomID == "" {
		table = c.Hub.Rooms.Create()
	} else {
		var err error
		if table, err = c.Hub.Rooms.Get(msg.RoomID); err != nil {
			c.sendErr(err)
			return
		}
	}

	playerID := uuid.NewString()
	err := table.Do(lobby.Intent{
		Type:     lobby.IntentJoin,
		PlayerID: playerID,
		UserID:   c.UserID,
		Name:     name,
		Send:     c.Send,
	})
	if err != nil {
		c.sendErr(err)
		return
	}
	c.Name = name
	c.Table = table
	c.PlayerID = playerID
}

func (c *Client) handleLeaveRoom() {
	table := c.room()
	if table == nil {
		c.sendErr(roomerrors.ErrNotInRoom)
		return
	}
	c.leaveRoom()
	wsutil.SendJSON(c.Send, LeftRoomMsg{Type: "left_room", RoomID: table.Code})
}

// leaveRoom gives up the seat, if any. Called on leave_room and on disconnect.
func (c *Client) leaveRoom() {
	table := c.room()
	if table == nil {
		return
	}
	if err := table.Submit(lobby.Intent{Type: lobby.IntentLeave, PlayerID: c.PlayerID}); err != nil && !errors.Is(err, roomerrors.ErrRoomClosed) {
		slog.Warn("leave failed", "tag", "ws", "room", table.Code, "err", err)
	}
	c.Table, c.PlayerID = nil, ""
}

func (c *Client) handleTableRequest(typ lobby.IntentType) {
	table := c.room()
	if table == nil {
		c.sendErr(roomerrors.ErrNotInRoom)
		return
	}
	if err := table.Do(lobby.Intent{Type: typ, PlayerID: c.PlayerID}); err != nil {
		c.sendErr(err)
	}
}

func (c *Client) handlePlayerAction(raw json.RawMessage) {
	table := c.room()
	if table == nil {
		c.sendErr(roomerrors.ErrNotInRoom)
		return
	}
	var msg PlayerActionMsg
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Action == "" {
		c.sendError("bad_request", "Invalid player_action message.")
		return
	}
	err := table.Submit(lobby.Intent{
		Type:     lobby.IntentAction,
		PlayerID: c.PlayerID,
		Action:   msg.Action,
		Params:   msg.Params,
	})
	if err != nil {
		c.sendErr(err)
	}
}

func (c *Client) handleGetState() {
	table := c.room()
	if table == nil {
		c.sendErr(roomerrors.ErrNotInRoom)
		return
	}
	if err := table.Submit(lobby.Intent{Type: lobby.IntentState, PlayerID: c.PlayerID}); err != nil {
		c.sendErr(err)
	}
}

func (c *Client) sendErr(err error) {
	c.sendError(lobby.ErrorCode(err), err.Error())
}

func (c *Client) sendError(code, message string) {
	wsutil.SendJSON(c.Send, ErrorMsg{Type: "error", Code: code, Message: message})
}
