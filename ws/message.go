package ws

import (
	"encoding/json"

	"twilight-battle-server/lobby"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg is sent by the client, before joining, with a Neon Auth JWT.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// JoinRoomMsg takes a seat in an existing room. An empty RoomID creates a new one.
type JoinRoomMsg struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

// PlayerActionMsg carries one game action for the room the client sits in.
type PlayerActionMsg struct {
	Type   string             `json:"type"`
	Action string             `json:"action"`
	Params lobby.ActionParams `json:"params"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client request is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// AuthenticatedMsg confirms the identity attached to the connection.
type AuthenticatedMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// LeftRoomMsg confirms leave_room to the leaving client.
type LeftRoomMsg struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}
