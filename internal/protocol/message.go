package protocol

import "encoding/json"

// Message is the wire envelope. The transport delivers whole, ordered
// messages; everything above it speaks this envelope.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType tags a message.
type MessageType string

// Client → server message types.
const (
	MsgPing MessageType = "ping"

	// Room operations
	MsgCreateRoom MessageType = "create_room"
	MsgJoinRoom   MessageType = "join_room"
	MsgLeaveRoom  MessageType = "leave_room"
	MsgStartGame  MessageType = "start_game"
	MsgAddAI      MessageType = "add_ai"
	MsgRemoveAI   MessageType = "remove_ai"
	MsgKickPlayer MessageType = "kick_player"

	// Game operations
	MsgSelectContract MessageType = "select_contract"
	MsgPlayCard       MessageType = "play_card"
	MsgDoubleKing     MessageType = "double_king"
	MsgGetState       MessageType = "get_state"
)

// Server → client message types.
const (
	MsgConnected MessageType = "connected"
	MsgPong      MessageType = "pong"

	// Room lifecycle
	MsgRoomCreated  MessageType = "room_created"
	MsgRoomJoined   MessageType = "room_joined"
	MsgRoomUpdated  MessageType = "room_updated"
	MsgPlayerJoined MessageType = "player_joined"
	MsgPlayerLeft   MessageType = "player_left"

	// Game flow
	MsgGameStarted      MessageType = "game_started"
	MsgContractSelected MessageType = "contract_selected"
	MsgCardPlayed       MessageType = "card_played"
	MsgAICardPlayed     MessageType = "ai_card_played"
	MsgTrickComplete    MessageType = "trick_complete"
	MsgRoundResult      MessageType = "round_result"
	MsgGameState        MessageType = "game_state"
	MsgGameOver         MessageType = "game_over"

	MsgError MessageType = "error"
)
