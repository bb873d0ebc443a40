package server

import (
	"log"
	"time"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/apperrors"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/bot"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/room"
)

// Handler dispatches decoded commands. Every rejection is resolved
// synchronously and answered only to the originating connection.
type Handler struct {
	server *Server
}

// NewHandler builds the command dispatcher.
func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

// Handle routes one inbound message.
func (h *Handler) Handle(client *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgPing:
		h.handlePing(client, msg)

	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgLeaveRoom:
		h.handleLeaveRoom(client)
	case protocol.MsgStartGame:
		h.handleStartGame(client)
	case protocol.MsgAddAI:
		h.handleAddAI(client, msg)
	case protocol.MsgRemoveAI:
		h.handleRemoveAI(client, msg)
	case protocol.MsgKickPlayer:
		h.handleKickPlayer(client, msg)

	case protocol.MsgSelectContract:
		h.handleSelectContract(client, msg)
	case protocol.MsgPlayCard:
		h.handlePlayCard(client, msg)
	case protocol.MsgDoubleKing:
		h.handleDoubleKing(client)
	case protocol.MsgGetState:
		h.handleGetState(client)

	default:
		log.Printf("unknown message type: %s", msg.Type)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError answers a rejected command to its originator.
func (h *Handler) sendError(client *Client, err error) {
	client.SendMessage(protocol.NewErrorMessageWithText(apperrors.CodeOf(err), err.Error()))
}

func (h *Handler) handlePing(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

func (h *Handler) handleCreateRoom(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	client.SetName(payload.Name)

	r, err := h.server.roomManager.Create(client, room.SettingsFromPayload(payload.Settings))
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		Room: r.Info(),
	}))
	h.server.snapshotRoom(r.ID)
}

func (h *Handler) handleJoinRoom(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	client.SetName(payload.Name)

	r, err := h.server.roomManager.Join(client, payload.RoomID, payload.Spectator)
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		Room: r.Info(),
	}))
	h.server.snapshotRoom(r.ID)
}

func (h *Handler) handleLeaveRoom(client *Client) {
	roomID := client.GetRoom()
	if roomID == "" {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	h.server.roomManager.Leave(client)
	if _, ok := h.server.roomManager.Get(roomID); ok {
		h.server.snapshotRoom(roomID)
	} else {
		h.server.dropRoomSnapshot(roomID)
	}
}

func (h *Handler) handleStartGame(client *Client) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	if err := r.Start(client.ID); err != nil {
		h.sendError(client, err)
		return
	}
	h.server.snapshotRoom(r.ID)
}

func (h *Handler) handleAddAI(client *Client, msg *protocol.Message) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	payload, err := protocol.ParsePayload[protocol.AddAIPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	difficulty := bot.DifficultyFromString(payload.Difficulty)
	if err := r.AddAI(client.ID, difficulty); err != nil {
		h.sendError(client, err)
		return
	}
	h.server.snapshotRoom(r.ID)
}

func (h *Handler) handleRemoveAI(client *Client, msg *protocol.Message) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	payload, err := protocol.ParsePayload[protocol.RemoveAIPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	pos, err := engine.PositionFromString(payload.Position)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if err := r.RemoveAI(client.ID, pos); err != nil {
		h.sendError(client, err)
		return
	}
	h.server.snapshotRoom(r.ID)
}

func (h *Handler) handleKickPlayer(client *Client, msg *protocol.Message) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	payload, err := protocol.ParsePayload[protocol.KickPlayerPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if err := r.Kick(client.ID, payload.PlayerID); err != nil {
		h.sendError(client, err)
		return
	}
	h.server.roomManager.Unregister(payload.PlayerID)
	h.server.snapshotRoom(r.ID)
}

func (h *Handler) handleSelectContract(client *Client, msg *protocol.Message) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	payload, err := protocol.ParsePayload[protocol.SelectContractPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if err := r.HandleSelectContract(client.ID, payload.Contract); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handlePlayCard(client *Client, msg *protocol.Message) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if err := r.HandlePlayCard(client.ID, payload.CardID); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handleDoubleKing(client *Client) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	if err := r.HandleDoubleKing(client.ID); err != nil {
		h.sendError(client, err)
	}
}

func (h *Handler) handleGetState(client *Client) {
	r, ok := h.server.roomManager.RoomFor(client.ID)
	if !ok {
		h.sendError(client, apperrors.ErrNotInRoom)
		return
	}
	if err := r.SendState(client.ID); err != nil {
		h.sendError(client, err)
	}
}
