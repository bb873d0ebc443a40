package apperrors

import (
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

// GameError is an error with a protocol error code attached. Rejections are
// no-ops: a command failing with a GameError has not mutated any state.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Predefined errors shared by the engine, rooms and the boundary handler.
var (
	ErrRoomNotFound        = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "room not found"}
	ErrRoomFull            = &GameError{Code: protocol.ErrCodeRoomFull, Message: "room is full"}
	ErrNotInRoom           = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "you are not in a room"}
	ErrGameInProgress      = &GameError{Code: protocol.ErrCodeGameInProgress, Message: "game already in progress"}
	ErrGameNotStarted      = &GameError{Code: protocol.ErrCodeGameNotStarted, Message: "game has not started"}
	ErrNotHost             = &GameError{Code: protocol.ErrCodeNotHost, Message: "only the host can do that"}
	ErrInsufficientPlayers = &GameError{Code: protocol.ErrCodeInsufficientPlayers, Message: "need four occupants to start"}
	ErrInvalidPhase        = &GameError{Code: protocol.ErrCodeInvalidPhase, Message: "operation not valid in current phase"}
	ErrNotYourTurn         = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "it is not your turn"}
	ErrCardNotInHand       = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: "card is not in your hand"}
	ErrIllegalMove         = &GameError{Code: protocol.ErrCodeIllegalMove, Message: "illegal move"}
	ErrContractAlreadyUsed = &GameError{Code: protocol.ErrCodeContractUsed, Message: "contract already used this kingdom"}
	ErrSpectatorsDisabled  = &GameError{Code: protocol.ErrCodeSpectatorsDisabled, Message: "spectators are not allowed in this room"}
	ErrPositionOccupied    = &GameError{Code: protocol.ErrCodePositionOccupied, Message: "position already occupied"}
)

// CodeOf extracts the protocol error code from err, falling back to the
// generic code for errors that did not originate as a GameError.
func CodeOf(err error) int {
	if ge, ok := err.(*GameError); ok {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
