package protocol

// Error codes carried by error payloads.
const (
	ErrCodeUnknown = iota + 1000
	ErrCodeInvalidMsg
	ErrCodeRoomNotFound
	ErrCodeRoomFull
	ErrCodeNotInRoom
	ErrCodeGameInProgress
	ErrCodeGameNotStarted
	ErrCodeNotHost
	ErrCodeInsufficientPlayers
	ErrCodeInvalidPhase
	ErrCodeNotYourTurn
	ErrCodeCardNotInHand
	ErrCodeIllegalMove
	ErrCodeContractUsed
	ErrCodeSpectatorsDisabled
	ErrCodePositionOccupied
)

// ErrorMessages maps error codes to their default client-facing text.
var ErrorMessages = map[int]string{
	ErrCodeUnknown:             "unknown error",
	ErrCodeInvalidMsg:          "malformed message",
	ErrCodeRoomNotFound:        "room not found",
	ErrCodeRoomFull:            "room is full",
	ErrCodeNotInRoom:           "you are not in a room",
	ErrCodeGameInProgress:      "game already in progress",
	ErrCodeGameNotStarted:      "game has not started",
	ErrCodeNotHost:             "only the host can do that",
	ErrCodeInsufficientPlayers: "not enough players to start",
	ErrCodeInvalidPhase:        "operation not valid in current phase",
	ErrCodeNotYourTurn:         "it is not your turn",
	ErrCodeCardNotInHand:       "card is not in your hand",
	ErrCodeIllegalMove:         "illegal move",
	ErrCodeContractUsed:        "contract already used this kingdom",
	ErrCodeSpectatorsDisabled:  "spectators are not allowed in this room",
	ErrCodePositionOccupied:    "position already occupied",
}
