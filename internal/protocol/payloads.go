package protocol

// Cards travel on the wire as their stable short identity, e.g. "HK" for
// the king of hearts, "DT" for the ten of diamonds.

// --- client request payloads ---

// PingPayload carries the client's clock for latency measurement.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// RoomSettings is the declared settings surface of a room.
type RoomSettings struct {
	AIDifficulty      string `json:"ai_difficulty"`      // easy/medium/hard/elite
	SpectatorsAllowed bool   `json:"spectators_allowed"` //
	Speed             string `json:"speed"`              // slow/normal/fast
}

// CreateRoomPayload requests a new room.
type CreateRoomPayload struct {
	Name     string       `json:"name"`
	Settings RoomSettings `json:"settings"`
}

// JoinRoomPayload requests joining an existing room.
type JoinRoomPayload struct {
	RoomID    string `json:"room_id"`
	Name      string `json:"name"`
	Spectator bool   `json:"spectator,omitempty"`
}

// SelectContractPayload is the king's contract pick.
type SelectContractPayload struct {
	Contract string `json:"contract"`
}

// PlayCardPayload plays one card by wire identity.
type PlayCardPayload struct {
	CardID string `json:"card_id"`
}

// AddAIPayload fills the next free seat with an AI occupant.
type AddAIPayload struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// RemoveAIPayload removes an AI occupant by seat.
type RemoveAIPayload struct {
	Position string `json:"position"`
}

// KickPlayerPayload removes an occupant (host only).
type KickPlayerPayload struct {
	PlayerID string `json:"player_id"`
}

// --- server response payloads ---

// ConnectedPayload confirms a new connection.
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload answers a ping.
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// OccupantInfo is one room occupant as seen by everyone.
type OccupantInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	IsAI      bool   `json:"is_ai"`
	IsHost    bool   `json:"is_host"`
	Connected bool   `json:"connected"`
}

// RoomInfo is the membership/settings snapshot of a room.
type RoomInfo struct {
	RoomID     string         `json:"room_id"`
	Host       string         `json:"host"`
	Status     string         `json:"status"` // waiting/playing/finished
	Settings   RoomSettings   `json:"settings"`
	Occupants  []OccupantInfo `json:"occupants"`
	Spectators int            `json:"spectators"`
}

// RoomCreatedPayload confirms room creation to the host.
type RoomCreatedPayload struct {
	Room RoomInfo `json:"room"`
}

// RoomJoinedPayload confirms a join to the joiner.
type RoomJoinedPayload struct {
	Room RoomInfo `json:"room"`
}

// RoomUpdatedPayload broadcasts a membership/settings change.
type RoomUpdatedPayload struct {
	Room RoomInfo `json:"room"`
}

// PlayerJoinedPayload announces a new occupant to the others.
type PlayerJoinedPayload struct {
	Player OccupantInfo `json:"player"`
}

// PlayerLeftPayload announces a departure. When the seat was taken over by
// an AI substitute during play, Substituted is set.
type PlayerLeftPayload struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Substituted bool   `json:"substituted,omitempty"`
}

// GameStartedPayload announces the start of a match.
type GameStartedPayload struct {
	RoomID string `json:"room_id"`
	King   string `json:"king"`
}

// ContractSelectedPayload announces the round's contract.
type ContractSelectedPayload struct {
	Contract string `json:"contract"`
	King     string `json:"king"`
	Round    int    `json:"round"`
	Kingdom  int    `json:"kingdom"`
}

// CardPlayedPayload announces one applied play. Auto marks a timeout
// substitution.
type CardPlayedPayload struct {
	Position string   `json:"position"`
	CardID   string   `json:"card_id"`
	Auto     bool     `json:"auto,omitempty"`
	Passed   []string `json:"passed,omitempty"` // trex seats auto-passed
	Next     string   `json:"next"`
}

// TrickCompletePayload announces a resolved trick.
type TrickCompletePayload struct {
	Winner string   `json:"winner"`
	Cards  []string `json:"cards"`
}

// SeatScore is one seat's scoring line.
type SeatScore struct {
	Position   string `json:"position"`
	Name       string `json:"name"`
	RoundScore int    `json:"round_score"`
	TotalScore int    `json:"total_score"`
}

// RoundResultPayload announces the end-of-round scoring.
type RoundResultPayload struct {
	Round    int         `json:"round"`
	Kingdom  int         `json:"kingdom"`
	Contract string      `json:"contract"`
	Scores   []SeatScore `json:"scores"`
}

// StandingInfo is one row of the final ranking.
type StandingInfo struct {
	Rank     int    `json:"rank"`
	Position string `json:"position"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// GameOverPayload announces the final ranking.
type GameOverPayload struct {
	Standings []StandingInfo `json:"standings"`
}

// SeatInfo is the public projection of one seat in a game state snapshot.
type SeatInfo struct {
	Position   string `json:"position"`
	Name       string `json:"name"`
	IsAI       bool   `json:"is_ai"`
	HandCount  int    `json:"hand_count"`
	TricksWon  int    `json:"tricks_won"`
	RoundScore int    `json:"round_score"`
	TotalScore int    `json:"total_score"`
}

// SuitRunInfo is the placed span of one suit on the trex layout.
type SuitRunInfo struct {
	Suit    string `json:"suit"`
	Started bool   `json:"started"`
	Low     string `json:"low,omitempty"`
	High    string `json:"high,omitempty"`
}

// GameStatePayload is the position-personalized snapshot: the receiving
// occupant's hand in full, every other hand only as a count.
type GameStatePayload struct {
	Phase         string            `json:"phase"`
	Contract      string            `json:"contract,omitempty"`
	King          string            `json:"king"`
	Current       string            `json:"current"`
	Round         int               `json:"round"`
	Kingdom       int               `json:"kingdom"`
	KingDoubled   bool              `json:"king_doubled,omitempty"`
	Self          string            `json:"self,omitempty"` // empty for spectators
	Hand          []string          `json:"hand,omitempty"`
	Legal         []string          `json:"legal,omitempty"`
	UsedContracts []string          `json:"used_contracts,omitempty"`
	TrickLead     string            `json:"trick_lead,omitempty"`
	TrickPlays    map[string]string `json:"trick_plays,omitempty"`
	Layout        []SuitRunInfo     `json:"layout,omitempty"`
	Seats         []SeatInfo        `json:"seats"`
}

// ErrorPayload reports a rejected command to its originator.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
