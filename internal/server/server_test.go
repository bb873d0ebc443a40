package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/config"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

// wsTestServer exposes the websocket endpoint over httptest.
func wsTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	s, err := NewServer(config.Default())
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	ts := httptest.NewServer(mux)

	t.Cleanup(func() {
		ts.Close()
		s.Shutdown()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType protocol.MessageType, payload any) {
	t.Helper()
	msg, err := protocol.NewMessage(msgType, payload)
	require.NoError(t, err)
	data, err := msg.Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

// waitFor reads frames until one of the wanted type arrives.
func waitFor(t *testing.T, conn *websocket.Conn, msgType protocol.MessageType) *protocol.Message {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", msgType)
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	_, ts := wsTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConnect_Handshake(t *testing.T) {
	t.Parallel()

	s, ts := wsTestServer(t)
	conn := dial(t, ts)

	msg := waitFor(t, conn, protocol.MsgConnected)
	payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.PlayerID)
	assert.NotEmpty(t, payload.PlayerName)

	assert.Eventually(t, func() bool { return s.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestPingPong(t *testing.T) {
	t.Parallel()

	_, ts := wsTestServer(t)
	conn := dial(t, ts)
	waitFor(t, conn, protocol.MsgConnected)

	send(t, conn, protocol.MsgPing, protocol.PingPayload{Timestamp: 12345})
	msg := waitFor(t, conn, protocol.MsgPong)
	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), payload.ClientTimestamp)
	assert.NotZero(t, payload.ServerTimestamp)
}

func TestCreateAndJoinRoom(t *testing.T) {
	t.Parallel()

	s, ts := wsTestServer(t)

	hostConn := dial(t, ts)
	waitFor(t, hostConn, protocol.MsgConnected)

	send(t, hostConn, protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Name:     "Alice",
		Settings: protocol.RoomSettings{SpectatorsAllowed: true},
	})
	created := waitFor(t, hostConn, protocol.MsgRoomCreated)
	cp, err := protocol.ParsePayload[protocol.RoomCreatedPayload](created)
	require.NoError(t, err)
	roomID := cp.Room.RoomID
	require.NotEmpty(t, roomID)
	require.Len(t, cp.Room.Occupants, 1)
	assert.Equal(t, "Alice", cp.Room.Occupants[0].Name)
	assert.Equal(t, "north", cp.Room.Occupants[0].Position)
	assert.Equal(t, 1, s.roomManager.RoomCount())

	guestConn := dial(t, ts)
	waitFor(t, guestConn, protocol.MsgConnected)
	send(t, guestConn, protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomID: roomID,
		Name:   "Bob",
	})
	joined := waitFor(t, guestConn, protocol.MsgRoomJoined)
	jp, err := protocol.ParsePayload[protocol.RoomJoinedPayload](joined)
	require.NoError(t, err)
	assert.Len(t, jp.Room.Occupants, 2)

	// The host hears about the new occupant.
	notified := waitFor(t, hostConn, protocol.MsgPlayerJoined)
	np, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](notified)
	require.NoError(t, err)
	assert.Equal(t, "Bob", np.Player.Name)
	assert.Equal(t, "east", np.Player.Position)
}

func TestJoinRoom_NotFound(t *testing.T) {
	t.Parallel()

	_, ts := wsTestServer(t)
	conn := dial(t, ts)
	waitFor(t, conn, protocol.MsgConnected)

	send(t, conn, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: "000000"})
	msg := waitFor(t, conn, protocol.MsgError)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, payload.Code)
}

func TestMalformedFrame(t *testing.T) {
	t.Parallel()

	_, ts := wsTestServer(t)
	conn := dial(t, ts)
	waitFor(t, conn, protocol.MsgConnected)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := waitFor(t, conn, protocol.MsgError)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
}

func TestFullMatchOverWebSocket(t *testing.T) {
	t.Parallel()

	_, ts := wsTestServer(t)
	conn := dial(t, ts)
	waitFor(t, conn, protocol.MsgConnected)

	send(t, conn, protocol.MsgCreateRoom, protocol.CreateRoomPayload{Name: "Solo"})
	waitFor(t, conn, protocol.MsgRoomCreated)

	for i := 0; i < 3; i++ {
		send(t, conn, protocol.MsgAddAI, protocol.AddAIPayload{Difficulty: "easy"})
		waitFor(t, conn, protocol.MsgRoomUpdated)
	}

	send(t, conn, protocol.MsgStartGame, nil)
	waitFor(t, conn, protocol.MsgGameStarted)

	state := waitFor(t, conn, protocol.MsgGameState)
	gs, err := protocol.ParsePayload[protocol.GameStatePayload](state)
	require.NoError(t, err)
	assert.Equal(t, "contract_selection", gs.Phase)
	assert.Len(t, gs.Hand, 13)
	assert.Equal(t, "north", gs.Self)

	// The host is the opening king; pick a contract and play the lead.
	send(t, conn, protocol.MsgSelectContract, protocol.SelectContractPayload{Contract: "collections"})
	waitFor(t, conn, protocol.MsgContractSelected)

	state = waitFor(t, conn, protocol.MsgGameState)
	gs, err = protocol.ParsePayload[protocol.GameStatePayload](state)
	require.NoError(t, err)
	require.NotEmpty(t, gs.Legal)

	send(t, conn, protocol.MsgPlayCard, protocol.PlayCardPayload{CardID: gs.Legal[0]})
	played := waitFor(t, conn, protocol.MsgCardPlayed)
	pp, err := protocol.ParsePayload[protocol.CardPlayedPayload](played)
	require.NoError(t, err)
	assert.Equal(t, gs.Legal[0], pp.CardID)
	assert.False(t, pp.Auto)

	// Three AI answers close the trick.
	waitFor(t, conn, protocol.MsgTrickComplete)
}
