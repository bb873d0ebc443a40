package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/apperrors"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/config"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/testutil"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(config.Default())
	t.Cleanup(m.Stop)
	return m
}

func TestManager_Create(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	host := testutil.NewSimpleClient("c1", "Alice")

	r, err := m.Create(host, DefaultSettings())
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Len(t, r.ID, roomIDLength)
	assert.Equal(t, 1, m.RoomCount())

	got, ok := m.RoomFor("c1")
	require.True(t, ok)
	assert.Same(t, r, got)

	// One connection, one room.
	_, err = m.Create(host, DefaultSettings())
	assert.ErrorIs(t, err, apperrors.ErrGameInProgress)
}

func TestManager_Join(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	host := testutil.NewSimpleClient("c1", "Alice")
	r, err := m.Create(host, DefaultSettings())
	require.NoError(t, err)

	guest := testutil.NewSimpleClient("c2", "Bob")
	_, err = m.Join(guest, "000000", false)
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

	joined, err := m.Join(guest, r.ID, false)
	require.NoError(t, err)
	assert.Same(t, r, joined)
	assert.Equal(t, 2, r.OccupantCount())

	// A failed join must not index the connection.
	third := testutil.NewSimpleClient("c3", "Carol")
	settingsRoom, err := m.Create(third, DefaultSettings())
	require.NoError(t, err)
	_, err = m.Join(guest, settingsRoom.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrGameInProgress, "a seated connection cannot join twice")
}

func TestManager_LeaveReleasesEmptyRoom(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	host := testutil.NewSimpleClient("c1", "Alice")
	r, err := m.Create(host, DefaultSettings())
	require.NoError(t, err)

	guest := testutil.NewSimpleClient("c2", "Bob")
	_, err = m.Join(guest, r.ID, false)
	require.NoError(t, err)

	m.Leave(guest)
	assert.Equal(t, 1, m.RoomCount(), "the host still holds the room")

	m.Leave(host)
	assert.Equal(t, 0, m.RoomCount(), "abandoned rooms release immediately")
	_, ok := m.RoomFor("c1")
	assert.False(t, ok)

	// Leaving twice is harmless.
	m.Leave(host)
}

func TestManager_Unregister(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	host := testutil.NewSimpleClient("c1", "Alice")
	r, err := m.Create(host, DefaultSettings())
	require.NoError(t, err)

	m.Unregister("c1")
	_, ok := m.RoomFor("c1")
	assert.False(t, ok, "the index entry is gone")
	_, ok = m.Get(r.ID)
	assert.True(t, ok, "the room itself survives")
}

func TestManager_ReclaimEmptyRooms(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	host := testutil.NewSimpleClient("c1", "Alice")
	r, err := m.Create(host, DefaultSettings())
	require.NoError(t, err)

	// An occupied waiting room survives a sweep.
	m.Reclaim()
	assert.Equal(t, 1, m.RoomCount())

	// Empty the room behind the manager's back; the sweep picks it up.
	r.Leave("c1")
	m.Reclaim()
	assert.Equal(t, 0, m.RoomCount())
}

func TestManager_RoomIDsAreUnique(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		host := testutil.NewSimpleClient(string(rune('A'+i)), "Host")
		r, err := m.Create(host, DefaultSettings())
		require.NoError(t, err)
		assert.False(t, seen[r.ID], "room id %s issued twice", r.ID)
		seen[r.ID] = true
	}
}
