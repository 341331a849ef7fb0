package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"wardenbot/model"
	"wardenbot/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() *model.GlobalState {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := model.NewGlobalState()
	chat := model.NewChatState("night watch", now)
	chat.Moderation.Bans = append(chat.Moderation.Bans, 2)
	chat.Moderation.Mutes[3] = now.Add(time.Hour)
	chat.Moderation.Warns[4] = 2
	chat.Users.Nicknames[2] = "shadow"
	chat.Users.Roles["moderator"] = []int64{5}
	chat.CustomCommands["rules"] = "no spam"
	chat.Activity.UnityScores[2] = 7
	chat.Activity.FirstSeen[2] = 1
	chat.Activity.Seq = 1
	state.Chats[-1001] = chat
	state.GlobalBans = append(state.GlobalBans, 9)
	state.Statistics.TotalBans = 1
	state.Statistics.TotalMessages = 7
	return state
}

func TestFileRoundTrip(t *testing.T) {
	client, err := newFileClient(t.TempDir())
	require.NoError(t, err)
	store := NewStore(client)

	original := testState()
	require.NoError(t, store.Save(original))

	loaded := store.Load()
	assert.Equal(t, original, loaded)
}

func TestLoadMissingSnapshot(t *testing.T) {
	client, err := newFileClient(t.TempDir())
	require.NoError(t, err)

	state := NewStore(client).Load()
	require.NotNil(t, state)
	assert.Empty(t, state.Chats)
	assert.Empty(t, state.GlobalBans)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	client, err := newFileClient(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotName), []byte("{not json"), 0o644))

	state := NewStore(client).Load()
	require.NotNil(t, state)
	assert.Empty(t, state.Chats)
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	client, err := newFileClient(dir)
	require.NoError(t, err)
	store := NewStore(client)

	require.NoError(t, store.Save(model.NewGlobalState()))
	require.NoError(t, store.Save(testState()))

	// No temp files are left behind after the rename.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{snapshotName, exportName}, names)

	loaded := store.Load()
	assert.Len(t, loaded.Chats, 1)
	assert.Equal(t, int64(1), loaded.Statistics.TotalBans)
}

func TestRestartFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	client, err := newFileClient(dir)
	require.NoError(t, err)
	st := NewStore(client)
	require.NoError(t, st.Save(testState()))

	// The restart path: a manager built on loaded state must serve
	// reads and take the next snapshot without any prior write.
	m := state.NewManager(st.Load())
	assert.True(t, m.IsBanned(-1001, 2))
	assert.True(t, m.IsGloballyBanned(9))
	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	assert.True(t, m.IsMuted(-1001, 3, now))
	assert.Equal(t, "shadow", func() string {
		nick, _ := m.Nickname(-1001, 2)
		return nick
	}())

	snap := m.Snapshot()
	require.NoError(t, st.Save(snap))
	reloaded := st.Load()
	assert.Equal(t, []int64{2}, reloaded.Chats[-1001].Moderation.Bans)
	assert.Equal(t, int64(1), reloaded.Statistics.TotalBans)
}

func TestSnapshotRoundTripThroughManagerClone(t *testing.T) {
	client, err := newFileClient(t.TempDir())
	require.NoError(t, err)
	store := NewStore(client)

	original := testState()
	clone := original.Clone()
	require.NoError(t, store.Save(clone))

	// Mutating the clone after save must not matter; the loaded
	// state reflects what was written.
	clone.Chats[-1001].Moderation.Bans = append(clone.Chats[-1001].Moderation.Bans, 99)

	loaded := store.Load()
	assert.Equal(t, original, loaded)
}
