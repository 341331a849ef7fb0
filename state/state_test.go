package state

import (
	"sync"
	"testing"
	"time"
	"wardenbot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadChatNeverCreates(t *testing.T) {
	m := newTestManager()

	called := false
	ok := m.ReadChat(testChat, func(chat *model.ChatState) {
		called = true
	})
	assert.False(t, ok)
	assert.False(t, called)
	assert.Empty(t, m.ChatIDs())
}

func TestWithChatCreatesLazily(t *testing.T) {
	m := newTestManager()

	m.WithChat(testChat, func(chat *model.ChatState) {
		assert.Equal(t, 3, chat.Settings.MaxWarns)
	})
	assert.Equal(t, []int64{testChat}, m.ChatIDs())
	assert.True(t, m.ReadChat(testChat, func(chat *model.ChatState) {}))
}

func TestSetChatTitle(t *testing.T) {
	m := newTestManager()

	// An empty title must not create a chat.
	m.SetChatTitle(testChat, "")
	assert.Empty(t, m.ChatIDs())

	m.SetChatTitle(testChat, "night watch")
	m.ReadChat(testChat, func(chat *model.ChatState) {
		assert.Equal(t, "night watch", chat.Info.Title)
	})
}

func TestGlobalBanIsIdempotent(t *testing.T) {
	m := newTestManager()

	assert.False(t, m.IsGloballyBanned(7))
	assert.True(t, m.GlobalBan(7))
	assert.False(t, m.GlobalBan(7))
	assert.True(t, m.IsGloballyBanned(7))
	assert.Equal(t, 1, m.GlobalBanCount())
}

func TestManagerFromRestoredState(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	restored := model.NewGlobalState()
	chat := model.NewChatState("night watch", now)
	chat.Moderation.Bans = append(chat.Moderation.Bans, 2)
	chat.Moderation.Mutes[3] = now.Add(time.Hour)
	restored.Chats[testChat] = chat
	restored.GlobalBans = append(restored.GlobalBans, 9)

	// Reads and snapshots must work before any write touches the
	// restored chat.
	m := NewManager(restored)
	assert.True(t, m.IsBanned(testChat, 2))
	assert.True(t, m.IsMuted(testChat, 3, now))
	assert.True(t, m.IsGloballyBanned(9))
	assert.Equal(t, "night watch", func() string {
		var title string
		m.ReadChat(testChat, func(chat *model.ChatState) {
			title = chat.Info.Title
		})
		return title
	}())

	snap := m.Snapshot()
	assert.Equal(t, []int64{2}, snap.Chats[testChat].Moderation.Bans)

	// Writes to the restored chat use the same seeded lock.
	_, err := m.Ban(testChat, 1, 4, TierMember, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, m.ListBans(testChat))
}

func TestSnapshotIsIsolated(t *testing.T) {
	m := newTestManager()

	_, err := m.Ban(testChat, 1, 2, TierMember, "")
	require.NoError(t, err)
	require.NoError(t, m.SetNickname(testChat, 2, "shadow"))
	m.GlobalBan(9)

	snap := m.Snapshot()

	// Mutations after the snapshot must not leak into it.
	_, err = m.Ban(testChat, 1, 3, TierMember, "")
	require.NoError(t, err)
	require.NoError(t, m.SetNickname(testChat, 2, "ghost"))
	m.GlobalBan(10)

	assert.Equal(t, []int64{2}, snap.Chats[testChat].Moderation.Bans)
	assert.Equal(t, "shadow", snap.Chats[testChat].Users.Nicknames[2])
	assert.Equal(t, []int64{9}, snap.GlobalBans)
	assert.Equal(t, int64(1), snap.Statistics.TotalBans)
}

func TestConcurrentChats(t *testing.T) {
	m := newTestManager()

	var wg sync.WaitGroup
	for chat := int64(1); chat <= 8; chat++ {
		for user := int64(100); user < 120; user++ {
			wg.Add(1)
			go func(chat, user int64) {
				defer wg.Done()
				m.Warn(chat, user, "")
				m.Warn(chat, user, "")
			}(chat, user)
		}
	}
	wg.Wait()

	for chat := int64(1); chat <= 8; chat++ {
		count, _ := m.Warns(chat, 105)
		assert.Equal(t, 2, count)
	}
	assert.Len(t, m.ChatIDs(), 8)
}
