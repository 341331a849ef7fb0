package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStateCloneIsDeep(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	chat := NewChatState("night watch", now)
	chat.Moderation.Bans = append(chat.Moderation.Bans, 2)
	chat.Moderation.Mutes[3] = now.Add(time.Hour)
	chat.Users.Roles["moderator"] = []int64{5}
	chat.CustomCommands["rules"] = "no spam"

	clone := chat.Clone()
	require.Equal(t, chat, clone)

	clone.Moderation.Bans = append(clone.Moderation.Bans, 99)
	clone.Moderation.Mutes[4] = now
	clone.Users.Roles["moderator"] = append(clone.Users.Roles["moderator"], 6)
	clone.CustomCommands["rules"] = "changed"

	assert.Equal(t, []int64{2}, chat.Moderation.Bans)
	assert.Len(t, chat.Moderation.Mutes, 1)
	assert.Equal(t, []int64{5}, chat.Users.Roles["moderator"])
	assert.Equal(t, "no spam", chat.CustomCommands["rules"])
}

func TestGlobalStateCloneIsDeep(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := NewGlobalState()
	state.Chats[-1001] = NewChatState("night watch", now)
	state.GlobalBans = append(state.GlobalBans, 9)

	clone := state.Clone()
	require.Equal(t, state, clone)

	clone.GlobalBans = append(clone.GlobalBans, 10)
	clone.Chats[-1001].Moderation.Bans = append(clone.Chats[-1001].Moderation.Bans, 2)

	assert.Equal(t, []int64{9}, state.GlobalBans)
	assert.Empty(t, state.Chats[-1001].Moderation.Bans)
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	assert.True(t, settings.AutoWelcome)
	assert.Equal(t, 3, settings.MaxWarns)
	assert.True(t, settings.AllowCustomCommands)
	assert.Equal(t, "!", settings.CommandPrefix)
	assert.Contains(t, settings.WelcomeMessage, "{user}")
}
