package state

import (
	"strings"
	"testing"
	"time"
	"wardenbot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChat = int64(-1001)

func newTestManager() *Manager {
	return NewManager(model.NewGlobalState())
}

func TestBanIsIdempotent(t *testing.T) {
	m := newTestManager()

	res, err := m.Ban(testChat, 1, 2, TierMember, "spam")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Target)
	assert.Equal(t, "spam", res.Reason)
	assert.True(t, m.IsBanned(testChat, 2))

	_, err = m.Ban(testChat, 1, 2, TierMember, "again")
	assert.ErrorIs(t, err, ErrAlreadyBanned)
	assert.Equal(t, []int64{2}, m.ListBans(testChat))
	assert.Equal(t, int64(1), m.Statistics().TotalBans)
}

func TestBanGuards(t *testing.T) {
	m := newTestManager()

	_, err := m.Ban(testChat, 1, 1, TierMember, "")
	assert.ErrorIs(t, err, ErrSelfTarget)

	_, err = m.Ban(testChat, 1, 2, TierAdmin, "")
	assert.ErrorIs(t, err, ErrTargetPrivileged)

	_, err = m.Ban(testChat, 1, 2, TierSuperAdmin, "")
	assert.ErrorIs(t, err, ErrTargetPrivileged)

	assert.False(t, m.IsBanned(testChat, 2))
	assert.Equal(t, int64(0), m.Statistics().TotalBans)
}

func TestUnban(t *testing.T) {
	m := newTestManager()

	assert.ErrorIs(t, m.Unban(testChat, 2), ErrNotBanned)

	_, err := m.Ban(testChat, 1, 2, TierMember, "")
	require.NoError(t, err)
	require.NoError(t, m.Unban(testChat, 2))
	assert.False(t, m.IsBanned(testChat, 2))
	assert.ErrorIs(t, m.Unban(testChat, 2), ErrNotBanned)
}

func TestMuteOverwrites(t *testing.T) {
	m := newTestManager()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := m.Mute(testChat, 1, 2, TierMember, 60, "first", now)
	require.NoError(t, err)

	res, err := m.Mute(testChat, 1, 2, TierMember, 15, "second", now)
	require.NoError(t, err)
	assert.Equal(t, 15, res.EffectiveMinutes)
	assert.Equal(t, now.Add(15*time.Minute), res.Until)

	// The shorter second mute replaced the longer first one.
	assert.True(t, m.IsMuted(testChat, 2, now.Add(14*time.Minute)))
	assert.False(t, m.IsMuted(testChat, 2, now.Add(16*time.Minute)))
}

func TestMuteClampsDuration(t *testing.T) {
	m := newTestManager()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	res, err := m.Mute(testChat, 1, 2, TierMember, 99999999, "", now)
	require.NoError(t, err)
	assert.Equal(t, model.MuteMaxMinutes, res.EffectiveMinutes)

	res, err = m.Mute(testChat, 1, 3, TierMember, 0, "", now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.EffectiveMinutes)
}

func TestMuteGuards(t *testing.T) {
	m := newTestManager()
	now := time.Now().UTC()

	_, err := m.Mute(testChat, 1, 1, TierMember, 10, "", now)
	assert.ErrorIs(t, err, ErrSelfTarget)

	_, err = m.Mute(testChat, 1, 2, TierAdmin, 10, "", now)
	assert.ErrorIs(t, err, ErrTargetPrivileged)
}

func TestIsMutedEvictsExpired(t *testing.T) {
	m := newTestManager()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := m.Mute(testChat, 1, 2, TierMember, 10, "", now)
	require.NoError(t, err)
	assert.True(t, m.IsMuted(testChat, 2, now.Add(9*time.Minute)))

	// ListMutes skips the expired entry but leaves it in place.
	assert.Empty(t, m.ListMutes(testChat, now.Add(11*time.Minute)))
	var stored int
	m.ReadChat(testChat, func(chat *model.ChatState) {
		stored = len(chat.Moderation.Mutes)
	})
	assert.Equal(t, 1, stored)

	// The first expired read evicts.
	assert.False(t, m.IsMuted(testChat, 2, now.Add(11*time.Minute)))
	m.ReadChat(testChat, func(chat *model.ChatState) {
		stored = len(chat.Moderation.Mutes)
	})
	assert.Equal(t, 0, stored)
}

func TestUnmute(t *testing.T) {
	m := newTestManager()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, m.Unmute(testChat, 2, now), ErrNotMuted)

	_, err := m.Mute(testChat, 1, 2, TierMember, 10, "", now)
	require.NoError(t, err)
	require.NoError(t, m.Unmute(testChat, 2, now))
	assert.False(t, m.IsMuted(testChat, 2, now))

	// An expired mute reads as not muted, so unmuting it errors.
	_, err = m.Mute(testChat, 1, 2, TierMember, 10, "", now)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Unmute(testChat, 2, now.Add(time.Hour)), ErrNotMuted)
}

func TestWarnEscalatesToBan(t *testing.T) {
	m := newTestManager()

	res := m.Warn(testChat, 2, "one")
	assert.Equal(t, 1, res.WarnCount)
	assert.Equal(t, 3, res.MaxWarns)
	assert.False(t, res.Escalated)

	res = m.Warn(testChat, 2, "two")
	assert.Equal(t, 2, res.WarnCount)
	assert.False(t, res.Escalated)
	assert.False(t, m.IsBanned(testChat, 2))

	res = m.Warn(testChat, 2, "three")
	assert.Equal(t, 3, res.WarnCount)
	assert.True(t, res.Escalated)
	assert.True(t, m.IsBanned(testChat, 2))
	assert.Equal(t, int64(1), m.Statistics().TotalBans)

	// The counter keeps going past the limit and the ban stays
	// idempotent: no second statistics increment.
	res = m.Warn(testChat, 2, "four")
	assert.Equal(t, 4, res.WarnCount)
	assert.True(t, res.Escalated)
	assert.Equal(t, []int64{2}, m.ListBans(testChat))
	assert.Equal(t, int64(1), m.Statistics().TotalBans)
}

func TestUnwarnFloorsAtZero(t *testing.T) {
	m := newTestManager()

	assert.Equal(t, 0, m.Unwarn(testChat, 2))

	m.Warn(testChat, 2, "")
	m.Warn(testChat, 2, "")
	assert.Equal(t, 1, m.Unwarn(testChat, 2))
	assert.Equal(t, 0, m.Unwarn(testChat, 2))
	assert.Equal(t, 0, m.Unwarn(testChat, 2))

	var stored bool
	m.ReadChat(testChat, func(chat *model.ChatState) {
		_, stored = chat.Moderation.Warns[2]
	})
	assert.False(t, stored, "zeroed warn counter should be deleted")
}

func TestKick(t *testing.T) {
	m := newTestManager()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, m.Kick(testChat, 1, 1, TierMember, "", now), ErrSelfTarget)
	assert.ErrorIs(t, m.Kick(testChat, 1, 2, TierAdmin, "", now), ErrTargetPrivileged)

	require.NoError(t, m.Kick(testChat, 1, 2, TierMember, "flood", now))
	require.NoError(t, m.Kick(testChat, 1, 2, TierMember, "flood again", now))

	var kicks []model.KickRecord
	m.ReadChat(testChat, func(chat *model.ChatState) {
		kicks = chat.Moderation.Kicks
	})
	require.Len(t, kicks, 2)
	assert.Equal(t, int64(2), kicks[0].Target)
	assert.Equal(t, int64(1), kicks[0].Actor)
	assert.Equal(t, "flood", kicks[0].Reason)
	assert.Equal(t, int64(2), m.Statistics().TotalKicks)
}

func TestNicknameLength(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.SetNickname(testChat, 2, strings.Repeat("a", 32)))
	assert.ErrorIs(t, m.SetNickname(testChat, 2, strings.Repeat("a", 33)), ErrNicknameTooLong)

	// Runes, not bytes.
	require.NoError(t, m.SetNickname(testChat, 2, strings.Repeat("ы", 32)))
	assert.ErrorIs(t, m.SetNickname(testChat, 2, strings.Repeat("ы", 33)), ErrNicknameTooLong)

	nickname, ok := m.Nickname(testChat, 2)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("ы", 32), nickname)
}

func TestRemoveNickname(t *testing.T) {
	m := newTestManager()

	_, ok := m.RemoveNickname(testChat, 2)
	assert.False(t, ok)

	require.NoError(t, m.SetNickname(testChat, 2, "shadow"))
	nickname, ok := m.RemoveNickname(testChat, 2)
	assert.True(t, ok)
	assert.Equal(t, "shadow", nickname)

	_, ok = m.Nickname(testChat, 2)
	assert.False(t, ok)
	assert.Empty(t, m.ListNicknames(testChat))
}

func TestRoles(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.AddRole(testChat, "Moderator", 2))
	assert.ErrorIs(t, m.AddRole(testChat, "moderator", 2), ErrAlreadyHasRole)
	assert.True(t, m.UserHasRole(testChat, "moderator", 2))
	assert.Equal(t, []string{"moderator"}, m.RolesOf(testChat, 2))

	assert.ErrorIs(t, m.RemoveRole(testChat, "ghost", 2), ErrRoleNotFound)
	assert.ErrorIs(t, m.RemoveRole(testChat, "moderator", 3), ErrUserLacksRole)

	require.NoError(t, m.AddRole(testChat, "moderator", 3))
	require.NoError(t, m.RemoveRole(testChat, "moderator", 2))
	assert.Equal(t, map[string][]int64{"moderator": {3}}, m.ListRoles(testChat))

	// Removing the last member removes the role itself.
	require.NoError(t, m.RemoveRole(testChat, "moderator", 3))
	assert.Empty(t, m.ListRoles(testChat))
	var stored bool
	m.ReadChat(testChat, func(chat *model.ChatState) {
		_, stored = chat.Users.Roles["moderator"]
	})
	assert.False(t, stored, "empty role key should be deleted")
}

func TestCustomCommands(t *testing.T) {
	m := newTestManager()

	m.RegisterCustomCommand(testChat, "Rules", "no spam")
	text, ok := m.LookupCustomCommand(testChat, "RULES")
	require.True(t, ok)
	assert.Equal(t, "no spam", text)

	m.RegisterCustomCommand(testChat, "rules", "be nice")
	text, _ = m.LookupCustomCommand(testChat, "rules")
	assert.Equal(t, "be nice", text)

	assert.ErrorIs(t, m.DeleteCustomCommand(testChat, "ghost"), ErrCommandNotFound)
	require.NoError(t, m.DeleteCustomCommand(testChat, "rules"))
	_, ok = m.LookupCustomCommand(testChat, "rules")
	assert.False(t, ok)
}

func TestCustomCommandsCanBeDisabled(t *testing.T) {
	m := newTestManager()

	m.RegisterCustomCommand(testChat, "rules", "no spam")
	m.WithChat(testChat, func(chat *model.ChatState) {
		chat.Settings.AllowCustomCommands = false
	})

	_, ok := m.LookupCustomCommand(testChat, "rules")
	assert.False(t, ok)
	// The stored command survives the toggle.
	assert.Len(t, m.ListCustomCommands(testChat), 1)
}

func TestRecordInboundMessage(t *testing.T) {
	m := newTestManager()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	m.RecordInboundMessage(testChat, 2, now)
	m.RecordInboundMessage(testChat, 2, now.Add(time.Minute))
	m.RecordInboundMessage(testChat, 3, now.Add(2*time.Minute))

	assert.Equal(t, int64(2), m.Score(testChat, 2))
	assert.Equal(t, int64(1), m.Score(testChat, 3))
	assert.Equal(t, int64(3), m.Statistics().TotalMessages)

	m.ReadChat(testChat, func(chat *model.ChatState) {
		assert.Equal(t, int64(3), chat.Info.MessageCount)
		assert.Equal(t, now.Add(2*time.Minute), chat.Info.LastActive)
		assert.Equal(t, now.Add(time.Minute), chat.Activity.LastMessageAt[2])
	})
}

func TestWelcomeSettings(t *testing.T) {
	m := newTestManager()

	settings := m.Settings(testChat)
	assert.True(t, settings.AutoWelcome)
	assert.Equal(t, 3, settings.MaxWarns)
	assert.Equal(t, "!", settings.CommandPrefix)

	m.SetWelcomeMessage(testChat, "hi {user}")
	assert.Equal(t, "hi {user}", m.Settings(testChat).WelcomeMessage)

	assert.False(t, m.ToggleAutoWelcome(testChat))
	assert.True(t, m.ToggleAutoWelcome(testChat))
}
