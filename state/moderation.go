package state

import (
	"strings"
	"time"
	"unicode/utf8"
	"wardenbot/model"
)

// Moderation operations are synchronous mutations of one chat's state.
// None perform I/O: kicking the user or announcing the outcome is the
// caller's job, driven by the returned result. Target tiers are
// resolved by the caller before entry so no lookup happens under the
// chat lock.

type BanResult struct {
	Target int64
	Reason string
}

func (m *Manager) Ban(chatID, actor, target int64, targetTier Tier, reason string) (*BanResult, error) {
	if actor == target {
		return nil, ErrSelfTarget
	}
	if targetTier >= TierAdmin {
		return nil, ErrTargetPrivileged
	}
	var resErr error
	m.WithChat(chatID, func(chat *model.ChatState) {
		if containsID(chat.Moderation.Bans, target) {
			resErr = ErrAlreadyBanned
			return
		}
		chat.Moderation.Bans = append(chat.Moderation.Bans, target)
	})
	if resErr != nil {
		return nil, resErr
	}
	m.incTotalBans()
	return &BanResult{Target: target, Reason: reason}, nil
}

func (m *Manager) Unban(chatID, target int64) error {
	resErr := ErrNotBanned
	m.WithChat(chatID, func(chat *model.ChatState) {
		for i, id := range chat.Moderation.Bans {
			if id == target {
				chat.Moderation.Bans = append(chat.Moderation.Bans[:i], chat.Moderation.Bans[i+1:]...)
				resErr = nil
				return
			}
		}
	})
	return resErr
}

func (m *Manager) IsBanned(chatID, target int64) bool {
	var banned bool
	m.ReadChat(chatID, func(chat *model.ChatState) {
		banned = containsID(chat.Moderation.Bans, target)
	})
	return banned
}

func (m *Manager) ListBans(chatID int64) []int64 {
	var bans []int64
	m.ReadChat(chatID, func(chat *model.ChatState) {
		bans = append([]int64{}, chat.Moderation.Bans...)
	})
	return bans
}

type MuteResult struct {
	Target           int64
	Reason           string
	EffectiveMinutes int
	Until            time.Time
}

// Mute overwrites any existing mute: the last writer wins, durations
// never stack. Durations are clamped to model.MuteMaxMinutes.
func (m *Manager) Mute(chatID, actor, target int64, targetTier Tier, durationMinutes int, reason string, now time.Time) (*MuteResult, error) {
	if actor == target {
		return nil, ErrSelfTarget
	}
	if targetTier >= TierAdmin {
		return nil, ErrTargetPrivileged
	}
	if durationMinutes < 1 {
		durationMinutes = 1
	}
	if durationMinutes > model.MuteMaxMinutes {
		durationMinutes = model.MuteMaxMinutes
	}
	until := now.Add(time.Duration(durationMinutes) * time.Minute)
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Moderation.Mutes[target] = until
	})
	m.incTotalMutes()
	return &MuteResult{Target: target, Reason: reason, EffectiveMinutes: durationMinutes, Until: until}, nil
}

func (m *Manager) Unmute(chatID, target int64, now time.Time) error {
	if !m.IsMuted(chatID, target, now) {
		return ErrNotMuted
	}
	m.WithChat(chatID, func(chat *model.ChatState) {
		delete(chat.Moderation.Mutes, target)
	})
	return nil
}

// IsMuted is a mutating read: the first read that observes an expired
// mute removes it. This is the only place expired mutes are purged;
// there is no background sweep.
func (m *Manager) IsMuted(chatID, target int64, now time.Time) bool {
	var muted bool
	m.ReadChat(chatID, func(chat *model.ChatState) {
		until, ok := chat.Moderation.Mutes[target]
		if !ok {
			return
		}
		if now.Before(until) {
			muted = true
			return
		}
		delete(chat.Moderation.Mutes, target)
	})
	return muted
}

type MuteEntry struct {
	UserID int64
	Until  time.Time
}

// ListMutes reports unexpired mutes. Expired entries are skipped but
// left in place for IsMuted to evict.
func (m *Manager) ListMutes(chatID int64, now time.Time) []MuteEntry {
	var mutes []MuteEntry
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for id, until := range chat.Moderation.Mutes {
			if now.Before(until) {
				mutes = append(mutes, MuteEntry{UserID: id, Until: until})
			}
		}
	})
	return mutes
}

type WarnResult struct {
	Target    int64
	Reason    string
	WarnCount int
	MaxWarns  int
	Escalated bool
}

// Warn increments the target's counter and performs the ban transition
// once the count reaches max_warns. The counter is not reset by the
// escalation. The ban statistic moves only when the ban is new.
func (m *Manager) Warn(chatID, target int64, reason string) *WarnResult {
	res := &WarnResult{Target: target, Reason: reason}
	var newBan bool
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Moderation.Warns[target]++
		res.WarnCount = chat.Moderation.Warns[target]
		res.MaxWarns = chat.Settings.MaxWarns
		if res.WarnCount >= chat.Settings.MaxWarns {
			res.Escalated = true
			if !containsID(chat.Moderation.Bans, target) {
				chat.Moderation.Bans = append(chat.Moderation.Bans, target)
				newBan = true
			}
		}
	})
	if newBan {
		m.incTotalBans()
	}
	return res
}

// Unwarn decrements the counter, flooring at zero.
func (m *Manager) Unwarn(chatID, target int64) int {
	var count int
	m.WithChat(chatID, func(chat *model.ChatState) {
		if chat.Moderation.Warns[target] > 0 {
			chat.Moderation.Warns[target]--
		}
		count = chat.Moderation.Warns[target]
		if count == 0 {
			delete(chat.Moderation.Warns, target)
		}
	})
	return count
}

func (m *Manager) Warns(chatID, target int64) (count, maxWarns int) {
	maxWarns = model.DefaultSettings().MaxWarns
	m.ReadChat(chatID, func(chat *model.ChatState) {
		count = chat.Moderation.Warns[target]
		maxWarns = chat.Settings.MaxWarns
	})
	return count, maxWarns
}

// Kick appends to the append-only kick log. The actual member removal
// is a best-effort transport call made by the dispatcher.
func (m *Manager) Kick(chatID, actor, target int64, targetTier Tier, reason string, now time.Time) error {
	if actor == target {
		return ErrSelfTarget
	}
	if targetTier >= TierAdmin {
		return ErrTargetPrivileged
	}
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Moderation.Kicks = append(chat.Moderation.Kicks, model.KickRecord{
			Target: target,
			Actor:  actor,
			Reason: reason,
			Time:   now,
		})
	})
	m.incTotalKicks()
	return nil
}

func (m *Manager) SetNickname(chatID, target int64, nickname string) error {
	if utf8.RuneCountInString(nickname) > model.NicknameMaxLen {
		return ErrNicknameTooLong
	}
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Users.Nicknames[target] = nickname
	})
	return nil
}

func (m *Manager) Nickname(chatID, target int64) (string, bool) {
	var nickname string
	var ok bool
	m.ReadChat(chatID, func(chat *model.ChatState) {
		nickname, ok = chat.Users.Nicknames[target]
	})
	return nickname, ok
}

func (m *Manager) RemoveNickname(chatID, target int64) (string, bool) {
	var nickname string
	var ok bool
	m.WithChat(chatID, func(chat *model.ChatState) {
		nickname, ok = chat.Users.Nicknames[target]
		delete(chat.Users.Nicknames, target)
	})
	return nickname, ok
}

func (m *Manager) ListNicknames(chatID int64) map[int64]string {
	nicknames := make(map[int64]string)
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for id, nick := range chat.Users.Nicknames {
			nicknames[id] = nick
		}
	})
	return nicknames
}

// AddRole is idempotent per member. Role names are case-insensitive
// and stored lowercased.
func (m *Manager) AddRole(chatID int64, role string, target int64) error {
	role = strings.ToLower(role)
	var resErr error
	m.WithChat(chatID, func(chat *model.ChatState) {
		if containsID(chat.Users.Roles[role], target) {
			resErr = ErrAlreadyHasRole
			return
		}
		chat.Users.Roles[role] = append(chat.Users.Roles[role], target)
	})
	return resErr
}

// RemoveRole drops the role key entirely when its member list becomes
// empty; a role never exists with zero members.
func (m *Manager) RemoveRole(chatID int64, role string, target int64) error {
	role = strings.ToLower(role)
	resErr := ErrRoleNotFound
	m.WithChat(chatID, func(chat *model.ChatState) {
		members, ok := chat.Users.Roles[role]
		if !ok {
			return
		}
		resErr = ErrUserLacksRole
		for i, id := range members {
			if id == target {
				members = append(members[:i], members[i+1:]...)
				if len(members) == 0 {
					delete(chat.Users.Roles, role)
				} else {
					chat.Users.Roles[role] = members
				}
				resErr = nil
				return
			}
		}
	})
	return resErr
}

func (m *Manager) RolesOf(chatID, target int64) []string {
	var roles []string
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for role, members := range chat.Users.Roles {
			if containsID(members, target) {
				roles = append(roles, role)
			}
		}
	})
	return roles
}

func (m *Manager) ListRoles(chatID int64) map[string][]int64 {
	roles := make(map[string][]int64)
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for role, members := range chat.Users.Roles {
			roles[role] = append([]int64{}, members...)
		}
	})
	return roles
}

// RegisterCustomCommand stores the response under the lowercased name
// without its prefix; registering again overwrites.
func (m *Manager) RegisterCustomCommand(chatID int64, name, text string) {
	name = strings.ToLower(name)
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.CustomCommands[name] = text
	})
}

func (m *Manager) DeleteCustomCommand(chatID int64, name string) error {
	name = strings.ToLower(name)
	resErr := ErrCommandNotFound
	m.WithChat(chatID, func(chat *model.ChatState) {
		if _, ok := chat.CustomCommands[name]; ok {
			delete(chat.CustomCommands, name)
			resErr = nil
		}
	})
	return resErr
}

func (m *Manager) LookupCustomCommand(chatID int64, name string) (string, bool) {
	name = strings.ToLower(name)
	var text string
	var ok bool
	m.ReadChat(chatID, func(chat *model.ChatState) {
		if !chat.Settings.AllowCustomCommands {
			return
		}
		text, ok = chat.CustomCommands[name]
	})
	return text, ok
}

func (m *Manager) ListCustomCommands(chatID int64) map[string]string {
	commands := make(map[string]string)
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for name, text := range chat.CustomCommands {
			commands[name] = text
		}
	})
	return commands
}

// RecordInboundMessage updates counters and activity for every
// inbound message. It runs before any ban/mute short-circuiting so
// statistics stay accurate for messages suppressed downstream.
func (m *Manager) RecordInboundMessage(chatID, userID int64, now time.Time) {
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Info.MessageCount++
		chat.Info.LastActive = now
		if _, ok := chat.Activity.FirstSeen[userID]; !ok {
			chat.Activity.Seq++
			chat.Activity.FirstSeen[userID] = chat.Activity.Seq
		}
		chat.Activity.UnityScores[userID]++
		chat.Activity.LastMessageAt[userID] = now
	})
	m.incTotalMessages()
}

func (m *Manager) RecordWelcome(chatID int64, now time.Time) {
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.WelcomeStats.TotalWelcomed++
		chat.WelcomeStats.LastWelcome = now
	})
}

func (m *Manager) Settings(chatID int64) model.Settings {
	settings := model.DefaultSettings()
	m.ReadChat(chatID, func(chat *model.ChatState) {
		settings = chat.Settings
	})
	return settings
}

func (m *Manager) SetWelcomeMessage(chatID int64, text string) {
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Settings.WelcomeMessage = text
	})
}

// ToggleAutoWelcome flips the setting and reports the new value.
func (m *Manager) ToggleAutoWelcome(chatID int64) bool {
	var enabled bool
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Settings.AutoWelcome = !chat.Settings.AutoWelcome
		enabled = chat.Settings.AutoWelcome
	})
	return enabled
}

func containsID(ids []int64, id int64) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
