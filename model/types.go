package model

import (
	"time"
)

const (
	AuditIndexName = "moderation_audit"

	// NicknameMaxLen is counted in runes, not bytes.
	NicknameMaxLen = 32

	// MuteMaxMinutes caps every mute at 30 days.
	MuteMaxMinutes = 43200
)

type ChatInfo struct {
	Title        string    `json:"title"`
	Created      time.Time `json:"created"`
	LastActive   time.Time `json:"last_active"`
	MessageCount int64     `json:"message_count"`
}

type KickRecord struct {
	Target int64     `json:"target"`
	Actor  int64     `json:"actor"`
	Reason string    `json:"reason"`
	Time   time.Time `json:"time"`
}

type Moderation struct {
	Bans  []int64             `json:"bans"`
	Mutes map[int64]time.Time `json:"mutes"`
	Warns map[int64]int       `json:"warns"`
	Kicks []KickRecord        `json:"kicks"`
}

type Users struct {
	Nicknames map[int64]string   `json:"nicknames"`
	Roles     map[string][]int64 `json:"roles"`
}

type Settings struct {
	AutoWelcome         bool   `json:"auto_welcome"`
	WelcomeMessage      string `json:"welcome_message"`
	MaxWarns            int    `json:"max_warns"`
	AllowCustomCommands bool   `json:"allow_custom_commands"`
	CommandPrefix       string `json:"command_prefix"`
}

type Activity struct {
	UnityScores   map[int64]int64     `json:"unity_scores"`
	LastMessageAt map[int64]time.Time `json:"last_message_at"`
	// FirstSeen orders leaderboard ties: lower sequence wins.
	FirstSeen map[int64]int64 `json:"first_seen"`
	Seq       int64           `json:"seq"`
}

type WelcomeStats struct {
	TotalWelcomed int64     `json:"total_welcomed"`
	LastWelcome   time.Time `json:"last_welcome"`
}

type ChatState struct {
	Info           ChatInfo          `json:"info"`
	Moderation     Moderation        `json:"moderation"`
	Users          Users             `json:"users"`
	Settings       Settings          `json:"settings"`
	CustomCommands map[string]string `json:"custom_commands"`
	Activity       Activity          `json:"activity"`
	WelcomeStats   WelcomeStats      `json:"welcome_stats"`
}

type Statistics struct {
	TotalMessages int64 `json:"total_messages"`
	TotalCommands int64 `json:"total_commands"`
	TotalBans     int64 `json:"total_bans"`
	TotalMutes    int64 `json:"total_mutes"`
	TotalKicks    int64 `json:"total_kicks"`
}

type GlobalState struct {
	Chats      map[int64]*ChatState `json:"chats"`
	GlobalBans []int64              `json:"global_bans"`
	Statistics Statistics           `json:"statistics"`
}

func DefaultSettings() Settings {
	return Settings{
		AutoWelcome:         true,
		WelcomeMessage:      "Welcome to the chat, {user}!",
		MaxWarns:            3,
		AllowCustomCommands: true,
		CommandPrefix:       "!",
	}
}

func NewChatState(title string, now time.Time) *ChatState {
	return &ChatState{
		Info: ChatInfo{
			Title:      title,
			Created:    now,
			LastActive: now,
		},
		Moderation: Moderation{
			Bans:  []int64{},
			Mutes: make(map[int64]time.Time),
			Warns: make(map[int64]int),
			Kicks: []KickRecord{},
		},
		Users: Users{
			Nicknames: make(map[int64]string),
			Roles:     make(map[string][]int64),
		},
		Settings:       DefaultSettings(),
		CustomCommands: make(map[string]string),
		Activity: Activity{
			UnityScores:   make(map[int64]int64),
			LastMessageAt: make(map[int64]time.Time),
			FirstSeen:     make(map[int64]int64),
		},
	}
}

func NewGlobalState() *GlobalState {
	return &GlobalState{
		Chats:      make(map[int64]*ChatState),
		GlobalBans: []int64{},
	}
}

func (c *ChatState) Clone() *ChatState {
	clone := *c
	clone.Moderation.Bans = append([]int64{}, c.Moderation.Bans...)
	clone.Moderation.Kicks = append([]KickRecord{}, c.Moderation.Kicks...)
	clone.Moderation.Mutes = make(map[int64]time.Time, len(c.Moderation.Mutes))
	for k, v := range c.Moderation.Mutes {
		clone.Moderation.Mutes[k] = v
	}
	clone.Moderation.Warns = make(map[int64]int, len(c.Moderation.Warns))
	for k, v := range c.Moderation.Warns {
		clone.Moderation.Warns[k] = v
	}
	clone.Users.Nicknames = make(map[int64]string, len(c.Users.Nicknames))
	for k, v := range c.Users.Nicknames {
		clone.Users.Nicknames[k] = v
	}
	clone.Users.Roles = make(map[string][]int64, len(c.Users.Roles))
	for k, v := range c.Users.Roles {
		clone.Users.Roles[k] = append([]int64{}, v...)
	}
	clone.CustomCommands = make(map[string]string, len(c.CustomCommands))
	for k, v := range c.CustomCommands {
		clone.CustomCommands[k] = v
	}
	clone.Activity.UnityScores = make(map[int64]int64, len(c.Activity.UnityScores))
	for k, v := range c.Activity.UnityScores {
		clone.Activity.UnityScores[k] = v
	}
	clone.Activity.LastMessageAt = make(map[int64]time.Time, len(c.Activity.LastMessageAt))
	for k, v := range c.Activity.LastMessageAt {
		clone.Activity.LastMessageAt[k] = v
	}
	clone.Activity.FirstSeen = make(map[int64]int64, len(c.Activity.FirstSeen))
	for k, v := range c.Activity.FirstSeen {
		clone.Activity.FirstSeen[k] = v
	}
	return &clone
}

func (g *GlobalState) Clone() *GlobalState {
	clone := &GlobalState{
		Chats:      make(map[int64]*ChatState, len(g.Chats)),
		GlobalBans: append([]int64{}, g.GlobalBans...),
		Statistics: g.Statistics,
	}
	for id, chat := range g.Chats {
		clone.Chats[id] = chat.Clone()
	}
	return clone
}

// AuditRecord is one moderation action, shipped best-effort to the
// configured audit sink.
type AuditRecord struct {
	ChatID     int64     `json:"chat_id" bson:"chat_id"`
	Action     string    `json:"action" bson:"action"`
	Actor      int64     `json:"actor" bson:"actor"`
	Target     int64     `json:"target" bson:"target"`
	Reason     string    `json:"reason" bson:"reason"`
	CreateTime time.Time `json:"create_time" bson:"create_time"`
}

type MysqlAuditRecord struct {
	ChatID     int64
	Action     string
	Actor      int64
	Target     int64
	Reason     string
	CreateTime string
}

func (MysqlAuditRecord) TableName() string {
	return AuditIndexName
}
