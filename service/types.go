package service

import (
	"sync"
	"time"
	"wardenbot/client"
	"wardenbot/state"
	"wardenbot/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Env is the wiring handed down from app: the transport client plus
// the explicitly owned state, resolver, store and audit collaborators.
type Env struct {
	Bot      *tgbotapi.BotAPI
	Manager  *state.Manager
	Resolver *state.Resolver
	Store    *store.Store
	Audit    client.AuditClient
}

const adminsCacheTTL = time.Second * 86400

type adminsCacheEntry struct {
	members  []state.ChatMember
	cachedAt time.Time
}

var (
	commandsFunc      = make(map[string]func(c *CommandConfig))
	userNameCache     = make(map[int64]string)
	userNameCacheLock sync.RWMutex
)
