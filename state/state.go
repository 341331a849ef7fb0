package state

import (
	"sync"
	"time"
	"wardenbot/model"

	"github.com/sirupsen/logrus"
)

// Manager is the single owner of GlobalState. Chats are created
// lazily on first reference and never deleted. Mutations to one chat
// are serialized by a per-chat mutex; the chats map, global bans and
// the statistics counters each have their own lock so no chat blocks
// another. Lock order where nested: mu > chat lock > statsMu.
type Manager struct {
	mu      sync.Mutex
	state   *model.GlobalState
	locks   map[int64]*sync.Mutex
	statsMu sync.Mutex
}

func NewManager(state *model.GlobalState) *Manager {
	if state == nil {
		state = model.NewGlobalState()
	}
	m := &Manager{
		state: state,
		locks: make(map[int64]*sync.Mutex, len(state.Chats)),
	}
	// Chats restored from a snapshot need their locks before the
	// first read or snapshot touches them.
	for id := range state.Chats {
		m.locks[id] = &sync.Mutex{}
	}
	return m
}

// chat returns the ChatState and its lock, creating both on first
// reference. Callers must not retain the pointer past the lock.
func (m *Manager) chat(chatID int64, title string) (*model.ChatState, *sync.Mutex) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.state.Chats[chatID]
	if !ok {
		chat = model.NewChatState(title, time.Now().UTC())
		m.state.Chats[chatID] = chat
		logrus.Infof("new chat_state:%v", chatID)
	}
	lock, ok := m.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[chatID] = lock
	}
	return chat, lock
}

// WithChat runs fn with exclusive access to one chat's state, creating
// the chat if this is its first reference. fn must not perform I/O.
func (m *Manager) WithChat(chatID int64, fn func(chat *model.ChatState)) {
	chat, lock := m.chat(chatID, "")
	lock.Lock()
	defer lock.Unlock()
	fn(chat)
}

// ReadChat runs fn against an existing chat and reports whether the
// chat exists. It never creates the chat.
func (m *Manager) ReadChat(chatID int64, fn func(chat *model.ChatState)) bool {
	m.mu.Lock()
	chat, ok := m.state.Chats[chatID]
	lock := m.locks[chatID]
	m.mu.Unlock()
	if !ok {
		return false
	}
	lock.Lock()
	defer lock.Unlock()
	fn(chat)
	return true
}

func (m *Manager) SetChatTitle(chatID int64, title string) {
	if title == "" {
		return
	}
	m.WithChat(chatID, func(chat *model.ChatState) {
		chat.Info.Title = title
	})
}

func (m *Manager) UserHasRole(chatID int64, role string, userID int64) bool {
	var has bool
	m.ReadChat(chatID, func(chat *model.ChatState) {
		for _, id := range chat.Users.Roles[role] {
			if id == userID {
				has = true
				return
			}
		}
	})
	return has
}

func (m *Manager) IsGloballyBanned(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.state.GlobalBans {
		if id == userID {
			return true
		}
	}
	return false
}

// GlobalBan is idempotent; it reports whether the ban is new. The
// fan-out announcement to every chat is the dispatcher's job.
func (m *Manager) GlobalBan(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.state.GlobalBans {
		if id == userID {
			return false
		}
	}
	m.state.GlobalBans = append(m.state.GlobalBans, userID)
	return true
}

func (m *Manager) ChatIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.state.Chats))
	for id := range m.state.Chats {
		ids = append(ids, id)
	}
	return ids
}

func (m *Manager) Statistics() model.Statistics {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.state.Statistics
}

func (m *Manager) GlobalBanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.GlobalBans)
}

func (m *Manager) IncTotalCommands() {
	m.statsMu.Lock()
	m.state.Statistics.TotalCommands++
	m.statsMu.Unlock()
}

func (m *Manager) incTotalMessages() {
	m.statsMu.Lock()
	m.state.Statistics.TotalMessages++
	m.statsMu.Unlock()
}

func (m *Manager) incTotalBans() {
	m.statsMu.Lock()
	m.state.Statistics.TotalBans++
	m.statsMu.Unlock()
}

func (m *Manager) incTotalMutes() {
	m.statsMu.Lock()
	m.state.Statistics.TotalMutes++
	m.statsMu.Unlock()
}

func (m *Manager) incTotalKicks() {
	m.statsMu.Lock()
	m.state.Statistics.TotalKicks++
	m.statsMu.Unlock()
}

// Snapshot takes a point-in-time deep copy for the persistence layer.
// The global lock is held across the whole copy, so every chat stalls
// until the snapshot completes.
func (m *Manager) Snapshot() *model.GlobalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsMu.Lock()
	clone := &model.GlobalState{
		Chats:      make(map[int64]*model.ChatState, len(m.state.Chats)),
		GlobalBans: append([]int64{}, m.state.GlobalBans...),
		Statistics: m.state.Statistics,
	}
	m.statsMu.Unlock()
	for id, chat := range m.state.Chats {
		lock := m.locks[id]
		lock.Lock()
		clone.Chats[id] = chat.Clone()
		lock.Unlock()
	}
	return clone
}
