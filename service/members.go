package service

import (
	"sync"
	"time"
	"wardenbot/state"

	"github.com/bitly/go-simplejson"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TGMemberSource answers the platform admin/owner query with a cache,
// so tier resolution never blocks on the API inside hot paths. A
// failed query yields no admin evidence, never an error to callers.
type TGMemberSource struct {
	bot   *tgbotapi.BotAPI
	mu    sync.Mutex
	cache map[int64]*adminsCacheEntry
}

func NewTGMemberSource(bot *tgbotapi.BotAPI) *TGMemberSource {
	return &TGMemberSource{
		bot:   bot,
		cache: make(map[int64]*adminsCacheEntry),
	}
}

func (s *TGMemberSource) ChatAdministrators(chatID int64) ([]state.ChatMember, error) {
	s.mu.Lock()
	entry, ok := s.cache[chatID]
	s.mu.Unlock()
	if ok && time.Since(entry.cachedAt) < adminsCacheTTL {
		return entry.members, nil
	}

	req, err := s.bot.Request(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{
			ChatID: chatID,
		},
	})
	if !req.Ok {
		logrus.Errorln(req.ErrorCode, err)
		return nil, err
	}

	resJson, err := simplejson.NewJson(req.Result)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	chatAdministrators := resJson.MustArray()
	members := make([]state.ChatMember, 0, len(chatAdministrators))
	for i := range chatAdministrators {
		item := resJson.GetIndex(i)
		status := item.Get("status").MustString()
		members = append(members, state.ChatMember{
			UserID:  item.Get("user").Get("id").MustInt64(),
			IsAdmin: status == "administrator",
			IsOwner: status == "creator",
		})
	}

	s.mu.Lock()
	s.cache[chatID] = &adminsCacheEntry{members: members, cachedAt: time.Now()}
	s.mu.Unlock()
	return members, nil
}
