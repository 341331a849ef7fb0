package service

import (
	"context"
	"time"
	"wardenbot/client"
	"wardenbot/config"
	"wardenbot/model"
	"wardenbot/util"

	"github.com/bitly/go-simplejson"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	*Env
	update        tgbotapi.Update
	messageConfig tgbotapi.MessageConfig
	ctx           context.Context
	cancel        context.CancelFunc
	chatID        int64
}

func NewBotConfig(ctx context.Context, cancel context.CancelFunc, env *Env, update tgbotapi.Update) *BotConfig {
	botConfig := &BotConfig{
		Env:    env,
		ctx:    ctx,
		cancel: cancel,
		update: update,
		chatID: update.Message.Chat.ID,
		messageConfig: tgbotapi.MessageConfig{
			BaseChat: tgbotapi.BaseChat{
				ChatID:           update.Message.Chat.ID,
				ReplyToMessageID: update.Message.MessageID,
			},
			Entities: []tgbotapi.MessageEntity{},
		},
	}
	return botConfig
}

func (c *BotConfig) isCloseWork() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

func (c *BotConfig) sendMessage() {
	if _, err := c.Bot.Send(c.messageConfig); err != nil {
		logrus.Error(err)
	}
	logrus.Debugf("send_msg:%v", util.LogMarshal(c.messageConfig))
}

func (c *BotConfig) sendMessageTo(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.Bot.Send(msg); err != nil {
		logrus.Error(err)
	}
}

// mentionEntity prefixes the reply with a text_mention for the user so
// the name is clickable even without a username.
func (c *BotConfig) mentionEntity(userID int64, userName string) {
	c.messageConfig.Entities = []tgbotapi.MessageEntity{{
		Type:   "text_mention",
		Offset: 0,
		Length: util.TGNameWidth(userName),
		User:   &tgbotapi.User{ID: userID},
	}}
}

// getUserName resolves a display name, best-effort. On failure a
// placeholder is substituted so moderation flows never block on the
// lookup.
func (c *BotConfig) getUserName(userID int64) string {
	userNameCacheLock.RLock()
	userName, ok := userNameCache[userID]
	userNameCacheLock.RUnlock()
	if ok {
		return userName
	}
	req, err := c.Bot.Request(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: c.chatID,
			UserID: userID,
		},
	})
	if req.Ok {
		userJson, _ := simplejson.NewJson(req.Result)
		userName = userJson.Get("user").Get("first_name").MustString()
	} else {
		logrus.Errorln(req.ErrorCode, err)
	}
	if len(userName) == 0 {
		return util.StrBuilder("user", util.NumToStr(userID))
	}
	userNameCacheLock.Lock()
	userNameCache[userID] = userName
	userNameCacheLock.Unlock()
	return userName
}

func (c *BotConfig) deleteMessage(messageID int) {
	req, err := c.Bot.Request(tgbotapi.DeleteMessageConfig{
		ChatID:    c.chatID,
		MessageID: messageID,
	})
	if !req.Ok {
		logrus.Warnln(req.ErrorCode, err)
	}
}

func (c *BotConfig) pinMessage(messageID int) bool {
	req, err := c.Bot.Request(tgbotapi.PinChatMessageConfig{
		ChatID:    c.chatID,
		MessageID: messageID,
	})
	if !req.Ok {
		logrus.Errorln(req.ErrorCode, err)
		return false
	}
	return true
}

func (c *BotConfig) unpinMessage() bool {
	req, err := c.Bot.Request(tgbotapi.UnpinChatMessageConfig{
		ChatID: c.chatID,
	})
	if !req.Ok {
		logrus.Errorln(req.ErrorCode, err)
		return false
	}
	return true
}

// removeChatMember kicks the user, best-effort. Failures are logged
// and swallowed: the state mutation already happened and stands.
func (c *BotConfig) removeChatMember(userID int64) {
	req, err := c.Bot.Request(tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: c.chatID,
			UserID: userID,
		},
	})
	if !req.Ok {
		logrus.Warnln(req.ErrorCode, err)
	}
}

// auditRecord ships one moderation action to the audit sink, if one
// is configured. Failures are logged and never block the command.
func (c *BotConfig) auditRecord(action string, actor, target int64, reason string) {
	if c.Audit == nil || !config.Conf.Audit.Enable {
		return
	}
	record := &model.AuditRecord{
		ChatID:     c.chatID,
		Action:     action,
		Actor:      actor,
		Target:     target,
		Reason:     reason,
		CreateTime: time.Now().UTC(),
	}
	if err := client.AddRecord(c.Audit, record); err != nil {
		logrus.Warn(err)
	}
}
