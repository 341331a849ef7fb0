package service

import (
	"strings"
	"time"
	"wardenbot/config"
	"wardenbot/state"
	"wardenbot/util"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type ChatConfig struct {
	*BotConfig
}

func NewChatConfig(botConfig *BotConfig) *ChatConfig {
	return &ChatConfig{BotConfig: botConfig}
}

// InChatPipeline runs on every group message before command dispatch.
// The message is counted first, then ban and mute suppression may
// delete it. Returns true when processing must stop here.
func (c *ChatConfig) InChatPipeline() bool {
	from := c.update.Message.From.ID
	now := time.Now().UTC()
	c.Manager.SetChatTitle(c.chatID, c.update.Message.Chat.Title)
	c.Manager.RecordInboundMessage(c.chatID, from, now)

	if c.Manager.IsGloballyBanned(from) && c.Resolver.Resolve(c.chatID, from) != state.TierSuperAdmin {
		logrus.Infof("suppress_global_ban:%v", from)
		c.deleteMessage(c.update.Message.MessageID)
		c.removeChatMember(from)
		return true
	}
	if c.Manager.IsBanned(c.chatID, from) {
		logrus.Infof("suppress_ban:%v", from)
		c.deleteMessage(c.update.Message.MessageID)
		c.removeChatMember(from)
		return true
	}
	if c.Manager.IsMuted(c.chatID, from, now) {
		logrus.Debugf("suppress_mute:%v", from)
		c.deleteMessage(c.update.Message.MessageID)
		return true
	}
	return false
}

// InCustomCommands answers chat-defined commands, matched by the
// chat's own prefix. Unknown names are ignored silently.
func (c *ChatConfig) InCustomCommands() {
	if !config.Conf.Modules.EnableCustomCommands {
		return
	}
	text := c.update.Message.Text
	prefix := c.Manager.Settings(c.chatID).CommandPrefix
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(fields) == 0 {
		return
	}
	response, ok := c.Manager.LookupCustomCommand(c.chatID, fields[0])
	if !ok {
		return
	}
	c.Manager.IncTotalCommands()
	c.messageConfig.Text = response
	c.sendMessage()
}

// InNewChatMembers greets joiners and throws out anyone who joined
// while carrying a ban.
func (c *ChatConfig) InNewChatMembers() {
	members := c.update.Message.NewChatMembers
	if len(members) == 0 {
		return
	}
	c.Manager.SetChatTitle(c.chatID, c.update.Message.Chat.Title)
	settings := c.Manager.Settings(c.chatID)
	for _, member := range members {
		if member.IsBot {
			continue
		}
		if c.Manager.IsGloballyBanned(member.ID) || c.Manager.IsBanned(c.chatID, member.ID) {
			logrus.Infof("rejoin_banned:%v", member.ID)
			c.removeChatMember(member.ID)
			continue
		}
		if !config.Conf.Modules.EnableWelcome || !settings.AutoWelcome {
			continue
		}
		text := strings.ReplaceAll(settings.WelcomeMessage, "{user}", member.FirstName)
		c.messageConfig.Entities = nil
		if idx := strings.Index(text, member.FirstName); idx >= 0 {
			c.messageConfig.Entities = []tgbotapi.MessageEntity{{
				Type:   "text_mention",
				Offset: util.TGNameWidth(text[:idx]),
				Length: util.TGNameWidth(member.FirstName),
				User:   &tgbotapi.User{ID: member.ID},
			}}
		}
		c.messageConfig.Text = text
		c.sendMessage()
		c.Manager.RecordWelcome(c.chatID, time.Now().UTC())
	}
}
