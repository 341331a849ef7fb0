package controller

import (
	"context"
	"wardenbot/config"
	"wardenbot/service"
	"wardenbot/util"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func isInWhitelist(chatUserName string, chatID int64) bool {
	if len(chatUserName) > 1 {
		if _, ok := config.WhitelistUsernameMap[chatUserName]; ok {
			return true
		}
	}
	if _, ok := config.WhitelistIdMap[chatID]; ok {
		return true
	}
	return false
}

func Controller(ctx context.Context, cancel context.CancelFunc, env *service.Env, update tgbotapi.Update) {
	logrus.DebugFn(util.LogMarshalFn(update))
	c := service.NewBotConfig(ctx, cancel, env, update)
	if (update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup()) &&
		(config.Conf.DisableWhitelist || isInWhitelist(update.Message.Chat.UserName, update.Message.Chat.ID)) {
		if len(update.Message.NewChatMembers) > 0 {
			service.NewChatConfig(c).InNewChatMembers()
			return
		}
		if service.NewChatConfig(c).InChatPipeline() {
			return
		}
		if config.Conf.Modules.EnableCommand && update.Message.IsCommand() {
			service.NewCommandConfig(ctx, c).InCommands()
			return
		}
		service.NewChatConfig(c).InCustomCommands()
		return
	}
	if update.Message.Chat.Type == "private" {
		if config.Conf.Modules.EnablePrivateCommand && update.Message.IsCommand() {
			service.NewCommandConfig(ctx, c).InPrivateCommands()
			return
		}
	}
}
