package service

import (
	"context"
	"strconv"
	"strings"
	"wardenbot/config"
	"wardenbot/state"

	"github.com/sirupsen/logrus"
)

type CommandConfig struct {
	*BotConfig
	ctx            context.Context
	command        string
	args           []string
	requiredTier   state.Tier
	mustReply      bool
	actorTier      state.Tier
	handleUserID   int64
	handleUserName string
}

func NewCommandConfig(ctx context.Context, botConfig *BotConfig) *CommandConfig {
	return &CommandConfig{
		ctx:       ctx,
		BotConfig: botConfig,
		command:   botConfig.update.Message.Command(),
		args:      strings.Fields(botConfig.update.Message.CommandArguments()),
	}
}

func commandEnabled(command string) bool {
	if len(config.CommandsMap) == 0 {
		return true
	}
	_, ok := config.CommandsMap[command]
	return ok
}

func (c *CommandConfig) InCommands() {
	fn, ok := commandsFunc[c.command]
	if !ok || !commandEnabled(c.command) {
		return
	}
	logrus.Infof("command_user=%v command=%s command_args=%v", c.update.Message.From.ID, c.command, c.args)
	c.Manager.IncTotalCommands()
	fn(c)
}

func (c *CommandConfig) InPrivateCommands() {
	if _, ok := config.PrivateCommandsMap[c.command]; !ok {
		return
	}
	fn, ok := commandsFunc[c.command]
	if !ok {
		return
	}
	logrus.Infof("command_user=%v command=%s command_args=%v", c.update.Message.From.ID, c.command, c.args)
	c.Manager.IncTotalCommands()
	fn(c)
}

// isApproveCommandRule gates one command invocation: resolves the
// actor's tier, applies the global-ban override, checks the required
// tier and picks the handled user from the replied-to message or a
// leading numeric argument. Tier resolution happens here, before any
// state mutation, so no lookup runs inside the chat's critical
// section.
func (c *CommandConfig) isApproveCommandRule() bool {
	actor := c.update.Message.From.ID
	c.actorTier = c.Resolver.Resolve(c.chatID, actor)

	// A global ban overrides every tier except the superadmin path
	// that issues global bans.
	if c.actorTier != state.TierSuperAdmin && c.Manager.IsGloballyBanned(actor) {
		c.messageConfig.Text = errorText(state.ErrGloballyBanned)
		c.sendMessage()
		return false
	}

	if c.actorTier < c.requiredTier {
		c.messageConfig.Text = errorText(&state.PermissionDeniedError{Required: c.requiredTier})
		c.sendMessage()
		return false
	}

	if c.update.Message.ReplyToMessage != nil {
		c.handleUserID = c.update.Message.ReplyToMessage.From.ID
		c.handleUserName = c.update.Message.ReplyToMessage.From.FirstName
	} else if len(c.args) > 0 {
		if id, err := strconv.ParseInt(strings.TrimPrefix(c.args[0], "@"), 10, 64); err == nil {
			c.handleUserID = id
			c.handleUserName = c.getUserName(id)
			c.args = c.args[1:]
		}
	}
	if c.mustReply && c.handleUserID == 0 {
		c.messageConfig.Text = "reply to the user's message or pass a numeric user id"
		c.sendMessage()
		return false
	}
	return true
}

func (c *CommandConfig) handleUserTier() state.Tier {
	return c.Resolver.Resolve(c.chatID, c.handleUserID)
}

func (c *CommandConfig) reasonFrom(args []string) string {
	if len(args) == 0 {
		return "not specified"
	}
	return strings.Join(args, " ")
}

func init() {
	defer func() {
		for i := range commandsFunc {
			logrus.Infof("registr_command=%v", i)
		}
	}()
	commandsFunc["ban"] = func(c *CommandConfig) {
		c.banCommand()
	}
	commandsFunc["unban"] = func(c *CommandConfig) {
		c.unBanCommand()
	}
	commandsFunc["mute"] = func(c *CommandConfig) {
		c.muteCommand()
	}
	commandsFunc["unmute"] = func(c *CommandConfig) {
		c.unMuteCommand()
	}
	commandsFunc["mutelist"] = func(c *CommandConfig) {
		c.muteListCommand()
	}
	commandsFunc["kick"] = func(c *CommandConfig) {
		c.kickCommand()
	}
	commandsFunc["warn"] = func(c *CommandConfig) {
		c.warnCommand()
	}
	commandsFunc["unwarn"] = func(c *CommandConfig) {
		c.unWarnCommand()
	}
	commandsFunc["snick"] = func(c *CommandConfig) {
		c.setNickCommand()
	}
	commandsFunc["gnick"] = func(c *CommandConfig) {
		c.getNickCommand()
	}
	commandsFunc["rnick"] = func(c *CommandConfig) {
		c.removeNickCommand()
	}
	commandsFunc["nlist"] = func(c *CommandConfig) {
		c.nickListCommand()
	}
	commandsFunc["addrole"] = func(c *CommandConfig) {
		c.addRoleCommand()
	}
	commandsFunc["rr"] = func(c *CommandConfig) {
		c.removeRoleCommand()
	}
	commandsFunc["role"] = func(c *CommandConfig) {
		c.roleCommand()
	}
	commandsFunc["roles"] = func(c *CommandConfig) {
		c.rolesCommand()
	}
	commandsFunc["pin"] = func(c *CommandConfig) {
		c.pinCommand()
	}
	commandsFunc["unpin"] = func(c *CommandConfig) {
		c.unPinCommand()
	}
	commandsFunc["del"] = func(c *CommandConfig) {
		c.delCommand()
	}
	commandsFunc["profile"] = func(c *CommandConfig) {
		c.profileCommand()
	}
	commandsFunc["admins"] = func(c *CommandConfig) {
		c.adminsCommand()
	}
	commandsFunc["unity"] = func(c *CommandConfig) {
		c.unityCommand()
	}
	commandsFunc["stats"] = func(c *CommandConfig) {
		c.statsCommand()
	}
	commandsFunc["welcome"] = func(c *CommandConfig) {
		c.welcomeCommand()
	}
	commandsFunc["editcmd"] = func(c *CommandConfig) {
		c.editCmdCommand()
	}
	commandsFunc["gban"] = func(c *CommandConfig) {
		c.globalBanCommand()
	}
	commandsFunc["modlog"] = func(c *CommandConfig) {
		c.modLogCommand()
	}
	commandsFunc["help"] = func(c *CommandConfig) {
		c.helpCommand()
	}
	commandsFunc["about"] = func(c *CommandConfig) {
		c.aboutCommand()
	}
	commandsFunc["start"] = func(c *CommandConfig) {
		c.startCommand()
	}
}
