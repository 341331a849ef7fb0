package service

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"wardenbot/client"
	"wardenbot/config"
	"wardenbot/model"
	"wardenbot/state"
	"wardenbot/util"

	"github.com/sirupsen/logrus"
)

func (c *CommandConfig) banCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	actor := c.update.Message.From.ID
	reason := c.reasonFrom(c.args)
	res, err := c.Manager.Ban(c.chatID, actor, c.handleUserID, c.handleUserTier(), reason)
	if err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	logrus.Infof("handle_user:%v", c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has been banned\nreason: ", res.Reason)
	c.sendMessage()
	c.auditRecord("ban", actor, c.handleUserID, reason)
	c.removeChatMember(c.handleUserID)
}

func (c *CommandConfig) unBanCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	if err := c.Manager.Unban(c.chatID, c.handleUserID); err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	logrus.Infof("handle_user:%v", c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has been unbanned")
	c.sendMessage()
	c.auditRecord("unban", c.update.Message.From.ID, c.handleUserID, "")
}

func (c *CommandConfig) muteCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	if len(c.args) == 0 {
		c.messageConfig.Text = "usage: /mute <duration> [reason], e.g. /mute 1h spam (15m, 30m, 1h, 3h, 6h, 12h, 1d, 3d, 7d, 30d)"
		c.sendMessage()
		return
	}
	duration, ok := parseDuration(c.args[0])
	if !ok {
		c.messageConfig.Text = "invalid mute duration"
		c.sendMessage()
		return
	}
	actor := c.update.Message.From.ID
	reason := c.reasonFrom(c.args[1:])
	res, err := c.Manager.Mute(c.chatID, actor, c.handleUserID, c.handleUserTier(), duration, reason, time.Now().UTC())
	if err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	logrus.Infof("handle_user:%v mute_minutes:%v", c.handleUserID, res.EffectiveMinutes)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has been muted for ", formatMinutes(res.EffectiveMinutes), "\nreason: ", res.Reason)
	c.sendMessage()
	c.auditRecord("mute", actor, c.handleUserID, reason)
}

func (c *CommandConfig) unMuteCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	if err := c.Manager.Unmute(c.chatID, c.handleUserID, time.Now().UTC()); err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	logrus.Infof("handle_user:%v", c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " can speak again")
	c.sendMessage()
	c.auditRecord("unmute", c.update.Message.From.ID, c.handleUserID, "")
}

func (c *CommandConfig) muteListCommand() {
	c.requiredTier = state.TierModerator
	if !c.isApproveCommandRule() {
		return
	}
	mutes := c.Manager.ListMutes(c.chatID, time.Now().UTC())
	if len(mutes) == 0 {
		c.messageConfig.Text = "nobody is muted in this chat"
		c.sendMessage()
		return
	}
	sort.Slice(mutes, func(i, j int) bool {
		return mutes[i].Until.Before(mutes[j].Until)
	})
	var text string
	now := time.Now().UTC()
	for _, mute := range mutes {
		left := int(mute.Until.Sub(now).Minutes())
		if left < 1 {
			left = 1
		}
		text += util.StrBuilder(c.getUserName(mute.UserID), ": ", formatMinutes(left), " left\n")
	}
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) kickCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	actor := c.update.Message.From.ID
	reason := c.reasonFrom(c.args)
	if err := c.Manager.Kick(c.chatID, actor, c.handleUserID, c.handleUserTier(), reason, time.Now().UTC()); err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	logrus.Infof("handle_user:%v", c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has been kicked\nreason: ", reason)
	c.sendMessage()
	c.auditRecord("kick", actor, c.handleUserID, reason)
	c.removeChatMember(c.handleUserID)
}

func (c *CommandConfig) warnCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	actor := c.update.Message.From.ID
	if c.handleUserID == actor {
		c.messageConfig.Text = errorText(state.ErrSelfTarget)
		c.sendMessage()
		return
	}
	if c.handleUserTier() >= state.TierAdmin {
		c.messageConfig.Text = errorText(state.ErrTargetPrivileged)
		c.sendMessage()
		return
	}
	reason := c.reasonFrom(c.args)
	res := c.Manager.Warn(c.chatID, c.handleUserID, reason)
	logrus.Infof("handle_user:%v warn_count:%v", c.handleUserID, res.WarnCount)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has been warned ",
		util.NumToStr(res.WarnCount), "/", util.NumToStr(res.MaxWarns), "\nreason: ", reason)
	c.sendMessage()
	c.auditRecord("warn", actor, c.handleUserID, reason)
	if res.Escalated {
		c.mentionEntity(c.handleUserID, c.handleUserName)
		c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has been banned for reaching the warning limit ",
			util.NumToStr(res.WarnCount), "/", util.NumToStr(res.MaxWarns))
		c.sendMessage()
		c.auditRecord("ban", actor, c.handleUserID, "warning limit reached")
		c.removeChatMember(c.handleUserID)
	}
}

func (c *CommandConfig) unWarnCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	count := c.Manager.Unwarn(c.chatID, c.handleUserID)
	_, maxWarns := c.Manager.Warns(c.chatID, c.handleUserID)
	logrus.Infof("handle_user:%v warn_count:%v", c.handleUserID, count)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " warning removed ",
		util.NumToStr(count), "/", util.NumToStr(maxWarns))
	c.sendMessage()
}

func (c *CommandConfig) setNickCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	if len(c.args) == 0 {
		c.messageConfig.Text = "usage: /snick <nickname>"
		c.sendMessage()
		return
	}
	nickname := strings.Join(c.args, " ")
	if err := c.Manager.SetNickname(c.chatID, c.handleUserID, nickname); err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " is now known as ", nickname)
	c.sendMessage()
}

func (c *CommandConfig) getNickCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	if c.handleUserID == 0 {
		c.handleUserID = c.update.Message.From.ID
		c.handleUserName = c.update.Message.From.FirstName
	}
	nickname, ok := c.Manager.Nickname(c.chatID, c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	if ok {
		c.messageConfig.Text = util.StrBuilder(c.handleUserName, " nickname: ", nickname)
	} else {
		c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has no nickname")
	}
	c.sendMessage()
}

func (c *CommandConfig) removeNickCommand() {
	c.requiredTier = state.TierModerator
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	nickname, ok := c.Manager.RemoveNickname(c.chatID, c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	if !ok {
		c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has no nickname")
		c.sendMessage()
		return
	}
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " nickname removed (", nickname, ")")
	c.sendMessage()
}

func (c *CommandConfig) nickListCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	nicknames := c.Manager.ListNicknames(c.chatID)
	if len(nicknames) == 0 {
		c.messageConfig.Text = "no nicknames set in this chat"
		c.sendMessage()
		return
	}
	var text string
	for userID, nickname := range nicknames {
		text += util.StrBuilder(c.getUserName(userID), ": ", nickname, "\n")
	}
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) addRoleCommand() {
	c.requiredTier = state.TierAdmin
	if !c.isApproveCommandRule() {
		return
	}
	if len(c.args) == 0 || (c.handleUserID == 0 && len(c.args) < 2) {
		c.messageConfig.Text = "usage: /addrole <role> <user id> (or reply to the user)"
		c.sendMessage()
		return
	}
	role := c.args[0]
	if c.handleUserID == 0 {
		c.resolveTargetArg(c.args[1])
	}
	if c.handleUserID == 0 {
		c.messageConfig.Text = "invalid user id"
		c.sendMessage()
		return
	}
	if err := c.Manager.AddRole(c.chatID, role, c.handleUserID); err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " got the role '", strings.ToLower(role), "'")
	c.sendMessage()
}

func (c *CommandConfig) removeRoleCommand() {
	c.requiredTier = state.TierAdmin
	if !c.isApproveCommandRule() {
		return
	}
	if len(c.args) == 0 || (c.handleUserID == 0 && len(c.args) < 2) {
		c.messageConfig.Text = "usage: /rr <role> <user id> (or reply to the user)"
		c.sendMessage()
		return
	}
	role := c.args[0]
	if c.handleUserID == 0 {
		c.resolveTargetArg(c.args[1])
	}
	if c.handleUserID == 0 {
		c.messageConfig.Text = "invalid user id"
		c.sendMessage()
		return
	}
	if err := c.Manager.RemoveRole(c.chatID, role, c.handleUserID); err != nil {
		c.messageConfig.Text = errorText(err)
		c.sendMessage()
		return
	}
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = util.StrBuilder(c.handleUserName, " lost the role '", strings.ToLower(role), "'")
	c.sendMessage()
}

func (c *CommandConfig) roleCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	if c.handleUserID == 0 {
		c.handleUserID = c.update.Message.From.ID
		c.handleUserName = c.update.Message.From.FirstName
	}
	roles := c.Manager.RolesOf(c.chatID, c.handleUserID)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	if len(roles) == 0 {
		c.messageConfig.Text = util.StrBuilder(c.handleUserName, " has no roles")
	} else {
		sort.Strings(roles)
		c.messageConfig.Text = util.StrBuilder(c.handleUserName, " roles: ", strings.Join(roles, ", "))
	}
	c.sendMessage()
}

func (c *CommandConfig) rolesCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	roles := c.Manager.ListRoles(c.chatID)
	if len(roles) == 0 {
		c.messageConfig.Text = "no roles configured in this chat"
		c.sendMessage()
		return
	}
	names := make([]string, 0, len(roles))
	for role := range roles {
		names = append(names, role)
	}
	sort.Strings(names)
	var text string
	for _, role := range names {
		members := roles[role]
		text += util.StrBuilder(strings.ToUpper(role), " (", util.NumToStr(len(members)), "):\n")
		for i, userID := range members {
			if i == 5 {
				text += util.StrBuilder("  ... and ", util.NumToStr(len(members)-5), " more\n")
				break
			}
			text += util.StrBuilder("  ", c.getUserName(userID), "\n")
		}
	}
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) pinCommand() {
	c.requiredTier = state.TierModerator
	if !c.isApproveCommandRule() {
		return
	}
	if c.update.Message.ReplyToMessage == nil {
		c.messageConfig.Text = "reply to the message you want pinned"
		c.sendMessage()
		return
	}
	if c.pinMessage(c.update.Message.ReplyToMessage.MessageID) {
		c.messageConfig.Text = "message pinned"
		c.sendMessage()
	}
}

func (c *CommandConfig) unPinCommand() {
	c.requiredTier = state.TierModerator
	if !c.isApproveCommandRule() {
		return
	}
	if c.unpinMessage() {
		c.messageConfig.Text = "message unpinned"
		c.sendMessage()
	}
}

func (c *CommandConfig) delCommand() {
	c.requiredTier = state.TierModerator
	if !c.isApproveCommandRule() {
		return
	}
	if c.update.Message.ReplyToMessage == nil {
		c.messageConfig.Text = "reply to the message you want deleted"
		c.sendMessage()
		return
	}
	c.deleteMessage(c.update.Message.ReplyToMessage.MessageID)
	c.deleteMessage(c.update.Message.MessageID)
}

func (c *CommandConfig) profileCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	if c.handleUserID == 0 {
		c.handleUserID = c.update.Message.From.ID
		c.handleUserName = c.update.Message.From.FirstName
	}
	text := util.StrBuilder(c.handleUserName, "\nid: ", util.NumToStr(c.handleUserID), "\n")
	if nickname, ok := c.Manager.Nickname(c.chatID, c.handleUserID); ok {
		text += util.StrBuilder("nickname: ", nickname, "\n")
	}
	if roles := c.Manager.RolesOf(c.chatID, c.handleUserID); len(roles) > 0 {
		sort.Strings(roles)
		text += util.StrBuilder("roles: ", strings.Join(roles, ", "), "\n")
	}
	warns, maxWarns := c.Manager.Warns(c.chatID, c.handleUserID)
	text += util.StrBuilder("activity: ", util.NumToStr(c.Manager.Score(c.chatID, c.handleUserID)), "\n")
	text += util.StrBuilder("warns: ", util.NumToStr(warns), "/", util.NumToStr(maxWarns), "\n")
	if c.Manager.IsBanned(c.chatID, c.handleUserID) {
		text += "status: banned\n"
	}
	if c.Manager.IsMuted(c.chatID, c.handleUserID, time.Now().UTC()) {
		text += "status: muted\n"
	}
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) adminsCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	var owners, admins, moderators string
	if source := c.Resolver.Members(); source != nil {
		members, err := source.ChatAdministrators(c.chatID)
		if err != nil {
			members = nil
		}
		for _, member := range members {
			switch {
			case member.IsOwner:
				owners += util.StrBuilder("  ", c.getUserName(member.UserID), "\n")
			case member.IsAdmin:
				admins += util.StrBuilder("  ", c.getUserName(member.UserID), "\n")
			}
		}
	}
	for _, userID := range c.Manager.ListRoles(c.chatID)[state.RoleModerator] {
		moderators += util.StrBuilder("  ", c.getUserName(userID), "\n")
	}
	var text string
	if owners != "" {
		text += util.StrBuilder("owner:\n", owners)
	}
	if admins != "" {
		text += util.StrBuilder("admins:\n", admins)
	}
	if moderators != "" {
		text += util.StrBuilder("moderators:\n", moderators)
	}
	if text == "" {
		text = "no administrators assigned"
	}
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) unityCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	total, users := c.Manager.ActivityTotals(c.chatID)
	if users == 0 {
		c.messageConfig.Text = "no chat activity recorded yet"
		c.sendMessage()
		return
	}
	text := util.StrBuilder("chat activity\ntotal: ", util.NumToStr(total),
		"\nusers: ", util.NumToStr(users), "\n\ntop:\n")
	for i, entry := range c.Manager.TopN(c.chatID, 10) {
		text += util.StrBuilder(util.NumToStr(i+1), ". ", c.getUserName(entry.UserID),
			": ", util.NumToStr(entry.Score), "\n")
	}
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) statsCommand() {
	if !c.isApproveCommandRule() {
		return
	}
	stats := c.Manager.Statistics()
	var text string
	c.Manager.ReadChat(c.chatID, func(chat *model.ChatState) {
		text = util.StrBuilder("this chat:\n",
			"  messages: ", util.NumToStr(chat.Info.MessageCount), "\n",
			"  bans: ", util.NumToStr(len(chat.Moderation.Bans)), "\n",
			"  warned users: ", util.NumToStr(len(chat.Moderation.Warns)), "\n",
			"  welcomed: ", util.NumToStr(chat.WelcomeStats.TotalWelcomed), "\n\n")
	})
	text += util.StrBuilder("global:\n",
		"  chats: ", util.NumToStr(len(c.Manager.ChatIDs())), "\n",
		"  messages: ", util.NumToStr(stats.TotalMessages), "\n",
		"  commands: ", util.NumToStr(stats.TotalCommands), "\n",
		"  bans: ", util.NumToStr(stats.TotalBans), "\n",
		"  mutes: ", util.NumToStr(stats.TotalMutes), "\n",
		"  kicks: ", util.NumToStr(stats.TotalKicks), "\n",
		"  global bans: ", util.NumToStr(c.Manager.GlobalBanCount()))
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) welcomeCommand() {
	c.requiredTier = state.TierModerator
	if !c.isApproveCommandRule() {
		return
	}
	if len(c.args) == 0 {
		settings := c.Manager.Settings(c.chatID)
		status := "off"
		if settings.AutoWelcome {
			status = "on"
		}
		c.messageConfig.Text = util.StrBuilder("welcome settings:\n  message: ", settings.WelcomeMessage,
			"\n  auto welcome: ", status)
		c.sendMessage()
		return
	}
	switch c.args[0] {
	case "set":
		if len(c.args) < 2 {
			c.messageConfig.Text = "usage: /welcome set <text>, {user} is replaced with the new member"
			c.sendMessage()
			return
		}
		c.Manager.SetWelcomeMessage(c.chatID, strings.Join(c.args[1:], " "))
		c.messageConfig.Text = "welcome message updated"
		c.sendMessage()
	case "toggle":
		if c.Manager.ToggleAutoWelcome(c.chatID) {
			c.messageConfig.Text = "auto welcome enabled"
		} else {
			c.messageConfig.Text = "auto welcome disabled"
		}
		c.sendMessage()
	case "test":
		settings := c.Manager.Settings(c.chatID)
		c.messageConfig.Text = strings.ReplaceAll(settings.WelcomeMessage, "{user}", c.update.Message.From.FirstName)
		c.sendMessage()
	default:
		c.messageConfig.Text = "available subcommands: set, toggle, test"
		c.sendMessage()
	}
}

func (c *CommandConfig) editCmdCommand() {
	c.requiredTier = state.TierAdmin
	if !c.isApproveCommandRule() {
		return
	}
	if len(c.args) == 0 {
		c.messageConfig.Text = "usage:\n/editcmd add <name> <text>\n/editcmd del <name>\n/editcmd list"
		c.sendMessage()
		return
	}
	prefix := c.Manager.Settings(c.chatID).CommandPrefix
	switch c.args[0] {
	case "add":
		if len(c.args) < 3 {
			c.messageConfig.Text = "usage: /editcmd add <name> <text>"
			c.sendMessage()
			return
		}
		name := strings.ToLower(c.args[1])
		c.Manager.RegisterCustomCommand(c.chatID, name, strings.Join(c.args[2:], " "))
		c.messageConfig.Text = util.StrBuilder("command ", prefix, name, " added")
		c.sendMessage()
	case "del", "remove":
		if len(c.args) < 2 {
			c.messageConfig.Text = "usage: /editcmd del <name>"
			c.sendMessage()
			return
		}
		name := strings.ToLower(c.args[1])
		if err := c.Manager.DeleteCustomCommand(c.chatID, name); err != nil {
			c.messageConfig.Text = errorText(err)
			c.sendMessage()
			return
		}
		c.messageConfig.Text = util.StrBuilder("command ", prefix, name, " deleted")
		c.sendMessage()
	case "list":
		commands := c.Manager.ListCustomCommands(c.chatID)
		if len(commands) == 0 {
			c.messageConfig.Text = "no custom commands configured"
			c.sendMessage()
			return
		}
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		var text string
		for _, name := range names {
			response := commands[name]
			if len(response) > 50 {
				response = response[:50] + "..."
			}
			text += util.StrBuilder(prefix, name, ": ", response, "\n")
		}
		c.messageConfig.Text = text
		c.sendMessage()
	default:
		c.messageConfig.Text = "available subcommands: add, del, list"
		c.sendMessage()
	}
}

func (c *CommandConfig) globalBanCommand() {
	c.requiredTier = state.TierSuperAdmin
	c.mustReply = true
	if !c.isApproveCommandRule() {
		return
	}
	actor := c.update.Message.From.ID
	reason := c.reasonFrom(c.args)
	added := c.Manager.GlobalBan(c.handleUserID)
	logrus.Infof("handle_user:%v global_ban_new:%v", c.handleUserID, added)
	text := util.StrBuilder("GLOBAL BAN\nuser: ", c.handleUserName, "\nreason: ", reason)
	c.mentionEntity(c.handleUserID, c.handleUserName)
	c.messageConfig.Text = text
	c.sendMessage()
	c.auditRecord("gban", actor, c.handleUserID, reason)
	// Announce to every known chat; the state mutation above already
	// happened and does not depend on delivery.
	for _, chatID := range c.Manager.ChatIDs() {
		if chatID == c.chatID {
			continue
		}
		c.sendMessageTo(chatID, text)
	}
}

func (c *CommandConfig) modLogCommand() {
	c.requiredTier = state.TierModerator
	if !c.isApproveCommandRule() {
		return
	}
	if c.Audit == nil || !config.Conf.Audit.Enable {
		c.messageConfig.Text = "audit log is not configured"
		c.sendMessage()
		return
	}
	action := "ban"
	if len(c.args) > 0 {
		action = strings.ToLower(c.args[0])
	}
	records, err := client.SearchRecords(c.Audit, c.chatID, action)
	if err != nil {
		logrus.Warn(err)
		c.messageConfig.Text = "audit log query failed"
		c.sendMessage()
		return
	}
	if len(records) == 0 {
		c.messageConfig.Text = util.StrBuilder("no '", action, "' records for this chat")
		c.sendMessage()
		return
	}
	text := util.StrBuilder(action, " log:\n")
	for i, record := range records {
		if i == 10 {
			text += util.StrBuilder("... and ", util.NumToStr(len(records)-10), " more\n")
			break
		}
		text += util.StrBuilder(record.CreateTime.Format("2006-01-02 15:04"), " ",
			c.getUserName(record.Actor), " -> ", c.getUserName(record.Target),
			": ", record.Reason, "\n")
	}
	c.messageConfig.Text = text
	c.sendMessage()
}

func (c *CommandConfig) helpCommand() {
	c.messageConfig.Text = `moderation:
/ban /unban /mute <duration> /unmute /kick /warn /unwarn /mutelist
(reply to the target's message, or pass a numeric user id)

nicknames:
/snick <nick> /gnick /rnick /nlist

roles:
/addrole <role> /rr <role> /role /roles

messages:
/pin /unpin /del (reply to the message)

info:
/profile /admins /unity /stats

settings:
/welcome [set|toggle|test] /editcmd [add|del|list] /modlog [action]

global (superadmins):
/gban <reason>`
	c.sendMessage()
}

func (c *CommandConfig) startCommand() {
	c.messageConfig.Text = "add me to a group chat and use /help"
	c.sendMessage()
}

func (c *CommandConfig) aboutCommand() {
	stats := c.Manager.Statistics()
	c.messageConfig.Text = util.StrBuilder("wardenbot, a group moderation bot\nchats served: ",
		util.NumToStr(len(c.Manager.ChatIDs())),
		"\nmessages seen: ", util.NumToStr(stats.TotalMessages),
		"\nuse /help for the command list")
	c.sendMessage()
}

// resolveTargetArg fills the handled user from an explicit id
// argument.
func (c *CommandConfig) resolveTargetArg(arg string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "@"), 10, 64)
	if err != nil {
		return
	}
	c.handleUserID = id
	c.handleUserName = c.getUserName(id)
}
