package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"wardenbot/client"
	"wardenbot/config"
	"wardenbot/controller"
	"wardenbot/service"
	"wardenbot/state"
	"wardenbot/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func RunBot() {
	bot, err := tgbotapi.NewBotAPI(config.Conf.BotToken)
	if err != nil {
		logrus.Panic(err)
	}
	bot.Debug = false
	logrus.Infof("bot=%v", bot.Self.UserName)

	env := newEnv(bot)
	go snapshotSaver(env)
	go handleSignals(env)

	switch config.Conf.UpdatesType {
	case "webhook":
		logrus.Info("updates_type=webhook")
		updatesHandler(NewWebhook(bot), env)
	default:
		logrus.Info("updates_type=polling")
		updatesHandler(NewPolling(bot), env)
	}
}

// newEnv wires the collaborators once at startup. A missing or corrupt
// snapshot yields a fresh state, never a dead bot.
func newEnv(bot *tgbotapi.BotAPI) *service.Env {
	providerFn, ok := store.SnapshotProvider[config.Conf.Snapshot.Provider]
	if !ok {
		logrus.Panicf("unknown snapshot provider: %v", config.Conf.Snapshot.Provider)
	}
	var providerArg string
	switch config.Conf.Snapshot.Provider {
	case "redis":
		providerArg = config.Conf.Snapshot.RedisHost
	default:
		providerArg = config.Conf.Snapshot.DataDir
	}
	st := store.NewStore(providerFn(providerArg))
	manager := state.NewManager(st.Load())
	resolver := state.NewResolver(config.Conf.SuperAdmins, service.NewTGMemberSource(bot), manager)

	var audit client.AuditClient
	if config.Conf.Audit.Enable {
		auditFn, ok := client.AuditProvider[config.Conf.Audit.Provider]
		if !ok {
			logrus.Panicf("unknown audit provider: %v", config.Conf.Audit.Provider)
		}
		audit = auditFn(config.Conf.Audit.URL)
	}

	return &service.Env{
		Bot:      bot,
		Manager:  manager,
		Resolver: resolver,
		Store:    st,
		Audit:    audit,
	}
}

func snapshotSaver(env *service.Env) {
	interval := time.Second * time.Duration(config.Conf.Snapshot.IntervalSeconds)
	for range time.Tick(interval) {
		if err := env.Store.Save(env.Manager.Snapshot()); err != nil {
			logrus.Errorf("periodic snapshot: %v", err)
		}
	}
}

func handleSignals(env *service.Env) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	logrus.Infof("signal=%v, saving final snapshot", sig)
	if err := env.Store.Save(env.Manager.Snapshot()); err != nil {
		logrus.Errorf("final snapshot: %v", err)
	}
	os.Exit(0)
}

func updatesHandler(client Client, env *service.Env) {
	for update := range client.Channel() {
		if update.Message != nil {
			if _chatCh, ok := chatMap.Load(update.Message.Chat.ID); ok {
				if chatCh, _ok := _chatCh.(chatChannel); _ok {
					chatCh <- update
					continue
				}
			}
			logrus.Infof("new chat_handler=%v", update.Message.Chat.ID)
			updateCh := make(chatChannel, 10)
			chatMap.Store(update.Message.Chat.ID, updateCh)
			go chatHandler(updateCh, env)
			updateCh <- update
		}
	}
}

var chatMap sync.Map

type chatChannel chan tgbotapi.Update

func chatHandler(ch chatChannel, env *service.Env) {
	var chatID int64
	var ttl int64 = 600
	for {
		select {
		case update := <-ch:
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
			controller.Controller(ctx, cancel, env, update)
			chatID = update.Message.Chat.ID
			if update.Message.Chat.Type == "private" {
				ttl = 60
			} else {
				ttl = 600
			}
		case <-time.After(time.Second * time.Duration(ttl)):
			logrus.Infof("close chat_handler=%v", chatID)
			chatMap.Delete(chatID)
			close(ch)
			return
		}
	}
}
