package config

import (
	"encoding/json"
	"os"
	"path"
	"runtime"
	"wardenbot/util"

	"github.com/sirupsen/logrus"
)

type Whitelist struct {
	GroupsId       []int64  `json:"groups_id,omitempty"`
	GroupsUsername []string `json:"groups_username,omitempty"`
}

type Modules struct {
	EnableCommand        bool `json:"enable_command"`
	EnablePrivateCommand bool `json:"enable_private_command"`
	EnableWelcome        bool `json:"enable_welcome"`
	EnableCustomCommands bool `json:"enable_custom_commands"`
}

type Webhook struct {
	Endpoint    string `json:"endpoint"`
	CertFile    string `json:"cert_file"`
	CertKeyFile string `json:"cert_key_file"`
	ListenAddr  string `json:"listen_addr"`
	Token       string `json:"token"`
}

type Snapshot struct {
	Provider        string `json:"provider"`
	DataDir         string `json:"data_dir"`
	RedisHost       string `json:"redis_host"`
	IntervalSeconds int    `json:"interval_seconds"`
}

type Audit struct {
	Enable   bool   `json:"enable"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type Config struct {
	Whitelist        Whitelist `json:"whitelist"`
	DisableWhitelist bool      `json:"disable_whitelist"`
	BotToken         string    `json:"bot_token"`
	SuperAdmins      []int64   `json:"super_admins"`
	LogLevel         uint8     `json:"log_level"`
	Commands         []string  `json:"commands"`
	PrivateCommands  []string  `json:"private_commands"`
	Modules          Modules   `json:"modules"`
	UpdatesType      string    `json:"updates_type"`
	Webhook          Webhook   `json:"webhook"`
	Snapshot         Snapshot  `json:"snapshot"`
	Audit            Audit     `json:"audit"`
}

var Conf Config
var PrivateCommandsMap = make(map[string]uint8)
var CommandsMap = make(map[string]uint8)
var WhitelistUsernameMap = make(map[string]int)
var WhitelistIdMap = make(map[int64]int)
var SuperAdminsMap = make(map[int64]uint8)

func init() {
	if configPath := os.Getenv("BOT_CONFIG"); configPath != "" {
		config, err := os.ReadFile(configPath)
		if err != nil {
			panic(err)
		}
		if err := json.Unmarshal(config, &Conf); err != nil {
			panic(err)
		}
	}

	for _, i := range Conf.Commands {
		CommandsMap[i] = 0
	}
	for _, i := range Conf.PrivateCommands {
		PrivateCommandsMap[i] = 0
	}
	for _, i := range Conf.Whitelist.GroupsUsername {
		WhitelistUsernameMap[i] = 0
	}
	for _, i := range Conf.Whitelist.GroupsId {
		WhitelistIdMap[i] = 0
	}
	for _, i := range Conf.SuperAdmins {
		SuperAdminsMap[i] = 0
	}

	if Conf.Snapshot.Provider == "" {
		Conf.Snapshot.Provider = "file"
	}
	if Conf.Snapshot.DataDir == "" {
		Conf.Snapshot.DataDir = "warden_data"
	}
	if Conf.Snapshot.IntervalSeconds <= 0 {
		Conf.Snapshot.IntervalSeconds = 300
	}

	switch {
	case Conf.LogLevel >= 3:
		logrus.SetLevel(logrus.DebugLevel)
	case Conf.LogLevel == 2:
		logrus.SetLevel(logrus.InfoLevel)
	case Conf.LogLevel == 1:
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			fileName := path.Base(frame.File)
			return frame.Function, fileName
		},
	})

	logrus.Infof("config:%v", util.LogMarshal(Conf))
}
