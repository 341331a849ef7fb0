package store

import (
	"encoding/json"
	"errors"
	"sync"
	"wardenbot/model"

	"github.com/sirupsen/logrus"
)

// ErrNoSnapshot means the backend holds no snapshot yet. Load treats
// it as a fresh start, not a failure.
var ErrNoSnapshot = errors.New("no snapshot")

type SnapshotClient interface {
	loadBlob() ([]byte, error)
	saveBlob([]byte) error
}

type Store struct {
	client SnapshotClient
}

func NewStore(client SnapshotClient) *Store {
	return &Store{client: client}
}

// Load reconstructs state from the last snapshot. A missing or
// unreadable snapshot is never fatal: the process starts empty and
// durability catches up on the next save.
func (s *Store) Load() *model.GlobalState {
	blob, err := s.client.loadBlob()
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			logrus.Info("no snapshot found, starting with empty state")
		} else {
			logrus.Errorf("snapshot load failed, starting with empty state: %v", err)
		}
		return model.NewGlobalState()
	}
	state := model.NewGlobalState()
	if err := json.Unmarshal(blob, state); err != nil {
		logrus.Errorf("snapshot corrupt, starting with empty state: %v", err)
		return model.NewGlobalState()
	}
	if state.Chats == nil {
		state.Chats = make(map[int64]*model.ChatState)
	}
	logrus.Infof("snapshot loaded, chats=%v", len(state.Chats))
	return state
}

// Save writes a full snapshot. The error is reported so callers can
// log degraded durability; in-memory state is never rolled back.
func (s *Store) Save(state *model.GlobalState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		logrus.Error(err)
		return err
	}
	if err := s.client.saveBlob(blob); err != nil {
		logrus.Errorf("snapshot save failed: %v", err)
		return err
	}
	return nil
}

var SnapshotProvider = make(map[string]func(string) SnapshotClient)

var snapshotClient SnapshotClient
var snapshotClientOnce sync.Once

func init() {
	defer func() {
		for i := range SnapshotProvider {
			logrus.Infof("registr_snapshot_provider:%v", i)
		}
	}()
	SnapshotProvider["file"] = func(dir string) SnapshotClient {
		snapshotClientOnce.Do(func() {
			c, err := newFileClient(dir)
			if err != nil {
				logrus.Panic(err)
			}
			snapshotClient = c
			logrus.Infof("new file_snapshot_client:%+v", c)
		})
		return snapshotClient
	}
	SnapshotProvider["redis"] = func(addr string) SnapshotClient {
		snapshotClientOnce.Do(func() {
			c := newRedisClient(addr)
			snapshotClient = c
			logrus.Infof("new redis_snapshot_client:%+v", c)
		})
		return snapshotClient
	}
}
