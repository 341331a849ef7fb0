package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	snapshotName = "state.dat"
	exportName   = "state.json"
)

type FileClient struct {
	dir string
}

func newFileClient(dir string) (*FileClient, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileClient{dir: dir}, nil
}

func (f *FileClient) loadBlob() ([]byte, error) {
	blob, err := os.ReadFile(filepath.Join(f.dir, snapshotName))
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// saveBlob writes to a temp file in the same directory and renames it
// into place, so a concurrent load never sees a partial snapshot. A
// second, indented copy is written for inspection; it is not
// authoritative and its failure is only logged.
func (f *FileClient) saveBlob(blob []byte) error {
	tmp, err := os.CreateTemp(f.dir, snapshotName+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, snapshotName)); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	f.writeExport(blob)
	return nil
}

func (f *FileClient) writeExport(blob []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, blob, "", "  "); err != nil {
		logrus.Warn(err)
		return
	}
	if err := os.WriteFile(filepath.Join(f.dir, exportName), out.Bytes(), 0o644); err != nil {
		logrus.Warn(err)
	}
}
