package storagefs

import (
	"io/fs"
	"os"
	"path/filepath"

	"video-ingest-service/pkg/logger"
)

// Layout implements gateway.StorageLayout on a locally mounted
// filesystem, typically a DFS mount shared with the playback tier.
type Layout struct {
	root string
}

func NewLayout(root string) *Layout {
	return &Layout{root: root}
}

func (l *Layout) Root() string {
	return l.root
}

func (l *Layout) DirFor(videoUUID string) string {
	return filepath.Join(l.root, videoUUID)
}

func (l *Layout) EnsureRoot() error {
	return os.MkdirAll(l.root, 0o755)
}

func (l *Layout) EnsureDir(videoUUID string) (string, error) {
	dir := l.DirFor(videoUUID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, err
	}
	return dir, nil
}

// RemoveTree deletes dir depth-first so children go before parents. DFS
// mounts can refuse individual deletes; those are logged and skipped so
// the walk always covers the whole tree.
func (l *Layout) RemoveTree(dir string) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("cleanup walk error path=%s error=%v", path, err)
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		logger.Warnf("cleanup walk failed dir=%s error=%v", dir, err)
	}

	for i := len(paths) - 1; i >= 0; i-- {
		if err := os.Remove(paths[i]); err != nil && !os.IsNotExist(err) {
			logger.Warnf("cleanup delete failed path=%s error=%v", paths[i], err)
		}
	}
}

func (l *Layout) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
