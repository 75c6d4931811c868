package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Session names the per-run artifacts inside the workspace. The short token
// keys log lines and history records for the run.
type Session struct {
	ID        string
	VideoPath string
	AudioPath string
}

// Manager controls a single scratch directory.
type Manager struct {
	root string
	lock *flock.Flock
}

// NewManager returns a manager for the given workspace root. The root is not
// created until Reset runs.
func NewManager(root string) *Manager {
	return &Manager{
		root: root,
		lock: flock.New(root + ".lock"),
	}
}

// Root returns the workspace directory path.
func (m *Manager) Root() string {
	return m.root
}

// Acquire takes the workspace lock. It fails immediately when another
// process holds it.
func (m *Manager) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(m.lock.Path()), 0o755); err != nil {
		return fmt.Errorf("prepare lock directory: %w", err)
	}
	ok, err := m.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("workspace %s is in use by another process", m.root)
	}
	return nil
}

// Release drops the workspace lock.
func (m *Manager) Release() error {
	return m.lock.Unlock()
}

// Reset clears the workspace and recreates it empty. Removal failures are
// swallowed so a partially cleared directory never blocks a run; creation
// failures are fatal because nothing downstream can proceed without the
// directory.
func (m *Manager) Reset() error {
	_ = os.RemoveAll(m.root)
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return fmt.Errorf("create workspace %s: %w", m.root, err)
	}
	return nil
}

// NewSession mints a session with a fresh token and artifact paths inside
// the workspace.
func (m *Manager) NewSession() Session {
	id := newSessionToken()
	return Session{
		ID:        id,
		VideoPath: filepath.Join(m.root, "video_"+id+".mp4"),
		AudioPath: filepath.Join(m.root, "audio_"+id+".wav"),
	}
}

func newSessionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
