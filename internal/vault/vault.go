package vault

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"

	"daynote/internal/config"
	"daynote/internal/note"
	"daynote/internal/services"
)

const filePerms = 0o644

// ErrLocked reports that another process holds the vault lock.
var ErrLocked = errors.New("vault is locked by another daynote process")

// Vault reads and writes notes under a notes root.
type Vault struct {
	root     string
	lockPath string
	lock     *flock.Flock
}

// New constructs a vault rooted at notesRoot. lockPath may be empty when
// locking is not needed.
func New(notesRoot, lockPath string) *Vault {
	v := &Vault{root: notesRoot, lockPath: lockPath}
	if lockPath != "" {
		v.lock = flock.New(lockPath)
	}
	return v
}

// FromConfig constructs the vault described by cfg.
func FromConfig(cfg *config.Config) *Vault {
	return New(cfg.NotesRoot(), cfg.LockPath())
}

// Root returns the notes root directory.
func (v *Vault) Root() string {
	return v.root
}

// Path returns the daily note location for date.
func (v *Vault) Path(date time.Time) string {
	return filepath.Join(v.root, date.Format("2006"), date.Format("January"), date.Format("02-01-2006")+".md")
}

// MonthPath returns the monthly calendar note location for month.
func (v *Vault) MonthPath(month time.Time) string {
	return filepath.Join(v.root, month.Format("2006"), month.Format("January"), month.Format("January")+".md")
}

// Read loads the daily note for date. A missing note is reported through the
// boolean, not as an error.
func (v *Vault) Read(date time.Time) (note.Document, bool, error) {
	return v.ReadFile(v.Path(date))
}

// Write replaces the daily note for date with doc.
func (v *Vault) Write(date time.Time, doc note.Document) error {
	return v.WriteFile(v.Path(date), doc)
}

// ReadFile loads the note at path.
func (v *Vault) ReadFile(path string) (note.Document, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return note.Document{}, false, nil
	}
	if err != nil {
		return note.Document{}, false, services.Wrap(services.ErrIO, "vault", "read", path, err)
	}
	return note.Parse(data), true, nil
}

// WriteFile atomically replaces the note at path, creating parent
// directories as needed.
func (v *Vault) WriteFile(path string, doc note.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrIO, "vault", "create directory", filepath.Dir(path), err)
	}
	mode := os.FileMode(filePerms)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := atomic.WriteFile(path, bytes.NewReader(doc.Bytes())); err != nil {
		return services.Wrap(services.ErrIO, "vault", "write", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		return services.Wrap(services.ErrIO, "vault", "chmod", path, err)
	}
	return nil
}

// Exists reports whether a note exists at path.
func (v *Vault) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, services.Wrap(services.ErrIO, "vault", "stat", path, err)
}

// Lock takes the single-writer lock without blocking.
func (v *Vault) Lock() error {
	if v.lock == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(v.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := v.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrLocked, v.lockPath)
	}
	return nil
}

// Unlock releases the single-writer lock.
func (v *Vault) Unlock() error {
	if v.lock == nil {
		return nil
	}
	return v.lock.Unlock()
}

// HeaderFor returns the title line of a new daily note.
func HeaderFor(date time.Time) string {
	return "# " + date.Format("Monday, January 02, 2006")
}
