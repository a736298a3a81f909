// Package lock keeps two toyplan processes from writing the same store.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked means another live toyplan process holds the lock.
var ErrLocked = errors.New("another toyplan process is running")

// An unreadable lockfile younger than this may still be being written.
const writeGrace = 5 * time.Second

// Lock is a held lockfile. Release it when done.
type Lock struct {
	path string
	pid  int
}

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID        int
	Executable string
	Since      time.Time
}

// Acquire creates dir/toyplan.lock holding this process's PID. A lockfile
// left by a process that is gone, or that is not toyplan, is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)
	pid := getpidFunc()

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d|%d", pid, time.Now().Unix())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, err := Inspect(dir)
		if err == nil && holder.PID != pid && isToyplan(holder.PID) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder.PID)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) && recentlyModified(path) {
			return nil, fmt.Errorf("%w: lockfile is being written", ErrLocked)
		}
		logger.Warn("Replacing stale lockfile", "path", path, "error", err)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lockfile keeps reappearing", ErrLocked)
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	pid, _, _ := parse(string(content))
	if pid != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Inspect reads the lockfile in dir without touching it.
func Inspect(dir string) (Holder, error) {
	content, err := os.ReadFile(filepath.Join(dir, constants.LockfileName))
	if err != nil {
		return Holder{}, err
	}
	pid, since, err := parse(string(content))
	if err != nil {
		return Holder{}, err
	}
	holder := Holder{PID: pid, Since: since}
	if process, err := findProcessFunc(pid); err == nil && process != nil {
		holder.Executable = process.Executable()
	}
	return holder, nil
}

func parse(content string) (int, time.Time, error) {
	pidStr, sinceStr, ok := strings.Cut(strings.TrimSpace(content), "|")
	if !ok {
		return 0, time.Time{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, time.Time{}, errors.New("invalid process ID in lockfile")
	}
	since, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, errors.New("invalid timestamp in lockfile")
	}
	return pid, time.Unix(since, 0), nil
}

func recentlyModified(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < writeGrace
}

func isToyplan(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
