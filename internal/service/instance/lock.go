package instance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/snake-game/internal/config"
	"github.com/oshokin/snake-game/internal/logger"
)

// LockFilename marks a running game inside the data folder.
const LockFilename = "snake.lock"

// maxAttempts bounds stale-lock recovery: one cleanup, one retry.
const maxAttempts = 2

var (
	// ErrAlreadyRunning is returned when a live process holds the lock.
	ErrAlreadyRunning = errors.New("another instance is already running")
	errMalformedLock  = errors.New("malformed lock file")
)

// Lock is a held instance lock.
type Lock struct {
	path string
}

// Alive reports whether a process with the PID exists.
type Alive func(pid int) (bool, error)

// ProcessAlive looks the PID up in the process table.
func ProcessAlive(pid int) (bool, error) {
	process, err := ps.FindProcess(pid)
	if err != nil {
		return false, fmt.Errorf("find process %d: %w", pid, err)
	}

	return process != nil, nil
}

// Acquire takes the lock in dir.
func Acquire(ctx context.Context, dir string) (*Lock, error) {
	return AcquireWith(ctx, dir, ProcessAlive)
}

// AcquireWith is Acquire with a custom liveness check.
func AcquireWith(ctx context.Context, dir string, alive Alive) (*Lock, error) {
	path := filepath.Join(dir, LockFilename)

	for range maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := create(path)
		if err == nil {
			logger.DebugKV(ctx, "Instance lock acquired", "path", path)
			return &Lock{path: path}, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		pid, err := readPID(path)
		if err == nil {
			var running bool

			if running, err = alive(pid); err != nil {
				return nil, err
			}

			if running {
				return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
			}
		}

		logger.WarnKV(ctx, "Removing stale instance lock", "path", path, "pid", pid, "error", err)

		if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale lock: %w", err)
		}
	}

	return nil, ErrAlreadyRunning
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("release instance lock: %w", err)
	}

	return nil
}

func create(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return err
		}

		return fmt.Errorf("create instance lock: %w", err)
	}

	_, err = f.WriteString(strconv.Itoa(os.Getpid()))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write instance lock: %w", err)
	}

	return nil
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read instance lock: %w", err)
	}

	pid, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil || pid <= 0 {
		return 0, errMalformedLock
	}

	return pid, nil
}
