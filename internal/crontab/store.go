package crontab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Store persists raw crontab contents for a user. An empty user means the
// running user.
type Store interface {
	Read(ctx context.Context, user string) ([]byte, error)
	Write(ctx context.Context, user string, data []byte) error
}

// CommandStore manages crontabs through the system crontab binary.
type CommandStore struct {
	Bin string
}

func NewCommandStore(bin string) *CommandStore {
	if bin == "" {
		bin = "crontab"
	}
	return &CommandStore{Bin: bin}
}

func (s *CommandStore) args(user string, rest ...string) []string {
	if user == "" {
		return rest
	}
	return append([]string{"-u", user}, rest...)
}

func (s *CommandStore) Read(ctx context.Context, user string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Bin, s.args(user, "-l")...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "no crontab for") {
			return nil, nil
		}
		return nil, fmt.Errorf("%s -l: %w: %s", s.Bin, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func (s *CommandStore) Write(ctx context.Context, user string, data []byte) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Bin, s.args(user, "-")...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s -: %w: %s", s.Bin, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// FileStore keeps a crontab in a plain file, ignoring the user.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Read(_ context.Context, _ string) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s *FileStore) Write(_ context.Context, _ string, data []byte) error {
	return os.WriteFile(s.Path, data, 0o600)
}

// MemoryStore keeps crontabs in memory, keyed by user.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]byte)}
}

func (s *MemoryStore) Read(_ context.Context, user string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.tables[user]), nil
}

func (s *MemoryStore) Write(_ context.Context, user string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[user] = bytes.Clone(data)
	return nil
}

var (
	_ Store = (*CommandStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
