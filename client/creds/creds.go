// Package creds stores the bearer token used against the bookstore backend.
package creds

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds at most one token. Clear is called by the client when the
// backend rejects the session.
type Store interface {
	Token() (string, bool)
	Set(token string) error
	Clear() error
}

type Memory struct {
	mu    sync.Mutex
	token string
}

func (m *Memory) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// File keeps the token on disk so it outlives the process.
type File struct {
	Path string
}

func (f *File) Token() (string, bool) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(string(raw))
	return token, token != ""
}

func (f *File) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	if err := os.WriteFile(f.Path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	return nil
}

func (f *File) Clear() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
