package creds_test

import (
	"path/filepath"
	"testing"

	"github.com/irsalhamdi/bookstore-admin/client/creds"
)

func TestMemory(t *testing.T) {
	store := &creds.Memory{}

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store should hold no token")
	}

	if err := store.Set("sesame"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if token, ok := store.Token(); !ok || token != "sesame" {
		t.Fatalf("expected sesame, got %q (%v)", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("cleared store should hold no token")
	}
}

func TestFile(t *testing.T) {
	store := &creds.File{Path: filepath.Join(t.TempDir(), "nested", "token")}

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store should hold no token")
	}

	if err := store.Set("sesame"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if token, ok := store.Token(); !ok || token != "sesame" {
		t.Fatalf("expected sesame, got %q (%v)", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("cleared store should hold no token")
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
